package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/bodega-api/internal/application/orders"
)

var _ orders.EventPublisher = (*Producer)(nil)

// DefaultPublishTimeout tope de espera por evento; la publicación es best-effort.
const DefaultPublishTimeout = 2 * time.Second

// MessageWriter subconjunto de *kafka.Writer usado por el productor.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publica eventos de órdenes en un tópico Kafka, usando el ID de la orden como clave
// para conservar el orden de eventos por orden dentro de la partición.
type Producer struct {
	writer  MessageWriter
	timeout time.Duration
}

// NewProducer construye el productor contra los brokers indicados.
// timeout <= 0 usa DefaultPublishTimeout.
func NewProducer(brokers []string, topic string, timeout time.Duration) *Producer {
	p := NewProducerWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	})
	return p.WithTimeout(timeout)
}

// NewProducerWithWriter construye el productor sobre un writer ya configurado.
func NewProducerWithWriter(w MessageWriter) *Producer {
	return &Producer{writer: w, timeout: DefaultPublishTimeout}
}

// WithTimeout fija el tope de espera de cada Publish.
func (p *Producer) WithTimeout(d time.Duration) *Producer {
	if d > 0 {
		p.timeout = d
	}
	return p
}

// Publish serializa el evento en JSON y lo escribe en el tópico.
// Un broker caído no retiene la petición más allá del timeout del productor.
func (p *Producer) Publish(ctx context.Context, event orders.OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	})
}

// Close libera el writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
