package orders

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// SweeperConfig parámetros del barrido de finalización.
type SweeperConfig struct {
	Interval    time.Duration // frecuencia de ejecución
	GracePeriod time.Duration // antigüedad mínima del envío para finalizar
	BatchSize   int           // máximo de órdenes por ejecución
}

// SweepResult resumen de una ejecución del barrido.
type SweepResult struct {
	Scanned   int
	Completed int
	Skipped   int // ya finalizadas por otra ejecución
	Failed    int
}

// CompletionSweeper promueve a completed las órdenes enviadas hace más de GracePeriod,
// usando el mismo camino de la máquina de estados que una petición.
type CompletionSweeper struct {
	orders *OrderUseCase
	repo   repository.OrderRepository
	cfg    SweeperConfig
	log    zerolog.Logger
	now    func() time.Time

	mu    sync.Mutex
	sched *cron.Cron
}

// NewCompletionSweeper construye el barrido.
func NewCompletionSweeper(orders *OrderUseCase, repo repository.OrderRepository, cfg SweeperConfig, log zerolog.Logger) *CompletionSweeper {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	return &CompletionSweeper{
		orders: orders,
		repo:   repo,
		cfg:    cfg,
		log:    log.With().Str("component", "completion_sweeper").Logger(),
		now:    time.Now,
	}
}

// WithClock reemplaza el reloj usado para calcular el corte de antigüedad.
func (s *CompletionSweeper) WithClock(now func() time.Time) *CompletionSweeper {
	s.now = now
	return s
}

// RunOnce ejecuta un barrido. Un fallo en una orden se registra y no detiene las demás.
func (s *CompletionSweeper) RunOnce(ctx context.Context) (SweepResult, error) {
	var res SweepResult
	cutoff := s.now().Add(-s.cfg.GracePeriod)
	candidates, err := s.repo.ListShippedBefore(ctx, cutoff, s.cfg.BatchSize)
	if err != nil {
		return res, fmt.Errorf("listar órdenes enviadas: %w", err)
	}
	res.Scanned = len(candidates)

	for _, order := range candidates {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		_, err := s.orders.Transition(ctx, entity.SystemCaller(), order.ID, entity.OrderStatusCompleted)
		switch {
		case err == nil:
			res.Completed++
			s.log.Info().Str("order_id", order.ID).Msg("orden finalizada automáticamente")
		case errors.Is(err, domain.ErrInvalidTransition):
			res.Skipped++
			s.log.Debug().Err(err).Str("order_id", order.ID).Msg("orden ya no está en shipped")
		default:
			res.Failed++
			s.log.Error().Err(err).Str("order_id", order.ID).Msg("no se pudo finalizar la orden")
		}
	}
	return res, nil
}

// Start programa el barrido cada Interval. Si una ejecución sigue en curso, la siguiente se omite.
func (s *CompletionSweeper) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched != nil {
		return nil
	}
	if s.cfg.Interval <= 0 {
		return fmt.Errorf("intervalo del barrido inválido: %s", s.cfg.Interval)
	}
	logger := cronLogger{log: s.log}
	sched := cron.New(cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)))
	_, err := sched.AddFunc("@every "+s.cfg.Interval.String(), s.tick)
	if err != nil {
		return fmt.Errorf("programar barrido: %w", err)
	}
	sched.Start()
	s.sched = sched
	s.log.Info().
		Dur("interval", s.cfg.Interval).
		Dur("grace_period", s.cfg.GracePeriod).
		Msg("barrido de finalización programado")
	return nil
}

// Stop detiene la programación y espera a que termine la ejecución en curso (o a ctx).
func (s *CompletionSweeper) Stop(ctx context.Context) {
	s.mu.Lock()
	sched := s.sched
	s.sched = nil
	s.mu.Unlock()
	if sched == nil {
		return
	}
	select {
	case <-sched.Stop().Done():
	case <-ctx.Done():
		s.log.Warn().Msg("barrido detenido sin esperar la ejecución en curso")
	}
}

func (s *CompletionSweeper) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Interval)
	defer cancel()
	res, err := s.RunOnce(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("barrido de finalización")
		return
	}
	if res.Scanned > 0 {
		s.log.Info().
			Int("scanned", res.Scanned).
			Int("completed", res.Completed).
			Int("skipped", res.Skipped).
			Int("failed", res.Failed).
			Msg("barrido de finalización terminado")
	}
}

// cronLogger adapta zerolog a la interfaz cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
