package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type catalogItem struct {
	Name     string
	Price    decimal.Decimal
	MinStock int64
	Cantidad int64
}

// parseCatalog lee filas name,price,min_stock,cantidad. La primera fila es encabezado.
func parseCatalog(r io.Reader, charset string) ([]catalogItem, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
	case "iso-8859-1", "iso8859-1", "latin1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		return nil, fmt.Errorf("charset no soportado: %s", charset)
	}

	rd := csv.NewReader(r)
	rd.FieldsPerRecord = 4
	rd.TrimLeadingSpace = true
	rows, err := rd.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	items := make([]catalogItem, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		price, err := decimal.NewFromString(strings.TrimSpace(row[1]))
		if err != nil {
			return nil, fmt.Errorf("línea %d: precio: %w", line, err)
		}
		minStock, err := strconv.ParseInt(strings.TrimSpace(row[2]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("línea %d: min_stock: %w", line, err)
		}
		qty, err := strconv.ParseInt(strings.TrimSpace(row[3]), 10, 64)
		if err != nil || qty < 0 {
			return nil, fmt.Errorf("línea %d: cantidad inválida %q", line, row[3])
		}
		items = append(items, catalogItem{
			Name:     strings.TrimSpace(row[0]),
			Price:    price,
			MinStock: minStock,
			Cantidad: qty,
		})
	}
	return items, nil
}
