package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalog(t *testing.T) {
	in := "name,price,min_stock,cantidad\nTornillo,0.25,10,100\n Tuerca , 1.5 ,5,0\n"
	items, err := parseCatalog(strings.NewReader(in), "utf-8")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Tuerca", items[1].Name)
	assert.True(t, decimal.RequireFromString("1.5").Equal(items[1].Price))
	assert.EqualValues(t, 100, items[0].Cantidad)
}

func TestParseCatalog_Latin1(t *testing.T) {
	// "Caño" en ISO-8859-1: ñ = 0xF1
	in := append([]byte("name,price,min_stock,cantidad\nCa"), 0xF1)
	in = append(in, []byte("o,3,1,2\n")...)
	items, err := parseCatalog(bytes.NewReader(in), "iso-8859-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Caño", items[0].Name)
}

func TestParseCatalog_Errores(t *testing.T) {
	_, err := parseCatalog(strings.NewReader("h,h,h,h\nx,abc,1,1\n"), "")
	assert.Error(t, err)
	_, err = parseCatalog(strings.NewReader("h,h,h,h\nx,1,1,-4\n"), "")
	assert.Error(t, err)
	_, err = parseCatalog(strings.NewReader("h,h,h,h\n"), "ebcdic")
	assert.Error(t, err)
}
