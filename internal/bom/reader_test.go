package bom

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func TestParse(t *testing.T) {
	csv := "product_name,quantity,unit_price\n" +
		"Beaker,2,1.5\n" +
		"Syringe,,\n" +
		"Scalpel,3,\n"

	rows, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Beaker", rows[0].ProductName)
	assert.Equal(t, 2.0, rows[0].Quantity)
	assert.Equal(t, 1.5, rows[0].UnitPrice)

	// Blank cells fall back to the defaults
	assert.Equal(t, 1.0, rows[1].Quantity)
	assert.Equal(t, 0.0, rows[1].UnitPrice)

	assert.Equal(t, 3.0, rows[2].Quantity)
	assert.Equal(t, 0.0, rows[2].UnitPrice)
}

func TestParseMissingOptionalColumns(t *testing.T) {
	rows, err := Parse(strings.NewReader("product_name\nBeaker\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1.0, rows[0].Quantity)
	assert.Equal(t, 0.0, rows[0].UnitPrice)
}

func TestParseMissingProductColumn(t *testing.T) {
	_, err := Parse(strings.NewReader("name,quantity\nBeaker,2\n"))
	assert.ErrorIs(t, err, ErrMissingProductColumn)
}

func TestParseHeaderOnly(t *testing.T) {
	rows, err := Parse(strings.NewReader("product_name,quantity,unit_price\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseEmptyFile(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParseSkipsRowsWithoutProductName(t *testing.T) {
	csv := "product_name,quantity\n" +
		"Beaker,2\n" +
		",5\n"

	rows, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Beaker", rows[0].ProductName)
}

func TestParseWindows1251(t *testing.T) {
	csv := "product_name,quantity\n" +
		"Шприц одноразовый стерильный для инъекций,4\n" +
		"Перчатки медицинские смотровые нестерильные,10\n" +
		"Бинт марлевый стерильный медицинский,25\n"

	var buf bytes.Buffer
	w := transform.NewWriter(&buf, charmap.Windows1251.NewEncoder())
	_, err := w.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	rows, err := Parse(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Шприц одноразовый стерильный для инъекций", rows[0].ProductName)
	assert.Equal(t, 4.0, rows[0].Quantity)
}
