package bom

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ecomed-ai/internal/fileio"
	"ecomed-ai/internal/models"
)

var (
	// ErrMissingProductColumn indicates the upload lacks the required
	// product_name column.
	ErrMissingProductColumn = errors.New("BOM CSV must contain 'product_name' column")
	// ErrEmptyFile indicates the upload contained no CSV content at all.
	ErrEmptyFile = errors.New("BOM CSV file is empty")
)

const (
	defaultQuantity  = 1.0
	defaultUnitPrice = 0.0
)

// Parse reads an uploaded BOM CSV into rows. quantity defaults to 1.0 and
// unit_price to 0.0 when the columns are absent or a cell is blank. Rows
// with an empty product_name are skipped. A header-only file parses into
// zero rows.
func Parse(r io.Reader) ([]models.BOMRow, error) {
	headers, records, err := fileio.ReadCSVMaps(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse BOM CSV: %w", err)
	}
	if len(headers) == 0 {
		return nil, ErrEmptyFile
	}

	hasProduct := false
	for _, h := range headers {
		if h == "product_name" {
			hasProduct = true
			break
		}
	}
	if !hasProduct {
		return nil, ErrMissingProductColumn
	}

	rows := make([]models.BOMRow, 0, len(records))
	for _, rec := range records {
		name := strings.TrimSpace(rec["product_name"])
		if name == "" {
			continue
		}
		rows = append(rows, models.BOMRow{
			ProductName: name,
			Quantity:    parseFloat(rec["quantity"], defaultQuantity),
			UnitPrice:   parseFloat(rec["unit_price"], defaultUnitPrice),
		})
	}
	return rows, nil
}

func parseFloat(raw string, fallback float64) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
