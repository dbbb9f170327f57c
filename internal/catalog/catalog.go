package catalog

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"ecomed-ai/internal/fileio"

	"go.uber.org/zap"
)

// CarbonFootprintColumn is the footprint column name in the reference CSV.
const CarbonFootprintColumn = "Global warming potential per functional unit"

// Entry is one reference product. CarbonFootprint is NaN when the source
// cell was empty or unparseable.
type Entry struct {
	ProductName     string
	CarbonFootprint float64
}

// Catalog is the read-only reference catalog shared by all requests.
// It is built once at startup and never mutated afterwards.
type Catalog struct {
	entries []Entry
	logger  *zap.Logger
}

func New(entries []Entry, logger *zap.Logger) *Catalog {
	return &Catalog{
		entries: entries,
		logger:  logger,
	}
}

// Load reads the reference catalog CSV. The legacy "Product or process"
// header is accepted as an alias for product_name.
func Load(path string, logger *zap.Logger) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog CSV: %w", err)
	}
	defer f.Close()

	headers, rows, err := fileio.ReadCSVMaps(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog CSV: %w", err)
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("catalog CSV %s is empty", path)
	}

	nameKey := ""
	hasFootprint := false
	for _, h := range headers {
		switch h {
		case "product_name":
			nameKey = "product_name"
		case "Product or process":
			if nameKey == "" {
				nameKey = "Product or process"
			}
		case CarbonFootprintColumn:
			hasFootprint = true
		}
	}
	if nameKey == "" {
		return nil, fmt.Errorf("catalog CSV must contain 'product_name' column")
	}
	if !hasFootprint {
		return nil, fmt.Errorf("catalog CSV must contain '%s' column", CarbonFootprintColumn)
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(row[nameKey])
		if name == "" {
			continue
		}
		cf := math.NaN()
		if raw := strings.TrimSpace(row[CarbonFootprintColumn]); raw != "" {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				cf = v
			}
		}
		entries = append(entries, Entry{ProductName: name, CarbonFootprint: cf})
	}

	logger.Info("Reference catalog loaded",
		zap.String("path", path),
		zap.Int("entries", len(entries)),
	)

	return New(entries, logger), nil
}

// ProductNames returns all product names in catalog order. Duplicates are
// kept as-is.
func (c *Catalog) ProductNames() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.ProductName
	}
	return names
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

// CarbonFootprint returns the footprint for a product by exact name match.
// The first matching row wins when the catalog contains duplicates. Missing
// products and missing footprint values both yield 0.0; the lookup never
// fails.
func (c *Catalog) CarbonFootprint(productName string) float64 {
	if productName == "" {
		return 0.0
	}
	for _, e := range c.entries {
		if e.ProductName == productName {
			if math.IsNaN(e.CarbonFootprint) {
				return 0.0
			}
			return e.CarbonFootprint
		}
	}
	c.logger.Warn("Product not found in catalog", zap.String("product", productName))
	return 0.0
}
