package fileio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ReadCSVMaps reads a CSV stream into one map per row, keyed by the header
// row, and returns the header names alongside. The encoding is
// auto-detected; UTF-8 and Windows-1251 are supported out of the box. Fully
// empty rows are dropped.
func ReadCSVMaps(r io.Reader) ([]string, []map[string]string, error) {
	br := bufio.NewReader(r)

	// Peek a bit to detect encoding
	peek, _ := br.Peek(2048)
	cs := "utf-8"
	if len(peek) > 0 {
		if det, err := chardet.NewTextDetector().DetectBest(peek); err == nil && det != nil {
			cs = strings.ToLower(det.Charset)
		}
	}

	var dec io.Reader = br
	switch cs {
	case "windows-1251", "cp1251":
		dec = transform.NewReader(br, charmap.Windows1251.NewDecoder())
	default:
		// assume UTF-8
	}

	cr := csv.NewReader(dec)
	cr.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, rec)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	headers := pickHeader(rows[0])
	return headers, rowsToMaps(rows[1:], headers), nil
}

// pickHeader trims header cells, substituting "Column N" for empty ones.
func pickHeader(row []string) []string {
	out := make([]string, len(row))
	for i, v := range row {
		v = strings.TrimSpace(v)
		if v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		out[i] = v
	}
	return out
}

func rowsToMaps(rows [][]string, headers []string) []map[string]string {
	var out []map[string]string
	for _, rec := range rows {
		m := map[string]string{}
		for c := 0; c < len(headers); c++ {
			var v string
			if c < len(rec) {
				v = rec[c]
			}
			m[headers[c]] = v
		}
		empty := true
		for _, v := range m {
			if strings.TrimSpace(v) != "" {
				empty = false
				break
			}
		}
		if !empty {
			out = append(out, m)
		}
	}
	return out
}
