// Package ingest turns stored warehouse CSV objects into the raw rows the
// blending engine consumes. Values stay untouched strings here; all
// normalization is the harmonizer's job.
package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ignite/adblend/internal/blending"
)

// ParseCSV reads a CSV stream and returns one RawRow per data row, keyed
// by the header names. Short rows leave trailing columns absent; ragged
// extra cells are dropped. A header-only or empty file yields no rows.
func ParseCSV(r io.Reader) ([]blending.RawRow, error) {
	reader := csv.NewReader(stripBOM(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.Trim(strings.TrimSpace(h), "\"'")
	}

	var rows []blending.RawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}

		row := make(blending.RawRow, len(header))
		for i, val := range record {
			if i >= len(header) || header[i] == "" {
				continue
			}
			row[header[i]] = val
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// stripBOM removes a UTF-8 byte-order mark; Excel exports routinely
// carry one and it would corrupt the first header name.
func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(3); err == nil && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		br.Discard(3)
	}
	return br
}
