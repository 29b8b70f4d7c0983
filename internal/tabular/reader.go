package tabular

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// Table is an ordered sequence of rows under the headers as read from the
// file. Headers are not guaranteed unique; rows are padded to header width.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Columns returns the number of columns.
func (t *Table) Columns() int {
	return len(t.Headers)
}

// Cell returns the trimmed cell value at (row, col), or "" when out of range.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][col])
}

// ReadTable decodes raw bytes and parses them into a Table. If the sniffed
// delimiter yields a single column, the other candidates are retried and the
// first one producing more than one column wins. A one-column result is not
// an error; downstream column inference simply finds nothing.
func ReadTable(raw []byte) (*Table, Detection) {
	text, det := Detect(raw)

	table := parseTable(text, det.Delimiter)
	if table.Columns() == 1 {
		for _, alt := range delimiterCandidates {
			if alt == det.Delimiter {
				continue
			}
			retry := parseTable(text, alt)
			if retry.Columns() > 1 {
				table = retry
				det.Delimiter = alt
				break
			}
		}
	}

	return table, det
}

// parseTable parses decoded text with a fixed delimiter. Rows that fail to
// parse or carry more fields than the header are skipped; short rows are
// padded with empty strings.
func parseTable(text string, delim rune) *Table {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	headers, err := r.Read()
	if err != nil {
		return &Table{}
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	table := &Table{Headers: headers}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue
		}
		if len(record) > len(headers) {
			continue
		}
		if len(record) < len(headers) {
			padded := make([]string, len(headers))
			copy(padded, record)
			record = padded
		}
		table.Rows = append(table.Rows, record)
	}

	return table
}
