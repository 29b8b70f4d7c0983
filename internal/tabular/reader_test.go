package tabular

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
)

func TestReadTable(t *testing.T) {
	table, det := ReadTable([]byte("company,country\nAcme Corp,United States\nBolt GmbH,Germany\n"))

	assert.Equal(t, []string{"company", "country"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Acme Corp", table.Cell(0, 0))
	assert.Equal(t, "Germany", table.Cell(1, 1))
	assert.Equal(t, ',', det.Delimiter)
}

// Encoding a known table with each supported encoding and delimiter and
// reading it back must recover the original column count.
func TestReadTableRoundTrip(t *testing.T) {
	headers := []string{"회사명", "국가", "품목"}
	row := []string{"아크메", "미국", "cosmetics"}

	encoders := map[string]func(string) []byte{
		"utf-8": func(s string) []byte { return []byte(s) },
		"euc-kr": func(s string) []byte {
			b, err := korean.EUCKR.NewEncoder().Bytes([]byte(s))
			require.NoError(t, err)
			return b
		},
	}

	for encName, encode := range encoders {
		for _, delim := range []string{",", ";", "\t", "|"} {
			name := fmt.Sprintf("%s delim %q", encName, delim)
			t.Run(name, func(t *testing.T) {
				text := strings.Join(headers, delim) + "\n" + strings.Join(row, delim) + "\n"
				table, _ := ReadTable(encode(text))

				assert.Equal(t, len(headers), table.Columns())
				require.Len(t, table.Rows, 1)
				assert.Equal(t, "cosmetics", table.Cell(0, 2))
			})
		}
	}
}

func TestReadTableRetriesOnSingleColumn(t *testing.T) {
	// Ragged tab counts defeat the sniffer, so the comma fallback parses a
	// single column and the retry pass must land on tab.
	raw := []byte("col1\tcol2\tcol3\na\tb\nx\ty\tz\n")

	table, det := ReadTable(raw)

	assert.Equal(t, 3, table.Columns())
	assert.Equal(t, '\t', det.Delimiter)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "", table.Cell(0, 2))
}

func TestReadTablePadsShortRows(t *testing.T) {
	table, _ := ReadTable([]byte("a,b,c\n1,2\n"))

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "1", table.Cell(0, 0))
	assert.Equal(t, "", table.Cell(0, 2))
}

func TestReadTableSkipsOverlongRows(t *testing.T) {
	table, _ := ReadTable([]byte("a,b\n1,2\n1,2,3,4\n5,6\n"))

	assert.Len(t, table.Rows, 2)
}

func TestReadTableEmptyInput(t *testing.T) {
	table, _ := ReadTable(nil)

	assert.Equal(t, 0, table.Columns())
	assert.Empty(t, table.Rows)
	assert.Equal(t, "", table.Cell(0, 0))
}
