// Package tabular reads CSV-like files with unknown encodings and delimiters.
//
// The public buyer datasets this tool consumes come from several Korean
// government portals and arrive in a mix of UTF-8 (with and without BOM) and
// CP949/EUC-KR, separated by commas, semicolons, tabs or pipes. Nothing here
// is fatal: the worst case is a one-column table that downstream steps
// tolerate.
package tabular

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
)

// sniffSample is how many characters of decoded text the delimiter sniffer
// looks at.
const sniffSample = 5000

// delimiterCandidates is the ordered set of delimiters the sniffer considers.
var delimiterCandidates = []rune{',', ';', '\t', '|'}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Detection describes how a raw file was interpreted.
type Detection struct {
	Encoding  string
	Delimiter rune
}

// DecodeText decodes raw bytes using the first encoding that fits: UTF-8
// (BOM stripped) then EUC-KR/CP949. If neither decodes cleanly, the bytes are
// decoded as EUC-KR with invalid sequences replaced rather than failing.
func DecodeText(raw []byte) (string, string) {
	if bytes.HasPrefix(raw, utf8BOM) {
		trimmed := bytes.TrimPrefix(raw, utf8BOM)
		if utf8.Valid(trimmed) {
			return string(trimmed), "utf-8-sig"
		}
		raw = trimmed
	}

	if utf8.Valid(raw) {
		return string(raw), "utf-8"
	}

	decoded, err := korean.EUCKR.NewDecoder().Bytes(raw)
	if err == nil && !bytes.ContainsRune(decoded, utf8.RuneError) {
		return string(decoded), "euc-kr"
	}

	// Tolerant fallback: keep replacement runes instead of failing.
	if decoded == nil {
		decoded = raw
	}
	return string(decoded), "euc-kr(replace)"
}

// SniffDelimiter guesses the field delimiter from a sample of decoded text.
// It picks the candidate that splits every sampled line into the same number
// of fields, preferring the one yielding the most fields. Returns false when
// no candidate is consistent; callers fall back to comma.
func SniffDelimiter(text string) (rune, bool) {
	sample := text
	if len(sample) > sniffSample {
		sample = sample[:sniffSample]
		// Drop the trailing partial line so its field count doesn't skew the vote.
		if idx := strings.LastIndexByte(sample, '\n'); idx > 0 {
			sample = sample[:idx]
		}
	}

	var lines []string
	for _, line := range strings.Split(sample, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) >= 20 {
			break
		}
	}
	if len(lines) == 0 {
		return 0, false
	}

	bestDelim := rune(0)
	bestCount := 0
	for _, delim := range delimiterCandidates {
		count := strings.Count(lines[0], string(delim))
		if count == 0 {
			continue
		}
		consistent := true
		for _, line := range lines[1:] {
			if strings.Count(line, string(delim)) != count {
				consistent = false
				break
			}
		}
		if consistent && count > bestCount {
			bestDelim = delim
			bestCount = count
		}
	}

	if bestDelim == 0 {
		return 0, false
	}
	return bestDelim, true
}

// Detect decodes raw bytes and sniffs the delimiter, falling back to comma.
func Detect(raw []byte) (string, Detection) {
	text, enc := DecodeText(raw)

	delim, ok := SniffDelimiter(text)
	if !ok {
		delim = ','
	}

	return text, Detection{Encoding: enc, Delimiter: delim}
}
