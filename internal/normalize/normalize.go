// Package normalize converts raw source tables into canonical buyer records.
package normalize

import (
	"strings"
	"time"

	"github.com/tradewise-kr/buyerscout/internal/infer"
	"github.com/tradewise-kr/buyerscout/internal/model"
	"github.com/tradewise-kr/buyerscout/internal/tabular"
)

// dateLayouts is the ordered list of accepted date formats. Full dates with
// dash, dot and slash separators come first, then year-month variants.
var dateLayouts = []string{
	"2006-01-02",
	"2006.01.02",
	"2006/01/02",
	"20060102",
	"2006-01",
	"2006.01",
	"2006/01",
}

// ParseDate tries each supported layout in order and returns the first
// successful parse. Unparseable input yields nil; the raw string is retained
// on the record for display.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// Records converts every row of a table into a BuyerRecord tagged with the
// given source id. Missing or uninferable fields become empty strings, except
// the company name which falls back to the UnknownCompany sentinel. This step
// is pure: it neither merges rows nor touches other sources.
func Records(table *tabular.Table, source string) []model.BuyerRecord {
	columns := infer.Columns(table.Headers)

	cell := func(row int, role infer.Role) string {
		col, ok := columns[role]
		if !ok {
			return ""
		}
		return table.Cell(row, col)
	}

	records := make([]model.BuyerRecord, 0, len(table.Rows))
	for i := range table.Rows {
		dateRaw := cell(i, infer.RoleDate)

		rec := model.BuyerRecord{
			CompanyName:   cell(i, infer.RoleCompany),
			Country:       cell(i, infer.RoleCountry),
			City:          cell(i, infer.RoleCity),
			ProductText:   cell(i, infer.RoleProduct),
			HSCode:        cell(i, infer.RoleHSCode),
			ContactPerson: cell(i, infer.RoleContact),
			Email:         cell(i, infer.RoleEmail),
			Phone:         cell(i, infer.RolePhone),
			Website:       cell(i, infer.RoleWebsite),
			Date:          ParseDate(dateRaw),
			DateRaw:       dateRaw,
			Source:        source,
		}
		if rec.CompanyName == "" {
			rec.CompanyName = model.UnknownCompany
		}
		rec.Hash = rec.GenerateHash()

		records = append(records, rec)
	}

	return records
}
