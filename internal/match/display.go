package match

import (
	"strings"

	"github.com/tradewise-kr/buyerscout/internal/model"
)

// GuessDomain derives a best-effort web domain from a website URL, falling
// back to the domain of an email address. Used only for display when no
// canonical website field exists.
func GuessDomain(website, email string) string {
	if website != "" {
		d := strings.ToLower(strings.TrimSpace(website))
		d = strings.TrimPrefix(d, "https://")
		d = strings.TrimPrefix(d, "http://")
		if idx := strings.IndexByte(d, '/'); idx >= 0 {
			d = d[:idx]
		}
		return d
	}
	if at := strings.LastIndexByte(email, '@'); at >= 0 {
		return strings.ToLower(strings.TrimSpace(email[at+1:]))
	}
	return ""
}

// Display converts a scored candidate into its presentation shape. The match
// score and source identifier stay behind this boundary; when only a domain
// is known the email falls back to a synthesized info@ placeholder and a
// missing contact person is replaced by the NotExtracted marker.
func Display(c model.ScoredCandidate) model.DisplayBuyer {
	rec := c.Record
	domain := GuessDomain(rec.Website, rec.Email)

	website := rec.Website
	if website == "" && domain != "" {
		website = "https://" + domain
	}

	email := rec.Email
	if email == "" && domain != "" {
		email = "info@" + domain
	}

	contact := rec.ContactPerson
	if contact == "" {
		contact = model.NotExtracted
	}

	return model.DisplayBuyer{
		CompanyName:    rec.CompanyName,
		Domain:         domain,
		Website:        website,
		Industry:       c.Industry,
		CountryTargets: c.CountryTargets,
		Email:          email,
		ContactPerson:  contact,
		RawCountry:     rec.Country,
		RawCity:        rec.City,
		RawProductText: rec.ProductText,
		RawHSCode:      rec.HSCode,
		RawPhone:       rec.Phone,
	}
}
