// Package match scores, filters, deduplicates and ranks buyer records
// against a search query.
package match

// IndustryKeywords maps each supported industry label to the English text
// fragments that identify it in free-form product descriptions and company
// names. The labels are the Korean industry names used across the service;
// the keywords are English because the buyer datasets describe goods in
// English. Matching is substring-based and case-insensitive by design.
var IndustryKeywords = map[string][]string{
	"화장품/뷰티": {
		"cosmetics", "beauty", "skincare", "skin care", "makeup", "personal care",
		"lotion", "cream", "serum", "toner", "cleanser", "sunscreen", "mask", "fragrance",
	},
	"전자제품": {
		"electronics", "electronic", "device", "gadget", "semiconductor", "chip",
		"display", "battery", "charger", "adapter", "smart", "iot", "sensor", "led",
	},
	"식품": {
		"food", "beverage", "snack", "drink", "coffee", "tea", "sauce",
		"noodle", "ramen", "instant", "frozen", "seafood", "meat", "fruit",
	},
	"섬유/의류": {
		"apparel", "clothing", "garment", "textile", "fabric", "fashion",
		"yarn", "cotton", "polyester", "knit", "denim", "outerwear", "sportswear",
	},
	"자동차 부품": {
		"auto", "automotive", "car", "vehicle", "spare parts", "parts",
		"engine", "brake", "filter", "tire", "tyre", "transmission", "sensor",
	},
	"기계/설비": {
		"machinery", "equipment", "industrial", "manufacturing", "factory",
		"pump", "valve", "compressor", "tool", "robot", "automation", "cnc",
	},
	"의료기기": {
		"medical", "healthcare", "diagnostic", "surgical", "hospital",
		"clinic", "monitor", "disposable", "sterile",
	},
	"기타": {"import", "export", "trade", "sourcing", "procurement"},
}

// Industries returns the supported industry labels in menu order.
func Industries() []string {
	return []string{
		"화장품/뷰티", "전자제품", "식품", "섬유/의류",
		"자동차 부품", "기계/설비", "의료기기", "기타",
	}
}

// CountryOptions is the selectable set of target countries.
var CountryOptions = []string{
	"United States", "Canada", "Mexico",
	"Brazil", "Argentina", "Chile",
	"United Kingdom", "Germany", "France", "Italy", "Spain", "Netherlands",
	"Sweden", "Norway", "Denmark", "Poland",
	"Turkey", "Russia",
	"United Arab Emirates", "Saudi Arabia", "Qatar", "Kuwait",
	"South Africa", "Egypt", "Nigeria",
	"China", "Japan", "South Korea", "Taiwan", "Hong Kong",
	"Singapore", "Malaysia", "Thailand", "Vietnam", "Indonesia", "Philippines", "India",
	"Australia", "New Zealand",
}

// IsKnownIndustry reports whether the label is one of the supported industries.
func IsKnownIndustry(label string) bool {
	_, ok := IndustryKeywords[label]
	return ok
}
