// Package infer maps semantic roles (company, country, email, ...) onto the
// actual column headers of a source table using keyword substring matching.
// The keyword tables carry both Korean and English forms because the source
// datasets mix the two freely.
package infer

import (
	"regexp"
	"strings"
)

// Role identifies a semantic column role in a buyer dataset.
type Role string

// Semantic roles recognized in buyer datasets.
const (
	RoleCompany Role = "company"
	RoleCountry Role = "country"
	RoleCity    Role = "city"
	RoleProduct Role = "product"
	RoleHSCode  Role = "hs_code"
	RoleContact Role = "contact"
	RoleEmail   Role = "email"
	RolePhone   Role = "phone"
	RoleWebsite Role = "website"
	RoleDate    Role = "date"
)

// RoleKeywords maps each role to the header substrings that identify it.
// Matching is deliberately fuzzy; the tables are data so they can be tested
// and extended independently of the matching code.
var RoleKeywords = map[Role][]string{
	RoleCompany: {"회사", "기업", "업체", "바이어", "buyer", "company", "corporation", "상호", "기관명", "조직"},
	RoleCountry: {"국가", "country", "nation", "소재국", "거주국", "지역", "state"},
	RoleCity:    {"도시", "city", "소재지", "소재도시", "지역"},
	RoleProduct: {"품목", "제품", "item", "product", "오퍼", "inquiry", "관심", "수요", "구매", "구매품목"},
	RoleHSCode:  {"hs", "hscode", "hs코드", "품목코드", "세번"},
	RoleContact: {"담당자", "contact", "name", "성명", "대표자", "buyername"},
	RoleEmail:   {"이메일", "email", "e-mail", "메일"},
	RolePhone:   {"전화", "phone", "tel", "연락처", "mobile", "핸드폰"},
	RoleWebsite: {"웹", "홈페이지", "website", "url", "domain", "사이트"},
	RoleDate:    {"일자", "날짜", "등록", "신청", "date", "created", "updated", "연도", "year"},
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeHeader canonicalizes a column header for matching: lowercase,
// trimmed, with whitespace, hyphens and underscores removed.
func NormalizeHeader(header string) string {
	s := strings.ToLower(strings.TrimSpace(header))
	s = whitespaceRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// Column returns the index of the first header (in original order) whose
// normalized form contains any of the given keywords. The second return is
// false when no header matches; callers treat the role as unavailable.
func Column(headers []string, keywords []string) (int, bool) {
	for i, header := range headers {
		normed := NormalizeHeader(header)
		for _, kw := range keywords {
			if strings.Contains(normed, kw) {
				return i, true
			}
		}
	}
	return 0, false
}

// Columns resolves every known role against the given headers. Roles with no
// matching header are absent from the result map.
func Columns(headers []string) map[Role]int {
	resolved := make(map[Role]int, len(RoleKeywords))
	for role, keywords := range RoleKeywords {
		if idx, ok := Column(headers, keywords); ok {
			resolved[role] = idx
		}
	}
	return resolved
}
