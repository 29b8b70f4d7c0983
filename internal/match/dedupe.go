package match

import (
	"sort"
	"strings"

	"github.com/tradewise-kr/buyerscout/internal/model"
)

// Dedupe collapses candidates sharing an identity key, keeping the highest
// scorer per key, and returns the survivors sorted by score descending.
//
// The email identity is the address the candidate will display: the record's
// own email, or the synthesized info@domain when only a website is known.
// Candidates with neither are keyed by (lowercased company name, comma-joined
// lowercased target countries). The two groups are deduplicated
// independently and never cross-merge: a keyless duplicate of a with-email
// record survives as its own entry. That split is intentional and must not
// be "fixed" by merging across the keys.
func Dedupe(candidates []model.ScoredCandidate) []model.ScoredCandidate {
	if len(candidates) == 0 {
		return candidates
	}

	ordered := make([]model.ScoredCandidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].MatchScore > ordered[j].MatchScore
	})

	var withEmail, noEmail []model.ScoredCandidate
	for _, c := range ordered {
		if emailKey(c) != "" {
			withEmail = append(withEmail, c)
		} else {
			noEmail = append(noEmail, c)
		}
	}

	out := keepFirstPerKey(withEmail, emailKey)
	out = append(out, keepFirstPerKey(noEmail, companyCountryKey)...)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})

	return out
}

// keepFirstPerKey keeps the first candidate per key. Input must already be
// sorted by score descending so "first" means "highest scoring".
func keepFirstPerKey(candidates []model.ScoredCandidate, key func(model.ScoredCandidate) string) []model.ScoredCandidate {
	seen := make(map[string]bool, len(candidates))
	var out []model.ScoredCandidate
	for _, c := range candidates {
		k := key(c)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, c)
	}
	return out
}

// emailKey is the address Display will show for this candidate: the record
// email, else info@ the guessed domain, else "".
func emailKey(c model.ScoredCandidate) string {
	if email := strings.ToLower(strings.TrimSpace(c.Record.Email)); email != "" {
		return email
	}
	if domain := GuessDomain(c.Record.Website, c.Record.Email); domain != "" {
		return "info@" + domain
	}
	return ""
}

func companyCountryKey(c model.ScoredCandidate) string {
	targets := make([]string, len(c.CountryTargets))
	for i, t := range c.CountryTargets {
		targets[i] = strings.ToLower(t)
	}
	return strings.ToLower(strings.TrimSpace(c.Record.CompanyName)) + "|" + strings.Join(targets, ",")
}
