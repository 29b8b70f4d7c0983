// Package model defines the core data types shared across the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
)

// UnknownCompany is the display name for records whose source row had no
// usable company column.
const UnknownCompany = "Unknown Company"

// NotExtracted is the display placeholder for a missing contact person.
const NotExtracted = "not extracted"

// BuyerRecord is a canonical buyer row normalized from one source dataset.
// Every record belongs to exactly one source; merging across sources only
// happens during deduplication.
type BuyerRecord struct {
	Date          *time.Time
	CompanyName   string
	Country       string
	City          string
	ProductText   string
	HSCode        string
	ContactPerson string
	Email         string
	Phone         string
	Website       string
	DateRaw       string
	Source        string
	Hash          string
}

// GenerateHash creates a stable hash for duplicate detection on re-import.
func (r *BuyerRecord) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%s:%s:%s:%s",
		r.Source,
		strings.ToLower(r.CompanyName),
		strings.ToLower(r.Email),
		strings.ToLower(r.Country),
		r.HSCode,
		strings.ToLower(r.ProductText))
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// ScoredCandidate is a BuyerRecord with its match score for one query.
// Candidates are transient: they live for a single match run and are never
// persisted with their scores.
type ScoredCandidate struct {
	Record         BuyerRecord
	MatchScore     int
	Industry       string
	CountryTargets []string
}

// MatchQuery describes one buyer search. It is immutable for the duration of
// a scoring pass.
type MatchQuery struct {
	Industry      string
	HSCode        string
	Countries     []string
	RequireEmail  bool
	SourceWeights map[string]int
	MaxResults    int
}

// SourceStatus reports the outcome of loading one source dataset.
type SourceStatus struct {
	Source    string
	Status    string // "ok", "missing" or "failed"
	Detail    string
	Path      string
	Encoding  string
	Delimiter string
	Rows      int
	Columns   int
}

// Source load status values.
const (
	StatusOK      = "ok"
	StatusMissing = "missing"
	StatusFailed  = "failed"
)

// DisplayBuyer is the presentation shape of a matched candidate. Internal
// ranking fields (match score, source) are deliberately absent: they drive
// ordering and dedup but are never shown.
type DisplayBuyer struct {
	CompanyName    string
	Domain         string
	Website        string
	Industry       string
	CountryTargets []string
	Email          string
	ContactPerson  string
	RawCountry     string
	RawCity        string
	RawProductText string
	RawHSCode      string
	RawPhone       string
}

// HasContact reports whether the candidate carries something a user could
// actually reach out to: an email address or an extracted contact person.
func (b *DisplayBuyer) HasContact() bool {
	return strings.Contains(b.Email, "@") || (b.ContactPerson != "" && b.ContactPerson != NotExtracted)
}
