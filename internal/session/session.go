// Package session scopes the result state of one interactive run.
//
// Search results live in an explicit Session with a defined lifecycle —
// created when a match run completes, cleared by an explicit reset — instead
// of ambient globals. The interactive browser owns exactly one Session.
package session

import (
	"time"

	"github.com/tradewise-kr/buyerscout/internal/model"
)

// Session holds the results of one match run for interactive browsing.
type Session struct {
	createdAt time.Time
	query     model.MatchQuery
	buyers    []model.DisplayBuyer
}

// New creates a session around a completed match run.
func New(query model.MatchQuery, buyers []model.DisplayBuyer) *Session {
	return &Session{
		createdAt: time.Now(),
		query:     query,
		buyers:    buyers,
	}
}

// Query returns the query the session was created for.
func (s *Session) Query() model.MatchQuery {
	return s.query
}

// Buyers returns the session's result list.
func (s *Session) Buyers() []model.DisplayBuyer {
	return s.buyers
}

// Len returns the number of results currently held.
func (s *Session) Len() int {
	return len(s.buyers)
}

// CreatedAt returns when the session was created.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// Reset clears the result list. The session itself stays usable; a cleared
// session simply has no buyers until replaced.
func (s *Session) Reset() {
	s.buyers = nil
}
