package model

import "time"

// MatchRun is a persisted record of one executed buyer search: the query
// that was asked and the display records it produced. Stored so a later
// export can reuse the results without re-running the pipeline.
type MatchRun struct {
	ID           string
	Industry     string
	HSCode       string
	Countries    []string
	RequireEmail bool
	CreatedAt    time.Time
	Buyers       []DisplayBuyer
}
