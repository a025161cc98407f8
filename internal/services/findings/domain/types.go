// Package domain defines the types and interfaces for the findings service
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Finding is one persisted detection outcome, offsets in codepoints
// relative to the text the request submitted
type Finding struct {
	ID              uuid.UUID
	RequestID       string
	Service         string // "pii" | "moderate"
	Kind            string // entity kind, toxicity label, or "profanity"
	Source          string // "structured" | "semantic"
	SpanStart       int
	SpanEnd         int
	Score           float64
	DetectorVersion int
	CreatedAt       time.Time
}

// Window defines a time range with a start (Since) and end (Until)
type Window struct {
	Since time.Time
	Until time.Time
}

// AggByKindRow is an aggregation of findings by kind
type AggByKindRow struct {
	Kind     string
	Service  string
	Findings int64
}
