// Package domain holds DTOs for moderate http and service contracts
package domain

// Scoring modes
const (
	ModeSentence = "sentence"
	ModeText     = "text"
)

// Actions applied to flagged ranges
const (
	ActionRedact          = "redact"
	ActionRemoveSentences = "remove_sentences"
	ActionRemoveAll       = "remove_all"
)

// Profanity handling for the censor pass
const (
	ProfanityMask   = "mask"
	ProfanityRemove = "remove"
	ProfanityOff    = "off"
)

// Result statuses
const (
	StatusClean   = "clean"
	StatusFlagged = "flagged"
)

// ValidateInput asks the service to score text for toxicity and rewrite it
type ValidateInput struct {
	Text string `json:"text" validate:"max=100000" example:"This is fine. You absolute jerk."`

	// Mode selects sentence level or whole text scoring, default sentence
	Mode string `json:"mode,omitempty" validate:"omitempty,oneof=sentence text" example:"sentence"`

	// Action applied to ranges that breach the threshold, default remove_sentences
	Action string `json:"action,omitempty" validate:"omitempty,oneof=redact remove_sentences remove_all" example:"redact"`

	// Labels restricts breach checks to the listed toxicity labels; empty means all
	Labels []string `json:"labels,omitempty" validate:"omitempty,dive,min=1,max=64" example:"toxicity,insult"`

	// Threshold overrides the configured toxicity threshold when > 0
	Threshold float64 `json:"threshold,omitempty" validate:"omitempty,gte=0,lte=1" example:"0.5"`

	// Profanity selects the censor pass behavior, default mask
	Profanity string `json:"profanity,omitempty" validate:"omitempty,oneof=mask remove off" example:"mask"`

	// OnError controls behavior when the scorer is unreachable:
	// fail surfaces the error, pass skips toxicity scoring
	OnError string `json:"on_error,omitempty" validate:"omitempty,oneof=fail pass" example:"fail"`
}

// SentenceScore is the per sentence scoring detail, offsets in codepoints
type SentenceScore struct {
	Start   int                `json:"start" example:"14"`
	End     int                `json:"end" example:"32"`
	Text    string             `json:"text" example:"You absolute jerk."`
	Scores  map[string]float64 `json:"scores,omitempty"`
	Flagged bool               `json:"flagged" example:"true"`
}

// ValidateOutput is the moderation result
type ValidateOutput struct {
	Status string `json:"status" example:"flagged"`
	Output string `json:"output" example:"This is fine. [TOXIC]"`

	// Scores holds the max score per label across all scored units
	Scores    map[string]float64 `json:"scores,omitempty"`
	Sentences []SentenceScore    `json:"sentences,omitempty"`
	Steps     []string           `json:"steps,omitempty"`
	Reasons   []string           `json:"reasons,omitempty"`
}
