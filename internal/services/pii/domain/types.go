// Package domain holds DTOs for pii http and service contracts
package domain

// ValidateInput asks the service to scan text for personal data and redact it
type ValidateInput struct {
	Text string `json:"text" validate:"max=100000" example:"reach me at jane@example.org"`

	// Labels restricts detection to the listed entity kinds; empty means all
	Labels []string `json:"labels,omitempty" validate:"omitempty,dive,min=1,max=64" example:"EMAIL_ADDRESS,PERSON"`

	// Threshold overrides the per kind confidence thresholds when > 0
	Threshold float64 `json:"threshold,omitempty" validate:"omitempty,gte=0,lte=1" example:"0.5"`

	// OnError controls behavior when the semantic detector is unreachable:
	// fail surfaces the error, pass returns the text unscanned by that detector
	OnError string `json:"on_error,omitempty" validate:"omitempty,oneof=fail pass" example:"fail"`
}

// Entity is one detected span in the submitted text, offsets in codepoints
type Entity struct {
	Kind  string  `json:"kind" example:"EMAIL_ADDRESS"`
	Start int     `json:"start" example:"12"`
	End   int     `json:"end" example:"28"`
	Score float64 `json:"score" example:"1"`
	Text  string  `json:"text" example:"jane@example.org"`
}

// ValidateOutput is the scan result
type ValidateOutput struct {
	Status       string   `json:"status" example:"redacted"`
	RedactedText string   `json:"redacted_text" example:"reach me at [EMAIL]"`
	Entities     []Entity `json:"entities,omitempty"`
	Steps        []string `json:"steps,omitempty"`
	Reasons      []string `json:"reasons,omitempty"`
}

// Result statuses
const (
	StatusClean    = "clean"
	StatusRedacted = "redacted"
)
