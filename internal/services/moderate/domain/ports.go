package domain

import "context"

// ModeratePort is the service surface other modules consume
type ModeratePort interface {
	Validate(ctx context.Context, in ValidateInput) (ValidateOutput, error)
}

// ScorerPort is the remote toxicity scorer seam
// one score map per input text, same order
type ScorerPort interface {
	ScoreTexts(ctx context.Context, texts []string) ([]map[string]float64, error)
}
