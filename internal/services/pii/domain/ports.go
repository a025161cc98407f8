package domain

import (
	"context"

	"textguard/internal/core/span"
)

// ScrubPort is the service surface other modules consume
type ScrubPort interface {
	Validate(ctx context.Context, in ValidateInput) (ValidateOutput, error)
}

// TaggerPort is the remote semantic NER detector seam
type TaggerPort interface {
	DetectEntities(ctx context.Context, text string, labels []string, threshold float64) ([]span.Record, error)
}
