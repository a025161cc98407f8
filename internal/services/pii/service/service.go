// Package service implements the pii scrub service
package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"textguard/internal/core/detect"
	"textguard/internal/core/rulepack"
	"textguard/internal/core/span"
	"textguard/internal/platform/logger"
	pnet "textguard/internal/platform/net"
	fdom "textguard/internal/services/findings/domain"
	"textguard/internal/services/pii/domain"
)

// Service implements domain.ScrubPort
type Service struct {
	pack     *rulepack.Pack
	det      *detect.Detector
	tagger   domain.TaggerPort
	findings fdom.WriterPort
}

// New constructs a new pii service
// tagger and findings may be nil; the structured detector always runs
func New(pack *rulepack.Pack, tagger domain.TaggerPort, findings fdom.WriterPort) *Service {
	return &Service{
		pack:     pack,
		det:      detect.New(pack),
		tagger:   tagger,
		findings: findings,
	}
}

// Validate scans the text for personal data and returns the redacted form.
// Empty or whitespace only text passes through unchanged.
func (s *Service) Validate(ctx context.Context, in domain.ValidateInput) (domain.ValidateOutput, error) {
	if strings.TrimSpace(in.Text) == "" {
		return domain.ValidateOutput{
			Status:       domain.StatusClean,
			RedactedText: in.Text,
			Steps:        []string{"noop:empty_input"},
		}, nil
	}

	out := domain.ValidateOutput{Status: domain.StatusClean, RedactedText: in.Text}

	structured := s.det.Detect(in.Text, detect.Options{
		Kinds:    in.Labels,
		MinScore: in.Threshold,
	})
	out.Steps = append(out.Steps, "structured_detect")

	var semantic []span.Record
	if s.tagger != nil {
		recs, err := s.tagger.DetectEntities(ctx, in.Text, in.Labels, in.Threshold)
		if err != nil {
			if in.OnError != "pass" {
				return domain.ValidateOutput{}, err
			}
			out.Reasons = append(out.Reasons, "semantic_detector_unavailable")
		} else {
			semantic = s.filterSemantic(in, recs, &out)
			out.Steps = append(out.Steps, "semantic_detect")
		}
	}

	textLen := utf8.RuneCountInString(in.Text)
	merged, err := span.Merge(textLen, structured, semantic)
	if err != nil {
		return domain.ValidateOutput{}, err
	}
	out.Steps = append(out.Steps, "merge")

	if len(merged) == 0 {
		return out, nil
	}

	runes := []rune(in.Text)
	for i := range merged {
		merged[i].Replacement = s.pack.PlaceholderFor(merged[i].Kind)
		out.Entities = append(out.Entities, domain.Entity{
			Kind:  merged[i].Kind,
			Start: merged[i].Start,
			End:   merged[i].End,
			Score: merged[i].Score,
			Text:  string(runes[merged[i].Start:merged[i].End]),
		})
	}

	redacted, err := span.Replace(in.Text, merged)
	if err != nil {
		return domain.ValidateOutput{}, err
	}
	out.Steps = append(out.Steps, "replace")
	out.Status = domain.StatusRedacted
	out.RedactedText = redacted

	s.record(ctx, structured, semantic)
	return out, nil
}

// filterSemantic applies the per kind threshold, minimum length, and generic
// term filters to remote detector output, noting each drop as a reason
func (s *Service) filterSemantic(in domain.ValidateInput, recs []span.Record, out *domain.ValidateOutput) []span.Record {
	runes := []rune(in.Text)
	kept := recs[:0]
	for _, r := range recs {
		if r.Start < 0 || r.End > len(runes) || r.End <= r.Start {
			out.Reasons = append(out.Reasons, fmt.Sprintf("dropped %s: bad offsets [%d,%d)", r.Kind, r.Start, r.End))
			continue
		}
		threshold := s.pack.ThresholdFor(r.Kind)
		if in.Threshold > 0 {
			threshold = in.Threshold
		}
		if r.Score < threshold {
			out.Reasons = append(out.Reasons, fmt.Sprintf("dropped %s: score %.2f below threshold", r.Kind, r.Score))
			continue
		}
		if r.Len() < s.pack.MinEntityLen {
			out.Reasons = append(out.Reasons, fmt.Sprintf("dropped %s: shorter than %d", r.Kind, s.pack.MinEntityLen))
			continue
		}
		if s.pack.Generic(strings.ToLower(string(runes[r.Start:r.End]))) {
			out.Reasons = append(out.Reasons, fmt.Sprintf("dropped %s: generic term", r.Kind))
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// record persists the pre merge detections as the audit trail, best effort
func (s *Service) record(ctx context.Context, lists ...[]span.Record) {
	if s.findings == nil {
		return
	}
	reqID := pnet.RequestID(ctx)
	var rows []fdom.Finding
	for _, list := range lists {
		for _, r := range list {
			rows = append(rows, fdom.Finding{
				ID:              uuid.New(),
				RequestID:       reqID,
				Service:         "pii",
				Kind:            r.Kind,
				Source:          r.Source.String(),
				SpanStart:       r.Start,
				SpanEnd:         r.End,
				Score:           r.Score,
				DetectorVersion: detect.Version,
			})
		}
	}
	if len(rows) == 0 {
		return
	}
	// a down audit store must not fail the scan
	if err := s.findings.WriteBatch(ctx, rows); err != nil {
		logger.C(ctx).Warn().Err(err).Msg("pii findings write failed")
	}
}
