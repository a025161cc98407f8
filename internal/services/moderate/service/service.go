// Package service implements the moderate service
package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"textguard/internal/core/censor"
	"textguard/internal/core/detect"
	"textguard/internal/core/rulepack"
	"textguard/internal/core/sentence"
	"textguard/internal/core/span"
	"textguard/internal/platform/logger"
	pnet "textguard/internal/platform/net"
	fdom "textguard/internal/services/findings/domain"
	"textguard/internal/services/moderate/domain"
)

// Service implements domain.ModeratePort
type Service struct {
	pack     *rulepack.Pack
	seg      *sentence.Segmenter
	cens     *censor.Censor
	scorer   domain.ScorerPort
	findings fdom.WriterPort
}

// New constructs a new moderate service
// scorer and findings may be nil; the censor pass always runs
func New(pack *rulepack.Pack, scorer domain.ScorerPort, findings fdom.WriterPort) *Service {
	return &Service{
		pack:     pack,
		seg:      sentence.New(nil),
		cens:     censor.New(pack),
		scorer:   scorer,
		findings: findings,
	}
}

// Validate scores the text for toxicity, applies the requested action to
// breaching ranges, and runs the profanity censor over the result.
// Empty or whitespace only text passes through unchanged.
func (s *Service) Validate(ctx context.Context, in domain.ValidateInput) (domain.ValidateOutput, error) {
	if strings.TrimSpace(in.Text) == "" {
		return domain.ValidateOutput{
			Status: domain.StatusClean,
			Output: in.Text,
			Steps:  []string{"noop:empty_input"},
		}, nil
	}

	out := domain.ValidateOutput{Status: domain.StatusClean, Output: in.Text}
	var audit []fdom.Finding

	text := in.Text
	if s.scorer != nil {
		rewritten, err := s.toxicityPass(ctx, in, &out, &audit)
		if err != nil {
			if in.OnError != "pass" {
				return domain.ValidateOutput{}, err
			}
			out.Reasons = append(out.Reasons, "scorer_unavailable")
		} else {
			text = rewritten
		}
	}

	text, err := s.profanityPass(in, text, &out, &audit)
	if err != nil {
		return domain.ValidateOutput{}, err
	}

	out.Output = text
	s.record(ctx, audit)
	return out, nil
}

// toxicityPass scores sentence or whole text units, flags breaches, and
// applies the requested action; the returned text is the action output
func (s *Service) toxicityPass(
	ctx context.Context,
	in domain.ValidateInput,
	out *domain.ValidateOutput,
	audit *[]fdom.Finding,
) (string, error) {
	units := s.units(in)

	texts := make([]string, len(units))
	for i, u := range units {
		texts[i] = u.Text
	}
	scores, err := s.scorer.ScoreTexts(ctx, texts)
	if err != nil {
		return "", err
	}
	out.Steps = append(out.Steps, "toxicity_score")

	threshold := in.Threshold
	if threshold <= 0 {
		threshold = s.pack.ThresholdFor("toxicity")
	}

	// every requested label appears in the aggregate, even when clean
	out.Scores = make(map[string]float64, len(in.Labels))
	for _, l := range in.Labels {
		out.Scores[strings.ToLower(l)] = 0
	}

	var flagged []span.Record
	for i, u := range units {
		ss := domain.SentenceScore{Start: u.Start, End: u.End, Text: u.Text, Scores: scores[i]}
		for label, score := range scores[i] {
			if !labelWanted(in.Labels, label) {
				continue
			}
			label = strings.ToLower(label)
			if v, ok := out.Scores[label]; !ok || score > v {
				out.Scores[label] = score
			}
			if score >= threshold {
				ss.Flagged = true
				*audit = append(*audit, fdom.Finding{
					Kind:      label,
					Source:    span.TierSemantic.String(),
					SpanStart: u.Start,
					SpanEnd:   u.End,
					Score:     score,
				})
			}
		}
		if ss.Flagged {
			flagged = append(flagged, span.Record{
				Kind:   "toxicity",
				Source: span.TierSemantic,
				Start:  u.Start,
				End:    u.End,
				Score:  1,
			})
		}
		out.Sentences = append(out.Sentences, ss)
	}

	if len(flagged) == 0 {
		return in.Text, nil
	}
	out.Status = domain.StatusFlagged

	switch in.Action {
	case domain.ActionRemoveAll:
		out.Steps = append(out.Steps, "action:remove_all")
		return "", nil
	case domain.ActionRedact:
		rewritten, err := span.Redact(in.Text, flagged, s.pack.PlaceholderFor("toxicity"))
		if err != nil {
			return "", err
		}
		out.Steps = append(out.Steps, "action:redact")
		return rewritten, nil
	default:
		// remove_sentences, also the default when no action was requested
		rewritten, err := span.Remove(in.Text, flagged)
		if err != nil {
			return "", err
		}
		out.Steps = append(out.Steps, "action:remove_sentences")
		return rewritten, nil
	}
}

// profanityPass censors the (possibly rewritten) text and applies the
// requested handling to the differing ranges
func (s *Service) profanityPass(
	in domain.ValidateInput,
	text string,
	out *domain.ValidateOutput,
	audit *[]fdom.Finding,
) (string, error) {
	if in.Profanity == domain.ProfanityOff || text == "" {
		return text, nil
	}

	censored := s.cens.Censor(text)
	spans, err := span.ExtractDiff(text, censored, "profanity")
	if err != nil {
		return "", err
	}
	out.Steps = append(out.Steps, "profanity_censor")
	if len(spans) == 0 {
		return text, nil
	}
	out.Status = domain.StatusFlagged

	for _, r := range spans {
		*audit = append(*audit, fdom.Finding{
			Kind:      r.Kind,
			Source:    span.TierStructured.String(),
			SpanStart: r.Start,
			SpanEnd:   r.End,
			Score:     r.Score,
		})
	}

	if in.Profanity == domain.ProfanityRemove {
		rewritten, err := span.Remove(text, spans)
		if err != nil {
			return "", err
		}
		return rewritten, nil
	}
	return censored, nil
}

// units returns the scoring units: segmented sentences, or the whole text
// as a single unit in text mode or when segmentation yields nothing
func (s *Service) units(in domain.ValidateInput) []sentence.Span {
	if in.Mode != domain.ModeText {
		if units := s.seg.Segment(in.Text); len(units) > 0 {
			return units
		}
	}
	return []sentence.Span{{Start: 0, End: utf8.RuneCountInString(in.Text), Text: in.Text}}
}

func (s *Service) record(ctx context.Context, audit []fdom.Finding) {
	if s.findings == nil || len(audit) == 0 {
		return
	}
	reqID := pnet.RequestID(ctx)
	for i := range audit {
		audit[i].ID = uuid.New()
		audit[i].RequestID = reqID
		audit[i].Service = "moderate"
		audit[i].DetectorVersion = detect.Version
	}
	// a down audit store must not fail the moderation
	if err := s.findings.WriteBatch(ctx, audit); err != nil {
		logger.C(ctx).Warn().Err(err).Msg("moderate findings write failed")
	}
}

func labelWanted(labels []string, label string) bool {
	if len(labels) == 0 {
		return true
	}
	for _, l := range labels {
		if strings.EqualFold(l, label) {
			return true
		}
	}
	return false
}
