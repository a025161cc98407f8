// Package semantic provides a resilient client for the remote inference
// service hosting the named-entity tagger and the toxicity classifier.
// It is the semantic source: span offsets come from model inference and
// carry lower positional trust than pattern matches.
package semantic

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"textguard/internal/core/span"
	perr "textguard/internal/platform/errors"
	"textguard/internal/platform/logger"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUA        = "textguard"
	defaultMaxRetry  = 3
	defaultRetryBase = 250 * time.Millisecond
)

// Options configures the Client
type Options struct {
	BaseURL   string
	APIKey    string
	UserAgent string
	Timeout   time.Duration

	// Retry config for transient responses
	MaxRetries int
	RetryBase  time.Duration
}

// Client talks to the inference service over JSON
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	sleep func(time.Duration)
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("semantic"),
		sleep: time.Sleep,
	}
}

type nerRequest struct {
	Text      string   `json:"text"`
	Labels    []string `json:"labels,omitempty"`
	Threshold float64  `json:"threshold,omitempty"`
}

type nerEntity struct {
	Label string  `json:"label"`
	Start int     `json:"start"`
	End   int     `json:"end"`
	Score float64 `json:"score"`
}

type nerResponse struct {
	Entities []nerEntity `json:"entities"`
}

// DetectEntities runs named-entity tagging over text. Offsets in the
// response are codepoint ranges into text; the service contract pins
// that down so no byte conversion happens here.
func (c *Client) DetectEntities(ctx context.Context, text string, labels []string, threshold float64) ([]span.Record, error) {
	var out nerResponse
	err := c.postJSON(ctx, "/v1/entities", nerRequest{
		Text:      text,
		Labels:    labels,
		Threshold: threshold,
	}, &out)
	if err != nil {
		return nil, err
	}
	recs := make([]span.Record, 0, len(out.Entities))
	for _, e := range out.Entities {
		recs = append(recs, span.Record{
			Kind:   e.Label,
			Source: span.TierSemantic,
			Start:  e.Start,
			End:    e.End,
			Score:  e.Score,
		})
	}
	return recs, nil
}

type toxicityRequest struct {
	Texts []string `json:"texts"`
}

type toxicityResponse struct {
	Scores []map[string]float64 `json:"scores"`
}

// ScoreTexts runs the toxicity classifier over a batch of texts and
// returns one label->score map per input, in order
func (c *Client) ScoreTexts(ctx context.Context, texts []string) ([]map[string]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	var out toxicityResponse
	if err := c.postJSON(ctx, "/v1/toxicity", toxicityRequest{Texts: texts}, &out); err != nil {
		return nil, err
	}
	if len(out.Scores) != len(texts) {
		return nil, perr.Unavailablef(
			"inference service returned %d score rows for %d texts", len(out.Scores), len(texts))
	}
	return out.Scores, nil
}

// postJSON issues a request with auth headers and retries on transient failures
func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "semantic marshal request")
	}
	url := c.opts.BaseURL + path

	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnknown, "semantic new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Content-Type", "application/json")
		if c.opts.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if attempts >= c.opts.MaxRetries {
				return perr.Wrapf(err, perr.ErrorCodeUnavailable, "semantic do failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("semantic transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			defer func() { _ = resp.Body.Close() }()
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return perr.Wrapf(err, perr.ErrorCodeUnavailable, "semantic decode response")
			}
			return nil

		case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
			drain(resp)
			if attempts >= c.opts.MaxRetries {
				return perr.Unavailablef("inference service status %d after %d attempts", resp.StatusCode, attempts+1)
			}
			back := c.backoff(attempts)
			c.log.Warn().
				Int("status", resp.StatusCode).
				Dur("retry_in", back).
				Int("attempt", attempts).
				Msg("semantic transient status retrying")
			c.sleep(back)
			attempts++

		default:
			drain(resp)
			return perr.Unavailablef("inference service status %d", resp.StatusCode)
		}
	}
}

// backoff doubles per attempt from RetryBase
func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase
	for i := 0; i < attempt; i++ {
		d *= 2
	}
	return d
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}
