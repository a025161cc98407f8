package semantic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"textguard/internal/core/span"
	perr "textguard/internal/platform/errors"
)

func newTestClient(url string) *Client {
	c := NewClient(Options{
		BaseURL:    url,
		APIKey:     "k",
		MaxRetries: 2,
		RetryBase:  time.Millisecond,
	})
	c.sleep = func(time.Duration) {}
	return c
}

func TestDetectEntities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/entities" {
			t.Errorf("path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer k" {
			t.Errorf("auth header %q", got)
		}
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["text"] != "call Jane" {
			t.Errorf("text %v", req["text"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"entities": []map[string]any{
				{"label": "PERSON", "start": 5, "end": 9, "score": 0.92},
			},
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	got, err := c.DetectEntities(context.Background(), "call Jane", []string{"PERSON"}, 0.5)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %+v", got)
	}
	want := span.Record{Kind: "PERSON", Source: span.TierSemantic, Start: 5, End: 9, Score: 0.92}
	if got[0] != want {
		t.Fatalf("got %+v want %+v", got[0], want)
	}
}

func TestScoreTexts_BatchOrderAndCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"scores": []map[string]float64{
				{"toxicity": 0.1},
				{"toxicity": 0.9, "insult": 0.7},
			},
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	got, err := c.ScoreTexts(context.Background(), []string{"fine", "awful"})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if len(got) != 2 || got[1]["toxicity"] != 0.9 {
		t.Fatalf("got %+v", got)
	}
}

func TestScoreTexts_CountMismatchIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"scores": []map[string]float64{{"toxicity": 0.2}}})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if _, err := c.ScoreTexts(context.Background(), []string{"a", "b"}); err == nil {
		t.Fatalf("expected error on row count mismatch")
	}
}

func TestPostJSON_RetriesTransientThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"entities": []any{}})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if _, err := c.DetectEntities(context.Background(), "x", nil, 0); err != nil {
		t.Fatalf("expected retry to succeed: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", calls.Load())
	}
}

func TestPostJSON_GivesUpAfterMaxRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.DetectEntities(context.Background(), "x", nil, 0)
	if err == nil {
		t.Fatalf("expected error")
	}
	if perr.CodeOf(err) != perr.ErrorCodeUnavailable {
		t.Fatalf("expected unavailable, got %v", perr.CodeOf(err))
	}
}

func TestPostJSON_NonTransientStatusNoRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if _, err := c.DetectEntities(context.Background(), "x", nil, 0); err == nil {
		t.Fatalf("expected error")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected single call, got %d", calls.Load())
	}
}
