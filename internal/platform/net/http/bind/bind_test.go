package bind

import (
	"net/http/httptest"
	"strings"
	"testing"

	perr "textguard/internal/platform/errors"
)

type scanPayload struct {
	Text      string  `json:"text" validate:"required,max=32"`
	Threshold float64 `json:"threshold,omitempty" validate:"omitempty,gte=0,lte=1"`
	Mode      string  `json:"mode,omitempty" validate:"omitempty,oneof=sentence text"`
}

func TestParseJSONHappyPath(t *testing.T) {
	r := httptest.NewRequest("POST", "/x", strings.NewReader(`{"text":"hi","threshold":0.5}`))
	got, err := ParseJSON[scanPayload](r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "hi" || got.Threshold != 0.5 {
		t.Fatalf("decoded %+v", got)
	}
}

func TestParseJSONEmptyBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/x", strings.NewReader(""))
	if _, err := ParseJSON[scanPayload](r); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("want json error for empty POST body, got %v", err)
	}

	// safe methods tolerate an empty body
	r = httptest.NewRequest("GET", "/x", strings.NewReader(""))
	if _, err := ParseJSON[scanPayload](r); err != nil {
		t.Fatalf("GET with empty body should parse to zero value, got %v", err)
	}
}

func TestParseJSONUnknownField(t *testing.T) {
	r := httptest.NewRequest("POST", "/x", strings.NewReader(`{"text":"hi","bogus":1}`))
	if _, err := ParseJSON[scanPayload](r); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("want json error for unknown field, got %v", err)
	}
}

func TestParseJSONTrailingData(t *testing.T) {
	r := httptest.NewRequest("POST", "/x", strings.NewReader(`{"text":"hi"}{"text":"again"}`))
	if _, err := ParseJSON[scanPayload](r); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("want json error for trailing data, got %v", err)
	}
}

func TestParseJSONValidationUsesJSONNames(t *testing.T) {
	r := httptest.NewRequest("POST", "/x", strings.NewReader(`{"text":"hi","threshold":7}`))
	_, err := ParseJSON[scanPayload](r)
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
	e, ok := perr.As(err)
	if !ok || e.Field() != "threshold" {
		t.Fatalf("want json field name on error, got %+v", e)
	}
}

func TestParseJSONOneofRejected(t *testing.T) {
	r := httptest.NewRequest("POST", "/x", strings.NewReader(`{"text":"hi","mode":"paragraph"}`))
	if _, err := ParseJSON[scanPayload](r); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("want validation error for bad oneof, got %v", err)
	}
}

func TestValidationFieldAndMessage(t *testing.T) {
	err := Get().Validator.Struct(scanPayload{Text: strings.Repeat("a", 40)})
	field, msg := ValidationFieldAndMessage(err)
	if field != "text" {
		t.Fatalf("field = %q, want text", field)
	}
	if msg == "" || !strings.Contains(msg, "text") {
		t.Fatalf("message = %q", msg)
	}
}
