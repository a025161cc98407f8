package httpkit

import (
	"net/http"
	"strings"

	perrs "textguard/internal/platform/errors"
)

// KeyFunc validates a raw api key and returns its stable identifier
type KeyFunc func(key string) (keyID string, err error)

// Port implements middleware.AuthPort by reading X-API-Key and delegating to a KeyFunc
type Port struct {
	parse KeyFunc
}

// NewPortFunc builds a Port from a simple validator function
func NewPortFunc(fn KeyFunc) *Port {
	return &Port{parse: fn}
}

// Parse extracts and validates the api key from X-API-Key or Authorization Bearer.
// Returns unauthorized when the header is missing, malformed, or the validator rejects it
func (p *Port) Parse(r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.Header.Get("X-API-Key"))
	if raw == "" {
		authz := strings.TrimSpace(r.Header.Get("Authorization"))
		const prefix = "bearer"
		if authz != "" && strings.HasPrefix(strings.ToLower(authz), prefix) {
			raw = strings.TrimSpace(authz[len(prefix):])
		}
	}
	if raw == "" {
		return "", perrs.Unauthorizedf("missing api key")
	}
	if p.parse == nil {
		return "", perrs.Unauthorizedf("invalid api key")
	}
	kid, err := p.parse(raw)
	if err != nil {
		return "", perrs.Unauthorizedf("invalid api key")
	}
	return kid, nil
}
