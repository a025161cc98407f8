// Package http provides http transport for pii
package http

import (
	stdhttp "net/http"

	"textguard/internal/modkit/httpkit"
	"textguard/internal/services/pii/domain"
)

// Register mounts the router
func Register(r httpkit.Router, s domain.ScrubPort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.ValidateInput](r, "/validate", h.validate)
}

type handlers struct{ svc domain.ScrubPort }

// swagger:route POST /pii/validate PII validate
// @Summary Scan text for personal data and redact it
// @Tags pii
// @Accept json
// @Produce json
// @Param payload body domain.ValidateInput true "Validate"
// @Success 200 {object} domain.ValidateOutput "ok"
// @Failure 400 {object} httpkit.Envelope "malformed input"
// @Router /pii/validate [post]
func (h *handlers) validate(r *stdhttp.Request, in domain.ValidateInput) (any, error) {
	return h.svc.Validate(r.Context(), in)
}
