// Package http provides http transport for moderate
package http

import (
	stdhttp "net/http"

	"textguard/internal/modkit/httpkit"
	"textguard/internal/services/moderate/domain"
)

// Register mounts the router
func Register(r httpkit.Router, s domain.ModeratePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.ValidateInput](r, "/validate", h.validate)
}

type handlers struct{ svc domain.ModeratePort }

// swagger:route POST /moderate/validate Moderate validate
// @Summary Score text for toxicity and rewrite flagged ranges
// @Tags moderate
// @Accept json
// @Produce json
// @Param payload body domain.ValidateInput true "Validate"
// @Success 200 {object} domain.ValidateOutput "ok"
// @Failure 400 {object} httpkit.Envelope "malformed input"
// @Router /moderate/validate [post]
func (h *handlers) validate(r *stdhttp.Request, in domain.ValidateInput) (any, error) {
	return h.svc.Validate(r.Context(), in)
}
