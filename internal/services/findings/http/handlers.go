// Package http provides http transport for findings
package http

import (
	stdhttp "net/http"
	"time"

	"textguard/internal/modkit/httpkit"
	"textguard/internal/services/findings/domain"
)

// Register mounts the router
func Register(r httpkit.Router, q domain.QueryPort) {
	h := &handlers{query: q}
	httpkit.PostJSON[StatsQuery](r, "/stats", h.stats)
}

type handlers struct{ query domain.QueryPort }

// StatsQuery selects the aggregation window, unix seconds
// zero values default to the last 24 hours
type StatsQuery struct {
	SinceUnix int64 `json:"since_unix,omitempty" validate:"omitempty,gte=0" example:"1753970400"`
	UntilUnix int64 `json:"until_unix,omitempty" validate:"omitempty,gte=0" example:"1754056800"`
}

// StatsRow is one aggregated bucket
type StatsRow struct {
	Kind     string `json:"kind" example:"EMAIL_ADDRESS"`
	Service  string `json:"service" example:"pii"`
	Findings int64  `json:"findings" example:"42"`
}

// StatsResponse is the aggregation payload
type StatsResponse struct {
	Since string     `json:"since" example:"2026-08-01T00:00:00Z"`
	Until string     `json:"until" example:"2026-08-02T00:00:00Z"`
	Rows  []StatsRow `json:"rows"`
}

// swagger:route POST /findings/stats Findings stats
// @Summary Finding counts by kind and service over a window
// @Tags findings
// @Accept json
// @Produce json
// @Param payload body StatsQuery true "Window"
// @Success 200 {object} StatsResponse "ok"
// @Router /findings/stats [post]
func (h *handlers) stats(r *stdhttp.Request, in StatsQuery) (any, error) {
	until := time.Now().UTC()
	if in.UntilUnix > 0 {
		until = time.Unix(in.UntilUnix, 0).UTC()
	}
	since := until.Add(-24 * time.Hour)
	if in.SinceUnix > 0 {
		since = time.Unix(in.SinceUnix, 0).UTC()
	}

	rows, err := h.query.AggByKind(r.Context(), domain.Window{Since: since, Until: until})
	if err != nil {
		return nil, err
	}

	out := StatsResponse{
		Since: since.Format(time.RFC3339),
		Until: until.Format(time.RFC3339),
		Rows:  make([]StatsRow, 0, len(rows)),
	}
	for _, row := range rows {
		out.Rows = append(out.Rows, StatsRow{Kind: row.Kind, Service: row.Service, Findings: row.Findings})
	}
	return out, nil
}
