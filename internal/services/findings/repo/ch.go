package repo

import (
	"context"
	"time"

	"textguard/internal/platform/store"
	"textguard/internal/services/findings/domain"
)

// CH mirrors findings into clickhouse for analytics
type CH struct {
	db store.Clickhouse
}

// NewCH constructs the clickhouse mirror over the store seam
func NewCH(db store.Clickhouse) *CH { return &CH{db: db} }

var chColumns = []string{
	"id", "request_id", "service", "kind", "source",
	"span_start", "span_end", "score", "detector_version", "created_at",
}

// WriteBatch appends findings rows in one batch
func (c *CH) WriteBatch(ctx context.Context, xs []domain.Finding) error {
	if c == nil || c.db == nil || len(xs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([][]any, 0, len(xs))
	for _, f := range xs {
		if f.CreatedAt.IsZero() {
			f.CreatedAt = now
		}
		rows = append(rows, []any{
			f.ID.String(), f.RequestID, f.Service, f.Kind, f.Source,
			int32(f.SpanStart), int32(f.SpanEnd), f.Score,
			int32(f.DetectorVersion), f.CreatedAt,
		})
	}
	return c.db.Insert(ctx, "findings", chColumns, rows)
}

// AggByKind aggregates findings per kind and service over the window
func (c *CH) AggByKind(ctx context.Context, w domain.Window) ([]domain.AggByKindRow, error) {
	if c == nil || c.db == nil {
		return nil, nil
	}
	const q = `
		SELECT kind, service, count() AS findings
		FROM findings
		WHERE created_at >= ? AND created_at < ?
		GROUP BY kind, service
		ORDER BY findings DESC`
	rs, err := c.db.Query(ctx, q, w.Since, w.Until)
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	var out []domain.AggByKindRow
	for rs.Next() {
		var row domain.AggByKindRow
		var n uint64
		if err := rs.Scan(&row.Kind, &row.Service, &n); err != nil {
			return nil, err
		}
		row.Findings = int64(n)
		out = append(out, row)
	}
	return out, rs.Err()
}
