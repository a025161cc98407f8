// Package repo provides the findings repository implementations
package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"textguard/internal/modkit/repokit"
	"textguard/internal/platform/store"
	"textguard/internal/services/findings/domain"
)

// Storage defines the relational findings repository
type Storage interface {
	WriteBatch(ctx context.Context, xs []domain.Finding) error
	AggByKind(ctx context.Context, w domain.Window) ([]domain.AggByKindRow, error)
}

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// WriteBatch implements Storage; ignores duplicates
func (s *pg) WriteBatch(ctx context.Context, xs []domain.Finding) error {
	if len(xs) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO findings
		(id, request_id, service, kind, source, span_start, span_end,
		score, detector_version, created_at) VALUES `)

	now := time.Now().UTC()
	args := make([]any, 0, len(xs)*10)
	for i, f := range xs {
		if f.CreatedAt.IsZero() {
			f.CreatedAt = now
		}
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*10 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base, base+1, base+2, base+3, base+4,
			base+5, base+6, base+7, base+8, base+9)

		args = append(args,
			f.ID, f.RequestID, f.Service, f.Kind, f.Source,
			f.SpanStart, f.SpanEnd, f.Score, f.DetectorVersion, f.CreatedAt,
		)
	}
	// Idempotent for same request, kind & span
	sb.WriteString(` ON CONFLICT (request_id, kind, span_start, span_end) DO NOTHING`)
	_, err := s.q.Exec(ctx, sb.String(), args...)
	return err
}

// AggByKind implements Storage
func (s *pg) AggByKind(ctx context.Context, w domain.Window) ([]domain.AggByKindRow, error) {
	const q = `
		SELECT kind, service, COUNT(*) AS findings
		FROM findings
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY kind, service
		ORDER BY findings DESC`
	return store.Many(ctx, s.q, func(r store.Row) (domain.AggByKindRow, error) {
		var row domain.AggByKindRow
		err := r.Scan(&row.Kind, &row.Service, &row.Findings)
		return row, err
	}, q, w.Since, w.Until)
}
