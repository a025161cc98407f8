// Package service provides the findings service implementation
package service

import (
	"context"

	"textguard/internal/modkit/repokit"
	"textguard/internal/platform/logger"
	dom "textguard/internal/services/findings/domain"
	"textguard/internal/services/findings/repo"
)

// Service implements domain.WriterPort and domain.QueryPort.
// Postgres is the system of record; the clickhouse mirror is best
// effort and never fails a write.
type Service struct {
	tx     repokit.TxRunner
	binder repokit.Binder[repo.Storage]
	mirror *repo.CH
	log    logger.Logger
}

// New constructs a findings service. tx may be nil when persistence is
// disabled; every write then becomes a no-op.
func New(tx repokit.TxRunner, binder repokit.Binder[repo.Storage], mirror *repo.CH) *Service {
	return &Service{
		tx:     tx,
		binder: binder,
		mirror: mirror,
		log:    *logger.Named("findings"),
	}
}

// WriteBatch implements domain.WriterPort
func (s *Service) WriteBatch(ctx context.Context, xs []dom.Finding) error {
	if len(xs) == 0 || s.tx == nil {
		return nil
	}
	err := repokit.WithTx(ctx, s.tx, func(q repokit.Queryer) error {
		return s.binder.Bind(q).WriteBatch(ctx, xs)
	})
	if err != nil {
		return err
	}
	if s.mirror != nil {
		if cherr := s.mirror.WriteBatch(ctx, xs); cherr != nil {
			s.log.Warn().Err(cherr).Int("rows", len(xs)).Msg("clickhouse mirror write failed")
		}
	}
	return nil
}

// AggByKind implements domain.QueryPort, preferring the clickhouse
// mirror and falling back to postgres
func (s *Service) AggByKind(ctx context.Context, w dom.Window) ([]dom.AggByKindRow, error) {
	if s.mirror != nil {
		rows, err := s.mirror.AggByKind(ctx, w)
		if err == nil {
			return rows, nil
		}
		s.log.Warn().Err(err).Msg("clickhouse agg failed, falling back to pg")
	}
	if s.tx == nil {
		return nil, nil
	}
	return s.binder.Bind(s.tx).AggByKind(ctx, w)
}
