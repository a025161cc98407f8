package domain

import "context"

// WriterPort writes findings
type WriterPort interface {
	WriteBatch(ctx context.Context, xs []Finding) error
}

// QueryPort reads finding aggregations
type QueryPort interface {
	AggByKind(ctx context.Context, w Window) ([]AggByKindRow, error)
}
