// Package rowexec is the physical operator layer: each
// operator is a pull-based sql.MorselIterator, composed leaves-up the same
// shape as the LogicalPlan it was built from. Operator names and the
// pull/Next contract mirror dolthub/go-mysql-server's sql/rowexec
// package (row-at-a-time RowIter there, generalized here to
// whole-Morsel Next calls).
package rowexec

import (
	"github.com/vectorsql/engine/sql"
)

// ScanOperator streams morsels directly from a Connector, optionally
// pushing down column projection and predicates the connector advertises
// support for.
type ScanOperator struct {
	inner sql.MorselIterator
}

// NewScan reads conn's dataset with opts and returns a streaming operator.
// opts.Predicates carries the predicates the optimizer already proved safe
// to push down; Scan itself does no pushdown analysis. The connector's raw
// morsel stream is wrapped in a ConsolidateOperator targeting pageSize
// bytes, so a connector's own chunking (fixed row counts, partition
// boundaries, ...) never dictates the morsel size operators above it see.
func NewScan(ctx *sql.Context, conn sql.Connector, opts sql.ReadOptions, pageSize int64) (*ScanOperator, error) {
	it, err := conn.ReadDataset(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &ScanOperator{inner: NewConsolidate(it, pageSize)}, nil
}

func (s *ScanOperator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	m, err := s.inner.Next(ctx)
	if err == nil {
		ctx.Statistics().AddMorsel(int64(m.RowCount()))
	}
	return m, err
}

func (s *ScanOperator) Close(ctx *sql.Context) error {
	if s.inner == nil {
		return nil
	}
	return s.inner.Close(ctx)
}
