package rowexec

import (
	"github.com/mitchellh/hashstructure"

	"github.com/vectorsql/engine/sql"
)

// DistinctOperator suppresses rows whose full column tuple was already
// seen, hashed with mitchellh/hashstructure the same way the Aggregate
// operator hashes group keys. Every column takes part in the tuple; there
// is no DISTINCT ON column subset.
type DistinctOperator struct {
	source sql.MorselIterator
	seen   map[uint64]bool
}

func NewDistinct(source sql.MorselIterator) *DistinctOperator {
	return &DistinctOperator{source: source, seen: make(map[uint64]bool)}
}

func (d *DistinctOperator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	for {
		m, err := d.source.Next(ctx)
		if err != nil {
			return nil, err
		}
		mask := make([]bool, m.RowCount())
		any := false
		for i := 0; i < m.RowCount(); i++ {
			tuple := make([]interface{}, len(m.Columns))
			for j, c := range m.Columns {
				tuple[j] = c.Values[i]
			}
			h, err := hashstructure.Hash(tuple, nil)
			if err != nil {
				return nil, err
			}
			if d.seen[h] {
				continue
			}
			d.seen[h] = true
			mask[i] = true
			any = true
		}
		if !any {
			continue
		}
		return m.Filter(mask), nil
	}
}

func (d *DistinctOperator) Close(ctx *sql.Context) error { return d.source.Close(ctx) }
