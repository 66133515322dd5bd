package rowexec

import "github.com/vectorsql/engine/sql"

// OffsetOperator discards the first N rows across the whole stream,
// trimming (not dropping) the morsel that straddles the boundary.
type OffsetOperator struct {
	source    sql.MorselIterator
	remaining int64
}

func NewOffset(source sql.MorselIterator, n int64) *OffsetOperator {
	return &OffsetOperator{source: source, remaining: n}
}

func (o *OffsetOperator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	for {
		m, err := o.source.Next(ctx)
		if err != nil {
			return nil, err
		}
		rows := int64(m.RowCount())
		if o.remaining >= rows {
			o.remaining -= rows
			continue
		}
		start := int(o.remaining)
		o.remaining = 0
		return m.Slice(start, m.RowCount()), nil
	}
}

func (o *OffsetOperator) Close(ctx *sql.Context) error { return o.source.Close(ctx) }

// LimitOperator stops producing morsels once N rows total have been
// returned, trimming the final morsel to the exact boundary.
type LimitOperator struct {
	source    sql.MorselIterator
	remaining int64
	done      bool
}

func NewLimit(source sql.MorselIterator, n int64) *LimitOperator {
	return &LimitOperator{source: source, remaining: n}
}

func (l *LimitOperator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	if l.done || l.remaining <= 0 {
		return nil, errEOF
	}
	m, err := l.source.Next(ctx)
	if err != nil {
		return nil, err
	}
	rows := int64(m.RowCount())
	if rows <= l.remaining {
		l.remaining -= rows
		return m, nil
	}
	out := m.Slice(0, int(l.remaining))
	l.remaining = 0
	l.done = true
	return out, nil
}

func (l *LimitOperator) Close(ctx *sql.Context) error { return l.source.Close(ctx) }
