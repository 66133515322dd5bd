package rowexec

import (
	"github.com/vectorsql/engine/sql"
	"github.com/vectorsql/engine/sqlerr"
)

const (
	consolidateSplitFactor  = 1.2
	consolidateConcatFactor = 0.6
)

// ConsolidateOperator normalizes the morsel stream from a connector toward
// a target byte size: a morsel more than 120% of target is split into
// target-sized chunks, a run of morsels under 60% of target is buffered and
// concatenated until it crosses that floor, and a source that never
// produces a single row fails with ErrEmptyResultSet rather than
// completing as an ordinary empty result.
type ConsolidateOperator struct {
	source sql.MorselIterator
	target int64

	pending    *sql.Morsel
	queued     []*sql.Morsel
	sawRow     bool
	sourceDone bool
}

// NewConsolidate wraps source, re-batching its morsels toward targetBytes.
// targetBytes <= 0 disables consolidation; morsels pass through unchanged.
func NewConsolidate(source sql.MorselIterator, targetBytes int64) *ConsolidateOperator {
	return &ConsolidateOperator{source: source, target: targetBytes}
}

func (c *ConsolidateOperator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	for {
		if len(c.queued) > 0 {
			m := c.queued[0]
			c.queued = c.queued[1:]
			return m, nil
		}
		if c.sourceDone {
			if c.pending != nil {
				out := c.pending
				c.pending = nil
				return out, nil
			}
			if !c.sawRow {
				return nil, sqlerr.ErrEmptyResultSet.New()
			}
			return nil, errEOF
		}

		m, err := c.source.Next(ctx)
		if err == errEOF {
			c.sourceDone = true
			continue
		}
		if err != nil {
			return nil, err
		}
		if m.RowCount() == 0 {
			continue
		}
		c.sawRow = true

		merged := c.pending.Concat(m)
		c.pending = nil

		if c.target <= 0 {
			return merged, nil
		}
		switch size := merged.EstimatedBytes(); {
		case size > int64(float64(c.target)*consolidateSplitFactor):
			chunks := splitByTarget(merged, c.target)
			c.queued = chunks[1:]
			return chunks[0], nil
		case size < int64(float64(c.target)*consolidateConcatFactor):
			c.pending = merged
		default:
			return merged, nil
		}
	}
}

func (c *ConsolidateOperator) Close(ctx *sql.Context) error {
	return c.source.Close(ctx)
}

// splitByTarget divides an oversized morsel into chunks of roughly
// targetBytes each, sized from its average per-row byte footprint.
func splitByTarget(m *sql.Morsel, targetBytes int64) []*sql.Morsel {
	rowCount := m.RowCount()
	if rowCount <= 1 {
		return []*sql.Morsel{m}
	}
	bytesPerRow := m.EstimatedBytes() / int64(rowCount)
	if bytesPerRow <= 0 {
		bytesPerRow = 1
	}
	rowsPerChunk := int(targetBytes / bytesPerRow)
	if rowsPerChunk <= 0 {
		rowsPerChunk = 1
	}
	chunks := make([]*sql.Morsel, 0, (rowCount+rowsPerChunk-1)/rowsPerChunk)
	for start := 0; start < rowCount; start += rowsPerChunk {
		end := start + rowsPerChunk
		if end > rowCount {
			end = rowCount
		}
		chunks = append(chunks, m.Slice(start, end))
	}
	return chunks
}
