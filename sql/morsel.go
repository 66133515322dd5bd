package sql

// Vector is a single column's worth of values within a Morsel, indexed by
// column identity rather than position so operators can address columns
// across plan rewrites. Values holds one entry per
// row; a nil entry denotes SQL NULL.
type Vector struct {
	Identity string
	Name     string
	Type     Type
	Values   []interface{}
}

// Len returns the number of rows in the vector.
func (v Vector) Len() int { return len(v.Values) }

// Morsel is a columnar record batch: a schema plus equal-length column
// vectors. No per-row objects exist on the hot path; operators
// consume and produce whole Morsels.
type Morsel struct {
	Schema  *RelationSchema
	Columns []Vector
}

// NewMorsel builds a Morsel over schema with the given column vectors.
// Every vector's Identity must match a column of schema.
func NewMorsel(schema *RelationSchema, columns []Vector) *Morsel {
	return &Morsel{Schema: schema, Columns: columns}
}

// RowCount returns the number of rows in the morsel (0 if it has no
// columns).
func (m *Morsel) RowCount() int {
	if len(m.Columns) == 0 {
		return 0
	}
	return m.Columns[0].Len()
}

// ByIdentity returns the vector with the given column identity.
func (m *Morsel) ByIdentity(identity string) (Vector, bool) {
	for _, c := range m.Columns {
		if c.Identity == identity {
			return c, true
		}
	}
	return Vector{}, false
}

// EstimatedBytes approximates the morsel's in-memory footprint, used by
// rowexec.ConsolidateOperator to decide when to split an oversized morsel
// or merge small ones toward a target size.
func (m *Morsel) EstimatedBytes() int64 {
	var total int64
	for _, col := range m.Columns {
		total += int64(len(col.Values)) * estimatedValueBytes(col.Type)
	}
	return total
}

func estimatedValueBytes(t Type) int64 {
	switch t {
	case Boolean:
		return 1
	case Int64, Float64, Timestamp:
		return 8
	case Varchar:
		return 32 // average-case estimate; exact sizing requires the values
	default:
		return 16
	}
}

// Project returns a new Morsel containing only the named identities, in the
// given order — the physical Project operator's core transform.
func (m *Morsel) Project(identities []string) *Morsel {
	out := &Morsel{Schema: m.Schema}
	for _, id := range identities {
		if v, ok := m.ByIdentity(id); ok {
			out.Columns = append(out.Columns, v)
		}
	}
	return out
}

// Slice returns the rows [start, end) of the morsel as a new Morsel,
// sharing the schema but not the underlying value slices.
func (m *Morsel) Slice(start, end int) *Morsel {
	out := &Morsel{Schema: m.Schema, Columns: make([]Vector, len(m.Columns))}
	for i, c := range m.Columns {
		vals := make([]interface{}, end-start)
		copy(vals, c.Values[start:end])
		out.Columns[i] = Vector{Identity: c.Identity, Name: c.Name, Type: c.Type, Values: vals}
	}
	return out
}

// Concat appends other's rows after m's, column by column matched on
// identity.
func (m *Morsel) Concat(other *Morsel) *Morsel {
	if m == nil {
		return other
	}
	if other == nil {
		return m
	}
	out := &Morsel{Schema: m.Schema, Columns: make([]Vector, len(m.Columns))}
	for i, c := range m.Columns {
		merged := make([]interface{}, 0, len(c.Values))
		merged = append(merged, c.Values...)
		if oc, ok := other.ByIdentity(c.Identity); ok {
			merged = append(merged, oc.Values...)
		}
		out.Columns[i] = Vector{Identity: c.Identity, Name: c.Name, Type: c.Type, Values: merged}
	}
	return out
}

// Filter returns a new Morsel containing only the rows where mask[i] is
// true — the physical Filter operator's core transform.
func (m *Morsel) Filter(mask []bool) *Morsel {
	out := &Morsel{Schema: m.Schema, Columns: make([]Vector, len(m.Columns))}
	for i, c := range m.Columns {
		vals := make([]interface{}, 0, len(c.Values))
		for j, keep := range mask {
			if keep {
				vals = append(vals, c.Values[j])
			}
		}
		out.Columns[i] = Vector{Identity: c.Identity, Name: c.Name, Type: c.Type, Values: vals}
	}
	return out
}

// MorselIterator is the lazy producer contract every physical operator
// exposes: each call to Next yields one morsel, pulling the
// minimum required upstream work.
type MorselIterator interface {
	// Next returns the next morsel, or (nil, io.EOF) when exhausted.
	Next(ctx *Context) (*Morsel, error)
	// Close releases any resources held by the iterator.
	Close(ctx *Context) error
}
