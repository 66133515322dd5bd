package rowexec

import (
	"github.com/vectorsql/engine/sql"
	"github.com/vectorsql/engine/sql/eval"
	"github.com/vectorsql/engine/sql/expression"
	"github.com/vectorsql/engine/sql/plan"
)

// JoinOperator implements every join shape of over a single
// code path: it materializes the build side (the join node's right child;
// sides are not swapped by size), then for each
// probe-side morsel evaluates Condition against every build row. CrossJoin
// with no condition degrades to a batched nested-loop cross join (batched
// in chunks of 100 rows) via crossBatchSize.
type JoinOperator struct {
	build     sql.MorselIterator
	probe     sql.MorselIterator
	joinType  plan.JoinType
	condition *expression.Node
	schema    *sql.RelationSchema
	ev        *eval.Evaluator

	buildRows    *sql.Morsel
	started      bool
	matchedRows  map[int]bool // build-side rows matched at least once, for RIGHT/FULL outer
	drainedRight bool
	probeSchema  *sql.RelationSchema // schema of the probe side, captured from the first morsel seen

	crossProbe *sql.Morsel // probe morsel currently being paired against buildRows, nil when exhausted
	crossP     int         // next probe row index to resume from
	crossB     int         // next build row index to resume from, within crossP
}

const crossBatchSize = 100

func NewJoin(build, probe sql.MorselIterator, joinType plan.JoinType, condition *expression.Node, schema *sql.RelationSchema, ev *eval.Evaluator) *JoinOperator {
	return &JoinOperator{build: build, probe: probe, joinType: joinType, condition: condition, schema: schema, ev: ev}
}

func (j *JoinOperator) materializeBuild(ctx *sql.Context) error {
	if j.started {
		return nil
	}
	j.started = true
	var all *sql.Morsel
	for {
		m, err := j.build.Next(ctx)
		if err == errEOF {
			break
		}
		if err != nil {
			return err
		}
		all = all.Concat(m)
	}
	j.buildRows = all
	j.matchedRows = make(map[int]bool)
	return nil
}

func (j *JoinOperator) Next(ctx *sql.Context) (*sql.Morsel, error) {
	if err := j.materializeBuild(ctx); err != nil {
		return nil, err
	}

	switch j.joinType {
	case plan.CrossJoin, plan.CrossJoinUnnest:
		return j.nextCross(ctx)
	default:
		return j.nextConditional(ctx)
	}
}

// nextCross pairs every probe row with every build row, batched in chunks
// of crossBatchSize pairs at a time. A probe morsel whose product with the
// build side exceeds crossBatchSize is resumed across multiple calls via
// crossP/crossB rather than dropped once the first batch is emitted; only
// once a probe morsel's full product has been returned does nextCross pull
// the next one from j.probe.
func (j *JoinOperator) nextCross(ctx *sql.Context) (*sql.Morsel, error) {
	if j.buildRows == nil {
		// Still need to consume the probe side so Close/EOF bookkeeping
		// upstream stays correct, but there is nothing to pair against.
		if _, err := j.probe.Next(ctx); err != nil {
			return nil, err
		}
		return sql.NewMorsel(j.schema, nil), nil
	}
	buildN := j.buildRows.RowCount()

	if j.crossProbe == nil {
		probe, err := j.probe.Next(ctx)
		if err != nil {
			return nil, err
		}
		j.crossProbe = probe
		j.crossP = 0
		j.crossB = 0
	}
	probe := j.crossProbe
	probeN := probe.RowCount()

	pairs := make([][2]int, 0, crossBatchSize)
	for j.crossP < probeN && len(pairs) < crossBatchSize {
		if buildN == 0 {
			j.crossP++
			continue
		}
		for j.crossB < buildN && len(pairs) < crossBatchSize {
			pairs = append(pairs, [2]int{j.crossP, j.crossB})
			j.crossB++
		}
		if j.crossB >= buildN {
			j.crossP++
			j.crossB = 0
		}
	}
	if j.crossP >= probeN {
		j.crossProbe = nil
	}
	return combine(probe, j.buildRows, pairs, j.schema), nil
}

// nextConditional evaluates Condition against every (probe row, build row)
// pair for one probe morsel, honoring INNER/LEFT/RIGHT/FULL OUTER and
// SEMI/ANTI semantics.
func (j *JoinOperator) nextConditional(ctx *sql.Context) (*sql.Morsel, error) {
	probe, err := j.probe.Next(ctx)
	if err == errEOF {
		return j.drainUnmatchedBuild()
	}
	if err != nil {
		return nil, err
	}
	if j.probeSchema == nil {
		j.probeSchema = probe.Schema
	}
	buildN := 0
	if j.buildRows != nil {
		buildN = j.buildRows.RowCount()
	}
	probeN := probe.RowCount()

	var pairs [][2]int
	probeMatched := make([]bool, probeN)
	for p := 0; p < probeN; p++ {
		for b := 0; b < buildN; b++ {
			ok, err := j.evalPair(ctx, probe, p, b)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			probeMatched[p] = true
			j.matchedRows[b] = true
			switch j.joinType {
			case plan.LeftSemiJoin, plan.RightSemiJoin:
				// One match is enough; don't duplicate the probe row.
			default:
				pairs = append(pairs, [2]int{p, b})
			}
		}
	}

	switch j.joinType {
	case plan.LeftSemiJoin:
		return filterProbe(probe, probeMatched, j.schema), nil
	case plan.LeftAntiJoin:
		return filterProbe(probe, negate(probeMatched), j.schema), nil
	case plan.LeftOuterJoin, plan.FullOuterJoin:
		for p := 0; p < probeN; p++ {
			if !probeMatched[p] {
				pairs = append(pairs, [2]int{p, -1})
			}
		}
	}

	return combine(probe, j.buildRows, pairs, j.schema), nil
}

// drainUnmatchedBuild runs once the probe side is exhausted. For RIGHT and
// FULL OUTER joins it emits every build-side row that was never matched,
// null-extended on the probe side; every other join type is done at this
// point and simply reports EOF.
func (j *JoinOperator) drainUnmatchedBuild() (*sql.Morsel, error) {
	if j.drainedRight {
		return nil, errEOF
	}
	j.drainedRight = true

	switch j.joinType {
	case plan.RightOuterJoin, plan.FullOuterJoin:
	default:
		return nil, errEOF
	}
	if j.buildRows == nil {
		return nil, errEOF
	}

	var pairs [][2]int
	for b := 0; b < j.buildRows.RowCount(); b++ {
		if !j.matchedRows[b] {
			pairs = append(pairs, [2]int{-1, b})
		}
	}
	if len(pairs) == 0 {
		return nil, errEOF
	}

	nullProbe := j.probeSchema
	if nullProbe == nil {
		nullProbe = j.schema
	}
	cols := make([]sql.Vector, len(nullProbe.Columns))
	for i, c := range nullProbe.Columns {
		cols[i] = sql.Vector{Identity: c.Identity, Name: c.Name, Type: c.Type, Values: []interface{}{nil}}
	}
	placeholder := sql.NewMorsel(nullProbe, cols)
	return combine(placeholder, j.buildRows, pairs, j.schema), nil
}

// joinRows combines one probe-side row-morsel and one build-side
// row-morsel side by side: unlike Morsel.Concat (which stacks rows of the
// *same* schema), the two sides here have disjoint column identities, so
// the result is simply their columns placed next to each other.
func joinRows(probeRow, buildRow *sql.Morsel) *sql.Morsel {
	cols := make([]sql.Vector, 0, len(probeRow.Columns)+len(buildRow.Columns))
	cols = append(cols, probeRow.Columns...)
	cols = append(cols, buildRow.Columns...)
	return &sql.Morsel{Columns: cols}
}

func (j *JoinOperator) evalPair(ctx *sql.Context, probe *sql.Morsel, probeRow, buildRow int) (bool, error) {
	if j.condition == nil {
		return true, nil
	}
	pair := joinRows(sliceRow(probe, probeRow), sliceRow(j.buildRows, buildRow))
	v, err := j.ev.Eval(ctx, pair, j.condition)
	if err != nil {
		return false, err
	}
	if len(v.Values) == 0 || v.Values[0] == nil {
		return false, nil
	}
	b, _ := v.Values[0].(bool)
	return b, nil
}

func sliceRow(m *sql.Morsel, row int) *sql.Morsel {
	if row < 0 {
		return nullRow(m)
	}
	return m.Slice(row, row+1)
}

func nullRow(m *sql.Morsel) *sql.Morsel {
	out := make([]sql.Vector, len(m.Columns))
	for i, c := range m.Columns {
		out[i] = sql.Vector{Identity: c.Identity, Name: c.Name, Type: c.Type, Values: []interface{}{nil}}
	}
	return sql.NewMorsel(m.Schema, out)
}

func negate(mask []bool) []bool {
	out := make([]bool, len(mask))
	for i, v := range mask {
		out[i] = !v
	}
	return out
}

func filterProbe(probe *sql.Morsel, mask []bool, schema *sql.RelationSchema) *sql.Morsel {
	filtered := probe.Filter(mask)
	filtered.Schema = schema
	return filtered
}

// combine builds output rows for each (probeRow, buildRow) pair, buildRow
// -1 meaning "no match" (an outer-join null-extended row).
func combine(probe, build *sql.Morsel, pairs [][2]int, schema *sql.RelationSchema) *sql.Morsel {
	var out *sql.Morsel
	for _, pr := range pairs {
		row := sliceRow(probe, pr[0])
		if build != nil {
			row = joinRows(row, sliceRow(build, pr[1]))
		}
		row.Schema = schema
		if out == nil {
			out = row
		} else {
			out = out.Concat(row)
		}
	}
	if out == nil {
		out = sql.NewMorsel(schema, nil)
	}
	out.Schema = schema
	return out
}

func (j *JoinOperator) Close(ctx *sql.Context) error {
	err1 := j.build.Close(ctx)
	err2 := j.probe.Close(ctx)
	if err1 != nil {
		return err1
	}
	return err2
}
