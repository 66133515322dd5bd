package functions

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vectorsql/engine/sql"
)

func TestAliasesCollapseToSameKernel(t *testing.T) {
	require := require.New(t)
	r := NewRegistry()
	avg, ok := r.Aggregate("AVG")
	require.True(ok)
	mean, ok := r.Aggregate("mean")
	require.True(ok)

	ctx := sql.NewEmptyContext()
	v := sql.Vector{Type: sql.Float64, Values: []interface{}{float64(1), float64(2), float64(3)}}
	a, _, err := avg.Aggregate(ctx, []sql.Vector{v})
	require.NoError(err)
	m, _, err := mean.Aggregate(ctx, []sql.Vector{v})
	require.NoError(err)
	require.Equal(a, m)
	require.Equal(2.0, a)
}

func TestLookupPrefersAggregateOverScalar(t *testing.T) {
	require := require.New(t)
	r := NewRegistry()
	r.RegisterScalar(sql.FunctionSignature{Name: "DUP", MinArity: 1, MaxArity: 1})
	r.RegisterAggregate(sql.FunctionSignature{Name: "DUP", MinArity: 1, MaxArity: 1})

	_, isAgg, ok := r.Lookup("dup")
	require.True(ok)
	require.True(isAgg)
}

func TestCountStarDoesNotMaterializeValues(t *testing.T) {
	require := require.New(t)
	r := NewRegistry()
	count, ok := r.Aggregate("COUNT")
	require.True(ok)

	ctx := sql.NewEmptyContext()
	n, typ, err := count.Aggregate(ctx, nil)
	require.NoError(err)
	require.Equal(sql.Int64, typ)
	require.Equal(int64(0), n)
}

func TestCastKernelVarcharToInteger(t *testing.T) {
	require := require.New(t)
	r := NewRegistry()
	sig, ok := r.Scalar("INTEGER")
	require.True(ok)

	ctx := sql.NewEmptyContext()
	out, err := sig.Scalar(ctx, []sql.Vector{{Type: sql.Varchar, Values: []interface{}{"42", "not-a-number"}}})
	require.Error(err)
	require.Nil(out.Values)

	sig2, _ := r.Scalar("TRY_INTEGER")
	out2, err := sig2.Scalar(ctx, []sql.Vector{{Type: sql.Varchar, Values: []interface{}{"42", "not-a-number"}}})
	require.NoError(err)
	require.Equal(int64(42), out2.Values[0])
	require.Nil(out2.Values[1])
}

func TestMinMaxNumeric(t *testing.T) {
	require := require.New(t)
	r := NewRegistry()
	min, _ := r.Aggregate("MIN")
	max, _ := r.Aggregate("MAX")
	ctx := sql.NewEmptyContext()
	v := sql.Vector{Type: sql.Int64, Values: []interface{}{int64(5), int64(1), int64(9)}}

	lo, _, err := min.Aggregate(ctx, []sql.Vector{v})
	require.NoError(err)
	require.Equal(float64(1), lo)

	hi, _, err := max.Aggregate(ctx, []sql.Vector{v})
	require.NoError(err)
	require.Equal(float64(9), hi)
}
