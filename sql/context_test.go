package sql

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionUserVariableRoundTrip(t *testing.T) {
	require := require.New(t)
	s := NewSession()
	s.SetUserVariable("name", Varchar, "Mercury")

	typ, v := s.GetUserVariable("name")
	require.Equal(Varchar, typ)
	require.Equal("Mercury", v)

	typ, v = s.GetUserVariable("missing")
	require.Equal(Null, typ)
	require.Nil(v)
}

func TestSessionVariableFoundFlag(t *testing.T) {
	require := require.New(t)
	s := NewSession()
	s.SetSessionVariable("max_memory", Int64, int64(1024))

	typ, v, ok := s.GetSessionVariable("max_memory")
	require.True(ok)
	require.Equal(Int64, typ)
	require.Equal(int64(1024), v)

	_, _, ok = s.GetSessionVariable("missing")
	require.False(ok)
}

func TestContextCancel(t *testing.T) {
	require := require.New(t)
	ctx := NewEmptyContext()
	require.False(ctx.Canceled())
	ctx.Cancel()
	require.True(ctx.Canceled())
}

func TestStatisticsAccumulate(t *testing.T) {
	require := require.New(t)
	stats := &Statistics{}
	stats.AddMorsel(10)
	stats.AddMorsel(5)
	stats.IncUnreadableBlobs()

	require.Equal(int64(2), stats.MorselsProduced)
	require.Equal(int64(15), stats.RowsProduced)
	require.Equal(int64(1), stats.UnreadableDataBlobs)
}

func TestWithLogPreservesSessionAndStatistics(t *testing.T) {
	require := require.New(t)
	ctx := NewEmptyContext()
	ctx.Statistics().AddMorsel(1)

	next := ctx.WithLog(ctx.Log())
	require.Same(ctx.Session(), next.Session())
	require.Same(ctx.Statistics(), next.Statistics())
}
