package plan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateHintsAcceptsKnown(t *testing.T) {
	require := require.New(t)
	require.Empty(ValidateHints([]string{"NO_CACHE", "NO_PUSHDOWN"}))
}

func TestValidateHintsSuggestsClosest(t *testing.T) {
	require := require.New(t)
	unknown := ValidateHints([]string{"NO_CASH"})
	require.Contains(unknown, "NO_CASH")
	require.Contains(unknown["NO_CASH"], "NO_CACHE")
}
