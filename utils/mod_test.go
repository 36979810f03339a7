package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	require.Equal(t, 1, FindIndex([]string{"a", "b"}, "b"))
	require.Equal(t, -1, FindIndex([]string{"a", "b"}, "c"))
}

func TestStats(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		require.Zero(t, Mean([]int{}))
		require.Zero(t, StdDev([]int{}))
		require.Zero(t, Median([]float64{}))
		lo, hi := MinMax([]int{})
		require.Zero(t, lo)
		require.Zero(t, hi)
	})

	t.Run("integers", func(t *testing.T) {
		values := []int{4, -2, 10, 0}

		require.Equal(t, 3.0, Mean(values))
		require.InDelta(t, 4.5826, StdDev(values), 0.0001)
		require.Equal(t, 2.0, Median(values))
		lo, hi := MinMax(values)
		require.Equal(t, -2, lo)
		require.Equal(t, 10, hi)
	})

	t.Run("odd length median does not reorder input", func(t *testing.T) {
		values := []float64{3, 1, 2}

		require.Equal(t, 2.0, Median(values))
		require.Equal(t, []float64{3, 1, 2}, values)
	})
}
