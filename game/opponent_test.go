package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewOpponent(t *testing.T) {
	t.Run("draw above one half is a cheater with the policy bias", func(t *testing.T) {
		o := NewOpponent(script(0.51), DefaultBiasPolicy)

		require.Equal(t, Cheater, o.Label())
		require.Equal(t, 0.75, o.Bias())
	})

	t.Run("draw of exactly one half is fair", func(t *testing.T) {
		o := NewOpponent(script(0.5), DefaultBiasPolicy)

		require.Equal(t, Fair, o.Label())
		require.Equal(t, FairBias, o.Bias())
	})

	t.Run("fair opponents do not consult the bias policy", func(t *testing.T) {
		src := script(drawFair)
		o := NewOpponent(src, UniformBias())

		require.Equal(t, Fair, o.Label())
		require.Zero(t, src.remaining(), "Only the label draw should be consumed")
	})

	t.Run("uniform policy maps draws into (0.5, 1]", func(t *testing.T) {
		low := NewOpponent(script(drawCheater, 0.999999), UniformBias())
		high := NewOpponent(script(drawCheater, 0), UniformBias())

		require.Greater(t, low.Bias(), FairBias)
		require.Equal(t, 1.0, high.Bias())
	})

	t.Run("custom policy outside (0.5, 1] panics", func(t *testing.T) {
		for _, bias := range []float64{0.4, 0.5, 1.2} {
			require.Panics(t, func() {
				NewOpponent(script(drawCheater), policyFunc(func(Source) float64 { return bias }))
			}, "bias %v", bias)
		}
	})

	t.Run("custom policy inside (0.5, 1] is used as is", func(t *testing.T) {
		o := NewOpponent(script(drawCheater), policyFunc(func(Source) float64 { return 0.6 }))
		require.Equal(t, 0.6, o.Bias())
	})
}

type policyFunc func(Source) float64

func (f policyFunc) CheatBias(src Source) float64 { return f(src) }

func TestOpponentFlip(t *testing.T) {
	o := Opponent{bias: 0.75, label: Cheater}

	require.Equal(t, Heads, o.Flip(script(0.74)))
	require.Equal(t, Tails, o.Flip(script(0.75)), "A draw equal to the bias is tails")
	require.Equal(t, Tails, o.Flip(script(0.99)))
}

func TestOpponentStatistics(t *testing.T) {
	const n = 20000
	src := NewSource(42)

	t.Run("prior over labels is even", func(t *testing.T) {
		cheaters := 0
		for i := 0; i < n; i++ {
			if NewOpponent(src, DefaultBiasPolicy).Label() == Cheater {
				cheaters++
			}
		}
		require.InDelta(t, 0.5, float64(cheaters)/n, 0.02)
	})

	t.Run("cheater heads rate converges to the bias", func(t *testing.T) {
		o := Opponent{bias: 0.75, label: Cheater}
		heads := 0
		for i := 0; i < n; i++ {
			if o.Flip(src) == Heads {
				heads++
			}
		}
		require.InDelta(t, 0.75, float64(heads)/n, 0.02)
	})

	t.Run("fair heads rate is one half", func(t *testing.T) {
		o := Opponent{bias: FairBias, label: Fair}
		heads := 0
		for i := 0; i < n; i++ {
			if o.Flip(src) == Heads {
				heads++
			}
		}
		require.InDelta(t, 0.5, float64(heads)/n, 0.02)
	})

	t.Run("uniform cheat bias averages three quarters", func(t *testing.T) {
		sum := 0.0
		count := 0
		for i := 0; i < n; i++ {
			o := NewOpponent(src, UniformBias())
			if o.Label() != Cheater {
				continue
			}
			require.Greater(t, o.Bias(), FairBias)
			require.LessOrEqual(t, o.Bias(), 1.0)
			sum += o.Bias()
			count++
		}
		require.InDelta(t, 0.75, sum/float64(count), 0.01)
	})
}

func TestSeededSourcesRepeat(t *testing.T) {
	a, b := NewSource(7), NewSource(7)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Float64(), b.Float64(), "Sources with the same seed should agree at draw %d", i)
	}
}
