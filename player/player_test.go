package player

import (
	"math"
	"testing"

	"coinflip/game"

	"github.com/stretchr/testify/require"
)

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func TestRandom(t *testing.T) {
	require.Equal(t, game.FlipOne, NewRandom(fixedSource(0)).Act(game.Observation{}))
	require.Equal(t, game.LabelFair, NewRandom(fixedSource(0.6)).Act(game.Observation{}))
	require.Equal(t, game.LabelCheater, NewRandom(fixedSource(0.9999)).Act(game.Observation{}))

	t.Run("covers every action", func(t *testing.T) {
		s := NewRandom(game.NewSource(5))
		seen := map[game.Action]bool{}
		for i := 0; i < 200; i++ {
			a := s.Act(game.Observation{})
			require.True(t, a.Valid())
			seen[a] = true
		}
		require.Len(t, seen, len(game.Actions))
	})
}

func TestThreshold(t *testing.T) {
	s := NewThreshold()
	cases := []struct {
		name string
		obs  game.Observation
		want game.Action
	}{
		{"no evidence yet", game.Observation{FlipsLeft: 100}, game.FlipOne},
		{"large heads lead", game.Observation{Heads: 6, Tails: 1, FlipsLeft: 50}, game.LabelCheater},
		{"lead at the cheat threshold keeps flipping", game.Observation{Heads: 5, Tails: 1, FlipsLeft: 50}, game.FlipOne},
		{"tails lead", game.Observation{Heads: 0, Tails: 3, FlipsLeft: 50}, game.LabelFair},
		{"patience exhausted with small lead", game.Observation{Heads: 6, Tails: 5, FlipsLeft: 50}, game.LabelFair},
		{"patience exhausted with strong lead", game.Observation{Heads: 7, Tails: 4, FlipsLeft: 50}, game.FlipOne},
		{"out of flips with a lead", game.Observation{Heads: 3, Tails: 1, FlipsLeft: 0}, game.LabelCheater},
		{"out of flips without a lead", game.Observation{Heads: 1, Tails: 1, FlipsLeft: 0}, game.LabelFair},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, s.Act(tc.obs))
		})
	}
}

func TestLikelihoodRatio(t *testing.T) {
	s := NewLikelihoodRatio(0.75)

	t.Run("posterior starts even", func(t *testing.T) {
		require.InDelta(t, 0.5, s.Posterior(0, 0), 1e-9)
	})

	t.Run("posterior matches Bayes rule", func(t *testing.T) {
		cheat := 0.75 * 0.75 * 0.75 * 0.25
		fair := 0.5 * 0.5 * 0.5 * 0.5
		require.InDelta(t, cheat/(cheat+fair), s.Posterior(3, 1), 1e-9)
	})

	t.Run("certain cheater is ruled out by one tail", func(t *testing.T) {
		certain := LikelihoodRatio{CheatBias: 1, Upper: 0.9, Lower: 0.1}
		require.Zero(t, certain.Posterior(10, 1))
		require.Greater(t, certain.Posterior(4, 0), 0.9)
	})

	t.Run("certain cheater labels a run of heads", func(t *testing.T) {
		certain := LikelihoodRatio{CheatBias: 1, Upper: 0.9, Lower: 0.1}
		p := certain.Posterior(20, 0)
		require.False(t, math.IsNaN(p), "posterior must be a number")
		require.InDelta(t, 1, p, 1e-5)
		require.InDelta(t, 0.5, certain.Posterior(0, 0), 1e-9)
		require.Equal(t, game.LabelCheater, certain.Act(game.Observation{Heads: 20, FlipsLeft: 0}))
	})

	t.Run("stronger bias needs less evidence", func(t *testing.T) {
		strong := NewLikelihoodRatio(0.9)
		require.Greater(t, strong.Posterior(3, 0), s.Posterior(3, 0))
	})

	t.Run("flips five far from a decision", func(t *testing.T) {
		require.Equal(t, game.FlipFive, s.Act(game.Observation{FlipsLeft: 100}))
	})

	t.Run("flips one when the budget is short", func(t *testing.T) {
		require.Equal(t, game.FlipOne, s.Act(game.Observation{FlipsLeft: 4}))
	})

	t.Run("labels once a bound is crossed", func(t *testing.T) {
		require.Equal(t, game.LabelCheater, s.Act(game.Observation{Heads: 9, Tails: 1, FlipsLeft: 50}))
		require.Equal(t, game.LabelFair, s.Act(game.Observation{Heads: 1, Tails: 5, FlipsLeft: 50}))
	})

	t.Run("must label with no flips left", func(t *testing.T) {
		require.Equal(t, game.LabelCheater, s.Act(game.Observation{Heads: 2, Tails: 0, FlipsLeft: 0}))
		require.Equal(t, game.LabelFair, s.Act(game.Observation{Heads: 0, Tails: 0, FlipsLeft: 0}))
	})
}

func TestParseStrategy(t *testing.T) {
	for _, name := range Names {
		s, err := ParseStrategy(name, game.NewSource(1), nil)
		require.NoError(t, err, name)
		require.NotNil(t, s, name)
	}

	_, err := ParseStrategy("oracle", game.NewSource(1), nil)
	require.Error(t, err)

	t.Run("likelihood follows the game's cheat bias", func(t *testing.T) {
		s, err := ParseStrategy("likelihood", game.NewSource(1), game.FixedBias(0.9))
		require.NoError(t, err)
		require.Equal(t, NewLikelihoodRatio(0.9), s)

		s, err = ParseStrategy("likelihood", game.NewSource(1), game.UniformBias())
		require.NoError(t, err)
		require.Equal(t, NewLikelihoodRatio(0.75), s)
	})
}
