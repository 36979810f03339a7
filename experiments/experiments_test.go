package experiments

import (
	"os"
	"path/filepath"
	"testing"

	"coinflip/game"
	"coinflip/player"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run("results do not depend on worker count", func(t *testing.T) {
		base := RunConfig{Strategy: "likelihood", Episodes: 40, Seed: 123}

		one := base
		one.Workers = 1
		many := base
		many.Workers = 8

		r1, err := Run(one)
		require.NoError(t, err)
		r8, err := Run(many)
		require.NoError(t, err)

		require.Len(t, r1.Episodes, 40)
		for i := range r1.Episodes {
			require.Equal(t, r1.Episodes[i].ID, r8.Episodes[i].ID)
			require.Equal(t, r1.Episodes[i].Seed, r8.Episodes[i].Seed)
			require.Equal(t, r1.Episodes[i].Score, r8.Episodes[i].Score, "episode %d", i)
			require.Equal(t, r1.Episodes[i].Labels, r8.Episodes[i].Labels, "episode %d", i)
		}
		require.Equal(t, r1.Summary, r8.Summary)
	})

	t.Run("collects run metrics when asked", func(t *testing.T) {
		r, err := Run(RunConfig{Strategy: "threshold", Episodes: 10, Workers: 2, Metrics: true})
		require.NoError(t, err)

		require.Equal(t, 10, r.Run.Episodes)
		require.Equal(t, 2, r.Run.Workers)
		require.Positive(t, r.Run.Steps)
	})

	t.Run("reasoned strategies beat random labeling", func(t *testing.T) {
		random, err := Run(RunConfig{Strategy: "random", Episodes: 200, Seed: 5, MaxSteps: 3000})
		require.NoError(t, err)
		likelihood, err := Run(RunConfig{Strategy: "likelihood", Episodes: 200, Seed: 5})
		require.NoError(t, err)

		require.Greater(t, likelihood.Summary.Confusion.Accuracy(), random.Summary.Confusion.Accuracy())
		require.Greater(t, likelihood.Summary.Score.Mean, random.Summary.Score.Mean)
	})

	t.Run("applies game options", func(t *testing.T) {
		r, err := Run(RunConfig{
			Strategy: "threshold",
			Episodes: 5,
			Options:  []game.Option{game.WithStartingFlips(10)},
		})
		require.NoError(t, err)
		for _, e := range r.Episodes {
			require.LessOrEqual(t, e.Flips, e.Score*15+10, "Flips are bounded by the budget")
		}
	})

	t.Run("rejects an unknown strategy", func(t *testing.T) {
		_, err := Run(RunConfig{Strategy: "oracle", Episodes: 1})
		require.Error(t, err)
	})

	t.Run("rejects invalid game options", func(t *testing.T) {
		_, err := Run(RunConfig{Strategy: "random", Episodes: 1, Options: []game.Option{game.WithStartingFlips(0)}})
		require.ErrorIs(t, err, game.ErrInvalidConfig)
	})
}

func TestRunComparison(t *testing.T) {
	dir := t.TempDir()

	reports, err := RunComparison(player.Names, RunConfig{Episodes: 20, Seed: 1, MaxSteps: 3000}, dir)

	require.NoError(t, err)
	require.Len(t, reports, len(player.Names))
	for i, r := range reports {
		require.Equal(t, player.Names[i], r.Summary.Strategy)
		require.Equal(t, 20, r.Summary.Episodes)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "comparison", "*", "*.csv"))
	require.NoError(t, err)
	require.Len(t, matches, 3, "summary, episodes and labels files")
	for _, m := range matches {
		info, err := os.Stat(m)
		require.NoError(t, err)
		require.Positive(t, info.Size())
	}
}

func TestRunThroughput(t *testing.T) {
	results, err := RunThroughput(RunConfig{Strategy: "threshold", Episodes: 10}, []int{1, 4})

	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, 1, results[0].Workers)
	require.Equal(t, 4, results[1].Workers)
	require.Equal(t, 10, results[1].Episodes)
}
