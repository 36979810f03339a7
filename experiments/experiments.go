package experiments

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"coinflip/engine"
	"coinflip/experiments/metrics"
	"coinflip/game"
	"coinflip/player"

	"github.com/rs/zerolog/log"
)

const (
	NumEpisodes = 500 // Per strategy
	OutputDir   = "experiments/results"
)

type RunConfig struct {
	Strategy string
	Episodes int
	Workers  int
	Seed     uint64
	MaxSteps int
	Options  []game.Option
	Metrics  bool
}

type Report struct {
	Summary  metrics.Summary
	Episodes []metrics.EpisodeRecord
	Run      metrics.RunMetric
}

func (c RunConfig) withDefaults() RunConfig {
	if c.Episodes <= 0 {
		c.Episodes = NumEpisodes
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.MaxSteps <= 0 {
		c.MaxSteps = engine.MaxSteps
	}
	return c
}

// episodeSeeds derives the game and strategy seeds of episode i. They depend
// only on the run seed and i, so results do not change with the worker count.
func episodeSeeds(seed uint64, i int) (gameSeed, strategySeed uint64) {
	gameSeed = seed + uint64(i)
	return gameSeed, ^gameSeed
}

// Run plays cfg.Episodes independent episodes of one strategy across a pool of workers.
func Run(cfg RunConfig) (Report, error) {
	cfg = cfg.withDefaults()
	if _, err := player.ParseStrategy(cfg.Strategy, game.NewSource(0), nil); err != nil {
		return Report{}, err
	}
	if _, err := game.NewEpisode(game.NewSource(0), cfg.Options...); err != nil {
		return Report{}, err
	}

	collector := metrics.NewDummyCollector()
	if cfg.Metrics {
		collector = metrics.NewCollector()
	}

	task := make(chan int, cfg.Episodes)
	for i := 0; i < cfg.Episodes; i++ {
		task <- i
	}
	close(task)

	records := make([]metrics.EpisodeRecord, cfg.Episodes)
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		runErr error
	)
	collector.Start(cfg.Workers)
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := range task {
				record, err := runEpisode(cfg, i)
				if err != nil {
					mu.Lock()
					runErr = errors.Join(runErr, err)
					mu.Unlock()
					continue
				}
				records[i] = record
				collector.AddEpisode(record.EpisodeMetric)
			}
		}()
	}
	wg.Wait()

	if runErr != nil {
		return Report{}, runErr
	}

	episodes := make([]metrics.EpisodeMetric, len(records))
	for i, r := range records {
		episodes[i] = r.EpisodeMetric
	}
	return Report{
		Summary:  metrics.Summarize(cfg.Strategy, episodes),
		Episodes: records,
		Run:      collector.Complete(),
	}, nil
}

func runEpisode(cfg RunConfig, i int) (metrics.EpisodeRecord, error) {
	gameSeed, strategySeed := episodeSeeds(cfg.Seed, i)
	env, err := game.NewEpisode(game.NewSource(gameSeed), cfg.Options...)
	if err != nil {
		return metrics.EpisodeRecord{}, err
	}
	strategy, err := player.ParseStrategy(cfg.Strategy, game.NewSource(strategySeed), env.Rules().BiasPolicy)
	if err != nil {
		return metrics.EpisodeRecord{}, err
	}

	m, err := engine.NewLocal(env, strategy, engine.WithMaxSteps(cfg.MaxSteps)).Run()
	if err != nil {
		return metrics.EpisodeRecord{}, fmt.Errorf("episode %d: %w", i, err)
	}
	return metrics.EpisodeRecord{ID: i + 1, Strategy: cfg.Strategy, Seed: gameSeed, EpisodeMetric: m}, nil
}

// RunComparison evaluates each strategy on the same seeds and, when outDir is
// not empty, stores the results as CSV files.
func RunComparison(strategies []string, base RunConfig, outDir string) ([]Report, error) {
	reports := []Report{}

	log.Info().Msgf("starting comparison of %d strategies...", len(strategies))

	for si, name := range strategies {
		cfg := base
		cfg.Strategy = name

		log.Info().Msgf("starting strategy %d of %d: %s...", si+1, len(strategies), name)

		report, err := Run(cfg)
		if err != nil {
			return nil, fmt.Errorf("strategy %s: %w", name, err)
		}
		reports = append(reports, report)

		s := report.Summary
		log.Info().
			Str("strategy", name).
			Int("episodes", s.Episodes).
			Float64("score_mean", s.Score.Mean).
			Float64("score_std", s.Score.Std).
			Float64("labels_mean", s.Labels.Mean).
			Float64("flips_per_label", s.FlipsPerLabel.Mean).
			Float64("accuracy", s.Confusion.Accuracy()).
			Float64("f1", s.Confusion.F1()).
			Int("truncated", s.Truncated).
			Msg("completed strategy")
	}

	log.Info().Msg("completed comparison")

	if outDir == "" {
		return reports, nil
	}
	if err := store(reports, outDir); err != nil {
		return nil, err
	}
	return reports, nil
}

func store(reports []Report, outDir string) error {
	writer, err := metrics.NewWriter(outDir, "comparison")
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	summaries := make([]metrics.Summary, 0, len(reports))
	records := []metrics.EpisodeRecord{}
	for _, r := range reports {
		summaries = append(summaries, r.Summary)
		records = append(records, r.Episodes...)
	}

	if err := writer.WriteSummaries(summaries); err != nil {
		return fmt.Errorf("failed to store summaries: %w", err)
	}
	if err := writer.WriteEpisodes(records); err != nil {
		return fmt.Errorf("failed to store episode records: %w", err)
	}
	if err := writer.WriteLabels(records); err != nil {
		return fmt.Errorf("failed to store label records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment results")
	return nil
}
