package experiments

import (
	"coinflip/experiments/metrics"

	"github.com/rs/zerolog/log"
)

// RunThroughput replays the same run with each worker count and reports how
// many episodes per second each one sustained.
func RunThroughput(base RunConfig, workers []int) ([]metrics.RunMetric, error) {
	results := []metrics.RunMetric{}

	log.Info().Msg("starting throughput experiment...")

	for _, n := range workers {
		cfg := base
		cfg.Workers = n
		cfg.Metrics = true

		report, err := Run(cfg)
		if err != nil {
			return nil, err
		}
		rm := report.Run
		results = append(results, rm)

		perSecond := 0.0
		if rm.Duration > 0 {
			perSecond = float64(rm.Episodes) / rm.Duration.Seconds()
		}
		log.Info().
			Int("workers", rm.Workers).
			Int("episodes", rm.Episodes).
			Int("steps", rm.Steps).
			Dur("duration", rm.Duration).
			Float64("episodes_per_second", perSecond).
			Msg("completed worker count")
	}

	log.Info().Msg("completed throughput experiment")
	return results, nil
}
