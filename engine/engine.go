package engine

import "coinflip/experiments/metrics"

const MaxSteps = 10000

type Engine interface {
	// Run plays one episode from reset until it ends or a max number of steps is reached
	Run() (metrics.EpisodeMetric, error)
}
