package metrics

import (
	"sync/atomic"
	"time"

	"coinflip/game"
)

// LabelRecord describes one label action within an episode.
type LabelRecord struct {
	Predicted game.Label
	Truth     game.Label
	Correct   bool
	Flips     int // Coins resolved against this opponent before labeling
}

type EpisodeMetric struct {
	Score     int
	Steps     int
	Flips     int
	Reward    int  // Sum of step rewards, the net change in flips left
	Truncated bool // Stopped by the step cap rather than by losing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Labels    []LabelRecord
}

type RunMetric struct {
	Workers   int
	Duration  time.Duration
	Episodes  int
	Steps     int
	Truncated int
}

type Collector interface {
	Start(workers int)
	AddEpisode(m EpisodeMetric)
	Complete() RunMetric
}

type collector struct {
	workers   int
	startTime time.Time
	episodes  atomic.Int64
	steps     atomic.Int64
	truncated atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(workers int) {
	m.startTime = time.Now()
	m.workers = workers
}

func (m *collector) AddEpisode(e EpisodeMetric) {
	m.episodes.Add(1)
	m.steps.Add(int64(e.Steps))
	if e.Truncated {
		m.truncated.Add(1)
	}
}

func (m *collector) Complete() RunMetric {
	return RunMetric{
		Workers:   m.workers,
		Duration:  time.Since(m.startTime),
		Episodes:  int(m.episodes.Load()),
		Steps:     int(m.steps.Load()),
		Truncated: int(m.truncated.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(workers int)          {}
func (m *dummyCollector) AddEpisode(e EpisodeMetric) {}
func (m *dummyCollector) Complete() RunMetric        { return RunMetric{} }
