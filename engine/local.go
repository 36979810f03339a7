package engine

import (
	"fmt"
	"time"

	"coinflip/experiments/metrics"
	"coinflip/game"
	"coinflip/player"

	"github.com/rs/zerolog/log"
)

type Option func(e *Local)

// WithMaxSteps caps an episode so a strategy that never labels cannot stall forever.
func WithMaxSteps(steps int) Option {
	return func(e *Local) {
		if steps > 0 {
			e.maxSteps = steps
		}
	}
}

// Local drives a strategy against any environment, in-process or remote.
type Local struct {
	env      game.Environment
	strategy player.Strategy
	maxSteps int
}

func NewLocal(env game.Environment, strategy player.Strategy, options ...Option) *Local {
	if env == nil {
		panic("engine needs an environment")
	}
	if strategy == nil {
		panic("engine needs a strategy")
	}
	e := &Local{
		env:      env,
		strategy: strategy,
		maxSteps: MaxSteps,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run resets the environment and plays until it reports a terminal step.
func (e *Local) Run() (metrics.EpisodeMetric, error) {
	m := metrics.EpisodeMetric{StartTime: time.Now()}

	obs, err := e.env.Reset()
	if err != nil {
		return m, fmt.Errorf("failed to reset environment: %w", err)
	}
	log.Debug().Int("flips_left", obs.FlipsLeft).Msg("episode started")

	flipsSinceLabel := 0
	terminal := false
	for !terminal && m.Steps < e.maxSteps {
		action := e.strategy.Act(obs)
		res, err := e.env.Step(action)
		if err != nil {
			return m, fmt.Errorf("step %d (%s): %w", m.Steps+1, action, err)
		}
		m.Steps++
		m.Reward += res.Reward
		m.Flips += res.Info.Flips
		flipsSinceLabel += res.Info.Flips

		if res.Info.Labeled {
			predicted, _ := action.Label()
			m.Labels = append(m.Labels, metrics.LabelRecord{
				Predicted: predicted,
				Truth:     res.Info.Truth,
				Correct:   res.Info.Correct,
				Flips:     flipsSinceLabel,
			})
			flipsSinceLabel = 0
		}

		m.Score = res.Info.Score
		obs = res.Observation
		terminal = res.Terminal
	}

	m.Truncated = !terminal
	m.EndTime = time.Now()
	m.Duration = m.EndTime.Sub(m.StartTime)

	if m.Truncated {
		log.Warn().Int("steps", m.Steps).Int("score", m.Score).Msg("episode stopped at step cap")
	} else {
		log.Debug().Int("steps", m.Steps).Int("score", m.Score).Msg("episode over")
	}
	return m, nil
}
