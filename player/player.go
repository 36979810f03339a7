package player

import (
	"fmt"

	"coinflip/game"
)

// Strategy decides the next action from what a player can see. Strategies
// only ever use the public observation, never the hidden opponent.
type Strategy interface {
	Act(obs game.Observation) game.Action
}

// StrategyFunc adapts a plain function to a Strategy.
type StrategyFunc func(obs game.Observation) game.Action

func (f StrategyFunc) Act(obs game.Observation) game.Action {
	return f(obs)
}

type random struct {
	src game.Source
}

// NewRandom picks uniformly among all actions. It is the baseline every other
// strategy should beat.
func NewRandom(src game.Source) Strategy {
	return random{src: src}
}

func (r random) Act(game.Observation) game.Action {
	i := int(r.src.Float64() * float64(len(game.Actions)))
	return game.Actions[min(i, len(game.Actions)-1)]
}

// Names lists the strategies ParseStrategy understands.
var Names = []string{"random", "threshold", "likelihood"}

// ParseStrategy builds a strategy with its default settings. policy is the
// cheat bias policy of the game being played; nil means DefaultBiasPolicy.
func ParseStrategy(name string, src game.Source, policy game.BiasPolicy) (Strategy, error) {
	if policy == nil {
		policy = game.DefaultBiasPolicy
	}
	switch name {
	case "random":
		return NewRandom(src), nil
	case "threshold":
		return NewThreshold(), nil
	case "likelihood":
		return NewLikelihoodRatio(ModelBias(policy)), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q, expected one of %v", name, Names)
	}
}
