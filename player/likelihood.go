package player

import (
	"math"

	"coinflip/game"
)

// LikelihoodRatio runs a sequential Bayesian test between a fair coin and a
// cheater of known bias, starting from an even prior.
type LikelihoodRatio struct {
	CheatBias float64
	Upper     float64 // label cheater at or above this posterior
	Lower     float64 // label fair at or below this posterior

	// Outside [Lower+Margin, Upper-Margin] evidence is close to a bound, so
	// flip one coin at a time instead of five.
	Margin float64
}

// NewLikelihoodRatio models cheaters with the given heads probability.
func NewLikelihoodRatio(cheatBias float64) LikelihoodRatio {
	return LikelihoodRatio{CheatBias: cheatBias, Upper: 0.9, Lower: 0.1, Margin: 0.2}
}

// ModelBias is the cheat bias a likelihood test should assume against policy.
// Policies that draw a bias per cheater are modelled by the default, which is
// the mean of UniformBias.
func ModelBias(policy game.BiasPolicy) float64 {
	if fixed, ok := policy.(game.FixedBias); ok {
		return float64(fixed)
	}
	return float64(game.DefaultBiasPolicy)
}

// Posterior returns P(cheater | heads, tails).
func (s LikelihoodRatio) Posterior(heads, tails int) float64 {
	if tails > 0 && s.CheatBias >= 1 {
		return 0
	}
	// Skip empty terms: 0 * log(0) is NaN when the bias is 1.
	var logRatio float64
	if heads > 0 {
		logRatio += float64(heads) * math.Log(2*s.CheatBias)
	}
	if tails > 0 {
		logRatio += float64(tails) * math.Log(2*(1-s.CheatBias))
	}
	return 1 / (1 + math.Exp(-logRatio))
}

func (s LikelihoodRatio) Act(obs game.Observation) game.Action {
	p := s.Posterior(obs.Heads, obs.Tails)

	switch {
	case p >= s.Upper:
		return game.LabelCheater
	case p <= s.Lower:
		return game.LabelFair
	case obs.FlipsLeft <= 0:
		if p > 0.5 {
			return game.LabelCheater
		}
		return game.LabelFair
	case obs.FlipsLeft >= 5 && p > s.Lower+s.Margin && p < s.Upper-s.Margin:
		return game.FlipFive
	default:
		return game.FlipOne
	}
}
