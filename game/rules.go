package game

import "fmt"

const (
	DefaultStartingFlips         = 100
	DefaultCorrectLabelBonus     = 15
	DefaultIncorrectLabelPenalty = -30
)

// Rules is the configuration of an episode. It is fixed at construction.
type Rules struct {
	StartingFlips         int
	CorrectLabelBonus     int
	IncorrectLabelPenalty int
	BiasPolicy            BiasPolicy
}

func NewStandardRules() Rules {
	return Rules{
		StartingFlips:         DefaultStartingFlips,
		CorrectLabelBonus:     DefaultCorrectLabelBonus,
		IncorrectLabelPenalty: DefaultIncorrectLabelPenalty,
		BiasPolicy:            DefaultBiasPolicy,
	}
}

func (r Rules) Validate() error {
	if r.StartingFlips <= 0 {
		return fmt.Errorf("%w: starting flips must be positive, got %d", ErrInvalidConfig, r.StartingFlips)
	}
	if r.CorrectLabelBonus < 0 {
		return fmt.Errorf("%w: correct label bonus must not be negative, got %d", ErrInvalidConfig, r.CorrectLabelBonus)
	}
	if r.IncorrectLabelPenalty > 0 {
		return fmt.Errorf("%w: incorrect label penalty must not be positive, got %d", ErrInvalidConfig, r.IncorrectLabelPenalty)
	}
	if r.BiasPolicy == nil {
		return fmt.Errorf("%w: missing bias policy", ErrInvalidConfig)
	}
	return validBias(r.BiasPolicy)
}

type Option func(r *Rules)

func WithStartingFlips(n int) Option {
	return func(r *Rules) {
		r.StartingFlips = n
	}
}

func WithCorrectLabelBonus(n int) Option {
	return func(r *Rules) {
		r.CorrectLabelBonus = n
	}
}

func WithIncorrectLabelPenalty(n int) Option {
	return func(r *Rules) {
		r.IncorrectLabelPenalty = n
	}
}

func WithBiasPolicy(p BiasPolicy) Option {
	return func(r *Rules) {
		r.BiasPolicy = p
	}
}
