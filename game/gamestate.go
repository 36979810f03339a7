package game

import "fmt"

// Episode is the in-process coin game. It owns the current opponent, the
// evidence gathered against it, and the flip budget. It is not safe for
// concurrent use; callers serialize Step calls themselves.
type Episode struct {
	rules    Rules
	src      Source
	opponent Opponent

	heads     int
	tails     int
	flipsLeft int
	score     int
	terminal  bool
}

// NewEpisode validates the rules built from opts and returns a freshly reset episode.
func NewEpisode(src Source, opts ...Option) (*Episode, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: missing random source", ErrInvalidConfig)
	}
	rules := NewStandardRules()
	for _, opt := range opts {
		opt(&rules)
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	e := &Episode{rules: rules, src: src}
	e.reset()
	return e, nil
}

func (e *Episode) Rules() Rules { return e.rules }

func (e *Episode) Score() int { return e.score }

func (e *Episode) Terminal() bool { return e.terminal }

// Reset starts a new episode with a full budget and a new opponent. It never fails.
func (e *Episode) Reset() (Observation, error) {
	e.reset()
	return e.observe(), nil
}

// Observe returns the current observation without changing anything.
func (e *Episode) Observe() (Observation, error) {
	return e.observe(), nil
}

// Step applies one action. Once the episode is terminal every valid action is
// a no-op reporting a zero reward until Reset is called.
func (e *Episode) Step(action Action) (StepResult, error) {
	if !action.Valid() {
		return StepResult{}, fmt.Errorf("%w: %d", ErrInvalidAction, int(action))
	}
	if e.terminal {
		return e.result(0, Info{Score: e.score}), nil
	}

	before := e.flipsLeft
	info := Info{}
	switch action {
	case FlipOne:
		info.Flips = e.flip(1)
	case FlipFive:
		info.Flips = e.flip(5)
	case LabelFair, LabelCheater:
		guess, _ := action.Label()
		info.Labeled = true
		info.Truth = e.opponent.Label()
		info.Correct = e.label(guess)
	}
	info.Score = e.score

	return e.result(e.flipsLeft-before, info), nil
}

func (e *Episode) reset() {
	e.score = 0
	e.flipsLeft = e.rules.StartingFlips
	e.terminal = false
	e.newOpponent()
}

func (e *Episode) newOpponent() {
	e.opponent = NewOpponent(e.src, e.rules.BiasPolicy)
	e.heads = 0
	e.tails = 0
}

// flip resolves up to n coins one at a time, stopping when the budget runs
// out, and returns how many were resolved.
func (e *Episode) flip(n int) int {
	resolved := 0
	for i := 0; i < n && e.flipsLeft > 0; i++ {
		if e.opponent.Flip(e.src) == Heads {
			e.heads++
		} else {
			e.tails++
		}
		e.flipsLeft--
		resolved++
	}
	return resolved
}

// label scores the guess, always installs a new opponent, and latches the
// episode as terminal if the budget went negative.
func (e *Episode) label(guess Label) bool {
	correct := guess == e.opponent.Label()
	if correct {
		e.score++
		e.flipsLeft += e.rules.CorrectLabelBonus
	} else {
		e.flipsLeft += e.rules.IncorrectLabelPenalty
	}
	e.newOpponent()
	if e.flipsLeft < 0 {
		e.terminal = true
	}
	return correct
}

func (e *Episode) observe() Observation {
	return Observation{Heads: e.heads, Tails: e.tails, FlipsLeft: e.flipsLeft}
}

func (e *Episode) result(reward int, info Info) StepResult {
	return StepResult{
		Observation: e.observe(),
		Reward:      reward,
		Terminal:    e.terminal,
		Info:        info,
	}
}
