package game

// Observation is what a player sees: the evidence gathered against the
// current opponent and the remaining flip budget.
type Observation struct {
	Heads     int `json:"heads"`
	Tails     int `json:"tails"`
	FlipsLeft int `json:"flips_left"`
}

// Info carries bookkeeping that is not part of the observation.
type Info struct {
	Score int `json:"score"`

	// Flips is the number of coins actually resolved by the step.
	Flips int `json:"flips"`

	// Truth and Correct are only set when Labeled is true.
	Labeled bool  `json:"labeled"`
	Truth   Label `json:"truth"`
	Correct bool  `json:"correct"`
}

// StepResult is everything Step reports back for one action.
type StepResult struct {
	Observation Observation `json:"observation"`

	// Reward is the signed change in flips left caused by the action.
	Reward   int  `json:"reward"`
	Terminal bool `json:"terminal"`
	Info     Info `json:"info"`
}

// Environment is the capability set shared by the in-process Episode and any
// adapter driving the same game elsewhere (a remote server, a live page).
type Environment interface {
	Reset() (Observation, error)
	Observe() (Observation, error)
	Step(Action) (StepResult, error)
}
