package player

import "coinflip/game"

// Threshold labels on the running lead of heads over tails.
type Threshold struct {
	CheatLead int // label cheater once heads-tails exceeds this
	FairLead  int // label fair once heads-tails drops below this
	Patience  int // after this many flips, label fair unless the lead is at least MinLead
	MinLead   int
}

func NewThreshold() Threshold {
	return Threshold{CheatLead: 4, FairLead: -2, Patience: 10, MinLead: 2}
}

func (s Threshold) Act(obs game.Observation) game.Action {
	lead := obs.Heads - obs.Tails
	flips := obs.Heads + obs.Tails

	switch {
	case lead > s.CheatLead:
		return game.LabelCheater
	case lead < s.FairLead, flips > s.Patience && lead < s.MinLead:
		return game.LabelFair
	case obs.FlipsLeft <= 0:
		if lead >= s.MinLead {
			return game.LabelCheater
		}
		return game.LabelFair
	default:
		return game.FlipOne
	}
}
