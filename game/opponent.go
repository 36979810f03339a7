package game

import "fmt"

// Label is the hidden identity of an opponent, and the guess a player submits.
type Label int

const (
	Fair Label = iota
	Cheater
)

func (l Label) String() string {
	switch l {
	case Fair:
		return "fair"
	case Cheater:
		return "cheater"
	default:
		return fmt.Sprintf("label(%d)", int(l))
	}
}

func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Label) UnmarshalText(b []byte) error {
	switch string(b) {
	case "fair":
		*l = Fair
	case "cheater":
		*l = Cheater
	default:
		return fmt.Errorf("unknown label %q", string(b))
	}
	return nil
}

// Side is the outcome of a single flip.
type Side int

const (
	Heads Side = iota
	Tails
)

func (s Side) String() string {
	if s == Heads {
		return "heads"
	}
	return "tails"
}

const FairBias = 0.5

// BiasPolicy picks the heads probability of a newly drawn cheater. The value
// must lie in (0.5, 1]; NewOpponent panics otherwise.
type BiasPolicy interface {
	CheatBias(src Source) float64
}

// FixedBias gives every cheater the same heads probability.
type FixedBias float64

func (b FixedBias) CheatBias(Source) float64 {
	return float64(b)
}

type uniformBias struct{}

// UniformBias draws each cheater's bias uniformly from (0.5, 1.0].
func UniformBias() BiasPolicy {
	return uniformBias{}
}

func (uniformBias) CheatBias(src Source) float64 {
	// 1-u is in (0, 1], keeping the bias strictly above fair
	return FairBias + FairBias*(1-src.Float64())
}

// DefaultBiasPolicy is the bias used by the live game.
const DefaultBiasPolicy = FixedBias(0.75)

func validBias(p BiasPolicy) error {
	fixed, ok := p.(FixedBias)
	if !ok {
		return nil
	}
	if fixed <= FairBias || fixed > 1 {
		return fmt.Errorf("%w: cheat bias %v not in (0.5, 1]", ErrInvalidConfig, float64(fixed))
	}
	return nil
}

// Opponent is an immutable coin owner. Its label and bias are fixed when it
// is drawn; an Episode replaces it wholesale rather than mutating it.
type Opponent struct {
	bias  float64
	label Label
}

// NewOpponent draws a fresh opponent with a 50/50 prior over Fair and Cheater.
func NewOpponent(src Source, policy BiasPolicy) Opponent {
	if src.Float64() > 0.5 {
		bias := policy.CheatBias(src)
		if bias <= FairBias || bias > 1 {
			panic(fmt.Sprintf("bias policy returned %v, want a value in (0.5, 1]", bias))
		}
		return Opponent{bias: bias, label: Cheater}
	}
	return Opponent{bias: FairBias, label: Fair}
}

func (o Opponent) Bias() float64 { return o.bias }

func (o Opponent) Label() Label { return o.label }

// Flip resolves one toss of the opponent's coin.
func (o Opponent) Flip(src Source) Side {
	if src.Float64() < o.bias {
		return Heads
	}
	return Tails
}
