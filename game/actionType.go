package game

import (
	"fmt"
	"strconv"
	"strings"

	"coinflip/utils"
)

// Action represents an action a player can submit to an episode.
type Action int

const (
	FlipOne Action = iota
	FlipFive
	LabelFair
	LabelCheater
)

var actionNames = []string{"flip_one", "flip_five", "label_fair", "label_cheater"}

// Actions lists every valid action in wire order.
var Actions = []Action{FlipOne, FlipFive, LabelFair, LabelCheater}

func (a Action) Valid() bool {
	return a >= FlipOne && a <= LabelCheater
}

func (a Action) String() string {
	if !a.Valid() {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// IsLabel reports whether the action commits a guess about the opponent.
func (a Action) IsLabel() bool {
	return a == LabelFair || a == LabelCheater
}

// Label returns the guess carried by a label action.
func (a Action) Label() (Label, bool) {
	switch a {
	case LabelFair:
		return Fair, true
	case LabelCheater:
		return Cheater, true
	default:
		return 0, false
	}
}

// UnmarshalJSON accepts either the wire number or the action name.
func (a *Action) UnmarshalJSON(b []byte) error {
	parsed, err := ParseAction(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAction accepts an action name ("flip_five") or its wire number ("1").
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := utils.FindIndex(actionNames, s); i >= 0 {
		return Action(i), nil
	}
	if n, err := strconv.Atoi(s); err == nil && Action(n).Valid() {
		return Action(n), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAction, s)
}
