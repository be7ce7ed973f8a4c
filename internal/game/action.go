package game

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalAction is returned when an action is not in the legal set.
	ErrIllegalAction = errors.New("illegal action")

	// ErrUnrecognizedAction is returned when parsing an unknown action name.
	ErrUnrecognizedAction = errors.New("unrecognized action")

	// ErrSerialization is returned when an information set cannot be built.
	ErrSerialization = errors.New("serialization error")
)

// Action is one of the closed set of moves a player can make.
type Action int

const (
	Fold Action = iota
	Call
	BigOne
	BigFour
	BigTwenty
	RaiseHalfPot
	RaisePot
	AllIn
	Pass // no-op for a player who is out of the hand
)

var actionNames = [...]string{
	Fold:         "fold",
	Call:         "call",
	BigOne:       "bigone",
	BigFour:      "bigfour",
	BigTwenty:    "bigtwenty",
	RaiseHalfPot: "raiseh",
	RaisePot:     "raiseo",
	AllIn:        "allin",
	Pass:         "None",
}

// String returns the wire name of the action.
func (a Action) String() string {
	if a < Fold || a > Pass {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// Code is the single character recorded in the history: the last character of the
// wire name. Several actions share a code.
func (a Action) Code() string {
	name := a.String()
	return name[len(name)-1:]
}

// IsRaise reports whether the action is one of the sized raises.
func (a Action) IsRaise() bool {
	switch a {
	case BigOne, BigFour, BigTwenty, RaiseHalfPot, RaisePot:
		return true
	}
	return false
}

// ParseAction converts a wire name to an Action.
func ParseAction(s string) (Action, error) {
	for a, name := range actionNames {
		if name == s {
			return Action(a), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnrecognizedAction, s)
}
