package game

import "fmt"

// ErrorKind identifies a recoverable rule violation. The set is closed:
// callers can match exhaustively and render each kind precisely.
type ErrorKind int

const (
	// InsufficientFunds: the action needs more chips than the stack holds.
	InsufficientFunds ErrorKind = iota
	// CheckInstead: nothing to call, the player should check.
	CheckInstead
	// CallFirst: there is an outstanding bet the player must call.
	CallFirst
	// RaiseTooSmall: raise below the table minimum.
	RaiseTooSmall
	// NotEnoughPlayers: a hand needs at least two seated players.
	NotEnoughPlayers
	// PlayerNotFound: the acting player is not seated at this table.
	PlayerNotFound
	// DuplicateSeat: the player is already seated.
	DuplicateSeat
	// CannotLeaveMidHand: leaving requires folding first.
	CannotLeaveMidHand
	// InvalidStateForAction: the action does not apply to the current
	// phase, e.g. betting with no hand in progress or dealing mid-hand.
	InvalidStateForAction
)

func (k ErrorKind) String() string {
	switch k {
	case InsufficientFunds:
		return "insufficient funds"
	case CheckInstead:
		return "check instead"
	case CallFirst:
		return "call first"
	case RaiseTooSmall:
		return "raise too small"
	case NotEnoughPlayers:
		return "not enough players"
	case PlayerNotFound:
		return "player not found"
	case DuplicateSeat:
		return "duplicate seat"
	case CannotLeaveMidHand:
		return "cannot leave mid-hand"
	case InvalidStateForAction:
		return "invalid state for action"
	default:
		return "unknown"
	}
}

// Error is a recoverable rule violation returned by engine transitions.
// The game a rejected transition was called on is never modified.
type Error struct {
	Kind ErrorKind

	// Required and Available accompany InsufficientFunds.
	Required  int
	Available int
	// Owed accompanies CallFirst.
	Owed int
	// Minimum accompanies RaiseTooSmall.
	Minimum int
}

func (e *Error) Error() string {
	switch e.Kind {
	case InsufficientFunds:
		return fmt.Sprintf("insufficient funds: need %d, have %d", e.Required, e.Available)
	case CallFirst:
		return fmt.Sprintf("call %d first", e.Owed)
	case RaiseTooSmall:
		return fmt.Sprintf("raise too small, minimum %d", e.Minimum)
	default:
		return e.Kind.String()
	}
}

// Is lets errors.Is match against a bare kind marker.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// ErrKind returns a marker error for the given kind, for use with
// errors.Is in callers and tests.
func ErrKind(k ErrorKind) error {
	return &Error{Kind: k}
}

// FatalError reports a broken internal invariant, such as a showdown
// with no determinable winner. It is not recoverable by retry and is
// deliberately distinct from Error so callers surface it generically.
type FatalError struct {
	Reason string
}

func (e *FatalError) Error() string {
	return "internal game fault: " + e.Reason
}

func fatalf(format string, args ...any) *FatalError {
	return &FatalError{Reason: fmt.Sprintf(format, args...)}
}
