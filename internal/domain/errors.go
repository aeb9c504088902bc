package domain

import (
	"errors"
	"fmt"
)

// Error categories. Specific errors wrap one of these so callers can use errors.Is.
var (
	// ErrInvalidAction covers wrong turn owner, round not started and round already finished.
	ErrInvalidAction = errors.New("invalid action")
	// ErrIllegalHand covers selections that fail classification or the override check.
	ErrIllegalHand = errors.New("illegal hand")
	// ErrCapacity covers a full arena and too few connected seats to start.
	ErrCapacity = errors.New("capacity error")
	// ErrConsistencyFault is reported when turn advance finds no eligible seat; the round is aborted.
	ErrConsistencyFault = errors.New("consistency fault")
)

var (
	ErrRoundNotInProgress = fmt.Errorf("%w: round not in progress", ErrInvalidAction)
	ErrRoundInProgress    = fmt.Errorf("%w: round already in progress", ErrInvalidAction)
	ErrNotYourTurn        = fmt.Errorf("%w: not your turn", ErrInvalidAction)
	ErrUnknownPlayer      = fmt.Errorf("%w: player not seated", ErrInvalidAction)
	ErrCannotPassLead     = fmt.Errorf("%w: cannot pass while leading", ErrInvalidAction)
	ErrEmptyIdentity      = fmt.Errorf("%w: empty identity", ErrInvalidAction)

	ErrEmptySelection     = fmt.Errorf("%w: no cards selected", ErrIllegalHand)
	ErrCardsNotInHand     = fmt.Errorf("%w: cards not in hand", ErrIllegalHand)
	ErrInvalidCombination = fmt.Errorf("%w: cards do not form a valid hand", ErrIllegalHand)
	ErrMustIncludeOpening = fmt.Errorf("%w: first play must include %s", ErrIllegalHand, OpeningCard)
	ErrDoesNotBeatTable   = fmt.Errorf("%w: does not beat the table", ErrIllegalHand)

	ErrNoSeatAvailable  = fmt.Errorf("%w: no seat available", ErrCapacity)
	ErrNotEnoughPlayers = fmt.Errorf("%w: not enough connected players to start", ErrCapacity)
)
