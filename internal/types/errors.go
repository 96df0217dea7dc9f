package types

import (
	"errors"
	"fmt"
)

// Failure kinds reported inside result structs. Callers match them with
// errors.Is on the result's Err field.
var (
	ErrTargetNotFound    = errors.New("target not found")
	ErrRequirementNotMet = errors.New("requirement not met")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnknownAction     = errors.New("unknown action")
	ErrUnknownEvent      = errors.New("unknown event")
	ErrUnknownChoice     = errors.New("unknown choice")
	ErrSnapshotNotFound  = errors.New("snapshot not found")
	ErrPlayerNotFound    = errors.New("player not found")

	// ErrDeceased also matches ErrRequirementNotMet.
	ErrDeceased = fmt.Errorf("%w: character is deceased", ErrRequirementNotMet)
)
