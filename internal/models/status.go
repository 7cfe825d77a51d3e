package models

import (
	"errors"
	"fmt"
)

// Status is the lifecycle state of a date suggestion
type Status string

const (
	StatusSuggested Status = "suggested"
	StatusAccepted  Status = "accepted"
	StatusDeclined  Status = "declined"
)

// Valid reports whether s is one of the known statuses. Matching is case-sensitive.
func (s Status) Valid() bool {
	switch s {
	case StatusSuggested, StatusAccepted, StatusDeclined:
		return true
	}
	return false
}

// Terminal reports whether no further transition is defined out of s
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusDeclined
}

// TransitionPolicy decides what happens when a decision is recorded on a
// suggestion that already left the suggested state.
type TransitionPolicy string

const (
	// PolicyReject refuses any change to a terminal suggestion.
	PolicyReject TransitionPolicy = "reject"
	// PolicyIdempotent accepts a repeat of the same decision as a no-op and
	// refuses the opposite decision.
	PolicyIdempotent TransitionPolicy = "idempotent"
	// PolicyOverride writes the new decision unconditionally.
	PolicyOverride TransitionPolicy = "override"
)

// ErrInvalidTransition is returned when a status change is not allowed
var ErrInvalidTransition = errors.New("invalid status transition")

// ParseTransitionPolicy converts a config value into a policy. Empty means idempotent.
func ParseTransitionPolicy(s string) (TransitionPolicy, error) {
	switch TransitionPolicy(s) {
	case "":
		return PolicyIdempotent, nil
	case PolicyReject, PolicyIdempotent, PolicyOverride:
		return TransitionPolicy(s), nil
	}
	return "", fmt.Errorf("unknown transition policy %q", s)
}

// Transition computes the status that results from recording target on a
// suggestion currently in current. changed is false when nothing has to be written.
func Transition(current, target Status, policy TransitionPolicy) (next Status, changed bool, err error) {
	if !target.Terminal() {
		return current, false, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, target)
	}

	if current == StatusSuggested {
		return target, true, nil
	}

	switch policy {
	case PolicyOverride:
		return target, current != target, nil
	case PolicyIdempotent:
		if current == target {
			return current, false, nil
		}
	}

	return current, false, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, target)
}
