package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInstanceNotFound    = errors.New("agent instance not found")
	ErrStaleData           = errors.New("required data not loaded yet")
	ErrCollaboratorFailure = errors.New("collaborator call failed")
	ErrInvalidTransition   = errors.New("invalid deployment transition")
	ErrEligibilityDenied   = errors.New("action not eligible")
)

// CollaboratorError wraps a failed external call. It matches both
// ErrCollaboratorFailure and the underlying cause.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() []error {
	return []error{ErrCollaboratorFailure, e.Err}
}

type TransitionError struct {
	Action   Action
	From     DeploymentStatus
	InFlight bool
}

func (e *TransitionError) Error() string {
	if e.InFlight {
		return fmt.Sprintf("cannot %s: another operation is in progress", e.Action)
	}

	return fmt.Sprintf("cannot %s while agent is %s", e.Action, e.From.Label())
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

type EligibilityError struct {
	Action  Action
	Verdict Verdict
}

func (e *EligibilityError) Error() string {
	return fmt.Sprintf("cannot %s: %s", e.Action, e.Verdict.Reason)
}

func (e *EligibilityError) Unwrap() []error {
	if e.Verdict.Reason == ReasonLoading {
		return []error{ErrEligibilityDenied, ErrStaleData}
	}

	return []error{ErrEligibilityDenied}
}
