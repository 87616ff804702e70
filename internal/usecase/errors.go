package usecase

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a lifecycle operation matches exactly
// one of them through errors.Is, except unexpected infrastructure errors.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrValidation        = errors.New("validation error")
	ErrInvalidState      = errors.New("invalid state")
	ErrRenderFailure     = errors.New("render failure")
	ErrDependencyFailure = errors.New("dependency failure")
	ErrForbidden         = errors.New("forbidden")
)

var (
	ErrQuoteNotFound   = fmt.Errorf("%w: quote not found", ErrNotFound)
	ErrProjectNotFound = fmt.Errorf("%w: project not found", ErrNotFound)
	ErrDepositNotFound = fmt.Errorf("%w: deposit checkout not found", ErrNotFound)

	ErrQuoteAlreadySigned = fmt.Errorf("%w: a signed quote already exists for this project", ErrConflict)

	ErrInvalidQuoteID      = fmt.Errorf("%w: invalid quote id", ErrValidation)
	ErrInvalidProjectID    = fmt.Errorf("%w: invalid project id", ErrValidation)
	ErrMissingContactEmail = fmt.Errorf("%w: no contact email could be resolved", ErrValidation)
	ErrInvalidEmail        = fmt.Errorf("%w: invalid email", ErrValidation)
	ErrInvalidContactName  = fmt.Errorf("%w: invalid contact name", ErrValidation)
	ErrInvalidProjectName  = fmt.Errorf("%w: invalid project name", ErrValidation)
	ErrInvalidAmount       = fmt.Errorf("%w: invalid amount", ErrValidation)
	ErrInvalidDocument     = fmt.Errorf("%w: supplied document is not a pdf", ErrValidation)
	ErrEmptySignature      = fmt.Errorf("%w: signature is empty", ErrValidation)
	ErrInvalidSignature    = fmt.Errorf("%w: signature image could not be decoded", ErrValidation)

	ErrQuoteNotPending = fmt.Errorf("%w: quote is not pending", ErrInvalidState)

	ErrNotQuoteOwner = fmt.Errorf("%w: only the project owner or staff may access this quote", ErrForbidden)
)

func renderFailure(step string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrRenderFailure, step, err)
}

func dependencyFailure(dep string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDependencyFailure, dep, err)
}
