package services

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is returned when a required request field is empty
	ErrMissingField = errors.New("missing required field")
	// ErrTransactionHashAlreadyUsed is returned when a viniapp already exists for the transaction
	ErrTransactionHashAlreadyUsed = errors.New("transaction hash already exists")
	// ErrSlugUnavailable is returned when no free slug is found for a name
	ErrSlugUnavailable = errors.New("unable to find an available slug")
	// ErrViniappNotFound is returned when the viniapp does not exist
	ErrViniappNotFound = errors.New("viniapp not found")
	// ErrStepOutOfOrder is returned when a pipeline step is delivered for a viniapp in the wrong status
	ErrStepOutOfOrder = errors.New("pipeline step out of order")
	// ErrStepInProgress is returned when another worker holds the viniapp lease
	ErrStepInProgress = errors.New("pipeline step already in progress")
)

// VerificationError is returned when the transaction does not prove the payment
type VerificationError struct {
	Reason string
}

// Error satisfies error interface for VerificationError
func (e *VerificationError) Error() string {
	return fmt.Sprintf("transaction verification failed: %s", e.Reason)
}

func missingField(name string) error {
	return fmt.Errorf("%w: %s is required", ErrMissingField, name)
}
