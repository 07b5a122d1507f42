// Package common defines shared constants and sentinel errors used across
// QuickJobs layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrDecodeFailure = errors.New("stored value could not be decoded")
	ErrUnknownDriver = errors.New("unknown storage driver")

	// Identity errors.
	ErrEmailTaken         = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSession     = errors.New("invalid session")
	ErrNotSignedIn        = errors.New("you must be signed in")

	// Listing errors.
	ErrValidationIncomplete = errors.New("please complete all required fields")
	ErrInvalidPrice         = errors.New("price must be a non-negative number")
	ErrNotOwner             = errors.New("only the poster can delete this job")

	// Query errors.
	ErrUnknownSortKey = errors.New("unknown sort key")
)
