// Package usecase implements the business logic for the residents feature.
package usecase

import "errors"

var (
	// ErrResidentNotFound is returned when no resident exists for the given ID.
	ErrResidentNotFound = errors.New("resident not found")

	// ErrNIKAlreadyExists is returned when a create or update would violate
	// the uniqueness of the NIK. The database unique index is the sole
	// authority; a race between two writers surfaces exactly like this.
	ErrNIKAlreadyExists = errors.New("nik already exists")

	// ErrForbidden is returned when the acting user lacks the admin role
	// required for a mutating operation.
	ErrForbidden = errors.New("admin privileges required")

	// ErrPhotoStorage is returned when the initial photo save fails.
	// The record would otherwise reference a file that does not exist,
	// so this aborts the operation.
	ErrPhotoStorage = errors.New("photo storage failed")
)
