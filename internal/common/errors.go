// Package common defines sentinel errors shared by the storage, collaborator
// and repository layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Document errors.
	ErrUnsupportedVersion = errors.New("unsupported module version")
	ErrorValidation       = errors.New("validation error")

	// Identity errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrInvalidToken   = errors.New("invalid token")
)
