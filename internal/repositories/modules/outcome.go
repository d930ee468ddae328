package modules

import (
	"errors"

	"github.com/dmitrijs2005/trainingkeeper/internal/common"
)

// Status classifies how a best-effort operation ended.
type Status int

const (
	// StatusOK: the operation completed.
	StatusOK Status = iota
	// StatusSkipped: nothing to do, for example a module without a
	// translation provider.
	StatusSkipped
	// StatusDegraded: a collaborator failed; the value is a safe fallback.
	StatusDegraded
	// StatusFatal: a stored document is structurally unusable (unsupported
	// version); the value is a safe fallback.
	StatusFatal
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusSkipped:
		return "skipped"
	case StatusDegraded:
		return "degraded"
	case StatusFatal:
		return "fatal"
	}
	return "unknown"
}

// Outcome is the result of an operation that never fails outright. Err is
// set for degraded and fatal outcomes.
type Outcome[T any] struct {
	Value  T
	Status Status
	Err    error
}

func (o Outcome[T]) OK() bool {
	return o.Status == StatusOK
}

func ok[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v, Status: StatusOK}
}

func skipped[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v, Status: StatusSkipped}
}

// failed classifies err: unsupported versions are fatal, anything else
// degrades.
func failed[T any](fallback T, err error) Outcome[T] {
	status := StatusDegraded
	if errors.Is(err, common.ErrUnsupportedVersion) {
		status = StatusFatal
	}
	return Outcome[T]{Value: fallback, Status: status, Err: err}
}
