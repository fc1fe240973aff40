package services

import (
	"errors"
	"fmt"
)

// Machine-readable error kinds returned by the mutating services. The
// controllers map these to HTTP status codes; nothing below the controller
// layer ever panics across the component boundary.
const (
	KindValidation          = "validation"
	KindInsufficientStock   = "insufficient_stock"
	KindAdjustmentUnderflow = "adjustment_underflow"
	KindNotFound            = "not_found"
	KindApprovalConflict    = "approval_conflict"
	KindInternal            = "internal"
)

type OpError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (e *OpError) Error() string {
	return e.Message
}

func opErr(kind, format string, args ...interface{}) *OpError {
	return &OpError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ErrKind extracts the kind from a service error, or "internal" for
// anything that is not an OpError (driver faults, broken connections).
func ErrKind(err error) string {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return KindInternal
}

func IsKind(err error, kind string) bool {
	return err != nil && ErrKind(err) == kind
}
