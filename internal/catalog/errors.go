package catalog

import (
	"fmt"

	"github.com/rohmanhakim/ikea-catalog/internal/metadata"
	"github.com/rohmanhakim/ikea-catalog/pkg/failure"
)

type ClientErrorCause string

const (
	ErrCauseNetworkFailure ClientErrorCause = "network failure"
	ErrCauseUpstreamStatus ClientErrorCause = "unexpected upstream status"
	ErrCauseDecodeFailure  ClientErrorCause = "malformed response"
	ErrCauseMissingField   ClientErrorCause = "missing required field"
	ErrCauseNoModel        ClientErrorCause = "no model available"
	ErrCauseCacheFailure   ClientErrorCause = "cache failure"
	ErrCauseInvalidItemNo  ClientErrorCause = "invalid item number"
)

// ClientError is the single error kind every operation surfaces. Op names
// the failing operation, Subject the item number or query it was acting on.
type ClientError struct {
	Op        string
	Subject   string
	Message   string
	Retryable bool
	Cause     ClientErrorCause
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("%s %q: %s: %s", e.Op, e.Subject, e.Cause, e.Message)
}

func (e *ClientError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// IsRetryable returns whether this error is classified as transient.
// The client performs no retries; the classification is observational.
func (e *ClientError) IsRetryable() bool {
	return e.Retryable
}

// mapClientErrorToMetadataCause maps client-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapClientErrorToMetadataCause(err *ClientError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseNetworkFailure:
		return metadata.CauseNetworkFailure
	case ErrCauseUpstreamStatus:
		return metadata.CauseUpstreamStatus
	case ErrCauseDecodeFailure, ErrCauseMissingField, ErrCauseInvalidItemNo:
		return metadata.CauseContentInvalid
	case ErrCauseCacheFailure:
		return metadata.CauseStorageFailure
	case ErrCauseNoModel:
		return metadata.CauseNoModel
	default:
		return metadata.CauseUnknown
	}
}
