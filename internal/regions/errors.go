package regions

import (
	"fmt"

	"github.com/rohmanhakim/ikea-catalog/pkg/failure"
)

type RegionsErrorCause string

const (
	ErrCauseNetworkFailure RegionsErrorCause = "network failure"
	ErrCauseUpstreamStatus RegionsErrorCause = "unexpected upstream status"
	ErrCauseDecodeFailure  RegionsErrorCause = "malformed regions dataset"
)

type RegionsError struct {
	Message   string
	Retryable bool
	Cause     RegionsErrorCause
}

func (e *RegionsError) Error() string {
	return fmt.Sprintf("regions error: %s: %s", e.Cause, e.Message)
}

func (e *RegionsError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}
