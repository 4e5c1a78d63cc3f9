package cache

import (
	"fmt"

	"github.com/rohmanhakim/ikea-catalog/pkg/failure"
)

type CacheErrorCause string

const (
	ErrCausePathError   CacheErrorCause = "path error"
	ErrCauseReadFailure CacheErrorCause = "read failed"
	ErrCauseWriteFail   CacheErrorCause = "write failed"
)

type CacheError struct {
	Message   string
	Retryable bool
	Cause     CacheErrorCause
	Path      string
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache error: %s: %s", e.Cause, e.Message)
}

func (e *CacheError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}
