package jobcontext

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const (
	keyJobID      contextKey = "job_id"
	keyJobType    contextKey = "job_type"
	keyWorkerID   contextKey = "worker_id"
	keyAttempt    contextKey = "attempt"
	keyStartTime  contextKey = "start_time"
	keyMaxRetries contextKey = "max_retries"
)

// JobMetadata holds metadata for a job execution
type JobMetadata struct {
	JobID      uuid.UUID
	JobType    string
	WorkerID   int
	Attempt    int
	MaxRetries int
	StartTime  time.Time
}

// JobBegin derives a job context with metadata and a 5 minute timeout.
// Each reconcile job is a short all-or-nothing unit; a caller that times out
// retries the whole call and relies on the ledger's idempotency.
func JobBegin(parent context.Context, jobID uuid.UUID, jobType string, workerID int) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, 5*time.Minute)

	ctx = context.WithValue(ctx, keyJobID, jobID)
	ctx = context.WithValue(ctx, keyJobType, jobType)
	ctx = context.WithValue(ctx, keyWorkerID, workerID)
	ctx = context.WithValue(ctx, keyAttempt, 0)
	ctx = context.WithValue(ctx, keyMaxRetries, 3)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())

	return ctx, cancel
}

// JobEnd runs the job function with panic recovery and retries on transient
// failures, backing off exponentially between attempts
func JobEnd(ctx context.Context, jobFunc func(context.Context) error) error {
	var (
		err        error
		maxRetries = GetMaxRetries(ctx)
		attempt    = 0
	)

	for attempt < maxRetries {
		func(ctx context.Context) {
			defer func() {
				if p := recover(); p != nil {
					err = fmt.Errorf("panic recovered: %v", p)
				}
			}()

			if ctx.Err() != nil {
				err = fmt.Errorf("context cancelled before job execution: %w", ctx.Err())
				return
			}

			err = jobFunc(ctx)
		}(ctx)

		if err == nil {
			return nil
		}

		if !IsRetryableError(err) {
			return fmt.Errorf("non-retryable error: %w", err)
		}

		attempt++
		if attempt >= maxRetries {
			return fmt.Errorf("max retries (%d) exceeded: %w", maxRetries, err)
		}

		if ctx.Err() != nil {
			return fmt.Errorf("context cancelled during retry: %w", ctx.Err())
		}
		time.Sleep(CalculateBackoff(attempt, 5*time.Second))
	}

	return fmt.Errorf("job failed after %d attempts: %w", maxRetries, err)
}

// GetJobID extracts job ID from context
func GetJobID(ctx context.Context) (uuid.UUID, bool) {
	jobID, ok := ctx.Value(keyJobID).(uuid.UUID)
	return jobID, ok
}

// GetJobType extracts job type from context
func GetJobType(ctx context.Context) (string, bool) {
	jobType, ok := ctx.Value(keyJobType).(string)
	return jobType, ok
}

// GetWorkerID extracts worker ID from context
func GetWorkerID(ctx context.Context) int {
	workerID, ok := ctx.Value(keyWorkerID).(int)
	if !ok {
		return -1
	}
	return workerID
}

// GetMaxRetries extracts max retries from context
func GetMaxRetries(ctx context.Context) int {
	maxRetries, ok := ctx.Value(keyMaxRetries).(int)
	if !ok {
		return 3
	}
	return maxRetries
}

// GetJobMetadata extracts all job metadata from context
func GetJobMetadata(ctx context.Context) *JobMetadata {
	jobID, _ := GetJobID(ctx)
	jobType, _ := GetJobType(ctx)
	startTime, _ := ctx.Value(keyStartTime).(time.Time)
	attempt, _ := ctx.Value(keyAttempt).(int)

	return &JobMetadata{
		JobID:      jobID,
		JobType:    jobType,
		WorkerID:   GetWorkerID(ctx),
		Attempt:    attempt,
		MaxRetries: GetMaxRetries(ctx),
		StartTime:  startTime,
	}
}

// IsRetryableError checks if an error should trigger a retry.
// Transient infrastructure failures and write conflicts retry; malformed
// input never does.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	// Context errors (timeout, cancelled)
	if strings.Contains(errStr, "context deadline exceeded") ||
		strings.Contains(errStr, "context canceled") {
		return true
	}

	// Network errors
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Optimistic-concurrency conflicts on the ledger
	if strings.Contains(errStr, "version conflict") ||
		strings.Contains(errStr, "modified concurrently") {
		return true
	}

	// Database deadlock/serialization errors (Postgres)
	if strings.Contains(errStr, "deadlock") ||
		strings.Contains(errStr, "40001") || // serialization_failure
		strings.Contains(errStr, "40p01") { // deadlock_detected
		return true
	}

	return false
}

// CalculateBackoff calculates exponential backoff duration
func CalculateBackoff(attempt int, baseDelay time.Duration) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	// 2^attempt * baseDelay, max 60 seconds
	backoff := time.Duration(1<<uint(attempt)) * baseDelay

	maxBackoff := 60 * time.Second
	if backoff > maxBackoff {
		backoff = maxBackoff
	}

	return backoff
}
