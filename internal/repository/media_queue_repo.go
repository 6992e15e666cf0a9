package repository

import (
	"context"
	"errors"
	"time"
)

// ErrQueueEmpty is returned by Pop when nothing is waiting.
var ErrQueueEmpty = errors.New("queue is empty")

// MediaQueueRepository defines a FIFO queue of storage paths awaiting deletion.
type MediaQueueRepository interface {
	// Push adds a path to the end of the queue.
	Push(ctx context.Context, path string) error
	// Pop removes and returns the path at the front of the queue.
	Pop(ctx context.Context) (string, error)
	// Size returns the current number of items in the queue.
	Size(ctx context.Context) (int64, error)
}

// PendingDeletionRepository deduplicates paths already queued for deletion.
type PendingDeletionRepository interface {
	// MarkPending flags a path as queued for the given expiry.
	MarkPending(ctx context.Context, path string, expiry time.Duration) error
	// IsPending checks whether the path was queued recently.
	IsPending(ctx context.Context, path string) (bool, error)
	// Clear drops the flag once the path has been handled.
	Clear(ctx context.Context, path string) error
}
