package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fullstack0516/express-digital-asset-backend/internal/repository"
	"github.com/fullstack0516/express-digital-asset-backend/pkg/metrics"
)

// MediaCleanup drains the media deletion queue.
type MediaCleanup interface {
	// ProcessNext deletes one queued path. It reports false when the queue was empty.
	// References are not re-checked; the orphan decision was made at enqueue time.
	ProcessNext(ctx context.Context) (bool, error)
	// Run drains the queue every interval until ctx is done.
	Run(ctx context.Context, interval time.Duration) error
}

type mediaCleanupUseCase struct {
	queue   repository.MediaQueueRepository
	pending repository.PendingDeletionRepository
	storage repository.ObjectStorage
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewMediaCleanup creates a new instance of the media cleanup worker.
func NewMediaCleanup(
	queue repository.MediaQueueRepository,
	pending repository.PendingDeletionRepository,
	storage repository.ObjectStorage,
	log *zap.Logger,
	m *metrics.Metrics,
) MediaCleanup {
	return &mediaCleanupUseCase{
		queue:   queue,
		pending: pending,
		storage: storage,
		log:     log.Named("media_cleanup"),
		metrics: m,
	}
}

func (uc *mediaCleanupUseCase) ProcessNext(ctx context.Context) (bool, error) {
	path, err := uc.queue.Pop(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrQueueEmpty) {
			// Queue is empty, which is a normal state.
			return false, nil
		}
		return false, fmt.Errorf("failed to pop media path from queue: %w", err)
	}

	if err := uc.storage.Delete(ctx, path); err != nil {
		uc.log.Warn("Failed to delete queued media file", zap.String("path", path), zap.Error(err))
		uc.metrics.IncMediaDeletion("failed")
	} else {
		uc.log.Debug("Deleted queued media file", zap.String("path", path))
		uc.metrics.IncMediaDeletion("deleted")
	}

	if err := uc.pending.Clear(ctx, path); err != nil {
		// Not critical: the marker expires on its own.
		uc.log.Warn("Failed to clear pending marker", zap.String("path", path), zap.Error(err))
	}
	return true, nil
}

func (uc *mediaCleanupUseCase) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	uc.log.Info("Media cleanup worker started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			uc.log.Info("Media cleanup worker stopped")
			return nil
		case <-ticker.C:
			uc.drain(ctx)
		}
	}
}

func (uc *mediaCleanupUseCase) drain(ctx context.Context) {
	for ctx.Err() == nil {
		processed, err := uc.ProcessNext(ctx)
		if err != nil {
			uc.log.Error("Media cleanup step failed", zap.Error(err))
			break
		}
		if !processed {
			break
		}
	}
	if size, err := uc.queue.Size(ctx); err == nil {
		uc.metrics.MediaInQueue.Set(float64(size))
	}
}
