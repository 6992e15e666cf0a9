package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/fullstack0516/express-digital-asset-backend/internal/repository"
)

const mediaQueueKey = "media:delete-queue"

// QueueRepoImpl provides a concrete implementation for the MediaQueueRepository interface using Redis Lists.
type QueueRepoImpl struct {
	client *redis.Client
}

// NewQueueRepo creates a new instance of QueueRepoImpl.
func NewQueueRepo(client *redis.Client) *QueueRepoImpl {
	return &QueueRepoImpl{client: client}
}

// Push adds a storage path to the left side of the list.
func (r *QueueRepoImpl) Push(ctx context.Context, path string) error {
	return r.client.LPush(ctx, mediaQueueKey, path).Err()
}

// Pop removes and returns a path from the right side of the list.
// An empty list is reported as repository.ErrQueueEmpty.
func (r *QueueRepoImpl) Pop(ctx context.Context) (string, error) {
	path, err := r.client.RPop(ctx, mediaQueueKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", repository.ErrQueueEmpty
	}
	return path, err
}

// Size returns the current number of items in the queue.
func (r *QueueRepoImpl) Size(ctx context.Context) (int64, error) {
	return r.client.LLen(ctx, mediaQueueKey).Result()
}
