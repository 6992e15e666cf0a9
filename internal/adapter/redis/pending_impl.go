package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fullstack0516/express-digital-asset-backend/pkg/utils"
)

const pendingPathPrefix = "media:pending:"

// PendingRepoImpl provides a concrete implementation for the PendingDeletionRepository interface using Redis.
type PendingRepoImpl struct {
	client *redis.Client
}

// NewPendingRepo creates a new instance of PendingRepoImpl.
func NewPendingRepo(client *redis.Client) *PendingRepoImpl {
	return &PendingRepoImpl{client: client}
}

// generateKey hashes the path so arbitrary object names make safe keys.
func (r *PendingRepoImpl) generateKey(path string) string {
	return fmt.Sprintf("%s%s", pendingPathPrefix, utils.HashURL(path))
}

func (r *PendingRepoImpl) MarkPending(ctx context.Context, path string, expiry time.Duration) error {
	return r.client.SetEx(ctx, r.generateKey(path), "1", expiry).Err()
}

func (r *PendingRepoImpl) IsPending(ctx context.Context, path string) (bool, error) {
	val, err := r.client.Exists(ctx, r.generateKey(path)).Result()
	if err != nil {
		return false, err
	}
	return val == 1, nil
}

func (r *PendingRepoImpl) Clear(ctx context.Context, path string) error {
	return r.client.Del(ctx, r.generateKey(path)).Err()
}
