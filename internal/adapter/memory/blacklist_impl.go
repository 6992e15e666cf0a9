package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
)

type BlacklistRepoImpl struct {
	mu      sync.RWMutex
	entries []entity.BlacklistedDataCategory
}

func NewBlacklistRepo() *BlacklistRepoImpl {
	return &BlacklistRepoImpl{}
}

func (r *BlacklistRepoImpl) Exists(_ context.Context, userUID, category string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Contains(r.entries, entity.BlacklistedDataCategory{UserUID: userUID, Category: category}), nil
}

func (r *BlacklistRepoImpl) Insert(_ context.Context, entry entity.BlacklistedDataCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *BlacklistRepoImpl) Delete(_ context.Context, userUID, category string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = slices.DeleteFunc(r.entries, func(e entity.BlacklistedDataCategory) bool {
		return e.UserUID == userUID && e.Category == category
	})
	return nil
}

func (r *BlacklistRepoImpl) List(_ context.Context, userUID string) ([]entity.BlacklistedDataCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []entity.BlacklistedDataCategory{}
	for _, e := range r.entries {
		if e.UserUID == userUID {
			out = append(out, e)
		}
	}
	return out, nil
}
