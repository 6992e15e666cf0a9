package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
	"github.com/fullstack0516/express-digital-asset-backend/internal/repository"
)

type UserDataTagRepoImpl struct {
	mu   sync.RWMutex
	rows []entity.UserDataTag
}

func NewUserDataTagRepo() *UserDataTagRepoImpl {
	return &UserDataTagRepoImpl{}
}

func (r *UserDataTagRepoImpl) InsertMany(_ context.Context, tags []entity.UserDataTag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range tags {
		t.ContentCategories = slices.Clone(t.ContentCategories)
		r.rows = append(r.rows, t)
	}
	return nil
}

func (r *UserDataTagRepoImpl) FindRecent(_ context.Context, q repository.UserDataTagQuery) ([]entity.UserDataTag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.UserDataTag
	for _, t := range r.rows {
		if t.UserUID != q.UserUID || t.TagRecordedForUserIso.After(q.RecordedAtOrBefore) {
			continue
		}
		if q.Category != "" && !slices.Contains(t.ContentCategories, q.Category) {
			continue
		}
		t.ContentCategories = slices.Clone(t.ContentCategories)
		out = append(out, t)
	}
	slices.SortStableFunc(out, func(a, b entity.UserDataTag) int {
		return b.TagRecordedForUserIso.Compare(a.TagRecordedForUserIso)
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (r *UserDataTagRepoImpl) DeleteByCategory(_ context.Context, userUID, category string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	before := len(r.rows)
	r.rows = slices.DeleteFunc(r.rows, func(t entity.UserDataTag) bool {
		return t.UserUID == userUID && slices.Contains(t.ContentCategories, category)
	})
	return int64(before - len(r.rows)), nil
}

func (r *UserDataTagRepoImpl) CountForUser(_ context.Context, userUID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, t := range r.rows {
		if t.UserUID == userUID {
			n++
		}
	}
	return n, nil
}
