package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
	"github.com/fullstack0516/express-digital-asset-backend/internal/repository"
)

type PageHistoryRepoImpl struct {
	mu   sync.RWMutex
	rows []entity.PageHistory
}

func NewPageHistoryRepo() *PageHistoryRepoImpl {
	return &PageHistoryRepoImpl{}
}

func (r *PageHistoryRepoImpl) FindByUserAndPage(_ context.Context, userUID, pageUID string) (*entity.PageHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, h := range r.rows {
		if h.UserUID == userUID && h.PageUID == pageUID {
			return copyHistory(h), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *PageHistoryRepoImpl) Create(_ context.Context, history *entity.PageHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *copyHistory(*history))
	return nil
}

func (r *PageHistoryRepoImpl) RecordRevisit(_ context.Context, uid string, at time.Time, publishIso *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].UID != uid {
			continue
		}
		r.rows[i].NumberOfVisits++
		r.rows[i].LastUpdateIso = at
		if publishIso != nil {
			t := *publishIso
			r.rows[i].LastPagePublishIso = &t
		}
		return nil
	}
	return repository.ErrNotFound
}

// Count returns the number of rows for the pair.
func (r *PageHistoryRepoImpl) Count(userUID, pageUID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, h := range r.rows {
		if h.UserUID == userUID && h.PageUID == pageUID {
			n++
		}
	}
	return n
}

func copyHistory(h entity.PageHistory) *entity.PageHistory {
	if h.LastPagePublishIso != nil {
		t := *h.LastPagePublishIso
		h.LastPagePublishIso = &t
	}
	return &h
}
