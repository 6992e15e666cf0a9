package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
	"github.com/fullstack0516/express-digital-asset-backend/internal/repository"
)

// PageRepoImpl keeps pages in a map. Every read and write copies the document
// so callers never share state with the store.
type PageRepoImpl struct {
	mu    sync.RWMutex
	pages map[string]*entity.Page
}

func NewPageRepo() *PageRepoImpl {
	return &PageRepoImpl{pages: make(map[string]*entity.Page)}
}

func (r *PageRepoImpl) Get(_ context.Context, uid string) (*entity.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pages[uid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *PageRepoImpl) Create(_ context.Context, page *entity.Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pages[page.UID]; ok {
		return fmt.Errorf("page %s already exists", page.UID)
	}
	r.pages[page.UID] = page.Clone()
	return nil
}

func (r *PageRepoImpl) Save(_ context.Context, page *entity.Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.pages[page.UID]
	if !ok {
		return repository.ErrNotFound
	}
	next := page.Clone()
	next.TotalVisits = stored.TotalVisits
	next.TotalImpressions = stored.TotalImpressions
	r.pages[page.UID] = next
	return nil
}

func (r *PageRepoImpl) IncrementCounter(_ context.Context, uid string, counter entity.PageCounter, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pages[uid]
	if !ok || p.IsDeleted {
		return repository.ErrNotFound
	}
	switch counter {
	case entity.CounterVisits:
		p.TotalVisits += delta
	case entity.CounterImpressions:
		p.TotalImpressions += delta
	default:
		return fmt.Errorf("unknown page counter %q", counter)
	}
	return nil
}
