package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fullstack0516/express-digital-asset-backend/internal/repository"
)

type QueueRepoImpl struct {
	mu    sync.Mutex
	items []string
}

func NewQueueRepo() *QueueRepoImpl {
	return &QueueRepoImpl{}
}

func (q *QueueRepoImpl) Push(_ context.Context, path string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, path)
	return nil
}

func (q *QueueRepoImpl) Pop(_ context.Context) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return "", repository.ErrQueueEmpty
	}
	head := q.items[0]
	q.items = q.items[1:]
	return head, nil
}

func (q *QueueRepoImpl) Size(_ context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(len(q.items)), nil
}

// PendingRepoImpl remembers queued paths until their expiry passes.
type PendingRepoImpl struct {
	mu      sync.Mutex
	now     func() time.Time
	expires map[string]time.Time
}

func NewPendingRepo() *PendingRepoImpl {
	return &PendingRepoImpl{now: time.Now, expires: make(map[string]time.Time)}
}

func (p *PendingRepoImpl) MarkPending(_ context.Context, path string, expiry time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.expires[path] = p.now().Add(expiry)
	return nil
}

func (p *PendingRepoImpl) IsPending(_ context.Context, path string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	exp, ok := p.expires[path]
	if !ok {
		return false, nil
	}
	if !p.now().Before(exp) {
		delete(p.expires, path)
		return false, nil
	}
	return true, nil
}

func (p *PendingRepoImpl) Clear(_ context.Context, path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.expires, path)
	return nil
}
