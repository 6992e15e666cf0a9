package memory

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/fullstack0516/express-digital-asset-backend/internal/repository"
)

// StorageImpl is an object store held in memory, used in development and tests.
type StorageImpl struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string][]byte
	deleted []string
}

func NewStorage(baseURL string) *StorageImpl {
	return &StorageImpl{baseURL: strings.TrimRight(baseURL, "/"), objects: make(map[string][]byte)}
}

func (s *StorageImpl) Save(_ context.Context, path string, data []byte, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = append([]byte(nil), data...)
	return s.baseURL + "/" + url.PathEscape(path), nil
}

func (s *StorageImpl) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[path]; !ok {
		return repository.ErrNotFound
	}
	delete(s.objects, path)
	s.deleted = append(s.deleted, path)
	return nil
}

// Has reports whether path is stored.
func (s *StorageImpl) Has(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[path]
	return ok
}

// Deleted lists the paths removed so far, sorted.
func (s *StorageImpl) Deleted() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]string(nil), s.deleted...)
	sort.Strings(out)
	return out
}
