package savedsearch

import (
	"context"
	"sync"

	"github.com/ticketscan/ticketscan/internal/models"
)

// MemoryStore is the in-process store used when Redis is disabled. Entries
// do not survive a restart.
type MemoryStore struct {
	mu       sync.Mutex
	searches []models.SavedSearch
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) List(ctx context.Context) ([]models.SavedSearch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.SavedSearch, len(s.searches))
	copy(out, s.searches)
	return out, nil
}

func (s *MemoryStore) Save(ctx context.Context, search models.SavedSearch) (models.SavedSearch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	search = stamp(search)
	s.searches = append([]models.SavedSearch{search}, s.searches...)
	if len(s.searches) > MaxEntries {
		s.searches = s.searches[:MaxEntries]
	}
	return search, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.searches[:0]
	for _, sr := range s.searches {
		if sr.ID != id {
			filtered = append(filtered, sr)
		}
	}
	s.searches = filtered
	return nil
}

func (s *MemoryStore) UpdateNote(ctx context.Context, id, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.searches {
		if s.searches[i].ID == id {
			s.searches[i].Note = note
			return nil
		}
	}
	return ErrNotFound
}
