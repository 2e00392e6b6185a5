package store

import (
	"cmp"
	"context"
	"sync"
	"time"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	fprint "github.com/ChocolateLoverRaj/libfprint-cros"
)

// MemStore keeps prints in memory. It backs tests and single-run
// tools; nothing survives the process.
type MemStore struct {
	mu sync.RWMutex
	m  *treemap.Map // id -> memEntry
}

type memEntry struct {
	entry Entry
	data  []byte
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{m: treemap.NewWithStringComparator()}
}

func (s *MemStore) Save(_ context.Context, p *fprint.Print) (string, error) {
	data, err := p.Serialize()
	if err != nil {
		return "", err
	}
	id := uuid.NewString()

	s.mu.Lock()
	s.m.Put(id, memEntry{entry: entryOf(id, p, time.Now().UTC()), data: data})
	s.mu.Unlock()
	return id, nil
}

func (s *MemStore) Get(_ context.Context, id string) (*fprint.Print, error) {
	s.mu.RLock()
	v, ok := s.m.Get(id)
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return fprint.Deserialize(v.(memEntry).data)
}

func (s *MemStore) List(_ context.Context, username string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	s.m.Each(func(_ interface{}, v interface{}) {
		e := v.(memEntry).entry
		if username == "" || e.Username == username {
			out = append(out, e)
		}
	})
	slices.SortFunc(out, func(a, b Entry) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (s *MemStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.m.Get(id); !ok {
		return ErrNotFound
	}
	s.m.Remove(id)
	return nil
}

func (s *MemStore) Close() error { return nil }
