package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ChocolateLoverRaj/libfprint-cros/fprinttest"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := Open(filepath.Join(t.TempDir(), "prints.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Store{
		"sqlite": sqlite,
		"memory": NewMemStore(),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			p := fprinttest.NewNbisPrint(t, "synaptics", "0852", 1, 2)
			p.SetUsername("alice")

			id, err := s.Save(ctx, p)
			if err != nil {
				t.Fatalf("Save: %v", err)
			}
			if id == "" {
				t.Fatalf("Save returned empty id")
			}

			got, err := s.Get(ctx, id)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if eq, err := p.Equal(got); err != nil || !eq {
				t.Fatalf("stored print differs: eq=%v err=%v", eq, err)
			}
			if got.Username() != "alice" {
				t.Fatalf("username = %q, want alice", got.Username())
			}
		})
	}
}

func TestStoreListFiltersByUsername(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			alice := fprinttest.NewRawPrint(t, "upekts", "00", []byte{1})
			alice.SetUsername("alice")
			bob := fprinttest.NewRawPrint(t, "upekts", "00", []byte{2})
			bob.SetUsername("bob")

			aliceID, err := s.Save(ctx, alice)
			if err != nil {
				t.Fatalf("Save: %v", err)
			}
			if _, err := s.Save(ctx, bob); err != nil {
				t.Fatalf("Save: %v", err)
			}

			entries, err := s.List(ctx, "alice")
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(entries) != 1 || entries[0].ID != aliceID {
				t.Fatalf("List(alice) = %+v", entries)
			}
			if entries[0].Driver != "upekts" || entries[0].DeviceID != "00" {
				t.Fatalf("entry identity = %s/%s", entries[0].Driver, entries[0].DeviceID)
			}
			if entries[0].CreatedAt.IsZero() {
				t.Fatalf("entry has no created-at time")
			}

			all, err := s.List(ctx, "")
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(all) != 2 {
				t.Fatalf("List() returned %d entries, want 2", len(all))
			}
		})
	}
}

// Both backends list in creation order, so callers can swap one for
// the other without re-sorting.
func TestStoreListsInCreationOrder(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			var ids []string
			for i := byte(0); i < 3; i++ {
				id, err := s.Save(ctx, fprinttest.NewRawPrint(t, "upekts", "00", []byte{i}))
				if err != nil {
					t.Fatalf("Save: %v", err)
				}
				ids = append(ids, id)
				// Keep the timestamps distinct on coarse clocks.
				time.Sleep(time.Millisecond)
			}

			entries, err := s.List(ctx, "")
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(entries) != len(ids) {
				t.Fatalf("List returned %d entries, want %d", len(entries), len(ids))
			}
			for i, e := range entries {
				if e.ID != ids[i] {
					t.Fatalf("entry %d = %s, want %s", i, e.ID, ids[i])
				}
			}
		})
	}
}

func TestStoreDelete(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			id, err := s.Save(ctx, fprinttest.NewRawPrint(t, "upekts", "00", []byte{1}))
			if err != nil {
				t.Fatalf("Save: %v", err)
			}
			if err := s.Delete(ctx, id); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := s.Get(ctx, id); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get after delete: %v, want ErrNotFound", err)
			}
			if err := s.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
				t.Fatalf("second Delete: %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStoreGetMissing(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get(context.Background(), "no-such-id"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("err = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestSQLiteStoreReopens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prints.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	p := fprinttest.NewNbisPrint(t, "synaptics", "0852", 7)
	p.SetUsername("carol")
	id, err := s.Save(ctx, p)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	got, err := s2.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if eq, err := p.Equal(got); err != nil || !eq {
		t.Fatalf("print lost across reopen: eq=%v err=%v", eq, err)
	}
}
