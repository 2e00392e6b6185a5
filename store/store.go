// Package store persists serialized fingerprint prints and the
// metadata needed to find them again: an id, the owning user, the
// finger and the producing device.
package store

import (
	"context"
	"errors"
	"time"

	fprint "github.com/ChocolateLoverRaj/libfprint-cros"
)

// ErrNotFound is returned when no print has the requested id.
var ErrNotFound = errors.New("print not found")

// Entry summarizes one stored print without its payload.
type Entry struct {
	ID        string
	Username  string
	Finger    fprint.Finger
	Driver    string
	DeviceID  string
	CreatedAt time.Time
}

// Store is a collection of enrolled prints. Save serializes the print
// and returns its new id; Get rebuilds the full print. List returns
// entries in creation order; an empty username returns everything.
type Store interface {
	Save(ctx context.Context, p *fprint.Print) (string, error)
	Get(ctx context.Context, id string) (*fprint.Print, error)
	List(ctx context.Context, username string) ([]Entry, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

func entryOf(id string, p *fprint.Print, created time.Time) Entry {
	return Entry{
		ID:        id,
		Username:  p.Username(),
		Finger:    p.Finger(),
		Driver:    p.Driver(),
		DeviceID:  p.DeviceID(),
		CreatedAt: created,
	}
}
