package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/iliyamo/hotel-room-booking/internal/hotel"
)

// Backend stores one opaque snapshot.  Write must replace the previous
// snapshot atomically: readers see either the old bytes or the new ones.
type Backend interface {
	// Read returns the stored snapshot or ErrSnapshotNotFound.
	Read(ctx context.Context) ([]byte, error)
	// Write replaces the stored snapshot.
	Write(ctx context.Context, data []byte) error
	// Location describes where the snapshot lives, for log messages.
	Location() string
}

// Provider saves and loads the whole hotel through a Backend.  It keeps no
// reference to the state between calls.
type Provider struct {
	backend Backend
	now     func() time.Time
}

// NewProvider returns a Provider writing to backend.
func NewProvider(backend Backend) *Provider {
	return &Provider{backend: backend, now: time.Now}
}

// Location returns the backend location.
func (p *Provider) Location() string { return p.backend.Location() }

// Save writes the entire state as one snapshot, replacing any previous one.
// Every failure is wrapped in ErrIO.
func (p *Provider) Save(ctx context.Context, s *hotel.State) error {
	data, err := NewSnapshot(s, p.now()).Encode()
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrIO, err)
	}
	if err := p.backend.Write(ctx, data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrIO, p.backend.Location(), err)
	}
	return nil
}

// Load reconstructs the state from the stored snapshot.  A missing,
// unreadable, corrupt or inconsistent snapshot all report false; the reason
// is logged and never returned.
func (p *Provider) Load(ctx context.Context, opts ...hotel.Option) (*hotel.State, bool) {
	data, err := p.backend.Read(ctx)
	if err != nil {
		if !errors.Is(err, ErrSnapshotNotFound) {
			log.Printf("repository: read %s: %v", p.backend.Location(), err)
		}
		return nil, false
	}
	snap, err := DecodeSnapshot(data)
	if err != nil {
		log.Printf("repository: %s: %v", p.backend.Location(), err)
		return nil, false
	}
	s, err := snap.Restore(opts...)
	if err != nil {
		log.Printf("repository: restore %s: %v", p.backend.Location(), err)
		return nil, false
	}
	return s, true
}

// LoadOrNew returns the stored state, or a freshly seeded one when nothing
// usable is stored.  The boolean reports whether a snapshot was loaded.
func (p *Provider) LoadOrNew(ctx context.Context, opts ...hotel.Option) (*hotel.State, bool) {
	if s, ok := p.Load(ctx, opts...); ok {
		return s, true
	}
	return hotel.New(opts...), false
}
