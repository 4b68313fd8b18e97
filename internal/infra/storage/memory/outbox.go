package memory

import (
	"context"
	"sync"

	appoutbox "campusrent/internal/app/outbox"
)

// Outbox keeps staged events in memory until flushed. Flushed records stay
// readable through Drain so tests and the dev loop can observe them.
type Outbox struct {
	mu      sync.Mutex
	pending []appoutbox.EventRecord
	flushed []appoutbox.EventRecord
}

func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending = append(o.pending, record)
	return nil
}

func (o *Outbox) Flush(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.flushed = append(o.flushed, o.pending...)
	o.pending = nil
	return nil
}

// Drain returns and clears every flushed record.
func (o *Outbox) Drain() []appoutbox.EventRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := o.flushed
	o.flushed = nil
	return out
}

var _ appoutbox.Outbox = (*Outbox)(nil)
