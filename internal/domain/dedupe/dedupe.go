package dedupe

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const defaultMaxSize = 50_000

// State is what a deduper knows about a key when it is claimed.
type State int

// Key states.
const (
	// Fresh means the key was unknown and is now held as pending by the caller.
	Fresh State = iota
	// Pending means another request holds the key and has not finished.
	Pending
	// Done means a request with the key completed successfully.
	Done
)

// Deduper records idempotency keys so a retried write is applied once.
// A key is pending from Claim until Complete or Unrecord.
type Deduper interface {
	// Claim atomically looks key up and, when it is unknown, records it
	// as pending.
	Claim(ctx context.Context, key string) State

	// Complete marks a pending key as done.
	Complete(ctx context.Context, key string)

	// Unrecord forgets key so the request can be retried, e.g. after the
	// write it guarded failed.
	Unrecord(ctx context.Context, key string)

	Size() int64
}

type entry struct {
	key    string
	seenAt time.Time
	done   bool
}

// inMemoryDeduper keeps keys in insertion order; the front of the list is
// the oldest key. Eviction is first in, first out: a hit does not refresh
// a key's position or age.
type inMemoryDeduper struct {
	mu      sync.Mutex
	index   map[string]*list.Element
	order   *list.List
	maxSize int
	ttl     time.Duration
	now     func() time.Time
	size    atomic.Int64
}

// NewInMemoryDeduper creates an in-memory deduper.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		index:   make(map[string]*list.Element),
		order:   list.New(),
		maxSize: defaultMaxSize,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *inMemoryDeduper) Claim(_ context.Context, key string) State {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	d.expire(now)

	if el, ok := d.index[key]; ok {
		if el.Value.(entry).done {
			return Done
		}
		return Pending
	}
	if d.maxSize > 0 && d.order.Len() >= d.maxSize {
		d.remove(d.order.Front())
	}
	d.index[key] = d.order.PushBack(entry{key: key, seenAt: now})
	d.size.Store(int64(d.order.Len()))
	return Fresh
}

func (d *inMemoryDeduper) Complete(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.index[key]; ok {
		e := el.Value.(entry)
		e.done = true
		el.Value = e
	}
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.index[key]; ok {
		d.remove(el)
	}
}

func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}

// expire drops keys older than the ttl. Caller holds d.mu.
func (d *inMemoryDeduper) expire(now time.Time) {
	if d.ttl <= 0 {
		return
	}
	for el := d.order.Front(); el != nil; el = d.order.Front() {
		if now.Sub(el.Value.(entry).seenAt) < d.ttl {
			return
		}
		d.remove(el)
	}
}

// remove deletes el from both indexes. Caller holds d.mu.
func (d *inMemoryDeduper) remove(el *list.Element) {
	if el == nil {
		return
	}
	delete(d.index, el.Value.(entry).key)
	d.order.Remove(el)
	d.size.Store(int64(d.order.Len()))
}
