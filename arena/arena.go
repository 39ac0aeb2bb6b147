// Package arena provides a growable slot table with generation-checked
// handles. Elements are addressed by [Handle] values instead of pointers:
// releasing a slot bumps its generation, so any handle kept past the
// release is detected as stale instead of dangling.
package arena

import "github.com/dsuite/dlist/errors"

var (
	// ErrFull is returned by Alloc when a capacity-bounded arena has no
	// free slot left.
	ErrFull = errors.New("arena is full")

	// ErrStaleHandle is returned when a handle does not refer to a live
	// slot: it was released, the arena was reset, or the handle is nil.
	ErrStaleHandle = errors.New("stale arena handle")
)

// Handle is an indirect reference to an arena slot. The zero value is the
// nil handle and never refers to a live slot.
type Handle struct {
	index uint32
	gen   uint32
}

// IsNil reports whether h is the nil handle.
func (h Handle) IsNil() bool {
	return h.gen == 0
}

type slot[E any] struct {
	gen  uint32
	live bool
	val  E
}

// Arena is a slot table for values of type E. The zero value is not usable;
// use [New].
type Arena[E any] struct {
	slots   []slot[E]
	free    []uint32
	live    int
	maxLive int // 0 means unbounded
}

type arenaConfig struct {
	maxLive int
}

// Option configures an arena.
type Option func(*arenaConfig)

// WithCapacity bounds the arena to at most n live slots. Alloc fails with
// [ErrFull] once the bound is reached.
func WithCapacity(n int) Option {
	return func(cfg *arenaConfig) {
		cfg.maxLive = n
	}
}

// New creates an empty arena.
func New[E any](opts ...Option) *Arena[E] {
	var cfg arenaConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Arena[E]{maxLive: cfg.maxLive}
}

// Len returns the number of live slots.
func (a *Arena[E]) Len() int {
	return a.live
}

// Cap returns the current size of the slot table, live and free slots
// included.
func (a *Arena[E]) Cap() int {
	return len(a.slots)
}

// Alloc stores val in a free slot and returns its handle. A released slot is
// reused before the table grows. On failure the arena is unchanged.
func (a *Arena[E]) Alloc(val E) (Handle, error) {
	if a.maxLive > 0 && a.live >= a.maxLive {
		return Handle{}, ErrFull
	}

	var index uint32
	if n := len(a.free); n > 0 {
		index = a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[index].live = true
		a.slots[index].val = val
	} else {
		a.slots = append(a.slots, slot[E]{gen: 1, live: true, val: val})
		index = uint32(len(a.slots) - 1) //nolint:gosec
	}

	a.live++

	return Handle{index: index, gen: a.slots[index].gen}, nil
}

// Get returns a pointer to the element referred to by h. The pointer is
// valid until the slot is released or the arena is reset.
func (a *Arena[E]) Get(h Handle) (*E, error) {
	s, err := a.lookup(h)
	if err != nil {
		return nil, err
	}

	return &s.val, nil
}

// Release frees the slot referred to by h. The element is scrubbed and the
// slot generation is bumped, so h and every copy of it become stale.
// Releasing an already released slot returns [ErrStaleHandle].
func (a *Arena[E]) Release(h Handle) error {
	s, err := a.lookup(h)
	if err != nil {
		return err
	}

	a.release(h.index, s)

	return nil
}

// Reset releases every live slot in a single pass. Outstanding handles go
// stale; the table itself is kept for reuse.
func (a *Arena[E]) Reset() {
	for i := range a.slots {
		if a.slots[i].live {
			a.release(uint32(i), &a.slots[i]) //nolint:gosec
		}
	}
}

func (a *Arena[E]) release(index uint32, s *slot[E]) {
	var zero E
	s.val = zero
	s.live = false
	s.gen++
	a.free = append(a.free, index)
	a.live--
}

func (a *Arena[E]) lookup(h Handle) (*slot[E], error) {
	if h.IsNil() || int(h.index) >= len(a.slots) {
		return nil, ErrStaleHandle
	}

	s := &a.slots[h.index]
	if !s.live || s.gen != h.gen {
		return nil, ErrStaleHandle
	}

	return s, nil
}
