// Package dlist implements a generic doubly linked list backed by a slot
// arena. Node links are [arena.Handle] values, not pointers, so a reference
// kept past a removal is detected as stale instead of dangling.
package dlist

import (
	"fmt"
	"iter"
	"strings"

	"github.com/dsuite/dlist/arena"
	"github.com/dsuite/dlist/config"
	"github.com/dsuite/dlist/errors"
)

// ErrEmpty is returned by PopFront and PopBack when the list has no
// elements. Check IsEmpty or Len before popping to avoid it.
var ErrEmpty = errors.New("list is empty")

// node is a chain element. next and prev are handles into the list's arena;
// the nil handle marks the ends of the chain.
type node[T any] struct {
	val  T
	prev arena.Handle
	next arena.Handle
}

// List is a doubly linked list. Use [New] to create one. A List must not be
// accessed concurrently from multiple goroutines without external
// synchronization.
type List[T any] struct {
	nodes   *arena.Arena[node[T]]
	head    arena.Handle
	tail    arena.Handle
	size    int
	version uint64
}

type listConfig struct {
	capacity int
}

// Option configures a list.
type Option func(*listConfig)

// WithCapacity bounds the list to at most n elements. PushFront and PushBack
// fail with an error wrapping [arena.ErrFull] once the bound is reached.
func WithCapacity(n int) Option {
	return func(cfg *listConfig) {
		cfg.capacity = n
	}
}

// New creates an empty list.
func New[T any](opts ...Option) *List[T] {
	var cfg listConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var arenaOpts []arena.Option
	if cfg.capacity > 0 {
		arenaOpts = append(arenaOpts, arena.WithCapacity(cfg.capacity))
	}

	return &List[T]{nodes: arena.New[node[T]](arenaOpts...)}
}

// Len returns the number of elements in the list.
func (l *List[T]) Len() int {
	return l.size
}

// IsEmpty checks if the list is empty.
func (l *List[T]) IsEmpty() bool {
	return l.size == 0
}

// PushFront adds a new element to the front of the list. On failure the
// list is unchanged.
func (l *List[T]) PushFront(val T) error {
	h, err := l.nodes.Alloc(node[T]{val: val, next: l.head})
	if err != nil {
		return errors.Wrap(err, "allocate node")
	}

	if l.head.IsNil() {
		l.tail = h
	} else {
		l.mustNode(l.head).prev = h
	}

	l.head = h
	l.size++
	l.version++

	return nil
}

// PushBack adds a new element to the end of the list. On failure the list
// is unchanged.
func (l *List[T]) PushBack(val T) error {
	h, err := l.nodes.Alloc(node[T]{val: val, prev: l.tail})
	if err != nil {
		return errors.Wrap(err, "allocate node")
	}

	if l.tail.IsNil() {
		l.head = h
	} else {
		l.mustNode(l.tail).next = h
	}

	l.tail = h
	l.size++
	l.version++

	return nil
}

// PopFront removes the first element and returns its value. The node's slot
// is released back to the arena; ownership of the value moves to the caller.
func (l *List[T]) PopFront() (T, error) { //nolint:ireturn
	if l.head.IsNil() {
		var zero T
		return zero, ErrEmpty
	}

	n := l.mustNode(l.head)
	val := n.val
	next := n.next
	l.mustRelease(l.head)

	l.head = next
	if l.head.IsNil() {
		l.tail = arena.Handle{}
	} else {
		l.mustNode(l.head).prev = arena.Handle{}
	}

	l.size--
	l.version++

	return val, nil
}

// PopBack removes the last element and returns its value. The previous
// handle makes this O(1).
func (l *List[T]) PopBack() (T, error) { //nolint:ireturn
	if l.tail.IsNil() {
		var zero T
		return zero, ErrEmpty
	}

	n := l.mustNode(l.tail)
	val := n.val
	prev := n.prev
	l.mustRelease(l.tail)

	l.tail = prev
	if l.tail.IsNil() {
		l.head = arena.Handle{}
	} else {
		l.mustNode(l.tail).next = arena.Handle{}
	}

	l.size--
	l.version++

	return val, nil
}

// Front returns the value of the first element without removing it.
func (l *List[T]) Front() (T, bool) { //nolint:ireturn
	if l.head.IsNil() {
		var zero T
		return zero, false
	}

	return l.mustNode(l.head).val, true
}

// Back returns the value of the last element without removing it.
func (l *List[T]) Back() (T, bool) { //nolint:ireturn
	if l.tail.IsNil() {
		var zero T
		return zero, false
	}

	return l.mustNode(l.tail).val, true
}

// All returns an iterator for all elements in the list, head to tail. The
// iterator borrows values without mutating the list and can be re-ranged to
// restart from the head. Mutating the list while a range is in flight makes
// the next iteration step panic, unless the guard is disabled via
// [config.NoTraversalGuard].
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		version := l.version
		guard := !config.NoTraversalGuard()

		for h := l.head; !h.IsNil(); {
			n := l.mustNode(h)
			next := n.next

			if !yield(n.val) {
				return
			}

			if guard && l.version != version {
				panic("dlist: list mutated during traversal")
			}

			h = next
		}
	}
}

// Backward returns an iterator for all elements in the list in reverse
// order. Same mutation-guard contract as [List.All].
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		version := l.version
		guard := !config.NoTraversalGuard()

		for h := l.tail; !h.IsNil(); {
			n := l.mustNode(h)
			prev := n.prev

			if !yield(n.val) {
				return
			}

			if guard && l.version != version {
				panic("dlist: list mutated during traversal")
			}

			h = prev
		}
	}
}

// Clear removes all elements from the list. The whole arena is released in
// one pass; outstanding handles and in-flight iterators go stale. The list
// stays valid and empty, so Clear is safe to call more than once.
func (l *List[T]) Clear() {
	l.nodes.Reset()
	l.head = arena.Handle{}
	l.tail = arena.Handle{}
	l.size = 0
	l.version++
}

// String renders the list head to tail for diagnostics:
//
//	7 <-> 2 <-> 10 <-> 4 <-> nil (len=4)
func (l *List[T]) String() string {
	var sb strings.Builder
	for val := range l.All() {
		fmt.Fprintf(&sb, "%v <-> ", val)
	}

	sb.WriteString("nil")
	fmt.Fprintf(&sb, " (len=%d)", l.size)

	return sb.String()
}

// mustNode resolves a handle held by the list itself. A failure means the
// chain links no longer agree with the arena.
func (l *List[T]) mustNode(h arena.Handle) *node[T] {
	n, err := l.nodes.Get(h)
	if err != nil {
		panic("dlist: broken chain link: " + err.Error())
	}

	return n
}

func (l *List[T]) mustRelease(h arena.Handle) {
	if err := l.nodes.Release(h); err != nil {
		panic("dlist: broken chain link: " + err.Error())
	}
}
