package main

import (
	"context"
	"fmt"

	"github.com/dsuite/dlist/dlist"
	"github.com/dsuite/dlist/errors"
	"github.com/dsuite/dlist/log"
)

// runDemo walks a list through its whole lifecycle: inserts at both ends,
// the diagnostic rendering, endpoint removals, traversal in both directions,
// teardown, and the empty-list error.
func runDemo(ctx context.Context) error {
	ctx = log.WithAttrs(ctx, log.Scope("demo"))

	l := dlist.New[int]()

	for _, v := range []int{2, 10, 4} {
		if err := l.PushBack(v); err != nil {
			return errors.Wrapf(err, "push back %d", v)
		}
	}

	if err := l.PushFront(7); err != nil {
		return errors.Wrap(err, "push front 7")
	}

	log.Info(log.WithAttrs(ctx, log.Count(l.Len())), "inserted 4 values")
	fmt.Println(l)

	back, err := l.PopBack()
	if err != nil {
		return errors.Wrap(err, "pop back")
	}

	front, err := l.PopFront()
	if err != nil {
		return errors.Wrap(err, "pop front")
	}

	log.Infof(log.WithAttrs(ctx, log.Operation("pop_back")), "popped %d", back)
	log.Infof(log.WithAttrs(ctx, log.Operation("pop_front")), "popped %d", front)
	fmt.Println(l)

	forward := make([]int, 0, l.Len())
	for v := range l.All() {
		forward = append(forward, v)
	}

	backward := make([]int, 0, l.Len())
	for v := range l.Backward() {
		backward = append(backward, v)
	}

	log.Infof(ctx, "forward traversal %v, backward traversal %v", forward, backward)

	l.Clear()

	_, err = l.PopFront()
	if !errors.Is(err, dlist.ErrEmpty) {
		return errors.Errorf("pop after clear: expected empty-list error, got %v", err)
	}

	log.Info(ctx, "pop on the empty list rejected as expected")
	fmt.Println(l)

	return nil
}
