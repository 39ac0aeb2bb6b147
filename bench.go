package main

import (
	"context"
	"math/rand/v2"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/dsuite/dlist/arena"
	"github.com/dsuite/dlist/config"
	"github.com/dsuite/dlist/dlist"
	"github.com/dsuite/dlist/errors"
	"github.com/dsuite/dlist/log"
	"github.com/dsuite/dlist/metrics"
)

const metricsReadHeaderTimeout = 3 * time.Second

type benchOptions struct {
	Workers       int
	Ops           int
	Capacity      int
	TraverseEvery int
	Seed          int64
	MetricsAddr   string
}

// benchState is shared across workers for gauge reporting only; every list
// is confined to the goroutine that owns it.
type benchState struct {
	live atomic.Int64
	peak atomic.Int64
}

func (s *benchState) add(delta int64) {
	live := s.live.Add(delta)
	metrics.SetLiveNodes(int(live))

	for {
		peak := s.peak.Load()
		if live <= peak {
			return
		}
		if s.peak.CompareAndSwap(peak, live) {
			metrics.SetPeakLiveNodes(int(live))
			return
		}
	}
}

// runBench drives opts.Workers lists concurrently, each from its own
// goroutine, with a seeded random mix of endpoint operations.
func runBench(ctx context.Context, opts benchOptions) error {
	ctx = log.WithAttrs(ctx, log.Scope("bench"))

	seed := opts.Seed
	if seed == 0 {
		seed = config.BenchSeed()
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if opts.MetricsAddr != "" {
		serveMetrics(ctx, opts.MetricsAddr)
	}

	log.Infof(ctx, "starting workload: %d workers x %s ops, seed %d",
		opts.Workers, humanize.Comma(int64(opts.Ops)), seed)

	state := &benchState{}
	started := time.Now()

	grp, grpCtx := errgroup.WithContext(ctx)
	for id := range opts.Workers {
		grp.Go(func() error {
			return runWorker(grpCtx, id, opts, seed+int64(id), state)
		})
	}

	if err := grp.Wait(); err != nil {
		return errors.Wrap(err, "workload")
	}

	elapsed := time.Since(started)
	totalOps := int64(opts.Workers) * int64(opts.Ops)
	rate := float64(totalOps) / elapsed.Seconds()

	log.Infof(ctx, "workload complete: %s ops in %s (%s ops/sec), peak live nodes %s",
		humanize.Comma(totalOps),
		elapsed.Round(time.Millisecond),
		humanize.CommafWithDigits(rate, 0),
		humanize.Comma(state.peak.Load()))

	return nil
}

func runWorker(ctx context.Context, id int, opts benchOptions, seed int64, state *benchState) error {
	ctx = log.WithAttrs(ctx, log.Worker(id))

	rnd := rand.New(rand.NewPCG(uint64(seed), uint64(id))) //nolint:gosec

	var listOpts []dlist.Option
	if opts.Capacity > 0 {
		listOpts = append(listOpts, dlist.WithCapacity(opts.Capacity))
	}
	l := dlist.New[int](listOpts...)

	for i := range opts.Ops {
		if i%1024 == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err() //nolint:wrapcheck
			default:
			}
		}

		switch rnd.IntN(4) {
		case 0:
			if err := l.PushFront(rnd.Int()); err != nil {
				if !errors.Is(err, arena.ErrFull) {
					return errors.Wrap(err, "push front")
				}
				metrics.AddAllocationRejected(1)
				continue
			}
			metrics.AddPushFront(1)
			state.add(1)
		case 1:
			if err := l.PushBack(rnd.Int()); err != nil {
				if !errors.Is(err, arena.ErrFull) {
					return errors.Wrap(err, "push back")
				}
				metrics.AddAllocationRejected(1)
				continue
			}
			metrics.AddPushBack(1)
			state.add(1)
		case 2:
			if _, err := l.PopFront(); err != nil {
				if !errors.Is(err, dlist.ErrEmpty) {
					return errors.Wrap(err, "pop front")
				}
				continue
			}
			metrics.AddPopFront(1)
			state.add(-1)
		case 3:
			if _, err := l.PopBack(); err != nil {
				if !errors.Is(err, dlist.ErrEmpty) {
					return errors.Wrap(err, "pop back")
				}
				continue
			}
			metrics.AddPopBack(1)
			state.add(-1)
		}

		if (i+1)%opts.TraverseEvery == 0 {
			if err := verifyTraversal(l); err != nil {
				return err
			}
			metrics.AddTraversals(1)
		}
	}

	remaining := l.Len()
	state.add(-int64(remaining))
	l.Clear()

	log.Debugf(ctx, "worker done, cleared %d remaining nodes", remaining)

	return nil
}

// verifyTraversal walks the list both ways and cross-checks the counted
// length against Len.
func verifyTraversal[T any](l *dlist.List[T]) error {
	forward := 0
	for range l.All() {
		forward++
	}

	backward := 0
	for range l.Backward() {
		backward++
	}

	if forward != l.Len() || backward != l.Len() {
		return errors.Errorf("traversal count mismatch: forward %d, backward %d, len %d",
			forward, backward, l.Len())
	}

	return nil
}

func serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}

	log.Info(ctx, "serving metrics at http://"+addr+"/metrics")

	go func() {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, err, "metrics server")
		}
	}()
}
