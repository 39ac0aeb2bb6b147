package config

import (
	"os"
	"strconv"
)

// Workload defaults for the bench command.
const (
	// DefaultBenchWorkers is the number of concurrent workers, each driving
	// its own list.
	DefaultBenchWorkers = 4
	// DefaultBenchOps is the number of operations per worker.
	DefaultBenchOps = 100_000
	// DefaultTraverseEvery is how many mutations happen between full
	// traversals in the bench workload.
	DefaultTraverseEvery = 1000
)

// NoTraversalGuard disables the panic on list mutation during an in-flight
// traversal. Enabled when the DLIST_NO_TRAVERSAL_GUARD environment variable
// is set to "1".
func NoTraversalGuard() bool {
	return os.Getenv("DLIST_NO_TRAVERSAL_GUARD") == "1"
}

// BenchSeed returns the workload seed from the DLIST_BENCH_SEED environment
// variable, or 0 if it is unset or malformed. A zero seed means the bench
// command derives one from the clock.
func BenchSeed() int64 {
	seed, err := strconv.ParseInt(os.Getenv("DLIST_BENCH_SEED"), 10, 64)
	if err != nil {
		return 0
	}

	return seed
}
