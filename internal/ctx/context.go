// Package ctx implements the Context of spec.md §5: a handle owning a
// worker pool, a private RNG seed, and the launch/reduce/scan primitives
// every parallel phase of the engine (multilevel driver, diffusion
// refiner) synchronizes through.
//
// The pool primitives are built on golang.org/x/sync/errgroup rather than
// hand-rolled WaitGroup/channel plumbing: a barrier-with-first-error-wins
// group of goroutines is exactly what errgroup.Group provides, and the
// pack carries errgroup as a real transitive dependency in multiple
// example repos. This mirrors the shape of
// junjiewwang-perf-analysis/pkg/parallel.WorkerPool (fixed worker count,
// ctx-aware submission, aggregated metrics) while replacing its manual
// channel fan-out with errgroup.
package ctx

import (
	"context"
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/yourusername/scotch/internal/logging"
	"github.com/yourusername/scotch/internal/rng"
)

// Option configures a Context at construction time (spec §6: "Context
// options. Numeric keys enumerate: deterministic-mode flag, fixed-seed
// flag, compile-time-pinned thread count").
type Option func(*Context)

// WithWorkers pins the worker count (default runtime.GOMAXPROCS(0)).
func WithWorkers(n int) Option {
	return func(c *Context) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithSeed fixes the RNG seed (spec §6 "fixed-seed flag").
func WithSeed(seed uint64) Option {
	return func(c *Context) { c.seed = seed; c.seedSet = true }
}

// WithDeterministic sets the deterministic-mode flag that Deterministic
// reports. ThreadReduce and DataScan use their canonical reduction order
// and fixed vertex-range split whether or not the flag is set.
func WithDeterministic() Option {
	return func(c *Context) { c.deterministic = true }
}

// WithLogger installs the error-sink Logger (spec §7).
func WithLogger(l logging.Logger) Option {
	return func(c *Context) { c.logger = l }
}

// Context is the handle threaded through every engine call. It is
// committed by its first RNG, Clone, Split, Launch, Reduce or Scan call;
// after that, SetOption refuses further options and returns false.
type Context struct {
	workers       int
	seed          uint64
	seedSet       bool
	deterministic bool
	logger        logging.Logger

	mu        sync.Mutex
	committed bool
	root       *rng.Source
}

// New builds a Context from the given options. Workers defaults to
// runtime.GOMAXPROCS(0); seed defaults to a fixed constant, so runs are
// reproducible even when the caller does not pick a seed via WithSeed.
func New(opts ...Option) *Context {
	c := &Context{
		workers: runtime.GOMAXPROCS(0),
		seed:    0x5c07c4, // "scotch" in hex-ish, fixed default seed
		logger:  logging.Nop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.workers < 1 {
		c.workers = 1
	}
	c.root = rng.New(c.seed)
	return c
}

// Workers returns the pinned worker count.
func (c *Context) Workers() int { return c.workers }

// Deterministic reports whether bit-identical mode is enabled.
func (c *Context) Deterministic() bool { return c.deterministic }

// Logger returns the installed error sink.
func (c *Context) Logger() logging.Logger { return c.logger }

// RNG returns the Context's root random source. Callers that need an
// independent stream for a sub-problem should call Clone or Split on the
// Context, not draw directly from the shared root across goroutines.
func (c *Context) RNG() *rng.Source {
	c.commit()
	return c.root
}

// commit marks the Context as committed; after this point Option setters
// applied via SetOption return an error (spec §6: "Setting an option
// after the context has been committed is an error").
func (c *Context) commit() {
	c.mu.Lock()
	c.committed = true
	c.mu.Unlock()
}

// SetOption applies opt if the Context has not yet committed. Returns
// false if the Context was already committed (the caller should treat
// this as the spec's "setting an option after commit is an error").
func (c *Context) SetOption(opt Option) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.committed {
		return false
	}
	opt(c)
	return true
}

// Clone returns an independent Context for a sub-problem (e.g. the
// coarsened graph at one multilevel recursion), with its own RNG stream
// derived from this Context's root via rng.Source.Split so re-running the
// same recursion path reproduces the same stream.
func (c *Context) Clone(streamIndex uint64) *Context {
	c.commit()
	clone := &Context{
		workers:       c.workers,
		seed:          c.seed,
		seedSet:       c.seedSet,
		deterministic: c.deterministic,
		logger:        c.logger,
		committed:     true,
		root:          c.root.Split(streamIndex),
	}
	return clone
}

// Split returns two sub-contexts for the two concurrent halves of a
// recursive step (e.g. the two children of a bipartition), each with
// half the workers (rounded so the two halves sum to the parent's total,
// except that a one-worker parent gives each half one worker) and an
// independently-seeded RNG stream.
func (c *Context) Split() (left, right *Context) {
	c.commit()
	lw := (c.workers + 1) / 2
	rw := c.workers - lw
	if rw < 1 {
		rw = 1
	}
	left = &Context{workers: lw, seed: c.seed, seedSet: c.seedSet, deterministic: c.deterministic, logger: c.logger, committed: true, root: c.root.Split(0)}
	right = &Context{workers: rw, seed: c.seed, seedSet: c.seedSet, deterministic: c.deterministic, logger: c.logger, committed: true, root: c.root.Split(1)}
	return left, right
}

// ThreadLaunch runs fn once per worker (indices [0, Workers())) with an
// implicit barrier at function exit, returning the first error
// encountered (spec §5: "threadLaunch(desc, fn, arg) runs fn(thread_desc,
// arg) on every worker with implicit barrier at function exit").
func (c *Context) ThreadLaunch(parent context.Context, fn func(worker int) error) error {
	c.commit()
	g, gctx := errgroup.WithContext(parent)
	_ = gctx
	for w := 0; w < c.workers; w++ {
		w := w
		g.Go(func() error { return fn(w) })
	}
	return g.Wait()
}

// ThreadLaunchSplit runs fn(0, ...) and fn(1, ...) concurrently on
// disjoint halves of the workers (spec §5: "threadLaunchSplit(desc, fn,
// arg) runs fn(subctx, 0, arg) and fn(subctx, 1, arg) on disjoint halves
// of the workers"), returning the first error from either half.
func (c *Context) ThreadLaunchSplit(parent context.Context, fn func(half int, sub *Context) error) error {
	c.commit()
	left, right := c.Split()
	g, _ := errgroup.WithContext(parent)
	g.Go(func() error { return fn(0, left) })
	g.Go(func() error { return fn(1, right) })
	return g.Wait()
}

// ThreadReduce performs a tree reduction of n partial values computed by
// compute(worker) using combine, returning the aggregate. The combine
// order is always the fixed pairwise tree [0+1, 2+3, ...] rather than
// arrival order, satisfying spec §5's "canonical tree order" guarantee.
func ThreadReduce[T any](c *Context, parent context.Context, zero T, compute func(worker int) (T, error), combine func(a, b T) T) (T, error) {
	c.commit()
	n := c.workers
	partial := make([]T, n)
	var errOnce sync.Once
	var firstErr error

	g, _ := errgroup.WithContext(parent)
	for w := 0; w < n; w++ {
		w := w
		g.Go(func() error {
			v, err := compute(w)
			if err != nil {
				errOnce.Do(func() { firstErr = err })
				return err
			}
			partial[w] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return zero, err
	}
	if firstErr != nil {
		return zero, firstErr
	}

	// Canonical pairwise tree reduction, always in index order so the
	// result is identical regardless of goroutine scheduling.
	for step := 1; step < n; step *= 2 {
		for i := 0; i+step < n; i += 2 * step {
			partial[i] = combine(partial[i], partial[i+step])
		}
	}
	if n == 0 {
		return zero, nil
	}
	return partial[0], nil
}

// ThreadScan performs an inclusive prefix scan of n partial values across
// workers, returning the per-worker inclusive scan results in worker
// order — the only other synchronization primitive besides ThreadReduce
// (spec §5).
func ThreadScan[T any](c *Context, parent context.Context, identity T, compute func(worker int) (T, error), combine func(a, b T) T) ([]T, error) {
	c.commit()
	n := c.workers
	partial := make([]T, n)

	g, _ := errgroup.WithContext(parent)
	for w := 0; w < n; w++ {
		w := w
		g.Go(func() error {
			v, err := compute(w)
			if err != nil {
				return err
			}
			partial[w] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]T, n)
	acc := identity
	for i := 0; i < n; i++ {
		acc = combine(acc, partial[i])
		result[i] = acc
	}
	return result, nil
}

// DataScan splits a based vertex range [baseval, baseval+n) into
// Workers() contiguous, disjoint slices — the fixed split spec §5
// requires for deterministic mode ("the per-vertex assignment to workers
// is derived from a fixed DATASCAN split of the vertex range").
func (c *Context) DataScan(baseval, n int) [][2]int {
	workers := c.workers
	if workers < 1 {
		workers = 1
	}
	ranges := make([][2]int, workers)
	chunk := int(math.Ceil(float64(n) / float64(workers)))
	if chunk < 1 {
		chunk = 1
	}
	start := baseval
	for w := 0; w < workers; w++ {
		end := start + chunk
		limit := baseval + n
		if end > limit {
			end = limit
		}
		if start > limit {
			start = limit
		}
		ranges[w] = [2]int{start, end}
		start = end
	}
	return ranges
}

// Abort is the cooperative cancellation flag of spec §5 ("an internal
// abrtval flag is used by cooperating threads to abandon a phase on
// detected numerical failure"). It is safe for concurrent use.
type Abort struct {
	flag atomic.Bool
}

// Set raises the abort flag.
func (a *Abort) Set() { a.flag.Store(true) }

// IsSet reports whether the flag has been raised.
func (a *Abort) IsSet() bool { return a.flag.Load() }
