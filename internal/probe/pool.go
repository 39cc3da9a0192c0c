// Package probe provides the bounded-concurrency probing engine: single
// network checks (TCP connect, DNS resolution) and the worker pool that
// fans them out over a unit-of-work sequence.
package probe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aegis-sec/aegis/pkg/types"
)

// Func performs one bounded network check against one unit of work.
// The pool supplies a context whose deadline the probe must respect.
type Func func(ctx context.Context, unit string) types.ProbeOutcome

// Pool executes probes with a fixed concurrency cap and a hard per-unit
// deadline. One Pool is created per module invocation.
type Pool struct {
	concurrency int
	timeout     time.Duration
}

// NewPool validates the pool configuration. A non-positive concurrency or
// timeout is a configuration error, never a deadlock or an unbounded run.
func NewPool(concurrency int, timeout time.Duration) (*Pool, error) {
	if concurrency < 1 {
		return nil, fmt.Errorf("concurrency must be at least 1, got %d", concurrency)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("probe timeout must be positive, got %s", timeout)
	}
	return &Pool{concurrency: concurrency, timeout: timeout}, nil
}

// Run executes fn once per unit, with at most the configured number of
// probes in flight. Every unit yields exactly one outcome: a probe that
// outlives its deadline is abandoned, its slot freed, and a timeout outcome
// recorded in its place. Cancelling ctx stops feeding new units, discards
// in-flight probes, and returns the outcomes collected so far. Completion
// order is not related to input order; callers aggregate by Unit.
func (p *Pool) Run(ctx context.Context, units []string, fn Func) []types.ProbeOutcome {
	if len(units) == 0 {
		return nil
	}

	workers := p.concurrency
	if workers > len(units) {
		workers = len(units)
	}

	unitCh := make(chan string)
	go func() {
		defer close(unitCh)
		for _, u := range units {
			select {
			case unitCh <- u:
			case <-ctx.Done():
				return
			}
		}
	}()

	var (
		mu       sync.Mutex
		outcomes = make([]types.ProbeOutcome, 0, len(units))
		wg       sync.WaitGroup
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for unit := range unitCh {
				outcome, ok := p.runOne(ctx, unit, fn)
				if !ok {
					return
				}
				mu.Lock()
				outcomes = append(outcomes, outcome)
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return outcomes
}

// runOne runs a single probe under the per-unit deadline. The probe runs in
// its own goroutine so that a hung network call cannot hold the worker slot
// past the deadline; a late result is received into a buffered channel and
// dropped. ok=false means the overall scan was cancelled and the unit's
// outcome is discarded.
func (p *Pool) runOne(ctx context.Context, unit string, fn Func) (types.ProbeOutcome, bool) {
	start := time.Now()

	pctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	done := make(chan types.ProbeOutcome, 1)
	go func() {
		done <- fn(pctx, unit)
	}()

	select {
	case outcome := <-done:
		if outcome.Elapsed == 0 {
			outcome.Elapsed = time.Since(start)
		}
		return outcome, true
	case <-pctx.Done():
		if ctx.Err() != nil {
			return types.ProbeOutcome{}, false
		}
		return types.ProbeOutcome{
			Unit:    unit,
			Status:  types.StatusError,
			Reason:  types.ReasonTimeout,
			Elapsed: time.Since(start),
		}, true
	}
}
