package module

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aegis-sec/aegis/pkg/types"
)

// Framework holds the current target and runs modules through the registry.
// It is the single point where module failures of any kind are converted
// into the uniform ModuleResult envelope: callers never see a panic or a
// raw error escape a module run.
type Framework struct {
	registry *Registry

	mu      sync.Mutex
	target  types.Target
	results []types.ModuleResult
}

// NewFramework creates a framework backed by the given registry.
func NewFramework(registry *Registry) *Framework {
	return &Framework{registry: registry}
}

// Registry exposes the backing registry for listing and lookup.
func (f *Framework) Registry() *Registry {
	return f.registry
}

// SetTarget switches the active target and drops results accumulated for
// the previous one, so nothing bleeds across targets.
func (f *Framework) SetTarget(t types.Target) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.target = t
	f.results = nil
}

// Target returns the active target.
func (f *Framework) Target() types.Target {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.target
}

// Results returns a copy of all results collected since the last SetTarget.
func (f *Framework) Results() []types.ModuleResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]types.ModuleResult, len(f.results))
	copy(out, f.results)
	return out
}

// RunModule resolves name through the registry, validates the options
// against the module's schema, executes it, and returns the normalized
// result. Configuration errors abort before any probing starts; anything
// that fails later, including a panic inside the module, ends up in the
// result's Error field.
func (f *Framework) RunModule(ctx context.Context, name string, opts Options) types.ModuleResult {
	result := f.runModule(ctx, name, opts)

	f.mu.Lock()
	f.results = append(f.results, result)
	f.mu.Unlock()

	return result
}

func (f *Framework) runModule(ctx context.Context, name string, opts Options) (result types.ModuleResult) {
	target := f.Target()
	result = types.ModuleResult{
		Module:    name,
		Target:    target,
		StartedAt: time.Now(),
	}

	fail := func(format string, args ...any) types.ModuleResult {
		result.Success = false
		result.Data = nil
		result.Error = fmt.Sprintf(format, args...)
		result.CompletedAt = time.Now()
		return result
	}

	defer func() {
		if r := recover(); r != nil {
			result = fail("module %s panicked: %v", name, r)
		}
	}()

	factory, desc, err := f.registry.Get(name)
	if err != nil {
		return fail("%s", err)
	}

	if target.Host == "" {
		return fail("no target set")
	}
	if err := opts.Validate(desc); err != nil {
		return fail("invalid options: %s", err)
	}
	if opts.SafeMode {
		if !desc.Safe {
			return fail("module %s is not allowed in safe mode", name)
		}
		if target.IsLoopback() {
			return fail("safe mode refuses local target %s", target.Host)
		}
	}

	data, err := factory().Run(ctx, target, opts)
	if err != nil {
		return fail("%s", err)
	}

	result.Success = true
	result.Data = data
	result.CompletedAt = time.Now()
	return result
}

// abortedResult records a run that never started because the batch context
// was cancelled. It goes through the results ledger like any other result
// so Results() stays complete.
func (f *Framework) abortedResult(name string, err error) types.ModuleResult {
	now := time.Now()
	result := types.ModuleResult{
		Module:      name,
		Target:      f.Target(),
		StartedAt:   now,
		CompletedAt: now,
		Success:     false,
		Error:       err.Error(),
	}

	f.mu.Lock()
	f.results = append(f.results, result)
	f.mu.Unlock()

	return result
}

// Run names one module invocation inside a batch, with the extras that
// belong to that module alone.
type Run struct {
	Name  string
	Extra map[string]any
}

// RunModules executes the given runs concurrently against the active
// target, at most base.Concurrency at a time, and returns one result per
// run in input order. Each module still gets its own fresh instance and
// normalized envelope.
func (f *Framework) RunModules(ctx context.Context, runs []Run, base Options) []types.ModuleResult {
	limit := base.Concurrency
	if limit < 1 {
		limit = 1
	}

	sem := make(chan struct{}, limit)
	results := make([]types.ModuleResult, len(runs))
	var wg sync.WaitGroup

	for i, run := range runs {
		wg.Add(1)
		go func(i int, run Run) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[i] = f.abortedResult(run.Name, ctx.Err())
				return
			}
			// The select may win the slot even when ctx is already done.
			if err := ctx.Err(); err != nil {
				results[i] = f.abortedResult(run.Name, err)
				return
			}

			opts := base
			opts.Extra = run.Extra
			results[i] = f.RunModule(ctx, run.Name, opts)
		}(i, run)
	}

	wg.Wait()
	return results
}
