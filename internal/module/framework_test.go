package module

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aegis-sec/aegis/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFramework(t *testing.T, mods ...*mockModule) *Framework {
	t.Helper()
	reg := NewRegistry()
	for _, m := range mods {
		m := m
		require.NoError(t, reg.Register(m.desc, func() Module { return m }))
	}
	fw := NewFramework(reg)
	fw.SetTarget(types.Target{Host: "example.com"})
	return fw
}

func safeOpts() Options {
	return Options{Concurrency: 4, Timeout: time.Second, SafeMode: true}
}

func TestFramework_RunModule(t *testing.T) {
	desc, _ := mockFactory("mock")
	fw := newTestFramework(t, &mockModule{desc: desc})

	result := fw.RunModule(context.Background(), "mock", safeOpts())
	assert.True(t, result.Success)
	assert.Empty(t, result.Error)
	assert.Equal(t, map[string]any{"ok": true}, result.Data)
	assert.Equal(t, "example.com", result.Target.Host)
	assert.False(t, result.CompletedAt.Before(result.StartedAt))
}

func TestFramework_ModuleNotFound(t *testing.T) {
	fw := newTestFramework(t)

	result := fw.RunModule(context.Background(), "nonexistent", safeOpts())
	assert.False(t, result.Success)
	assert.Equal(t, "module not found: nonexistent", result.Error)
	assert.Nil(t, result.Data)
}

func TestFramework_NoTarget(t *testing.T) {
	desc, _ := mockFactory("mock")
	fw := newTestFramework(t, &mockModule{desc: desc})
	fw.SetTarget(types.Target{})

	result := fw.RunModule(context.Background(), "mock", safeOpts())
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "no target")
}

func TestFramework_ModuleError(t *testing.T) {
	desc, _ := mockFactory("failing")
	m := &mockModule{desc: desc, run: func(context.Context, types.Target, Options) (map[string]any, error) {
		return nil, errors.New("probe setup exploded")
	}}
	fw := newTestFramework(t, m)

	result := fw.RunModule(context.Background(), "failing", safeOpts())
	assert.False(t, result.Success)
	assert.Equal(t, "probe setup exploded", result.Error)
	assert.Nil(t, result.Data)
}

func TestFramework_ModulePanicNormalized(t *testing.T) {
	desc, _ := mockFactory("panicky")
	m := &mockModule{desc: desc, run: func(context.Context, types.Target, Options) (map[string]any, error) {
		panic("boom")
	}}
	fw := newTestFramework(t, m)

	result := fw.RunModule(context.Background(), "panicky", safeOpts())
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "panicked")
	assert.Contains(t, result.Error, "boom")
}

func TestFramework_OptionValidationFailsFast(t *testing.T) {
	desc, _ := mockFactory("strict")
	desc.Options = []types.OptionSpec{{Name: "ports", Type: "string"}}

	ran := false
	m := &mockModule{desc: desc, run: func(context.Context, types.Target, Options) (map[string]any, error) {
		ran = true
		return nil, nil
	}}
	fw := newTestFramework(t, m)

	opts := safeOpts()
	opts.Extra = map[string]any{"nope": 1}
	result := fw.RunModule(context.Background(), "strict", opts)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "invalid options")
	assert.False(t, ran, "module must not run after a configuration error")
}

func TestFramework_SafeModeRefusesUnsafeModule(t *testing.T) {
	desc, _ := mockFactory("danger")
	desc.Safe = false
	fw := newTestFramework(t, &mockModule{desc: desc})

	result := fw.RunModule(context.Background(), "danger", safeOpts())
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "safe mode")

	opts := safeOpts()
	opts.SafeMode = false
	result = fw.RunModule(context.Background(), "danger", opts)
	assert.True(t, result.Success)
}

func TestFramework_SafeModeRefusesLoopback(t *testing.T) {
	desc, _ := mockFactory("mock")
	fw := newTestFramework(t, &mockModule{desc: desc})
	fw.SetTarget(types.Target{Host: "127.0.0.1"})

	result := fw.RunModule(context.Background(), "mock", safeOpts())
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "safe mode")
}

func TestFramework_SetTargetClearsResults(t *testing.T) {
	desc, _ := mockFactory("mock")
	fw := newTestFramework(t, &mockModule{desc: desc})

	fw.RunModule(context.Background(), "mock", safeOpts())
	require.Len(t, fw.Results(), 1)

	fw.SetTarget(types.Target{Host: "other.example.com"})
	assert.Empty(t, fw.Results())
}

func TestFramework_RunModules(t *testing.T) {
	descA, _ := mockFactory("a")
	descB, _ := mockFactory("b")
	fw := newTestFramework(t, &mockModule{desc: descA}, &mockModule{desc: descB})

	results := fw.RunModules(context.Background(), []Run{{Name: "a"}, {Name: "missing"}, {Name: "b"}}, safeOpts())
	require.Len(t, results, 3)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.Equal(t, "module not found: missing", results[1].Error)
	assert.True(t, results[2].Success)
}

func TestFramework_RunModulesCancelled(t *testing.T) {
	desc, _ := mockFactory("mock")
	fw := newTestFramework(t, &mockModule{desc: desc})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := fw.RunModules(ctx, []Run{{Name: "mock"}, {Name: "mock"}}, safeOpts())
	require.Len(t, results, 2)
	for _, result := range results {
		assert.False(t, result.Success)
		assert.Equal(t, context.Canceled.Error(), result.Error)
		assert.Equal(t, "example.com", result.Target.Host)
		assert.False(t, result.StartedAt.IsZero())
		assert.False(t, result.CompletedAt.Before(result.StartedAt))
	}
	assert.Len(t, fw.Results(), 2)
}

func TestFramework_FreshInstancePerRun(t *testing.T) {
	desc := types.Descriptor{Name: "counting", Safe: true}
	instances := 0
	reg := NewRegistry()
	require.NoError(t, reg.Register(desc, func() Module {
		instances++
		return &mockModule{desc: desc}
	}))

	fw := NewFramework(reg)
	fw.SetTarget(types.Target{Host: "example.com"})
	fw.RunModule(context.Background(), "counting", safeOpts())
	fw.RunModule(context.Background(), "counting", safeOpts())
	assert.Equal(t, 2, instances)
}
