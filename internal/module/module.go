// Package module defines the uniform contract scan modules implement, the
// registry that holds them, and the framework that dispatches targets to
// them and normalizes their results.
package module

import (
	"context"

	"github.com/aegis-sec/aegis/pkg/types"
)

// Module is the capability interface every scan module implements.
// Run returns the module-specific data aggregate; the framework wraps it
// into the uniform ModuleResult envelope.
type Module interface {
	Descriptor() types.Descriptor
	Run(ctx context.Context, target types.Target, opts Options) (map[string]any, error)
}

// Factory builds a fresh module instance for one invocation, so module
// internal state can never bleed between targets.
type Factory func() Module
