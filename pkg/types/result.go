package types

import "time"

// ModuleResult is the uniform envelope every scan module returns.
// Success=false always carries a non-empty Error; Data is populated only
// when Success=true and contains nothing but nested maps, slices, and
// primitives so any formatter can render it.
type ModuleResult struct {
	Module      string         `json:"module"`
	Target      Target         `json:"target"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt time.Time      `json:"completed_at"`
	Success     bool           `json:"success"`
	Data        map[string]any `json:"data,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// OptionSpec declares one option a module accepts, with its type and bounds.
type OptionSpec struct {
	Name     string `json:"name"`
	Type     string `json:"type"` // "string", "int", "duration", "bool"
	Required bool   `json:"required"`
	Default  any    `json:"default,omitempty"`
	Min      int    `json:"min,omitempty"`
	Max      int    `json:"max,omitempty"`
	Help     string `json:"help,omitempty"`
}

// Descriptor is the read-only metadata a module registers under:
// its name, description, capability category, and option schema.
type Descriptor struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Safe        bool         `json:"safe"`
	Options     []OptionSpec `json:"options,omitempty"`
}
