package module

import (
	"fmt"
	"time"

	"github.com/aegis-sec/aegis/pkg/types"
)

// Options holds the execution parameters for one module invocation.
// Extra carries module-specific options validated against the module's
// declared schema before dispatch.
type Options struct {
	Concurrency int
	Timeout     time.Duration
	SafeMode    bool
	Extra       map[string]any
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Concurrency: 10,
		Timeout:     5 * time.Second,
		SafeMode:    true,
	}
}

// Validate checks the options against a module's declared schema. Unknown
// keys, wrong types, out-of-range values, and missing required options all
// fail fast with a descriptive error; nothing silently defaults.
func (o Options) Validate(desc types.Descriptor) error {
	if o.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", o.Concurrency)
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", o.Timeout)
	}

	specs := make(map[string]types.OptionSpec, len(desc.Options))
	for _, s := range desc.Options {
		specs[s.Name] = s
	}

	for name, value := range o.Extra {
		spec, ok := specs[name]
		if !ok {
			return fmt.Errorf("unknown option %q for module %q", name, desc.Name)
		}
		if err := checkOptionValue(spec, value); err != nil {
			return fmt.Errorf("option %q for module %q: %w", name, desc.Name, err)
		}
	}

	for _, spec := range desc.Options {
		if spec.Required {
			if _, ok := o.Extra[spec.Name]; !ok {
				return fmt.Errorf("module %q requires option %q", desc.Name, spec.Name)
			}
		}
	}

	return nil
}

func checkOptionValue(spec types.OptionSpec, value any) error {
	switch spec.Type {
	case "string":
		if _, ok := value.(string); !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
	case "int":
		n, ok := value.(int)
		if !ok {
			return fmt.Errorf("expected int, got %T", value)
		}
		if spec.Min != 0 || spec.Max != 0 {
			if n < spec.Min || n > spec.Max {
				return fmt.Errorf("value %d out of range %d-%d", n, spec.Min, spec.Max)
			}
		}
	case "duration":
		if _, ok := value.(time.Duration); !ok {
			return fmt.Errorf("expected duration, got %T", value)
		}
	case "bool":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
	default:
		return fmt.Errorf("descriptor declares unsupported option type %q", spec.Type)
	}
	return nil
}

// StringOpt returns the named extra option, or def when absent.
func (o Options) StringOpt(name, def string) string {
	if v, ok := o.Extra[name].(string); ok {
		return v
	}
	return def
}

// IntOpt returns the named extra option, or def when absent.
func (o Options) IntOpt(name string, def int) int {
	if v, ok := o.Extra[name].(int); ok {
		return v
	}
	return def
}

// BoolOpt returns the named extra option, or def when absent.
func (o Options) BoolOpt(name string, def bool) bool {
	if v, ok := o.Extra[name].(bool); ok {
		return v
	}
	return def
}
