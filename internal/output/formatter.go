// Package output renders module results in the supported output formats.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aegis-sec/aegis/pkg/types"
)

// Formatter renders module results to a writer.
type Formatter interface {
	Format(w io.Writer, results []types.ModuleResult) error
}

// GetFormatter returns the appropriate formatter for the given format string.
func GetFormatter(format string) (Formatter, error) {
	switch format {
	case "text":
		return &TextFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "csv":
		return &CSVFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (supported: text, json, csv)", format)
	}
}

// KV is one flattened data field.
type KV struct {
	Key   string
	Value string
}

// Flatten walks a result's data tree into sorted key/value pairs, so the
// tabular formats can render arbitrarily nested payloads.
func Flatten(prefix string, value any) []KV {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var rows []KV
		for _, k := range keys {
			child := k
			if prefix != "" {
				child = prefix + "." + k
			}
			rows = append(rows, Flatten(child, v[k])...)
		}
		return rows

	case []any:
		if scalars, ok := scalarList(v); ok {
			return []KV{{Key: prefix, Value: strings.Join(scalars, ", ")}}
		}
		var rows []KV
		for i, item := range v {
			rows = append(rows, Flatten(fmt.Sprintf("%s[%d]", prefix, i), item)...)
		}
		if len(rows) == 0 {
			rows = []KV{{Key: prefix, Value: ""}}
		}
		return rows

	default:
		return []KV{{Key: prefix, Value: fmt.Sprintf("%v", value)}}
	}
}

func scalarList(items []any) ([]string, bool) {
	out := make([]string, len(items))
	for i, item := range items {
		switch item.(type) {
		case map[string]any, []any:
			return nil, false
		}
		out[i] = fmt.Sprintf("%v", item)
	}
	return out, true
}
