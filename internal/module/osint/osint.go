// Package osint implements the open-source intelligence module: a thin
// aggregator over independent lookup sources (whois, DNS records,
// certificate transparency, Shodan) where one failing source degrades the
// result instead of failing the module.
package osint

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aegis-sec/aegis/internal/module"
	"github.com/aegis-sec/aegis/pkg/types"
)

// Name is the registry name of this module.
const Name = "osint"

// Describe returns the module descriptor for registration.
func Describe() types.Descriptor {
	return types.Descriptor{
		Name:        Name,
		Description: "Gather open-source intelligence from multiple sources",
		Category:    "passive",
		Safe:        true,
		Options: []types.OptionSpec{
			{Name: "sources", Type: "string",
				Help: "comma-separated source names; all configured sources when empty"},
			{Name: "shodan_key", Type: "string",
				Help: "Shodan API key; the shodan source is skipped without one"},
		},
	}
}

// Source is one independent intelligence lookup. Implementations must be
// side-effect free beyond their own network call.
type Source interface {
	Name() string
	Gather(ctx context.Context, target types.Target, opts module.Options) (map[string]any, error)
}

// Scanner aggregates sub-sources. Sources is swappable for tests; nil
// builds the default set at run time from the options.
type Scanner struct {
	Sources []Source
}

// New creates a fresh OSINT module instance.
func New() module.Module { return &Scanner{} }

func (s *Scanner) Descriptor() types.Descriptor { return Describe() }

// Run invokes every selected source independently and merges their payloads
// under the source name. A failing source is reported in sources_failed and
// omitted from the data; the module errors only when no source succeeds.
func (s *Scanner) Run(ctx context.Context, target types.Target, opts module.Options) (map[string]any, error) {
	sources := s.Sources
	if sources == nil {
		sources = defaultSources(opts)
	}

	sources, err := selectSources(sources, opts.StringOpt("sources", ""))
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		data    = make(map[string]any)
		failed  = make(map[string]any)
		queried []string
		wg      sync.WaitGroup
	)

	for _, src := range sources {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					failed[src.Name()] = fmt.Sprintf("panic: %v", r)
					mu.Unlock()
				}
			}()

			payload, err := src.Gather(ctx, target, opts)

			mu.Lock()
			defer mu.Unlock()
			queried = append(queried, src.Name())
			if err != nil {
				failed[src.Name()] = err.Error()
				return
			}
			data[src.Name()] = payload
		}(src)
	}
	wg.Wait()

	if len(data) == 0 {
		msgs := make([]string, 0, len(failed))
		for name, reason := range failed {
			msgs = append(msgs, fmt.Sprintf("%s: %v", name, reason))
		}
		sort.Strings(msgs)
		return nil, fmt.Errorf("all OSINT sources failed: %s", strings.Join(msgs, "; "))
	}

	sort.Strings(queried)
	queriedList := make([]any, len(queried))
	for i, name := range queried {
		queriedList[i] = name
	}
	data["sources_queried"] = queriedList
	if len(failed) > 0 {
		data["sources_failed"] = failed
	}
	return data, nil
}

// defaultSources builds the standard source set. Shodan joins only when a
// key was supplied.
func defaultSources(opts module.Options) []Source {
	sources := []Source{
		newWhoisSource(),
		newDNSRecordsSource(),
		newCrtShSource(),
	}
	if key := opts.StringOpt("shodan_key", ""); key != "" {
		sources = append(sources, newShodanSource(key))
	}
	return sources
}

// selectSources filters by the comma-separated names in spec. A name with
// no matching source is a configuration error.
func selectSources(sources []Source, spec string) ([]Source, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return sources, nil
	}

	byName := make(map[string]Source, len(sources))
	for _, src := range sources {
		byName[src.Name()] = src
	}

	var selected []Source
	for _, name := range strings.Split(spec, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		src, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown OSINT source %q", name)
		}
		selected = append(selected, src)
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no OSINT sources selected")
	}
	return selected, nil
}
