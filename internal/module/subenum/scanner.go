// Package subenum implements wordlist-based subdomain enumeration over
// DNS resolution probes.
package subenum

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aegis-sec/aegis/internal/module"
	"github.com/aegis-sec/aegis/internal/probe"
	"github.com/aegis-sec/aegis/pkg/types"
)

// Name is the registry name of this module.
const Name = "subdomain_enum"

// Describe returns the module descriptor for registration.
func Describe() types.Descriptor {
	return types.Descriptor{
		Name:        Name,
		Description: "Discover subdomains by resolving wordlist candidates",
		Category:    "network",
		Safe:        true,
		Options: []types.OptionSpec{
			{Name: "wordlist", Type: "string",
				Help: "path to a wordlist of candidate labels; embedded defaults when empty"},
		},
	}
}

// Scanner resolves candidate names through the worker pool. Resolver is
// swappable for tests; nil uses the system resolver.
type Scanner struct {
	Resolver probe.HostResolver
}

// New creates a fresh subdomain enumeration module instance.
func New() module.Module { return &Scanner{} }

func (s *Scanner) Descriptor() types.Descriptor { return Describe() }

// Run constructs label.target candidates from the wordlist and probes DNS
// resolution for each. An empty wordlist is a valid input yielding zero
// findings.
func (s *Scanner) Run(ctx context.Context, target types.Target, opts module.Options) (map[string]any, error) {
	if target.IsIP() {
		return nil, fmt.Errorf("subdomain enumeration needs a domain target, got IP %s", target.Host)
	}

	labels, err := LoadWordlist(opts.StringOpt("wordlist", ""))
	if err != nil {
		return nil, fmt.Errorf("loading wordlist: %w", err)
	}

	units := candidates(labels, target.Host)
	if len(units) == 0 {
		return map[string]any{
			"subdomains_found": []any{},
			"candidates_tried": 0,
		}, nil
	}

	pool, err := probe.NewPool(opts.Concurrency, opts.Timeout)
	if err != nil {
		return nil, err
	}

	outcomes := pool.Run(ctx, units, probe.DNSProbe(s.Resolver))

	seen := make(map[string]struct{})
	var found []string
	for _, o := range outcomes {
		if o.Status != types.StatusResolved {
			continue
		}
		if _, ok := seen[o.Unit]; ok {
			continue
		}
		seen[o.Unit] = struct{}{}
		found = append(found, o.Unit)
	}
	sort.Strings(found)

	foundList := make([]any, len(found))
	for i, name := range found {
		foundList[i] = name
	}

	return map[string]any{
		"subdomains_found": foundList,
		"candidates_tried": len(units),
	}, nil
}

// candidates builds deduplicated label.domain names, dropping labels that
// could not form a valid DNS name.
func candidates(labels []string, domain string) []string {
	seen := make(map[string]struct{}, len(labels))
	var units []string
	for _, label := range labels {
		label = strings.ToLower(strings.Trim(label, "."))
		if label == "" || strings.ContainsAny(label, " \t") {
			continue
		}
		name := label + "." + domain
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		units = append(units, name)
	}
	return units
}
