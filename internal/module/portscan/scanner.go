// Package portscan implements the TCP connect port scan module with
// best-effort banner grabbing.
package portscan

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strconv"

	"github.com/aegis-sec/aegis/internal/module"
	"github.com/aegis-sec/aegis/internal/probe"
	"github.com/aegis-sec/aegis/pkg/types"
)

// Name is the registry name of this module.
const Name = "port_scan"

// Describe returns the module descriptor for registration.
func Describe() types.Descriptor {
	return types.Descriptor{
		Name:        Name,
		Description: "TCP connect scan with service banner grabbing",
		Category:    "network",
		Safe:        true,
		Options: []types.OptionSpec{
			{Name: "ports", Type: "string", Default: "common",
				Help: "single port, range (1-1024), comma-separated list, or 'common'"},
		},
	}
}

// Scanner probes TCP ports through the worker pool.
type Scanner struct{}

// New creates a fresh port scan module instance.
func New() module.Module { return &Scanner{} }

func (s *Scanner) Descriptor() types.Descriptor { return Describe() }

// Run expands the port spec, fans the ports out over the pool, and
// aggregates outcomes. Closed and filtered ports are normal results; only
// setup failures make the module fail.
func (s *Scanner) Run(ctx context.Context, target types.Target, opts module.Options) (map[string]any, error) {
	ports, err := ParsePortSpec(opts.StringOpt("ports", "common"))
	if err != nil {
		return nil, fmt.Errorf("resolving ports: %w", err)
	}

	// A hostname that does not resolve is a setup failure, not a scan of
	// ports that all happen to be unreachable.
	if !target.IsIP() {
		if _, err := net.DefaultResolver.LookupHost(ctx, target.Host); err != nil {
			return nil, fmt.Errorf("resolving target %s: %w", target.Host, err)
		}
	}

	pool, err := probe.NewPool(opts.Concurrency, opts.Timeout)
	if err != nil {
		return nil, err
	}

	units := make([]string, len(ports))
	for i, p := range ports {
		units[i] = strconv.Itoa(p)
	}

	outcomes := pool.Run(ctx, units, probe.TCPProbe(target.Host))

	type openPort struct {
		port    int
		service string
		banner  string
	}
	var open []openPort
	for _, o := range outcomes {
		if o.Status != types.StatusOpen {
			continue
		}
		p, err := strconv.Atoi(o.Unit)
		if err != nil {
			continue
		}
		open = append(open, openPort{port: p, service: IdentifyService(p), banner: o.Payload})
	}
	sort.Slice(open, func(i, j int) bool { return open[i].port < open[j].port })

	openList := make([]any, len(open))
	for i, op := range open {
		entry := map[string]any{
			"port":    op.port,
			"service": op.service,
		}
		if op.banner != "" {
			entry["banner"] = op.banner
		}
		openList[i] = entry
	}

	return map[string]any{
		"open_ports":    openList,
		"scanned_count": len(outcomes),
		"open_count":    len(open),
	}, nil
}
