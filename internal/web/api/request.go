package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aegis-sec/aegis/internal/module"
	"github.com/aegis-sec/aegis/internal/module/osint"
	"github.com/aegis-sec/aegis/internal/module/portscan"
	"github.com/aegis-sec/aegis/internal/module/subenum"
)

// CreateScanRequest is the JSON body for POST /api/v1/scans.
type CreateScanRequest struct {
	Target      string   `json:"target"`
	Modules     []string `json:"modules"`
	Ports       string   `json:"ports"`
	Wordlist    string   `json:"wordlist"`
	Sources     string   `json:"sources"`
	ShodanKey   string   `json:"shodan_key"`
	Concurrency int      `json:"concurrency"`
	Timeout     string   `json:"timeout"`
	SafeMode    *bool    `json:"safe_mode"`
}

// decodeCreateScanRequest reads and validates the request body.
func decodeCreateScanRequest(r *http.Request) (*CreateScanRequest, error) {
	var req CreateScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if req.Target == "" {
		return nil, fmt.Errorf("target is required")
	}

	if req.Concurrency < 0 {
		return nil, fmt.Errorf("concurrency must be non-negative")
	}
	if req.Concurrency == 0 {
		req.Concurrency = 10
	}

	if req.Timeout != "" {
		if _, err := time.ParseDuration(req.Timeout); err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", req.Timeout, err)
		}
	}

	return &req, nil
}

// options converts the request into module execution options. Safe mode
// stays on unless the request disables it explicitly.
func (req *CreateScanRequest) options() module.Options {
	opts := module.DefaultOptions()
	opts.Concurrency = req.Concurrency
	if req.Timeout != "" {
		opts.Timeout, _ = time.ParseDuration(req.Timeout) // already validated
	}
	if req.SafeMode != nil {
		opts.SafeMode = *req.SafeMode
	}
	return opts
}

// runs expands the requested module names into per-module runs, attaching
// only the extras each module understands.
func (req *CreateScanRequest) runs(names []string) []module.Run {
	runs := make([]module.Run, 0, len(names))
	for _, name := range names {
		extra := map[string]any{}
		switch name {
		case portscan.Name:
			if req.Ports != "" {
				extra["ports"] = req.Ports
			}
		case subenum.Name:
			if req.Wordlist != "" {
				extra["wordlist"] = req.Wordlist
			}
		case osint.Name:
			if req.Sources != "" {
				extra["sources"] = req.Sources
			}
			if req.ShodanKey != "" {
				extra["shodan_key"] = req.ShodanKey
			}
		}
		if len(extra) == 0 {
			extra = nil
		}
		runs = append(runs, module.Run{Name: name, Extra: extra})
	}
	return runs
}
