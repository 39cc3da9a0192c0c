package osint

import (
	"context"
	"fmt"
	"strings"

	"github.com/aegis-sec/aegis/internal/module"
	"github.com/aegis-sec/aegis/pkg/types"
	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
)

type whoisSource struct{}

func newWhoisSource() Source { return whoisSource{} }

func (whoisSource) Name() string { return "whois" }

// Gather runs a WHOIS query. Domain responses are parsed into structured
// registration data; IP responses keep a short raw excerpt since registry
// formats vary too much to parse reliably.
func (whoisSource) Gather(_ context.Context, target types.Target, opts module.Options) (map[string]any, error) {
	client := whois.NewClient()
	client.SetTimeout(opts.Timeout)

	raw, err := client.Whois(target.Host)
	if err != nil {
		return nil, fmt.Errorf("whois query: %w", err)
	}

	if target.IsIP() {
		return map[string]any{"raw_excerpt": rawExcerpt(raw, 20)}, nil
	}

	parsed, err := whoisparser.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing whois response: %w", err)
	}

	payload := make(map[string]any)
	if parsed.Registrar != nil && parsed.Registrar.Name != "" {
		payload["registrar"] = parsed.Registrar.Name
	}
	if d := parsed.Domain; d != nil {
		if d.CreatedDate != "" {
			payload["created"] = d.CreatedDate
		}
		if d.ExpirationDate != "" {
			payload["expires"] = d.ExpirationDate
		}
		if len(d.NameServers) > 0 {
			payload["name_servers"] = toAnySlice(d.NameServers)
		}
		if len(d.Status) > 0 {
			payload["statuses"] = toAnySlice(d.Status)
		}
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("whois response for %s had no usable fields", target.Host)
	}
	return payload, nil
}

func rawExcerpt(raw string, maxLines int) string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	var kept []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "%") || strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, line)
		if len(kept) == maxLines {
			break
		}
	}
	return strings.Join(kept, "\n")
}

func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
