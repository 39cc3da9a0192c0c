package osint

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/aegis-sec/aegis/internal/module"
	"github.com/aegis-sec/aegis/pkg/types"
)

const maxCrtShNames = 200

type crtShSource struct {
	client  *http.Client
	baseURL string
}

func newCrtShSource() Source {
	return &crtShSource{client: &http.Client{}, baseURL: "https://crt.sh"}
}

func (*crtShSource) Name() string { return "crtsh" }

// Gather pulls certificate-transparency log entries for the target domain
// and extracts the distinct names certificates were issued for.
func (c *crtShSource) Gather(ctx context.Context, target types.Target, opts module.Options) (map[string]any, error) {
	if target.IsIP() {
		return nil, fmt.Errorf("crtsh needs a domain target, got IP %s", target.Host)
	}

	reqURL := fmt.Sprintf("%s/?q=%s&output=json", c.baseURL, url.QueryEscape("%."+target.Host))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying crt.sh: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("crt.sh returned status %d", resp.StatusCode)
	}

	var entries []struct {
		NameValue string `json:"name_value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding crt.sh response: %w", err)
	}

	seen := make(map[string]struct{})
	var names []string
	for _, entry := range entries {
		for _, name := range strings.Split(entry.NameValue, "\n") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" || strings.HasPrefix(name, "*.") {
				continue
			}
			if name != target.Host && !strings.HasSuffix(name, "."+target.Host) {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if len(names) > maxCrtShNames {
		names = names[:maxCrtShNames]
	}

	return map[string]any{
		"names": toAnySlice(names),
		"count": len(names),
	}, nil
}
