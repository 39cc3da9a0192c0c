package osint

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/aegis-sec/aegis/internal/module"
	"github.com/aegis-sec/aegis/pkg/types"
)

type shodanSource struct {
	client  *http.Client
	baseURL string
	key     string
}

func newShodanSource(key string) Source {
	return &shodanSource{client: &http.Client{}, baseURL: "https://api.shodan.io", key: key}
}

func (*shodanSource) Name() string { return "shodan" }

// Gather queries the Shodan REST API: host lookup for IP targets, domain
// lookup otherwise. Only a stable subset of the response is kept so the
// payload stays small and renderable.
func (s *shodanSource) Gather(ctx context.Context, target types.Target, opts module.Options) (map[string]any, error) {
	if s.key == "" {
		return nil, fmt.Errorf("shodan API key not configured")
	}

	var path string
	if target.IsIP() {
		path = "/shodan/host/" + url.PathEscape(target.Host)
	} else {
		path = "/dns/domain/" + url.PathEscape(target.Host)
	}

	reqURL := fmt.Sprintf("%s%s?key=%s", s.baseURL, path, url.QueryEscape(s.key))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying shodan: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("shodan returned status %d", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding shodan response: %w", err)
	}

	keep := []string{"ports", "org", "isp", "asn", "country_name", "hostnames", "tags", "subdomains"}
	payload := make(map[string]any)
	for _, k := range keep {
		if v, ok := body[k]; ok && v != nil {
			payload[k] = v
		}
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("shodan had no data for %s", target.Host)
	}
	return payload, nil
}
