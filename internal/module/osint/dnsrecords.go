package osint

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/aegis-sec/aegis/internal/module"
	"github.com/aegis-sec/aegis/pkg/types"
	"github.com/miekg/dns"
)

type dnsRecordsSource struct {
	// server is the resolver address as host:port; empty reads the system
	// resolver from /etc/resolv.conf. Tests point this at a local server.
	server string
}

func newDNSRecordsSource() Source { return &dnsRecordsSource{} }

func (*dnsRecordsSource) Name() string { return "dns_records" }

var recordTypes = []struct {
	label string
	qtype uint16
}{
	{"a", dns.TypeA},
	{"aaaa", dns.TypeAAAA},
	{"mx", dns.TypeMX},
	{"ns", dns.TypeNS},
	{"txt", dns.TypeTXT},
}

// Gather queries the standard record types for the target domain. Record
// types that fail or come back empty are simply absent from the payload.
func (d *dnsRecordsSource) Gather(ctx context.Context, target types.Target, opts module.Options) (map[string]any, error) {
	if target.IsIP() {
		return nil, fmt.Errorf("dns_records needs a domain target, got IP %s", target.Host)
	}

	server := d.server
	if server == "" {
		cfg, err := dns.ClientConfigFromFile("/etc/resolv.conf")
		if err != nil || len(cfg.Servers) == 0 {
			return nil, fmt.Errorf("no system resolver available: %v", err)
		}
		server = net.JoinHostPort(cfg.Servers[0], cfg.Port)
	}

	client := &dns.Client{Timeout: opts.Timeout}
	payload := make(map[string]any)

	for _, rt := range recordTypes {
		values, err := queryRecords(ctx, client, server, target.Host, rt.qtype)
		if err != nil || len(values) == 0 {
			continue
		}
		payload[rt.label] = toAnySlice(values)
	}

	if len(payload) == 0 {
		return nil, fmt.Errorf("no DNS records found for %s", target.Host)
	}
	return payload, nil
}

func queryRecords(ctx context.Context, client *dns.Client, server, host string, qtype uint16) ([]string, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(host), qtype)
	msg.RecursionDesired = true

	resp, _, err := client.ExchangeContext(ctx, msg, server)
	if err != nil {
		return nil, err
	}

	var values []string
	for _, rr := range resp.Answer {
		switch r := rr.(type) {
		case *dns.A:
			values = append(values, r.A.String())
		case *dns.AAAA:
			values = append(values, r.AAAA.String())
		case *dns.MX:
			values = append(values, fmt.Sprintf("%d %s", r.Preference, strings.TrimSuffix(r.Mx, ".")))
		case *dns.NS:
			values = append(values, strings.TrimSuffix(r.Ns, "."))
		case *dns.TXT:
			values = append(values, strings.Join(r.Txt, " "))
		}
	}
	return values, nil
}
