package probe

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/aegis-sec/aegis/pkg/types"
)

// HostResolver is the resolver surface the DNS probe needs. net.Resolver
// satisfies it; tests substitute a fake.
type HostResolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// DNSProbe returns a probe Func that checks whether the unit, a fully
// qualified candidate name, resolves. A nil resolver uses the system one.
// NXDOMAIN is a normal unresolved outcome, never an error.
func DNSProbe(resolver HostResolver) Func {
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	return func(ctx context.Context, unit string) types.ProbeOutcome {
		start := time.Now()
		outcome := types.ProbeOutcome{Unit: unit}

		addrs, err := resolver.LookupHost(ctx, unit)
		outcome.Elapsed = time.Since(start)

		if err != nil {
			var dnsErr *net.DNSError
			switch {
			case errors.As(err, &dnsErr) && dnsErr.IsNotFound:
				outcome.Status = types.StatusUnresolved
			case errors.As(err, &dnsErr) && dnsErr.IsTimeout,
				errors.Is(err, context.DeadlineExceeded):
				outcome.Status = types.StatusError
				outcome.Reason = types.ReasonTimeout
			default:
				outcome.Status = types.StatusError
				outcome.Reason = err.Error()
			}
			return outcome
		}

		outcome.Status = types.StatusResolved
		if len(addrs) > 0 {
			outcome.Payload = addrs[0]
		}
		return outcome
	}
}
