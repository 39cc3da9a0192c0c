package probe

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/aegis-sec/aegis/pkg/types"
)

const maxBannerBytes = 1024

// TCPProbe returns a probe Func that attempts a TCP connect against host.
// The unit is a decimal port number. On connect, a best-effort bounded read
// captures a service banner; a failed or empty read still reports the port
// as open. Connection errors map to distinct statuses: refused means
// closed, unreachable means filtered, deadline expiry means timeout.
func TCPProbe(host string) Func {
	return func(ctx context.Context, unit string) types.ProbeOutcome {
		start := time.Now()
		outcome := types.ProbeOutcome{Unit: unit}

		var dialer net.Dialer
		conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, unit))
		if err != nil {
			outcome.Status, outcome.Reason = classifyDialError(err)
			outcome.Elapsed = time.Since(start)
			return outcome
		}
		defer conn.Close()

		outcome.Status = types.StatusOpen
		outcome.Payload = grabBanner(ctx, conn, host, unit)
		outcome.Elapsed = time.Since(start)
		return outcome
	}
}

func classifyDialError(err error) (types.ProbeStatus, string) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return types.StatusError, types.ReasonTimeout
	case errors.Is(err, syscall.ECONNREFUSED):
		return types.StatusClosed, "connection refused"
	case errors.Is(err, syscall.EHOSTUNREACH), errors.Is(err, syscall.ENETUNREACH):
		return types.StatusFiltered, "host unreachable"
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return types.StatusError, types.ReasonTimeout
	}
	return types.StatusError, err.Error()
}

// grabBanner reads up to maxBannerBytes from the connection, sending a
// protocol-specific trigger first on ports that only speak when spoken to.
func grabBanner(ctx context.Context, conn net.Conn, host, port string) string {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(2 * time.Second)
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return ""
	}

	switch port {
	case "80", "8080", "8000", "8888":
		conn.Write([]byte("HEAD / HTTP/1.0\r\nHost: " + host + "\r\n\r\n"))
	case "25", "587":
		conn.Write([]byte("EHLO " + host + "\r\n"))
	}

	buf := make([]byte, maxBannerBytes)
	n, err := conn.Read(buf)
	if err != nil || n == 0 {
		return ""
	}
	return sanitizeBanner(string(buf[:n]))
}

// sanitizeBanner keeps the first line of the banner and strips control
// characters so the payload stays printable in every output format.
func sanitizeBanner(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	var b strings.Builder
	for _, r := range s {
		if r >= 32 && r < 127 {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
