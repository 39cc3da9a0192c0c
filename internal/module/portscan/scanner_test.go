package portscan

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/aegis-sec/aegis/internal/module"
	"github.com/aegis-sec/aegis/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePortSpec_Single(t *testing.T) {
	ports, err := ParsePortSpec("80")
	require.NoError(t, err)
	assert.Equal(t, []int{80}, ports)
}

func TestParsePortSpec_CommaSeparated(t *testing.T) {
	ports, err := ParsePortSpec("80,443,8080")
	require.NoError(t, err)
	assert.Equal(t, []int{80, 443, 8080}, ports)
}

func TestParsePortSpec_Range(t *testing.T) {
	ports, err := ParsePortSpec("1-5")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ports)
}

func TestParsePortSpec_MixedWithDuplicates(t *testing.T) {
	ports, err := ParsePortSpec("80,80,79-81,443")
	require.NoError(t, err)
	assert.Equal(t, []int{80, 79, 81, 443}, ports)
}

func TestParsePortSpec_Common(t *testing.T) {
	ports, err := ParsePortSpec("common")
	require.NoError(t, err)
	assert.Equal(t, CommonPorts, ports)
}

func TestParsePortSpec_Invalid(t *testing.T) {
	for _, spec := range []string{"abc", "100-50", "0-100", "1-70000", "-5"} {
		_, err := ParsePortSpec(spec)
		assert.Error(t, err, spec)
	}
}

func TestIdentifyService(t *testing.T) {
	assert.Equal(t, "HTTP", IdentifyService(80))
	assert.Equal(t, "SSH", IdentifyService(22))
	assert.Equal(t, "unknown", IdentifyService(12345))
}

func TestScanner_DetectsOpenPort(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			conn.Write([]byte("220 test service ready\r\n"))
			conn.Close()
		}
	}()

	_, portStr, _ := net.SplitHostPort(listener.Addr().String())
	port, _ := strconv.Atoi(portStr)

	s := New()
	opts := module.Options{
		Concurrency: 5,
		Timeout:     2 * time.Second,
		Extra:       map[string]any{"ports": portStr},
	}

	data, err := s.Run(context.Background(), types.Target{Host: "127.0.0.1"}, opts)
	require.NoError(t, err)

	assert.Equal(t, 1, data["scanned_count"])
	assert.Equal(t, 1, data["open_count"])

	openPorts := data["open_ports"].([]any)
	require.Len(t, openPorts, 1)
	entry := openPorts[0].(map[string]any)
	assert.Equal(t, port, entry["port"])
	assert.Equal(t, "220 test service ready", entry["banner"])
}

func TestScanner_ClosedPortIsNotAFailure(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	_, portStr, _ := net.SplitHostPort(listener.Addr().String())
	listener.Close()

	s := New()
	opts := module.Options{
		Concurrency: 5,
		Timeout:     time.Second,
		Extra:       map[string]any{"ports": portStr},
	}

	data, err := s.Run(context.Background(), types.Target{Host: "127.0.0.1"}, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, data["scanned_count"])
	assert.Equal(t, 0, data["open_count"])
	assert.Empty(t, data["open_ports"])
}

func TestScanner_OneOutcomePerPort(t *testing.T) {
	s := New()
	opts := module.Options{
		Concurrency: 10,
		Timeout:     500 * time.Millisecond,
		Extra:       map[string]any{"ports": "39990-39999"},
	}

	data, err := s.Run(context.Background(), types.Target{Host: "127.0.0.1"}, opts)
	require.NoError(t, err)
	assert.Equal(t, 10, data["scanned_count"])
}

func TestScanner_BadSpecFailsBeforeProbing(t *testing.T) {
	s := New()
	opts := module.Options{
		Concurrency: 5,
		Timeout:     time.Second,
		Extra:       map[string]any{"ports": "not-a-port"},
	}

	_, err := s.Run(context.Background(), types.Target{Host: "127.0.0.1"}, opts)
	assert.Error(t, err)
}

func TestScanner_UnresolvableHostFails(t *testing.T) {
	s := New()
	opts := module.Options{
		Concurrency: 5,
		Timeout:     time.Second,
		Extra:       map[string]any{"ports": "80,443"},
	}

	_, err := s.Run(context.Background(), types.Target{Host: "doesnotexist123456.invalid"}, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolving target")
}

func TestScanner_BadConcurrencyFailsFast(t *testing.T) {
	s := New()
	opts := module.Options{
		Concurrency: 0,
		Timeout:     time.Second,
		Extra:       map[string]any{"ports": "80"},
	}

	_, err := s.Run(context.Background(), types.Target{Host: "127.0.0.1"}, opts)
	assert.Error(t, err)
}
