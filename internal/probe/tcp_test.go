package probe

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/aegis-sec/aegis/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTCPProbe_OpenPortWithBanner(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		conn.Write([]byte("SSH-2.0-OpenSSH_9.6\r\n"))
		conn.Close()
	}()

	_, port, _ := net.SplitHostPort(listener.Addr().String())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	outcome := TCPProbe("127.0.0.1")(ctx, port)
	assert.Equal(t, types.StatusOpen, outcome.Status)
	assert.Equal(t, "SSH-2.0-OpenSSH_9.6", outcome.Payload)
	assert.Equal(t, port, outcome.Unit)
}

func TestTCPProbe_OpenPortSilentService(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		// Never writes; banner read times out but the port is still open.
		defer conn.Close()
		time.Sleep(2 * time.Second)
	}()

	_, port, _ := net.SplitHostPort(listener.Addr().String())

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	outcome := TCPProbe("127.0.0.1")(ctx, port)
	assert.Equal(t, types.StatusOpen, outcome.Status)
	assert.Empty(t, outcome.Payload)
}

func TestTCPProbe_ClosedPort(t *testing.T) {
	// Grab a port then release it so nothing is listening.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	_, port, _ := net.SplitHostPort(listener.Addr().String())
	listener.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	outcome := TCPProbe("127.0.0.1")(ctx, port)
	assert.Equal(t, types.StatusClosed, outcome.Status)
}

func TestSanitizeBanner(t *testing.T) {
	assert.Equal(t, "HTTP/1.0 200 OK", sanitizeBanner("HTTP/1.0 200 OK\r\nServer: nginx\r\n"))
	assert.Equal(t, "hello", sanitizeBanner("hello\x00\x01"))
	assert.Equal(t, "", sanitizeBanner("\r\n"))
}
