package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTarget_Domain(t *testing.T) {
	target, err := ParseTarget("example.com")
	require.NoError(t, err)
	assert.Equal(t, "example.com", target.Host)
	assert.False(t, target.IsIP())
}

func TestParseTarget_IP(t *testing.T) {
	target, err := ParseTarget("192.168.1.1")
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.1", target.Host)
	assert.True(t, target.IsIP())
}

func TestParseTarget_URL(t *testing.T) {
	target, err := ParseTarget("https://Example.com/path?q=1")
	require.NoError(t, err)
	assert.Equal(t, "example.com", target.Host)
}

func TestParseTarget_HostPort(t *testing.T) {
	target, err := ParseTarget("example.com:8080")
	require.NoError(t, err)
	assert.Equal(t, "example.com", target.Host)
}

func TestParseTarget_Empty(t *testing.T) {
	_, err := ParseTarget("   ")
	assert.Error(t, err)
}

func TestParseTarget_Garbage(t *testing.T) {
	_, err := ParseTarget("not a host!")
	assert.Error(t, err)
}

func TestParseTarget_TrailingDot(t *testing.T) {
	target, err := ParseTarget("example.com.")
	require.NoError(t, err)
	assert.Equal(t, "example.com", target.Host)
}

func TestTarget_IsLoopback(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"localhost", true},
		{"127.0.0.1", true},
		{"::1", true},
		{"0.0.0.0", true},
		{"example.com", false},
		{"8.8.8.8", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Target{Host: tc.host}.IsLoopback(), tc.host)
	}
}
