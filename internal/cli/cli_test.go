package cli

import (
	"bytes"
	"encoding/json"
	"net"
	"strconv"
	"testing"

	"github.com/aegis-sec/aegis/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCmd(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

func decodeResults(t *testing.T, raw string) []types.ModuleResult {
	t.Helper()
	var results []types.ModuleResult
	require.NoError(t, json.Unmarshal([]byte(raw), &results))
	return results
}

func TestVersionCommand(t *testing.T) {
	output, err := executeCmd("version")
	require.NoError(t, err)
	assert.Contains(t, output, "aegis version")
}

func TestRootHelpListsCommands(t *testing.T) {
	output, err := executeCmd("--help")
	require.NoError(t, err)
	for _, name := range []string{"recon", "scan", "osint", "modules", "info", "test", "serve", "interactive"} {
		assert.Contains(t, output, name)
	}
}

func TestScanMissingTarget(t *testing.T) {
	targetFlag = ""
	_, err := executeCmd("scan")
	assert.Error(t, err)
}

func TestScanDetectsOpenPort(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	_, portStr, _ := net.SplitHostPort(listener.Addr().String())

	output, err := executeCmd("scan", "-t", "127.0.0.1", "-p", portStr, "-o", "json", "--safe=false", "--timeout", "500ms")
	require.NoError(t, err)

	results := decodeResults(t, output)
	require.Len(t, results, 1)
	require.True(t, results[0].Success, results[0].Error)

	openPorts, ok := results[0].Data["open_ports"].([]any)
	require.True(t, ok)
	require.Len(t, openPorts, 1)

	entry := openPorts[0].(map[string]any)
	want, _ := strconv.Atoi(portStr)
	assert.Equal(t, float64(want), entry["port"])
}

func TestScanTextOutput(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	_, portStr, _ := net.SplitHostPort(listener.Addr().String())

	output, err := executeCmd("scan", "-t", "127.0.0.1", "-p", portStr, "-o", "text", "--safe=false", "--timeout", "500ms")
	require.NoError(t, err)
	assert.Contains(t, output, "[port_scan] 127.0.0.1")
	assert.Contains(t, output, "open_count")
}

func TestScanSafeModeRefusesLoopback(t *testing.T) {
	output, err := executeCmd("scan", "-t", "127.0.0.1", "-p", "80", "-o", "json", "--safe=true")
	require.NoError(t, err)

	results := decodeResults(t, output)
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "safe mode")
}

func TestScanInvalidPortSpec(t *testing.T) {
	output, err := executeCmd("scan", "-t", "127.0.0.1", "-p", "not-a-port", "-o", "json", "--safe=false")
	require.NoError(t, err)

	results := decodeResults(t, output)
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "port")
}

func TestReconUnknownModule(t *testing.T) {
	output, err := executeCmd("recon", "-t", "127.0.0.1", "-m", "bogus", "-o", "json", "--safe=false")
	require.NoError(t, err)

	results := decodeResults(t, output)
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Equal(t, "module not found: bogus", results[0].Error)
}

func TestReconUnknownProfile(t *testing.T) {
	_, err := executeCmd("recon", "-t", "127.0.0.1", "--profile", "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown profile")
}

func TestModulesList(t *testing.T) {
	output, err := executeCmd("modules")
	require.NoError(t, err)
	for _, name := range []string{"port_scan", "subdomain_enum", "osint"} {
		assert.Contains(t, output, name)
	}
}

func TestModulesDescribe(t *testing.T) {
	output, err := executeCmd("modules", "osint")
	require.NoError(t, err)
	assert.Contains(t, output, "shodan_key")
	assert.Contains(t, output, "sources")
}

func TestModulesUnknown(t *testing.T) {
	_, err := executeCmd("modules", "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "module not found")
}

func TestSelfTestPasses(t *testing.T) {
	output, err := executeCmd("test")
	require.NoError(t, err)
	assert.Contains(t, output, "PASS")
	assert.NotContains(t, output, "FAIL")
}

func TestInfoCommand(t *testing.T) {
	output, err := executeCmd("info")
	require.NoError(t, err)
	assert.Contains(t, output, "config file:")
	assert.Contains(t, output, "port_scan")
}
