package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aegis-sec/aegis/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []types.ModuleResult {
	started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []types.ModuleResult{
		{
			Module:      "port_scan",
			Target:      types.Target{Host: "example.com"},
			StartedAt:   started,
			CompletedAt: started.Add(900 * time.Millisecond),
			Success:     true,
			Data: map[string]any{
				"open_ports": []any{
					map[string]any{"port": 22, "service": "SSH", "banner": "OpenSSH"},
					map[string]any{"port": 80, "service": "HTTP"},
				},
				"scanned_count": 100,
				"open_count":    2,
			},
		},
		{
			Module:  "osint",
			Target:  types.Target{Host: "example.com"},
			Success: false,
			Error:   "all OSINT sources failed: whois: timeout",
		},
	}
}

func TestGetFormatter(t *testing.T) {
	for _, format := range []string{"text", "json", "csv"} {
		f, err := GetFormatter(format)
		require.NoError(t, err, format)
		assert.NotNil(t, f)
	}

	_, err := GetFormatter("xml")
	assert.Error(t, err)
}

func TestJSONFormatter_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).Format(&buf, sampleResults()))

	var decoded []types.ModuleResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "port_scan", decoded[0].Module)
	assert.True(t, decoded[0].Success)
	assert.False(t, decoded[1].Success)
	assert.NotEmpty(t, decoded[1].Error)
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TextFormatter{}).Format(&buf, sampleResults()))

	out := buf.String()
	assert.Contains(t, out, "[port_scan] example.com")
	assert.Contains(t, out, "open_count")
	assert.Contains(t, out, "[osint] example.com")
	assert.Contains(t, out, "whois: timeout")
}

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&CSVFormatter{}).Format(&buf, sampleResults()))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)

	assert.Equal(t, []string{"module", "target", "success", "error", "field", "value"}, records[0])

	var fields []string
	for _, rec := range records[1:] {
		require.Len(t, rec, 6)
		fields = append(fields, rec[4])
	}
	assert.Contains(t, fields, "open_count")
	assert.Contains(t, fields, "open_ports[0].port")

	// Failure row carries the error with empty field columns.
	last := records[len(records)-1]
	assert.Equal(t, "osint", last[0])
	assert.Equal(t, "false", last[2])
	assert.NotEmpty(t, last[3])
}

func TestFlatten(t *testing.T) {
	rows := Flatten("", map[string]any{
		"b": []any{"x", "y"},
		"a": 1,
		"c": map[string]any{"inner": true},
	})

	require.Len(t, rows, 3)
	assert.Equal(t, KV{Key: "a", Value: "1"}, rows[0])
	assert.Equal(t, KV{Key: "b", Value: "x, y"}, rows[1])
	assert.Equal(t, KV{Key: "c.inner", Value: "true"}, rows[2])
}
