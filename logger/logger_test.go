package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Config{Level: "warn", Format: FormatJSON, Output: &buf}))

	Info().Msg("hidden")
	l := WithComponent("publisher")
	l.Warn().Str("sensor", "cpu_usage").Msg("failed to run sensor")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	require.Equal(t, "warn", line["level"])
	require.Equal(t, "publisher", line["component"])
	require.Equal(t, "cpu_usage", line["sensor"])
	require.Equal(t, "failed to run sensor", line["message"])
}

func TestInitInvalid(t *testing.T) {
	require.Error(t, Init(Config{Level: "loud"}))
	require.Error(t, Init(Config{Format: "xml"}))
}
