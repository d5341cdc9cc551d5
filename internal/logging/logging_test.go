package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"text":  FormatText,
		"TINT":  FormatText,
		"human": FormatText,
		"json":  FormatJSON,
		"":      FormatAuto,
		"xml":   FormatAuto,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseFormat(in), "ParseFormat(%q)", in)
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}

func TestNew_AutoOnNonTTY_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, FormatAuto, slog.LevelInfo)

	l.Debug("hidden")
	l.Info("clipboard updated", "value", "42")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "clipboard updated", rec["msg"])
	assert.Equal(t, "42", rec["value"])
}

func TestNew_Text_HumanReadable(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, FormatText, slog.LevelDebug).Debug("decoded entry", "value", "7")

	assert.Contains(t, buf.String(), "decoded entry")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestIsTTY_NonFile(t *testing.T) {
	assert.False(t, IsTTY(&bytes.Buffer{}))
}
