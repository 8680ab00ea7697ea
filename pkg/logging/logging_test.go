package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	require.Equal(t, slog.LevelInfo, ParseLevel("info"))
	require.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	require.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestConfigureJSONHandlerEmitsStructuredOutput(t *testing.T) {
	var buf bytes.Buffer
	Configure(slog.LevelInfo, "json", &buf)

	slog.Default().Info("hello", "key", "value")
	require.Contains(t, buf.String(), `"msg":"hello"`)
	require.Contains(t, buf.String(), `"key":"value"`)
}

func TestConfigureTextHandlerEmitsKeyValueOutput(t *testing.T) {
	var buf bytes.Buffer
	Configure(slog.LevelInfo, "text", &buf)

	slog.Default().Info("hello")
	require.Contains(t, buf.String(), "msg=hello")
}

func TestConfigureDefaultsToTextForUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	Configure(slog.LevelInfo, "xml", &buf)

	slog.Default().Info("hello")
	require.Contains(t, buf.String(), "msg=hello")
}
