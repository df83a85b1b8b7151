package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(level LogLevel) (*BuildLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := NewLogger(&LoggerConfig{
		Level:  level,
		Format: "json",
		Output: buf,
	})
	return logger, buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelInfo, ParseLevel("info"))
	assert.Equal(t, LevelWarn, ParseLevel("warn"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"), "unknown levels fall back to info")
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
}

func TestInfoEmitsMessageAndFields(t *testing.T) {
	logger, buf := newTestLogger(LevelInfo)

	logger.Info(context.Background(), "build complete", "pages", 3, "stamp", "deadbeef")

	entry := decodeLine(t, buf)
	assert.Equal(t, "build complete", entry["msg"])
	assert.Equal(t, float64(3), entry["pages"])
	assert.Equal(t, "deadbeef", entry["stamp"])
}

func TestDebugSuppressedAtInfoLevel(t *testing.T) {
	logger, buf := newTestLogger(LevelInfo)

	logger.Debug(context.Background(), "page rendered", "page", "index.html")
	assert.Zero(t, buf.Len())
}

func TestWarnCarriesError(t *testing.T) {
	logger, buf := newTestLogger(LevelInfo)

	logger.Warn(context.Background(), fmt.Errorf("no such directory"), "no component templates found")

	entry := decodeLine(t, buf)
	assert.Equal(t, "no component templates found", entry["msg"])
	assert.Equal(t, "no such directory", entry["error"])
}

func TestWithComponent(t *testing.T) {
	logger, buf := newTestLogger(LevelInfo)

	logger.WithComponent("build").Info(context.Background(), "starting")

	entry := decodeLine(t, buf)
	assert.Equal(t, "build", entry["component"])
}

func TestWithFieldsAccumulate(t *testing.T) {
	logger, buf := newTestLogger(LevelInfo)

	child := logger.With("page", "index.html").With("attempt", 2)
	child.Info(context.Background(), "rendering")

	entry := decodeLine(t, buf)
	assert.Equal(t, "index.html", entry["page"])
	assert.Equal(t, float64(2), entry["attempt"])
}

func TestPerfLoggerEnd(t *testing.T) {
	logger, buf := newTestLogger(LevelInfo)

	perf := logger.StartOperation("render")
	perf.End(context.Background())

	entry := decodeLine(t, buf)
	assert.Equal(t, "operation completed", entry["msg"])
	assert.Equal(t, "render", entry["operation"])
	_, ok := entry["duration_ms"]
	assert.True(t, ok, "completed operations must report their duration")
}

func TestPerfLoggerEndWithError(t *testing.T) {
	logger, buf := newTestLogger(LevelInfo)

	perf := logger.StartOperation("stamp")
	perf.EndWithError(context.Background(), fmt.Errorf("asset unreadable"))

	entry := decodeLine(t, buf)
	assert.Equal(t, "operation failed", entry["msg"])
	assert.Equal(t, "stamp", entry["operation"])
	assert.Equal(t, "asset unreadable", entry["error"])
	_, ok := entry["duration_ms"]
	assert.True(t, ok)
}

func TestNopLoggerStaysSilent(t *testing.T) {
	logger := NewNopLogger()
	logger.Info(context.Background(), "should vanish")
	logger.Warn(context.Background(), fmt.Errorf("x"), "should vanish")
}
