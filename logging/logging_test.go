package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var lines []map[string]any
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}
		line := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(raw), &line))
		lines = append(lines, line)
	}
	return lines
}

func TestInfo(t *testing.T) {

	buf := &bytes.Buffer{}
	lgr := New(buf, Config{})

	ctx := lgr.WithFields(context.Background(), "session", "abc")
	lgr.Info(ctx, "fetched page", "count", 5)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "fetched page", lines[0]["message"])
	assert.Equal(t, "abc", lines[0]["session"])
	assert.Equal(t, float64(5), lines[0]["count"])
	assert.Contains(t, lines[0], "time")
}

func TestError(t *testing.T) {

	buf := &bytes.Buffer{}
	lgr := New(buf, Config{Level: "debug"})

	lgr.Error(context.Background(), "fetch failed", errors.New("boom"), "url", "http://x")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "error", lines[0]["level"])
	assert.Equal(t, "boom", lines[0]["error"])
	assert.Equal(t, "http://x", lines[0]["url"])
}

func TestLevelFilters(t *testing.T) {

	buf := &bytes.Buffer{}
	lgr := New(buf, Config{Level: "error"})

	lgr.Info(context.Background(), "quiet")
	assert.Empty(t, buf.String())

	lgr.Error(context.Background(), "loud", errors.New("x"))
	assert.NotEmpty(t, buf.String())
}

func TestWithFieldsAccumulates(t *testing.T) {

	buf := &bytes.Buffer{}
	lgr := New(buf, Config{})

	ctx := lgr.WithFields(context.Background(), "a", 1)
	ctx = lgr.WithFields(ctx, "b", 2)
	lgr.Info(ctx, "both")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, float64(1), lines[0]["a"])
	assert.Equal(t, float64(2), lines[0]["b"])
}

func TestParseLevel(t *testing.T) {

	assert.Equal(t, zerolog.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("bogus"))
}

func TestNop(t *testing.T) {

	lgr := Nop()
	lgr.Info(context.Background(), "nothing")
	lgr.Error(context.Background(), "nothing", errors.New("x"))
}
