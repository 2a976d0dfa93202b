package stdlogger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluserman/pluserman/internal/logger/adapter/stdlogger"
)

type line struct {
	Level     string `json:"level"`
	Message   string `json:"message"`
	Component string `json:"component"`
}

func capture(t *testing.T, level zerolog.Level) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer

	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(level)

	return &buf
}

func decode(t *testing.T, buf *bytes.Buffer) []line {
	t.Helper()

	var out []line

	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}

		var l line
		require.NoError(t, json.Unmarshal([]byte(raw), &l))
		out = append(out, l)
	}

	return out
}

func TestLevels(t *testing.T) {
	buf := capture(t, zerolog.InfoLevel)

	base := stdlogger.New()

	base.Printf("stdlogger %s", "test debug")
	base.WithLevel(zerolog.InfoLevel).Printf("stdlogger %s", "test info")
	base.WithLevel(zerolog.WarnLevel).Printf("stdlogger %s", "test warning")
	base.WithLevel(zerolog.ErrorLevel).Printf("stdlogger %s", "test error")

	lines := decode(t, buf)
	require.Len(t, lines, 3, "debug must be filtered at info level")

	assert.Equal(t, "info", lines[0].Level)
	assert.Equal(t, "stdlogger test info", lines[0].Message)
	assert.Equal(t, "warn", lines[1].Level)
	assert.Equal(t, "error", lines[2].Level)
	assert.Empty(t, lines[0].Component)
}

func TestPrintf(t *testing.T) {
	buf := capture(t, zerolog.DebugLevel)

	gormWriter := stdlogger.New().WithLevel(zerolog.WarnLevel).WithComponent("gorm")
	gormWriter.Printf("\n%s [%.3fms] %s", "users.go:12", 1.5, "SELECT 1")

	lines := decode(t, buf)
	require.Len(t, lines, 1)

	assert.Equal(t, "warn", lines[0].Level)
	assert.Equal(t, "gorm", lines[0].Component)
	assert.Equal(t, "users.go:12 [1.500ms] SELECT 1", lines[0].Message)
}
