package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Out: &buf})

	log.Info().Str("file", "ledger.csv").Msg("loaded")
	log.Debug().Msg("hidden")

	assert.Contains(t, buf.String(), `"message":"loaded"`)
	assert.Contains(t, buf.String(), `"file":"ledger.csv"`)
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNew_Pretty(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Pretty: true, Out: &buf})

	log.Warn().Int("skipped", 2).Msg("rows dropped")
	log.Info().Msg("not shown")

	assert.Contains(t, buf.String(), "rows dropped")
	assert.Contains(t, buf.String(), "skipped=2")
	assert.NotContains(t, buf.String(), "not shown")
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		name string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"unknown", zerolog.InfoLevel},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseLevel(tc.name))
		})
	}
}
