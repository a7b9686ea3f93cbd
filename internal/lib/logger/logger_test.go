package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"eventReport/internal/lib/logger/sl"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupJSONLevels(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		env       string
		wantDebug bool
	}{
		{name: "dev logs debug", env: EnvDev, wantDebug: true},
		{name: "prod skips debug", env: EnvProd, wantDebug: false},
		{name: "unknown env falls back to prod", env: "staging", wantDebug: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log := Setup(tc.env, &buf)

			log.Debug("debug message")
			assert.Equal(t, tc.wantDebug, buf.Len() > 0)

			buf.Reset()
			log.Info("report generated", slog.Int64("event_id", 7), sl.Err(errors.New("boom")))

			var record map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
			assert.Equal(t, "report generated", record["msg"])
			assert.Equal(t, float64(7), record["event_id"])
			assert.Equal(t, "boom", record["error"])
		})
	}
}

func TestSetupLocalPretty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := Setup(EnvLocal, &buf).With(slog.String("op", "test"))

	log.Debug("pretty message", slog.String("event_name", "Aloha"))

	out := buf.String()
	assert.Contains(t, out, "pretty message")
	assert.Contains(t, out, `"event_name": "Aloha"`)
	assert.Contains(t, out, `"op": "test"`)
}
