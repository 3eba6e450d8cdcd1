package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lastEntry decodes the single JSON line written to buf.
func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewLogger_EntryShape(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("go-tours-server")
	l.Logger = l.Output(&buf)

	l.Info().Int64("user_id", 7).Msg("user logged in")

	entry := lastEntry(t, &buf)
	assert.Equal(t, "go-tours-server", entry["role"])
	assert.Equal(t, "user logged in", entry["message"])
	assert.EqualValues(t, 7, entry["user_id"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry["func"], "TestNewLogger_EntryShape", "caller is recorded as the function name")
}

func TestForEnv(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	tests := []struct {
		env       string
		wantLevel zerolog.Level
		wantDebug bool
	}{
		{env: "production", wantLevel: zerolog.InfoLevel},
		{env: "development", wantLevel: zerolog.DebugLevel, wantDebug: true},
		{env: "", wantLevel: zerolog.DebugLevel, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run("env="+tt.env, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewLogger("go-tours-server").ForEnv(tt.env)
			l.Logger = l.Output(&buf)

			l.Debug().Str("reset_token", "hash").Msg("reset token issued")

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
			assert.Equal(t, tt.wantLevel, LevelForEnv(tt.env))
			assert.Equal(t, tt.wantDebug, buf.Len() > 0)
		})
	}
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Error().Msg("booking creation failed")

	assert.Empty(t, buf.String())
}

func TestGetChildLogger(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger("sweeper")
	parent.Logger = parent.Output(&buf)

	child := parent.GetChildLogger()
	require.NotSame(t, parent, child)

	child.Logger = child.With().Str("worker", "reset-token-sweeper").Logger()
	child.Info().Msg("sweep finished")

	entry := lastEntry(t, &buf)
	assert.Equal(t, "sweeper", entry["role"], "child keeps the parent fields")
	assert.Equal(t, "reset-token-sweeper", entry["worker"])

	buf.Reset()
	parent.Info().Msg("parent line")
	assert.NotContains(t, lastEntry(t, &buf), "worker", "child fields do not leak into the parent")
}

func TestFromContext(t *testing.T) {
	t.Run("attached logger", func(t *testing.T) {
		var buf bytes.Buffer
		zl := zerolog.New(&buf).With().Str("trace_id", "abc-123").Logger()

		FromContext(zl.WithContext(context.Background())).Info().Msg("tour created")

		assert.Equal(t, "abc-123", lastEntry(t, &buf)["trace_id"])
	})

	t.Run("bare context", func(t *testing.T) {
		l := FromContext(context.Background())
		require.NotNil(t, l)
		assert.NotPanics(t, func() { l.Info().Msg("nothing attached") })
	})
}

func TestFromRequest(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "req-42").Logger()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tours", nil)
	req = req.WithContext(zl.WithContext(req.Context()))

	FromRequest(req).Info().Msg("listing tours")

	assert.Equal(t, "req-42", lastEntry(t, &buf)["trace_id"])
}
