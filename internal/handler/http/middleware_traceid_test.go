package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeWithTraceID(t *testing.T, traceIDHeader string) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()
	h, _ := newTestHandler(t)

	var capturedReq *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedReq = r
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if traceIDHeader != "" {
		req.Header.Set("X-Trace-ID", traceIDHeader)
	}

	rr := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rr, req)
	return rr, capturedReq
}

func TestWithTraceID_TableTest(t *testing.T) {
	tests := []struct {
		name            string
		requestTraceID  string
		wantSameTraceID bool
		wantValidUUID   bool
	}{
		{
			name:            "incoming trace id is propagated",
			requestTraceID:  "my-custom-trace-id",
			wantSameTraceID: true,
		},
		{
			name:          "missing trace id is generated",
			wantValidUUID: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, captured := executeWithTraceID(t, tt.requestTraceID)

			require.NotNil(t, captured, "next handler must be called")
			assert.Equal(t, http.StatusOK, rr.Code)

			got := rr.Header().Get(traceIDHeader)
			require.NotEmpty(t, got)
			if tt.wantSameTraceID {
				assert.Equal(t, tt.requestTraceID, got)
			}
			if tt.wantValidUUID {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			}
		})
	}
}

func TestWithTraceID_AttachesLogger(t *testing.T) {
	_, captured := executeWithTraceID(t, "abc")

	require.NotNil(t, captured)
	assert.NotNil(t, log.Ctx(captured.Context()))
}

func TestWithTraceID_UniquePerRequest(t *testing.T) {
	rr1, _ := executeWithTraceID(t, "")
	rr2, _ := executeWithTraceID(t, "")

	assert.NotEqual(t, rr1.Header().Get(traceIDHeader), rr2.Header().Get(traceIDHeader))
}
