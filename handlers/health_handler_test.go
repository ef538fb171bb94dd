package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubPinger struct {
	err   error
	calls int
}

func (s *stubPinger) HealthCheck(ctx context.Context) error {
	s.calls++
	return s.err
}

func TestHandleHealth(t *testing.T) {
	logger := zap.NewNop()

	t.Run("ok when database is reachable", func(t *testing.T) {
		handler := NewHealthHandler(&stubPinger{}, logger)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		handler.HandleHealth(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "ok", resp["status"])
	})

	t.Run("503 with error detail when database is down", func(t *testing.T) {
		pinger := &stubPinger{err: errors.New("connection refused")}
		handler := NewHealthHandler(pinger, logger)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		handler.HandleHealth(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var resp map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Contains(t, resp["detail"], "connection refused")
	})

	t.Run("repeated failures keep probing", func(t *testing.T) {
		pinger := &stubPinger{err: errors.New("down")}
		handler := NewHealthHandler(pinger, logger)

		for i := 0; i < 5; i++ {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()
			handler.HandleHealth(w, req)
			assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		}
		assert.Equal(t, 5, pinger.calls)

		// Recovery is observed on the next request
		pinger.err = nil
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		handler.HandleHealth(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
