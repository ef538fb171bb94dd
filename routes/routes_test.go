package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/dstl-lab/dsc10-tutor-logger/app"
	"github.com/dstl-lab/dsc10-tutor-logger/config"
	"github.com/dstl-lab/dsc10-tutor-logger/handlers"
	"github.com/dstl-lab/dsc10-tutor-logger/models"
)

// fakeEvents is a minimal in-memory EventRepository for routing tests
type fakeEvents struct {
	nextID int64
}

func (f *fakeEvents) Insert(ctx context.Context, eventType string, userEmail *string, payload models.Payload) (int64, time.Time, error) {
	f.nextID++
	return f.nextID, time.Now().UTC(), nil
}

func (f *fakeEvents) ListRecent(ctx context.Context, limit int) ([]*models.Event, error) {
	return nil, nil
}

func (f *fakeEvents) ListByNotebook(ctx context.Context, notebook string) ([]*models.Event, error) {
	return nil, nil
}

func (f *fakeEvents) ListAll(ctx context.Context) ([]*models.Event, error) {
	return nil, nil
}

func (f *fakeEvents) NotebookCounts(ctx context.Context) ([]*models.NotebookCount, error) {
	return nil, nil
}

type okPinger struct{}

func (okPinger) HealthCheck(ctx context.Context) error { return nil }

func testDeps() *app.Dependencies {
	logger := zap.NewNop()
	events := &fakeEvents{}
	dashCfg := config.DashboardConfig{Secret: "hunter2"}

	return &app.Dependencies{
		Config:           &config.Config{Dashboard: dashCfg},
		Logger:           logger,
		Events:           events,
		EventHandler:     handlers.NewEventHandler(events, logger),
		HealthHandler:    handlers.NewHealthHandler(okPinger{}, logger),
		DashboardHandler: handlers.NewDashboardHandler(events, dashCfg, logger),
	}
}

func TestSetupRoutes(t *testing.T) {
	router := SetupRoutes(testDeps())

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
	}{
		{"ingest event", http.MethodPost, "/events", `{"event_type":"question_asked"}`, http.StatusCreated},
		{"ingest invalid event", http.MethodPost, "/events", `{}`, http.StatusUnprocessableEntity},
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"dashboard unauthenticated", http.MethodGet, "/dashboard", "", http.StatusOK},
		{"unknown endpoint", http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tt.method, tt.target, nil)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}

	t.Run("responses carry a request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("login redirects on correct password", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/dashboard/login", strings.NewReader("password=hunter2"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusSeeOther, w.Code)
	})
}
