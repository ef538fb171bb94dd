package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/dstl-lab/dsc10-tutor-logger/auth"
	"github.com/dstl-lab/dsc10-tutor-logger/config"
	"github.com/dstl-lab/dsc10-tutor-logger/models"
	"github.com/dstl-lab/dsc10-tutor-logger/repositories"
	"github.com/dstl-lab/dsc10-tutor-logger/utils"
)

const (
	// flatDefaultLimit is the flat-table row count when no limit is given
	flatDefaultLimit = 300
	// flatMaxLimit caps the flat table regardless of the requested limit,
	// bounding query cost and response size
	flatMaxLimit = 10000

	// unknownUser labels events recorded without a user_email
	unknownUser = "(unknown)"

	displayTimeFormat = "2006-01-02 15:04:05 UTC"
)

// DashboardHandler serves the password-gated HTML views over the event log
type DashboardHandler struct {
	events repositories.EventRepository
	cfg    config.DashboardConfig
	logger *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(events repositories.EventRepository, cfg config.DashboardConfig, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		events: events,
		cfg:    cfg,
		logger: logger,
	}
}

// HandleDashboard handles GET /dashboard.
// With the flat table enabled the handler renders the most recent events
// without authentication or grouping. Otherwise a valid session cookie is
// required; an unauthenticated visit is expected and renders the login form
// with a 200, not an error.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if h.cfg.FlatTable {
		h.renderFlat(w, r)
		return
	}

	if !auth.Authenticated(r, h.cfg.Secret) {
		h.renderTemplate(w, http.StatusOK, "login.html", loginData{})
		return
	}

	notebook := r.URL.Query().Get("notebook")
	if notebook == "" {
		h.renderIndex(w, r)
		return
	}
	h.renderDetail(w, r, notebook)
}

// HandleLogin handles POST /dashboard/login
func (h *DashboardHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid login form", nil)
		return
	}

	if !auth.CheckPassword(r.PostFormValue("password"), h.cfg.Secret) {
		h.logger.Warn("dashboard login failed")
		h.renderTemplate(w, http.StatusUnauthorized, "login.html", loginData{Error: "Invalid password"})
		return
	}

	auth.SetTokenCookie(w, h.cfg.Secret)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// renderIndex lists every notebook seen in event payloads, busiest first
func (h *DashboardHandler) renderIndex(w http.ResponseWriter, r *http.Request) {
	counts, err := h.events.NotebookCounts(r.Context())
	if err != nil {
		h.logger.Error("failed to load notebook counts", zap.Error(err))
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	data := indexData{}
	for _, nc := range counts {
		data.Notebooks = append(data.Notebooks, notebookItem{
			Name: nc.Notebook,
			// Percent-encoding here is separate from the HTML escaping the
			// template applies to the attribute value.
			URL:   "/dashboard?" + url.Values{"notebook": {nc.Notebook}}.Encode(),
			Count: nc.Count,
		})
	}

	h.renderTemplate(w, http.StatusOK, "index.html", data)
}

// renderDetail shows one notebook's events grouped per student. A notebook
// with no events renders an empty page, not an error.
func (h *DashboardHandler) renderDetail(w http.ResponseWriter, r *http.Request, notebook string) {
	events, err := h.events.ListByNotebook(r.Context(), notebook)
	if err != nil {
		h.logger.Error("failed to load notebook events",
			zap.String("notebook", notebook),
			zap.Error(err))
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	h.renderTemplate(w, http.StatusOK, "detail.html", detailData{
		Notebook: notebook,
		Groups:   groupByUser(events),
	})
}

// renderFlat shows the most recent events as one table, newest first
func (h *DashboardHandler) renderFlat(w http.ResponseWriter, r *http.Request) {
	limit := flatDefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > flatMaxLimit {
		limit = flatMaxLimit
	}

	events, err := h.events.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to load recent events", zap.Error(err))
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	data := flatData{}
	for _, event := range events {
		notebook, _ := event.Payload.Notebook()
		data.Events = append(data.Events, flatRow{
			ID:        event.ID,
			EventType: event.EventType,
			UserEmail: displayEmail(event.UserEmail),
			Notebook:  notebook,
			Timestamp: event.CreatedAt.UTC().Format(displayTimeFormat),
		})
	}

	h.renderTemplate(w, http.StatusOK, "flat.html", data)
}

// groupByUser folds an ordered event list into one section per distinct
// user_email, preserving first-seen group order. The rows arrive sorted by
// user_email, created_at, id, so entries within a group are chronological.
func groupByUser(events []*models.Event) []*userGroup {
	var groups []*userGroup
	index := make(map[string]*userGroup)

	for _, event := range events {
		email := displayEmail(event.UserEmail)
		group, ok := index[email]
		if !ok {
			group = &userGroup{Email: email}
			index[email] = group
			groups = append(groups, group)
		}

		mode, _ := event.Payload.String("mode")
		question, _ := event.Payload.String("question")
		response, _ := event.Payload.String("response")

		group.Entries = append(group.Entries, timelineEntry{
			Timestamp: event.CreatedAt.UTC().Format(displayTimeFormat),
			EventType: event.EventType,
			ChatGPT:   mode == "chatgpt",
			Question:  question,
			Response:  response,
		})
	}

	return groups
}

// displayEmail maps a missing user_email to the "(unknown)" group. An empty
// string recorded by a client is shown verbatim.
func displayEmail(email *string) string {
	if email == nil {
		return unknownUser
	}
	return *email
}
