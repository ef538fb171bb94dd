package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var dashboardTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Template data types

type loginData struct {
	Error string
}

type notebookItem struct {
	Name  string
	URL   string
	Count int64
}

type indexData struct {
	Notebooks []notebookItem
}

type timelineEntry struct {
	Timestamp string
	EventType string
	ChatGPT   bool
	Question  string
	Response  string
}

type userGroup struct {
	Email   string
	Entries []timelineEntry
}

type detailData struct {
	Notebook string
	Groups   []*userGroup
}

type flatRow struct {
	ID        int64
	EventType string
	UserEmail string
	Notebook  string
	Timestamp string
}

type flatData struct {
	Events []flatRow
}

// renderTemplate renders one of the embedded dashboard templates. Escaping
// of user-supplied text is handled by html/template.
func (h *DashboardHandler) renderTemplate(w http.ResponseWriter, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := dashboardTemplates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("failed to render template",
			zap.String("template", name),
			zap.Error(err))
	}
}
