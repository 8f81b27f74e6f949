// Package chi is the HTTP transport: server-rendered pages and partials for
// the faceted search frontend, plus health and metrics endpoints.
package chi

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/facetview"
	"github.com/kailas-cloud/facetview/internal/config"
	"github.com/kailas-cloud/facetview/internal/domain"
	"github.com/kailas-cloud/facetview/internal/usecase/orchestrator"
	settingsuc "github.com/kailas-cloud/facetview/internal/usecase/settings"
)

// Server renders the search frontend over the wired UI.
type Server struct {
	ui       *facetview.UI
	settings *settingsuc.Service
	cfg      *config.Config
	logger   *zap.Logger
	health   func(r *http.Request) error
}

// NewServer creates an HTTP server over the wired UI and settings service.
func NewServer(ui *facetview.UI, settings *settingsuc.Service, logger *zap.Logger) *Server {
	return &Server{
		ui:       ui,
		settings: settings,
		cfg:      ui.Config(),
		logger:   logger,
	}
}

// WithHealthCheck adds a dependency probe to /healthz.
func (s *Server) WithHealthCheck(check func(r *http.Request) error) *Server {
	s.health = check
	return s
}

// Routes mounts every handler on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Index)
	r.Post("/search", s.Search)
	r.Post("/filter", s.Filter)
	r.Get("/page/{n}", s.Page)
	r.Post("/reset", s.Reset)
	r.Get("/settings", s.SettingsForm)
	r.Post("/settings", s.SettingsSave)
	r.Post("/theme/{id}", s.ThemeSwitch)
	r.Get("/inspect/{index}", s.Inspect)
	r.Get("/suggest", s.Suggest)
	r.Get("/healthz", s.Healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// Index handles GET /. A non-empty ?q= runs a fresh search; otherwise the
// held page (if any) renders as-is.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	sess := session(w, r)
	s.applySessionTheme(r, sess)

	q := r.URL.Query().Get("q")
	var renderErr string
	if q != "" {
		if _, err := s.ui.Search(r.Context(), q); err != nil && !errors.Is(err, domain.ErrStaleResponse) {
			renderErr = "Search failed. The backend may be unavailable."
		}
	}

	s.renderPage(w, q, renderErr)
}

// Search handles POST /search: post-redirect-get back to /?q=.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	q := strings.TrimSpace(r.PostForm.Get("q"))
	http.Redirect(w, r, "/?q="+url.QueryEscape(q), http.StatusSeeOther)
}

// Filter handles POST /filter: one facet's checkbox set plus the optional
// date boundaries.
func (s *Server) Filter(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	req := orchestrator.FilterRequest{
		Facet:  r.PostForm.Get("facet"),
		Values: r.PostForm["value"],
		Reset:  r.PostForm.Get("reset") != "",
		Dates: orchestrator.DateRange{
			Start: strings.TrimSpace(r.PostForm.Get("date_start")),
			End:   strings.TrimSpace(r.PostForm.Get("date_end")),
		},
	}

	var renderErr string
	if _, err := s.ui.Filter(r.Context(), req); err != nil {
		if errors.Is(err, domain.ErrStaleResponse) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		renderErr = "Applying the filter failed. Showing previous results."
	}
	s.renderPage(w, "", renderErr)
}

// Page handles GET /page/{n}.
func (s *Server) Page(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil || n < 1 {
		http.Error(w, "bad page number", http.StatusBadRequest)
		return
	}

	var renderErr string
	if _, err := s.ui.Page(r.Context(), n); err != nil {
		if errors.Is(err, domain.ErrNoPage) || errors.Is(err, domain.ErrStaleResponse) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		renderErr = "Loading the page failed. Showing previous results."
	}
	s.renderPage(w, "", renderErr)
}

// Reset handles POST /reset: clears every facet selection and the date range.
func (s *Server) Reset(w http.ResponseWriter, r *http.Request) {
	var renderErr string
	if _, err := s.ui.ResetFacets(r.Context()); err != nil && !errors.Is(err, domain.ErrStaleResponse) {
		renderErr = "Clearing filters failed. Showing previous results."
	}
	s.renderPage(w, "", renderErr)
}

// SettingsForm handles GET /settings: the overlay form populated with the
// session's effective values.
func (s *Server) SettingsForm(w http.ResponseWriter, r *http.Request) {
	sess := session(w, r)
	eff, err := s.settings.Resolve(r.Context(), sess)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	type themeOption struct {
		ID, Name string
		Selected bool
	}
	var themes []themeOption
	for _, id := range s.ui.Registry().IDs() {
		d, _ := s.ui.Registry().Get(id)
		themes = append(themes, themeOption{ID: d.ID, Name: d.Name, Selected: d.ID == eff.Theme})
	}

	s.execute(w, "settings", map[string]any{
		"ServerURL": eff.ServerURL,
		"Index":     eff.Index,
		"Themes":    themes,
	})
}

// SettingsSave handles POST /settings: persists the form and redirects to /
// so the page fully re-bootstraps with the new values.
func (s *Server) SettingsSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	sess := session(w, r)

	saved, err := s.settings.Save(r.Context(), sess, settingsuc.Settings{
		ServerURL: r.PostForm.Get("server_url"),
		Index:     r.PostForm.Get("index"),
		Theme:     r.PostForm.Get("theme"),
	})
	if err != nil {
		s.logger.Error("save settings failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.ui.SwitchTheme(saved.Theme)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ThemeSwitch handles POST /theme/{id}: switches and persists the theme,
// then re-renders the held page without refetching.
func (s *Server) ThemeSwitch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess := session(w, r)

	s.ui.SwitchTheme(id)
	if err := s.settings.SaveTheme(r.Context(), sess, id); err != nil {
		s.logger.Warn("persist theme failed", zap.String("theme", id), zap.Error(err))
	}
	s.renderPage(w, "", "")
}

// Inspect handles GET /inspect/{index}: the full field set of one result on
// the held page. Feature-flagged.
func (s *Server) Inspect(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.Features.FieldInspector {
		http.NotFound(w, r)
		return
	}
	page := s.ui.CurrentPage()
	if page == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || idx < 0 || idx >= len(page.Hits()) {
		http.Error(w, "no such result", http.StatusNotFound)
		return
	}

	result := page.Hits()[idx].Result
	names := result.Fields()
	sort.Strings(names)

	type fieldRow struct{ Name, Value string }
	rows := make([]fieldRow, 0, len(names))
	for _, name := range names {
		v, _ := result.First(name)
		rows = append(rows, fieldRow{Name: name, Value: v})
	}

	s.execute(w, "inspector", map[string]any{
		"Index":  idx,
		"Fields": rows,
	})
}

// Suggest handles GET /suggest?term=: JSON autocomplete suggestions.
// Feature-flagged.
func (s *Server) Suggest(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.Features.Autocomplete {
		http.NotFound(w, r)
		return
	}
	term := r.URL.Query().Get("term")
	if term == "" {
		writeJSON(w, http.StatusOK, []string{})
		return
	}

	suggestions, err := s.ui.Suggest(r.Context(), term)
	if err != nil {
		s.logger.Warn("suggest failed", zap.String("term", term), zap.Error(err))
		writeJSON(w, http.StatusOK, []string{})
		return
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	writeJSON(w, http.StatusOK, suggestions)
}

// Healthz handles GET /healthz.
func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	status := "ok"
	httpStatus := http.StatusOK

	if s.health != nil {
		if err := s.health(r); err != nil {
			checks["database"] = err.Error()
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		} else {
			checks["database"] = "ok"
		}
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": status,
		"checks": checks,
	})
}

// applySessionTheme activates the session's persisted theme choice.
// Activating the already-active theme is a no-op.
func (s *Server) applySessionTheme(r *http.Request, sess string) {
	if sess == "" {
		return
	}
	eff, err := s.settings.Resolve(r.Context(), sess)
	if err != nil {
		return
	}
	s.ui.Themes().Activate(eff.Theme)
}

// renderPage renders the full page shell around the dispatcher fragments.
func (s *Server) renderPage(w http.ResponseWriter, query, errMsg string) {
	page := s.ui.CurrentPage()
	renderer := s.ui.Renderer()

	var facets, results, info, pagination, didyoumean bytes.Buffer
	if page != nil {
		if err := renderer.Facets(&facets, page.Facets()); err != nil {
			s.logger.Error("render facets", zap.Error(err))
		}
		if err := renderer.Results(&results, page); err != nil {
			s.logger.Error("render results", zap.Error(err))
		}
		if err := renderer.ResultsInfo(&info, page); err != nil {
			s.logger.Error("render results info", zap.Error(err))
		}
		if err := renderer.Pagination(&pagination, page, s.cfg.UI.MaxPaginationButtons); err != nil {
			s.logger.Error("render pagination", zap.Error(err))
		}
		if s.cfg.Features.DidYouMean {
			if err := renderer.DidYouMean(&didyoumean, page); err != nil {
				s.logger.Error("render didyoumean", zap.Error(err))
			}
		}
	}

	dates := s.ui.CurrentDates()
	s.execute(w, "layout", map[string]any{
		"Title":        "Search",
		"Query":        query,
		"Stylesheets":  s.ui.Themes().Stylesheets(),
		"Marker":       s.ui.Themes().Marker(),
		"Error":        errMsg,
		"Autocomplete": s.cfg.Features.Autocomplete,
		"DateFilter":   s.cfg.Features.DateFilter,
		"DateStart":    dates.Start,
		"DateEnd":      dates.End,
		"Facets":       template.HTML(facets.String()),
		"Results":      template.HTML(results.String()),
		"ResultsInfo":  template.HTML(info.String()),
		"Pagination":   template.HTML(pagination.String()),
		"DidYouMean":   template.HTML(didyoumean.String()),
	})
}

func (s *Server) execute(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("template execute failed", zap.String("template", name), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
