// Package gateway exposes the reporting wizard over HTTP so a thin front-end
// can render the form while this service owns state, validation and
// submission.
package gateway

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/laporinfra/laporinfra/internal/draft"
	"github.com/laporinfra/laporinfra/internal/enum"
	"github.com/laporinfra/laporinfra/internal/report"
	"github.com/laporinfra/laporinfra/internal/session"
	"github.com/laporinfra/laporinfra/pkg/errors"
	"github.com/laporinfra/laporinfra/pkg/httputil"
	"github.com/laporinfra/laporinfra/pkg/i18n"
	"github.com/laporinfra/laporinfra/pkg/logger"
)

// HealthCheck reports the status of one dependency
type HealthCheck func(ctx context.Context) map[string]string

// Handler serves the wizard endpoints
type Handler struct {
	store   session.Store
	drafts  *draft.Store
	deps    report.Deps
	baseKey string
	checks  map[string]HealthCheck
	logger  *logger.Logger
}

// NewHandler creates a gateway handler. deps.Store is replaced by store and
// deps.SessionKey is used as the base key scoped per session.
func NewHandler(store session.Store, drafts *draft.Store, deps report.Deps, log *logger.Logger) *Handler {
	baseKey := deps.SessionKey
	if baseKey == "" {
		baseKey = session.DefaultKey
	}
	deps.Store = store
	deps.Logger = log
	return &Handler{
		store:   store,
		drafts:  drafts,
		deps:    deps,
		baseKey: baseKey,
		checks:  make(map[string]HealthCheck),
		logger:  log,
	}
}

// AddHealthCheck registers a dependency shown by GET /health
func (h *Handler) AddHealthCheck(name string, check HealthCheck) {
	h.checks[name] = check
}

// Router returns the gateway routes with session and locale middleware
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(httputil.Session)
	r.Use(i18n.Middleware)

	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/identity", func(r chi.Router) {
			r.Post("/", h.SaveIdentity)
			r.Get("/", h.GetIdentity)
			r.Delete("/", h.ClearIdentity)
		})

		r.Get("/categories", h.Categories)

		r.Route("/drafts/{category}/photos", func(r chi.Router) {
			r.Get("/", h.ListPhotos)
			r.Post("/", h.AddPhotos)
			r.Delete("/{index}", h.RemovePhoto)
		})

		r.Post("/reports/{category}", h.SubmitReport)
	})

	return r
}

// requestDeps scopes the shared deps to the request's session and locale
func (h *Handler) requestDeps(r *http.Request) report.Deps {
	deps := h.deps
	deps.SessionKey = h.sessionKey(r)
	deps.Localizer = i18n.LocalizerFromContext(r.Context())
	deps.Logger = h.logger.WithSessionID(httputil.GetSessionID(r.Context()))
	return deps
}

func (h *Handler) sessionKey(r *http.Request) string {
	return session.Key(h.baseKey, httputil.GetSessionID(r.Context()))
}

func categoryParam(r *http.Request) (enum.Category, error) {
	c, ok := enum.ParseCategory(chi.URLParam(r, "category"))
	if !ok {
		return "", errors.NewWithKey("UNKNOWN_CATEGORY", "errors.unknown_category", http.StatusNotFound)
	}
	return c, nil
}

// requireIdentity answers 409 with next_step identity when no complete
// reporter is stored for the session
func (h *Handler) requireIdentity(w http.ResponseWriter, r *http.Request) bool {
	_, err := session.Require(r.Context(), h.store, h.sessionKey(r))
	if err == nil {
		return true
	}
	if errors.Is(err, session.ErrIdentityRequired) {
		httputil.ErrorLocalized(w, r, errors.IdentityRequired())
		return false
	}
	h.logger.Error().Err(err).Msg("failed to load reporter session")
	httputil.ErrorLocalized(w, r, errors.Internal(err.Error()))
	return false
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]interface{}{
		"status":  "healthy",
		"service": "form-gateway",
		"drafts":  h.drafts.Len(),
	}
	for name, check := range h.checks {
		result := check(r.Context())
		if result["status"] != "up" {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
		}
		body[name] = result
	}
	httputil.JSON(w, status, body)
}
