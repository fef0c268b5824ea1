package gateway

import (
	"net/http"

	"github.com/laporinfra/laporinfra/internal/report"
	"github.com/laporinfra/laporinfra/internal/schema"
	"github.com/laporinfra/laporinfra/internal/session"
	"github.com/laporinfra/laporinfra/pkg/errors"
	"github.com/laporinfra/laporinfra/pkg/httputil"
	"github.com/laporinfra/laporinfra/pkg/i18n"
)

// IdentityResponse is returned by the identity endpoints
type IdentityResponse struct {
	SessionID string           `json:"session_id"`
	Reporter  session.Reporter `json:"reporter"`
	NextStep  report.Step      `json:"next_step,omitempty"`
}

// SaveIdentity handles POST /api/v1/identity
func (h *Handler) SaveIdentity(w http.ResponseWriter, r *http.Request) {
	var fields schema.Identity
	if err := httputil.DecodeJSONLocalized(r, &fields); err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	step := report.NewIdentityStep(h.requestDeps(r))
	if fields.ReportDatetime.IsZero() {
		fields.ReportDatetime = step.Fields.ReportDatetime
	}
	step.Fields = fields

	out, err := step.Save(r.Context())
	if err != nil {
		var fe schema.FieldErrors
		if errors.As(err, &fe) {
			httputil.ErrorLocalized(w, r, errors.Validation(fe))
			return
		}
		httputil.ErrorLocalized(w, r, errors.Internal(err.Error()))
		return
	}

	reporter, err := h.store.Load(r.Context(), h.sessionKey(r))
	if err != nil {
		httputil.ErrorLocalized(w, r, errors.Internal(err.Error()))
		return
	}

	l := i18n.LocalizerFromContext(r.Context())
	httputil.JSONWithMessage(w, http.StatusOK, l.T("report.identity_saved"), IdentityResponse{
		SessionID: httputil.GetSessionID(r.Context()),
		Reporter:  reporter,
		NextStep:  out.Next,
	})
}

// GetIdentity handles GET /api/v1/identity
func (h *Handler) GetIdentity(w http.ResponseWriter, r *http.Request) {
	reporter, err := h.store.Load(r.Context(), h.sessionKey(r))
	if errors.Is(err, session.ErrNotFound) {
		httputil.ErrorLocalized(w, r, errors.NotFoundWithKey("identity"))
		return
	}
	if err != nil {
		httputil.ErrorLocalized(w, r, errors.Internal(err.Error()))
		return
	}

	httputil.JSON(w, http.StatusOK, IdentityResponse{
		SessionID: httputil.GetSessionID(r.Context()),
		Reporter:  reporter,
	})
}

// ClearIdentity handles DELETE /api/v1/identity. Drafts of the session go too.
func (h *Handler) ClearIdentity(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(r.Context(), h.sessionKey(r)); err != nil {
		httputil.ErrorLocalized(w, r, errors.Internal(err.Error()))
		return
	}
	h.drafts.DeleteSession(httputil.GetSessionID(r.Context()))
	httputil.NoContent(w)
}
