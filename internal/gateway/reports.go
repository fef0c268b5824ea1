package gateway

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/laporinfra/laporinfra/internal/enum"
	"github.com/laporinfra/laporinfra/internal/report"
	"github.com/laporinfra/laporinfra/internal/schema"
	"github.com/laporinfra/laporinfra/internal/session"
	"github.com/laporinfra/laporinfra/pkg/errors"
	"github.com/laporinfra/laporinfra/pkg/httputil"
	"github.com/laporinfra/laporinfra/pkg/i18n"
	"github.com/samber/lo"
)

// CategoryView is one entry of the category menu
type CategoryView struct {
	Category enum.Category       `json:"category"`
	Label    string              `json:"label"`
	Options  map[string][]string `json:"options"`
}

// SubmitResponse is returned after the API accepted a report
type SubmitResponse struct {
	NextStep report.Step     `json:"next_step"`
	Warnings []string        `json:"warnings,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// Categories handles GET /api/v1/categories
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	views := lo.Map(enum.Categories.Entries(), func(e enum.Entry, _ int) CategoryView {
		c := enum.Category(e.Token)
		return CategoryView{Category: c, Label: e.Label, Options: enum.Options(c)}
	})
	httputil.JSON(w, http.StatusOK, views)
}

// SubmitReport handles POST /api/v1/reports/{category}. Fields come as JSON;
// photos come from the session draft of the category.
func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	category, err := categoryParam(r)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	l := i18n.LocalizerFromContext(r.Context())
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		httputil.ErrorLocalized(w, r, errors.BadRequest(l.T("errors.bad_request")))
		return
	}

	sessionID := httputil.GetSessionID(r.Context())
	d := h.drafts.Get(sessionID, category)

	step, err := report.New(category, h.requestDeps(r), d.Photos)
	if err != nil {
		httputil.ErrorLocalized(w, r, errors.NewWithKey("UNKNOWN_CATEGORY", "errors.unknown_category", http.StatusNotFound))
		return
	}
	if len(body) > 0 {
		if err := step.Decode(body); err != nil {
			httputil.ErrorLocalized(w, r, errors.BadRequest(l.T("errors.invalid_json")))
			return
		}
	}

	out, err := step.Submit(r.Context())
	if err != nil {
		var fe schema.FieldErrors
		switch {
		case errors.Is(err, session.ErrIdentityRequired):
			httputil.ErrorLocalized(w, r, errors.IdentityRequired())
		case errors.As(err, &fe):
			httputil.ErrorLocalized(w, r, errors.Validation(fe))
		case step.Notice() != "":
			httputil.ErrorLocalized(w, r, errors.SubmissionFailed(step.Notice(), err))
		default:
			h.logger.Error().Err(err).Msg("report submission failed")
			httputil.ErrorLocalized(w, r, errors.Internal(err.Error()))
		}
		return
	}

	h.drafts.Delete(sessionID, category)

	resp := SubmitResponse{NextStep: out.Next, Warnings: out.Warnings}
	if out.Response != nil {
		resp.Data = out.Response.Data
	}
	httputil.Created(w, l.T("report.submitted"), resp)
}
