package gateway

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/laporinfra/laporinfra/internal/intake"
	"github.com/laporinfra/laporinfra/pkg/errors"
	"github.com/laporinfra/laporinfra/pkg/httputil"
	"github.com/laporinfra/laporinfra/pkg/i18n"
	"github.com/samber/lo"
)

const maxUploadSize = 32 << 20 // 32MB per request

// PhotoView is one attachment as shown to the front-end
type PhotoView struct {
	Index     int      `json:"index"`
	Name      string   `json:"name"`
	Size      int64    `json:"size"`
	MIME      string   `json:"mime"`
	Source    string   `json:"source"`
	Preview   string   `json:"preview"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// PhotosResponse lists the draft gallery after a change
type PhotosResponse struct {
	Accepted int         `json:"accepted"`
	Warnings []string    `json:"warnings,omitempty"`
	Photos   []PhotoView `json:"photos"`
}

func photoViews(attachments []intake.Attachment) []PhotoView {
	return lo.Map(attachments, func(a intake.Attachment, i int) PhotoView {
		v := PhotoView{
			Index:   i,
			Name:    a.File.Name,
			Size:    a.File.Size(),
			MIME:    a.File.MIME,
			Source:  a.File.Source.String(),
			Preview: a.Preview,
		}
		if a.GPS != nil {
			lat, lon := a.GPS.Lat(), a.GPS.Lon()
			v.Latitude, v.Longitude = &lat, &lon
		}
		return v
	})
}

// ListPhotos handles GET /api/v1/drafts/{category}/photos
func (h *Handler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	category, err := categoryParam(r)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	d, ok := h.drafts.Lookup(httputil.GetSessionID(r.Context()), category)
	if !ok {
		httputil.JSON(w, http.StatusOK, PhotosResponse{Photos: []PhotoView{}})
		return
	}
	httputil.JSON(w, http.StatusOK, PhotosResponse{Photos: photoViews(d.Photos.Attachments())})
}

// AddPhotos handles POST /api/v1/drafts/{category}/photos
// Accepts multipart form with:
// - files: one or more images
// - source: upload (default) or camera
func (h *Handler) AddPhotos(w http.ResponseWriter, r *http.Request) {
	category, err := categoryParam(r)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}
	if !h.requireIdentity(w, r) {
		return
	}

	l := i18n.LocalizerFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httputil.ErrorLocalized(w, r, errors.BadRequest(l.T("errors.bad_request")))
		return
	}

	source := intake.SourceUpload
	if s := r.FormValue("source"); s != "" {
		parsed, ok := intake.ParseSource(s)
		if !ok {
			httputil.ErrorLocalized(w, r, errors.BadRequest(l.T("errors.bad_request")))
			return
		}
		source = parsed
	}

	headers := r.MultipartForm.File["files"]
	files := make([]intake.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			httputil.ErrorLocalized(w, r, errors.BadRequest(l.T("errors.bad_request")))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			httputil.ErrorLocalized(w, r, errors.BadRequest(l.T("errors.bad_request")))
			return
		}
		files = append(files, intake.File{
			Name:   fh.Filename,
			MIME:   fh.Header.Get("Content-Type"),
			Data:   data,
			Source: source,
		})
	}

	d := h.drafts.Get(httputil.GetSessionID(r.Context()), category)
	res, err := d.Photos.Add(r.Context(), source, files)
	if errors.Is(err, intake.ErrCameraDisabled) {
		httputil.ErrorLocalized(w, r, errors.BadRequest(l.T("camera.disabled")))
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("photo intake failed")
		httputil.ErrorLocalized(w, r, errors.Internal(err.Error()))
		return
	}

	h.logger.Info().
		Str("category", string(category)).
		Int("accepted", res.Accepted).
		Int("warnings", len(res.Warnings)).
		Msg("photos added to draft")

	httputil.JSON(w, http.StatusOK, PhotosResponse{
		Accepted: res.Accepted,
		Warnings: lo.Map(res.Warnings, func(wn intake.Warning, _ int) string { return wn.Message(l) }),
		Photos:   photoViews(d.Photos.Attachments()),
	})
}

// RemovePhoto handles DELETE /api/v1/drafts/{category}/photos/{index}
func (h *Handler) RemovePhoto(w http.ResponseWriter, r *http.Request) {
	category, err := categoryParam(r)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		httputil.ErrorLocalized(w, r, errors.NotFoundWithKey("photo"))
		return
	}

	d, ok := h.drafts.Lookup(httputil.GetSessionID(r.Context()), category)
	if !ok {
		httputil.ErrorLocalized(w, r, errors.NotFoundWithKey("draft"))
		return
	}
	if err := d.Photos.Remove(index); err != nil {
		httputil.ErrorLocalized(w, r, errors.NotFoundWithKey("photo"))
		return
	}

	httputil.JSON(w, http.StatusOK, PhotosResponse{Photos: photoViews(d.Photos.Attachments())})
}
