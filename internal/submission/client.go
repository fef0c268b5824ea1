// Package submission sends mapped reports to the upstream reporting API as
// ordered multipart forms.
package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/laporinfra/laporinfra/internal/session"
	"github.com/laporinfra/laporinfra/pkg/config"
	"github.com/laporinfra/laporinfra/pkg/logger"
)

// Upstream endpoint paths under the versioned API prefix
const (
	PathSpatialPlanning = "tata-ruang/reports"
	PathBuilding        = "bangunan/reports"
	PathWaterResource   = "sumber-daya-air/reports"
	PathBinaMarga       = "bina-marga/reports"
)

// PhotoField is the repeated multipart part carrying photos
const PhotoField = "photos"

// ErrReporterIncomplete is returned before any request when the reporter
// record is missing a field
var ErrReporterIncomplete = errors.New("reporter incomplete")

// Response is the upstream success envelope
type Response struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Client posts reports to the upstream API
type Client struct {
	api        config.APIConfig
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a submission client. A zero timeout falls back to 30s.
func NewClient(cfg *config.APIConfig, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		api: *cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: log,
	}
}

// SubmitSpatialPlanning posts a spatial-planning report
func (c *Client) SubmitSpatialPlanning(ctx context.Context, r session.Reporter, p SpatialPlanningReport) (*Response, error) {
	if !r.Complete() {
		return nil, ErrReporterIncomplete
	}
	return c.Send(ctx, PathSpatialPlanning, SpatialPlanningForm(r, p))
}

// SubmitBuilding posts a building report
func (c *Client) SubmitBuilding(ctx context.Context, r session.Reporter, p BuildingReport) (*Response, error) {
	if !r.Complete() {
		return nil, ErrReporterIncomplete
	}
	return c.Send(ctx, PathBuilding, BuildingForm(r, p))
}

// SubmitWaterResource posts an irrigation report
func (c *Client) SubmitWaterResource(ctx context.Context, r session.Reporter, p WaterResourceReport) (*Response, error) {
	if !r.Complete() {
		return nil, ErrReporterIncomplete
	}
	return c.Send(ctx, PathWaterResource, WaterResourceForm(r, p))
}

// SubmitRoad posts a road report
func (c *Client) SubmitRoad(ctx context.Context, r session.Reporter, p RoadReport) (*Response, error) {
	if !r.Complete() {
		return nil, ErrReporterIncomplete
	}
	return c.Send(ctx, PathBinaMarga, RoadForm(r, p))
}

// SubmitBridge posts a bridge report. Bridges share the road endpoint.
func (c *Client) SubmitBridge(ctx context.Context, r session.Reporter, p BridgeReport) (*Response, error) {
	if !r.Complete() {
		return nil, ErrReporterIncomplete
	}
	return c.Send(ctx, PathBinaMarga, BridgeForm(r, p))
}

// Send encodes the form and posts it once. There is no retry.
func (c *Client) Send(ctx context.Context, path string, form *Form) (*Response, error) {
	body, contentType, err := Encode(form)
	if err != nil {
		return nil, fmt.Errorf("failed to encode form: %w", err)
	}

	url := c.api.Endpoint(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	c.logger.Info().
		Str("endpoint", path).
		Int("photos", len(form.Photos)).
		Msg("submitting report")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("endpoint", path).Msg("report submission failed")
		return nil, &Error{Err: err, Transport: true}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{StatusCode: resp.StatusCode, Err: err, Transport: true}
	}

	log := c.logger.With().
		Str("endpoint", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Logger()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		e := &Error{StatusCode: resp.StatusCode, Message: extractMessage(raw), Err: ErrRejected}
		log.Warn().Str("message", e.Message).Msg("report rejected by api")
		return nil, e
	}

	var out Response
	if err := json.Unmarshal(raw, &out); err != nil {
		e := &Error{StatusCode: resp.StatusCode, Message: extractMessage(raw), Err: ErrRejected}
		log.Warn().Err(err).Msg("unreadable api response")
		return nil, e
	}
	if !out.Success {
		e := &Error{StatusCode: resp.StatusCode, Message: extractMessage(raw), Err: ErrRejected}
		log.Warn().Str("message", e.Message).Msg("report not accepted")
		return nil, e
	}

	log.Info().Msg("report submitted")
	return &out, nil
}

// Encode writes the form as multipart/form-data in field order, photos last
func Encode(form *Form) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, f := range form.Fields {
		if err := mw.WriteField(f.Name, f.Value); err != nil {
			return nil, "", err
		}
	}
	for _, p := range form.Photos {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, PhotoField, escapeQuotes(p.Name)))
		ct := p.MIME
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(p.Data); err != nil {
			return nil, "", err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
