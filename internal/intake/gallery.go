// Package intake collects report photos from uploads and the camera,
// building previews and reading embedded GPS positions.
package intake

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/laporinfra/laporinfra/internal/imagegps"
	"github.com/laporinfra/laporinfra/pkg/i18n"
	"github.com/laporinfra/laporinfra/pkg/logger"
	"github.com/paulmach/orb"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

var (
	ErrCameraDisabled  = errors.New("camera intake disabled")
	ErrIndexOutOfRange = errors.New("attachment index out of range")
)

// Source tells how a file entered the gallery
type Source int

const (
	SourceUpload Source = iota
	SourceCamera
)

func (s Source) String() string {
	if s == SourceCamera {
		return "camera"
	}
	return "upload"
}

// ParseSource accepts "upload" or "camera"
func ParseSource(s string) (Source, bool) {
	switch s {
	case "", "upload":
		return SourceUpload, true
	case "camera":
		return SourceCamera, true
	}
	return 0, false
}

// File is a raw photo
type File struct {
	Name   string
	MIME   string
	Data   []byte
	Source Source
}

// Size returns the file size in bytes
func (f File) Size() int64 { return int64(len(f.Data)) }

// Attachment keeps a file with its preview and GPS so they move together
type Attachment struct {
	File    File
	Preview string
	GPS     *orb.Point
}

// Warning is a non-fatal intake notice
type Warning struct {
	Key    string
	Params map[string]string
}

// Message localizes the warning
func (w Warning) Message(l *i18n.Localizer) string {
	return l.T(w.Key, w.Params)
}

// Result describes what Add did with a batch
type Result struct {
	Accepted int
	Warnings []Warning
}

// Gallery is the ordered list of attachments of one report draft
type Gallery struct {
	mu    sync.Mutex
	cfg   Config
	items []Attachment
	log   *logger.Logger
}

// NewGallery creates an empty gallery
func NewGallery(cfg Config, log *logger.Logger) *Gallery {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	return &Gallery{cfg: cfg, log: log.WithComponent("intake")}
}

// Config returns the gallery configuration
func (g *Gallery) Config() Config {
	return g.cfg
}

// Add filters files to images, applies the capacity policy and appends the
// accepted files in input order. GPS is read only for uploads.
func (g *Gallery) Add(ctx context.Context, source Source, files []File) (Result, error) {
	if source == SourceCamera && !g.cfg.CameraEnabled {
		return Result{}, ErrCameraDisabled
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	var res Result
	candidates := make([]File, 0, len(files))
	for _, f := range files {
		if !imagegps.IsImage(f.Data) {
			res.Warnings = append(res.Warnings, Warning{Key: "intake.not_image", Params: map[string]string{"name": f.Name}})
			continue
		}
		if g.cfg.MaxFileSize > 0 && f.Size() > g.cfg.MaxFileSize {
			res.Warnings = append(res.Warnings, Warning{Key: "intake.photo_too_large", Params: map[string]string{
				"name": f.Name,
				"size": humanize.IBytes(uint64(f.Size())),
				"max":  humanize.IBytes(uint64(g.cfg.MaxFileSize)),
			}})
			continue
		}
		f.MIME = imagegps.DetectMIME(f.Data)
		f.Source = source
		candidates = append(candidates, f)
	}

	remaining := g.cfg.MaxFiles - len(g.items)
	if remaining < 0 {
		remaining = 0
	}
	if len(candidates) > remaining {
		switch g.cfg.Policy {
		case PolicyTruncate:
			res.Warnings = append(res.Warnings, Warning{Key: "intake.truncated", Params: map[string]string{
				"excess": strconv.Itoa(len(candidates) - remaining),
				"max":    strconv.Itoa(g.cfg.MaxFiles),
			}})
			candidates = candidates[:remaining]
		default:
			res.Warnings = append(res.Warnings, Warning{Key: "intake.over_capacity", Params: map[string]string{
				"max":       strconv.Itoa(g.cfg.MaxFiles),
				"remaining": strconv.Itoa(remaining),
			}})
			g.log.Debug().Int("batch", len(candidates)).Int("remaining", remaining).Msg("batch rejected")
			return res, nil
		}
	}

	processed, err := g.process(ctx, source, candidates)
	if err != nil {
		return Result{}, err
	}

	g.items = append(g.items, processed...)
	res.Accepted = len(processed)

	g.log.Debug().
		Str("source", source.String()).
		Int("accepted", res.Accepted).
		Int("total", len(g.items)).
		Msg("photos added")

	return res, nil
}

// process builds previews and reads GPS concurrently. Each result is written
// to its input index, so output order never depends on completion order.
func (g *Gallery) process(ctx context.Context, source Source, files []File) ([]Attachment, error) {
	out := make([]Attachment, len(files))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.Workers)

	for i, f := range files {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			a := Attachment{File: f, Preview: DataURL(f.MIME, f.Data)}
			if source == SourceUpload && g.cfg.ExtractGPS {
				p, err := imagegps.Extract(f.Data)
				if err != nil {
					g.log.Debug().Err(err).Str("file", f.Name).Msg("gps extraction skipped")
				}
				a.GPS = p
			}
			out[i] = a
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Remove drops the attachment at i; later attachments shift down by one
func (g *Gallery) Remove(i int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if i < 0 || i >= len(g.items) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(g.items))
	}
	g.items = append(g.items[:i:i], g.items[i+1:]...)
	return nil
}

// Reset empties the gallery
func (g *Gallery) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.items = nil
}

// Len returns the number of attachments
func (g *Gallery) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.items)
}

// Attachments returns a copy of the attachments in order
func (g *Gallery) Attachments() []Attachment {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Attachment(nil), g.items...)
}

// Files returns the raw files in order
func (g *Gallery) Files() []File {
	return lo.Map(g.Attachments(), func(a Attachment, _ int) File { return a.File })
}

// Previews returns the preview data URLs in order
func (g *Gallery) Previews() []string {
	return lo.Map(g.Attachments(), func(a Attachment, _ int) string { return a.Preview })
}

// DataURL encodes data as a base64 data URL
func DataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
