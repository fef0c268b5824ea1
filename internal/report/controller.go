package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/laporinfra/laporinfra/internal/enum"
	"github.com/laporinfra/laporinfra/internal/geo"
	"github.com/laporinfra/laporinfra/internal/intake"
	"github.com/laporinfra/laporinfra/internal/schema"
	"github.com/laporinfra/laporinfra/internal/session"
	"github.com/laporinfra/laporinfra/internal/submission"
	"github.com/laporinfra/laporinfra/pkg/i18n"
	"github.com/laporinfra/laporinfra/pkg/logger"
)

// Detail is a category detail step regardless of its field set
type Detail interface {
	Category() enum.Category
	Decode(data []byte) error
	Set(values map[string]string) error
	Gallery() *intake.Gallery
	Validate() bool
	FieldErrors() schema.FieldErrors
	Notice() string
	Submit(ctx context.Context) (Outcome, error)
}

// definition binds a schema type F to its mapped payload P
type definition[F, P any] struct {
	photos func(f *F) *[]schema.Photo
	point  func(f *F) (lat, lon string)
	build  func(m *mapping, r session.Reporter, f *F, files []intake.File) P
	submit func(ctx context.Context, c Submitter, r session.Reporter, p P) (*submission.Response, error)
}

// Controller owns the local state of one category detail step
type Controller[F, P any] struct {
	Fields  F
	Errors  schema.FieldErrors
	Message string
	Photos  *intake.Gallery

	category enum.Category
	def      definition[F, P]
	deps     Deps
	log      *logger.Logger
}

func newController[F, P any](category enum.Category, deps Deps, photos *intake.Gallery, def definition[F, P]) *Controller[F, P] {
	deps = deps.withDefaults()
	if photos == nil {
		photos = intake.NewGallery(intake.StrictPreset(5), deps.Logger)
	}
	return &Controller[F, P]{
		Photos:   photos,
		category: category,
		def:      def,
		deps:     deps,
		log:      deps.Logger.WithCategory(string(category)),
	}
}

// Category returns the report category of the step
func (c *Controller[F, P]) Category() enum.Category { return c.category }

// Gallery returns the photo gallery of the step
func (c *Controller[F, P]) Gallery() *intake.Gallery { return c.Photos }

// FieldErrors returns the errors of the last validation
func (c *Controller[F, P]) FieldErrors() schema.FieldErrors { return c.Errors }

// Notice returns the message of the last failed submission
func (c *Controller[F, P]) Notice() string { return c.Message }

// Decode overlays JSON field values on the current fields. Unknown fields
// are rejected; photos always come from the gallery.
func (c *Controller[F, P]) Decode(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c.Fields); err != nil {
		return fmt.Errorf("decode %s fields: %w", c.category, err)
	}
	return nil
}

// Set overlays string values keyed by JSON field name
func (c *Controller[F, P]) Set(values map[string]string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return c.Decode(data)
}

// Validate refreshes photo metadata from the gallery and checks the fields
func (c *Controller[F, P]) Validate() bool {
	*c.def.photos(&c.Fields) = photoMeta(c.Photos.Attachments())
	c.Errors = schema.ValidateWith(c.deps.Localizer, &c.Fields)
	return c.Errors == nil
}

// Payload maps the fields to API tokens. Labels without a token are
// returned as schema.FieldErrors.
func (c *Controller[F, P]) Payload(r session.Reporter) (P, error) {
	m := &mapping{mapper: c.deps.Mapper, l: c.deps.Localizer}
	p := c.def.build(m, r, &c.Fields, c.Photos.Files())
	if len(m.errs) > 0 {
		var zero P
		return zero, m.errs
	}
	return p, nil
}

// PhotoWarnings lists photos whose embedded GPS lies far from the report point
func (c *Controller[F, P]) PhotoWarnings() []string {
	if c.deps.MismatchMeters <= 0 {
		return nil
	}
	point, ok := geo.ParsePoint(c.def.point(&c.Fields))
	if !ok {
		return nil
	}

	var out []string
	for _, a := range c.Photos.Attachments() {
		if a.GPS == nil {
			continue
		}
		d := geo.DistanceMeters(point, *a.GPS)
		if d > c.deps.MismatchMeters {
			out = append(out, c.deps.Localizer.T("geo.photo_mismatch", map[string]string{
				"name":     a.File.Name,
				"distance": humanize.SIWithDigits(d, 1, "m"),
			}))
		}
	}
	return out
}

// Submit validates, maps and posts the report once. On failure every field
// and photo is kept so the reporter can retry by hand.
func (c *Controller[F, P]) Submit(ctx context.Context) (Outcome, error) {
	l := c.deps.Localizer
	c.Message = ""

	reporter, err := session.Require(ctx, c.deps.Store, c.deps.SessionKey)
	if err != nil {
		if errors.Is(err, session.ErrIdentityRequired) {
			c.log.Warn().Msg("detail step reached without reporter identity")
			return identityRedirect(l), err
		}
		return Outcome{Next: StepDetail}, err
	}

	if !c.Validate() {
		return Outcome{Next: StepDetail}, c.Errors
	}
	warnings := c.PhotoWarnings()

	payload, err := c.Payload(reporter)
	if err != nil {
		var fe schema.FieldErrors
		if errors.As(err, &fe) {
			c.Errors = fe
		}
		return Outcome{Next: StepDetail, Warnings: warnings}, err
	}

	resp, err := c.def.submit(ctx, c.deps.Client, reporter, payload)
	if err != nil {
		c.Message = submission.Message(l, err)
		c.log.Error().Err(err).Msg("report submission failed")
		return Outcome{Next: StepDetail, Warnings: warnings}, err
	}

	photoCount := c.Photos.Len()
	if err := c.deps.Store.Clear(ctx, c.deps.SessionKey); err != nil {
		c.log.Error().Err(err).Msg("failed to clear reporter session")
	}
	c.Photos.Reset()
	c.deps.Notifier.ReportSubmitted(ctx, c.category, reporter, photoCount)

	c.log.Info().Int("photos", photoCount).Msg("report submitted")
	return Outcome{Next: StepSuccess, Warnings: warnings, Response: resp}, nil
}

func photoMeta(attachments []intake.Attachment) []schema.Photo {
	out := make([]schema.Photo, 0, len(attachments))
	for _, a := range attachments {
		out = append(out, schema.Photo{Name: a.File.Name, Size: a.File.Size(), MIME: a.File.MIME})
	}
	return out
}

// mapping collects unmapped labels while a payload is built
type mapping struct {
	mapper *enum.Mapper
	l      *i18n.Localizer
	errs   schema.FieldErrors
}

func (m *mapping) token(field string, fn func(string) (string, error), label string) string {
	token, err := fn(label)
	if err != nil {
		if m.errs == nil {
			m.errs = schema.FieldErrors{}
		}
		m.errs[field] = schema.Unmapped(m.l, field)
		return ""
	}
	return token
}
