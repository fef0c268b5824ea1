package report

import (
	"context"
	"errors"
	"time"

	"github.com/laporinfra/laporinfra/internal/enum"
	"github.com/laporinfra/laporinfra/internal/geo"
	"github.com/laporinfra/laporinfra/internal/schema"
	"github.com/laporinfra/laporinfra/internal/session"
	"github.com/laporinfra/laporinfra/pkg/logger"
)

// IdentityStep collects the reporter identity. It is the only writer of the
// session store.
type IdentityStep struct {
	Fields schema.Identity
	Errors schema.FieldErrors

	deps Deps
	log  *logger.Logger
}

// NewIdentityStep creates the identity step with the report date set to now
func NewIdentityStep(deps Deps) *IdentityStep {
	deps = deps.withDefaults()
	return &IdentityStep{
		Fields: schema.Identity{ReportDatetime: time.Now()},
		deps:   deps,
		log:    deps.Logger.WithComponent("identity"),
	}
}

// Load prefills the fields from a stored record, if there is one
func (s *IdentityStep) Load(ctx context.Context) error {
	r, err := s.deps.Store.Load(ctx, s.deps.SessionKey)
	if errors.Is(err, session.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	s.Fields = schema.Identity{
		ReporterName:   r.ReporterName,
		PhoneNumber:    r.PhoneNumber,
		Role:           r.Role,
		Village:        r.Village,
		ReportDatetime: r.ReportDatetime,
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
	}
	return nil
}

// UseLocation copies the helper's coordinate texts into the fields
func (s *IdentityStep) UseLocation(h *geo.Helper) {
	s.Fields.Latitude = h.LatitudeText()
	s.Fields.Longitude = h.LongitudeText()
}

// Locate requests a fix and copies it into the fields. On failure the
// fields keep their values and the classified error is returned.
func (s *IdentityStep) Locate(ctx context.Context, h *geo.Helper) error {
	if _, err := h.Activate(ctx); err != nil {
		return err
	}
	s.UseLocation(h)
	return nil
}

// Validate checks the identity fields and that the role has an API token
func (s *IdentityStep) Validate() bool {
	errs := schema.ValidateWith(s.deps.Localizer, &s.Fields)
	if _, err := s.deps.Mapper.Role(s.Fields.Role); err != nil && s.Fields.Role != "" {
		if errs == nil {
			errs = schema.FieldErrors{}
		}
		errs["role"] = schema.Unmapped(s.deps.Localizer, "role")
	}
	s.Errors = errs
	return len(errs) == 0
}

// Save validates and persists the reporter record
func (s *IdentityStep) Save(ctx context.Context) (Outcome, error) {
	if !s.Validate() {
		return Outcome{Next: StepIdentity}, s.Errors
	}

	r := session.Reporter{
		ReporterName:   s.Fields.ReporterName,
		PhoneNumber:    s.Fields.PhoneNumber,
		Role:           s.Fields.Role,
		Village:        s.Fields.Village,
		ReportDatetime: s.Fields.ReportDatetime,
		Latitude:       s.Fields.Latitude,
		Longitude:      s.Fields.Longitude,
	}
	if err := s.deps.Store.Save(ctx, s.deps.SessionKey, r); err != nil {
		s.log.Error().Err(err).Msg("failed to save reporter session")
		return Outcome{Next: StepIdentity}, err
	}

	s.log.Info().
		Str("village", r.Village).
		Str("role", r.Role).
		Msg("reporter identity saved")
	return Outcome{Next: StepCategory}, nil
}

// Clear removes the stored record and resets the fields
func (s *IdentityStep) Clear(ctx context.Context) error {
	s.Fields = schema.Identity{ReportDatetime: time.Now()}
	s.Errors = nil
	return s.deps.Store.Clear(ctx, s.deps.SessionKey)
}

// CategoryStep is the category menu. It requires a complete identity.
type CategoryStep struct {
	Fields schema.CategorySelection
	Errors schema.FieldErrors

	deps Deps
}

// NewCategoryStep creates the category menu step
func NewCategoryStep(deps Deps) *CategoryStep {
	return &CategoryStep{deps: deps.withDefaults()}
}

// Options lists the menu labels in order
func (s *CategoryStep) Options() []string {
	return enum.Categories.Labels()
}

// Select validates the selection and resolves it to a category
func (s *CategoryStep) Select(ctx context.Context, choice string) (enum.Category, Outcome, error) {
	if _, err := session.Require(ctx, s.deps.Store, s.deps.SessionKey); err != nil {
		if errors.Is(err, session.ErrIdentityRequired) {
			return "", identityRedirect(s.deps.Localizer), err
		}
		return "", Outcome{Next: StepCategory}, err
	}

	s.Fields.Category = choice
	s.Errors = schema.ValidateWith(s.deps.Localizer, &s.Fields)
	if s.Errors != nil {
		return "", Outcome{Next: StepCategory}, s.Errors
	}

	category, _ := enum.ParseCategory(choice)
	return category, Outcome{Next: StepDetail}, nil
}
