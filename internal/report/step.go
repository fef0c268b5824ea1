// Package report drives the reporting wizard: identity, category selection
// and the five category detail steps.
package report

import (
	"context"
	"errors"

	"github.com/laporinfra/laporinfra/internal/enum"
	"github.com/laporinfra/laporinfra/internal/events"
	"github.com/laporinfra/laporinfra/internal/session"
	"github.com/laporinfra/laporinfra/internal/submission"
	"github.com/laporinfra/laporinfra/pkg/i18n"
	"github.com/laporinfra/laporinfra/pkg/logger"
)

// Step names a wizard screen
type Step string

const (
	StepIdentity Step = "identity"
	StepCategory Step = "category"
	StepDetail   Step = "detail"
	StepSuccess  Step = "success"
)

// ErrUnknownCategory is returned for a category with no detail step
var ErrUnknownCategory = errors.New("unknown report category")

// Outcome tells the caller which step to show next
type Outcome struct {
	Next     Step
	Warnings []string
	Response *submission.Response
}

// Submitter posts mapped reports. *submission.Client implements it.
type Submitter interface {
	SubmitSpatialPlanning(ctx context.Context, r session.Reporter, p submission.SpatialPlanningReport) (*submission.Response, error)
	SubmitBuilding(ctx context.Context, r session.Reporter, p submission.BuildingReport) (*submission.Response, error)
	SubmitWaterResource(ctx context.Context, r session.Reporter, p submission.WaterResourceReport) (*submission.Response, error)
	SubmitRoad(ctx context.Context, r session.Reporter, p submission.RoadReport) (*submission.Response, error)
	SubmitBridge(ctx context.Context, r session.Reporter, p submission.BridgeReport) (*submission.Response, error)
}

// Deps are the collaborators shared by every step
type Deps struct {
	Store      session.Store
	SessionKey string
	Mapper     *enum.Mapper
	Client     Submitter
	Notifier   events.Notifier
	Localizer  *i18n.Localizer
	// MismatchMeters is the photo GPS distance that triggers a warning; 0 disables it
	MismatchMeters float64
	Logger         *logger.Logger
}

func (d Deps) withDefaults() Deps {
	if d.SessionKey == "" {
		d.SessionKey = session.DefaultKey
	}
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	if d.Mapper == nil {
		d.Mapper = enum.NewMapper(false, d.Logger)
	}
	if d.Notifier == nil {
		d.Notifier = events.Nop{}
	}
	if d.Localizer == nil {
		d.Localizer = i18n.NewLocalizer(i18n.DefaultLocale)
	}
	return d
}

// identityRedirect is the outcome of a step that found no complete reporter
func identityRedirect(l *i18n.Localizer) Outcome {
	return Outcome{Next: StepIdentity, Warnings: []string{l.T("errors.identity_required")}}
}
