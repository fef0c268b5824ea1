package schema

import (
	"github.com/laporinfra/laporinfra/internal/enum"
	"github.com/laporinfra/laporinfra/pkg/i18n"
)

// BuildingStatus is the report status of a building report. Each variant
// carries its own requirement set.
type BuildingStatus interface {
	Tag() string
	requirements(b *Building) any
}

// Damage reports need at least one photo
type Damage struct{}

// Rehabilitation reports need the work type, post-rehab condition and photos
type Rehabilitation struct{}

// OtherStatus leaves work type, condition and photos optional
type OtherStatus struct{}

func (Damage) Tag() string         { return enum.StatusDamage }
func (Rehabilitation) Tag() string { return enum.StatusRehabilitation }
func (OtherStatus) Tag() string    { return enum.StatusOther }

type damageProfile struct {
	Photos []Photo `json:"photos" validate:"min=1,dive"`
}

type rehabilitationProfile struct {
	WorkType            string  `json:"work_type" validate:"required"`
	ConditionAfterRehab string  `json:"condition_after_rehab" validate:"required"`
	Photos              []Photo `json:"photos" validate:"min=1,dive"`
}

type otherProfile struct {
	Photos []Photo `json:"photos" validate:"omitempty,dive"`
}

func (Damage) requirements(b *Building) any {
	return damageProfile{Photos: b.Photos}
}

func (Rehabilitation) requirements(b *Building) any {
	return rehabilitationProfile{
		WorkType:            b.WorkType,
		ConditionAfterRehab: b.ConditionAfterRehab,
		Photos:              b.Photos,
	}
}

func (OtherStatus) requirements(b *Building) any {
	return otherProfile{Photos: b.Photos}
}

// StatusOf resolves a report status label or tag to its variant
func StatusOf(s string) (BuildingStatus, bool) {
	tag := s
	if token, ok := enum.BuildingStatuses.Lookup(s); ok {
		tag = token
	}
	switch tag {
	case enum.StatusDamage:
		return Damage{}, true
	case enum.StatusRehabilitation:
		return Rehabilitation{}, true
	case enum.StatusOther:
		return OtherStatus{}, true
	}
	return nil, false
}

// ValidateBuilding validates the common building fields, then the
// requirement set of the selected report status.
func ValidateBuilding(b Building) FieldErrors {
	return validateBuilding(i18n.NewLocalizer(i18n.DefaultLocale), &b)
}

func validateBuilding(l *i18n.Localizer, b *Building) FieldErrors {
	errs := collect(l, validate.Struct(b))

	status, ok := StatusOf(b.ReportStatus)
	if !ok {
		if b.ReportStatus != "" {
			errs = errs.merge(FieldErrors{"report_status": message(l, "validation.unmapped", "report_status", nil)})
		}
		return errs.orNil()
	}

	return errs.merge(collect(l, validate.Struct(status.requirements(b)))).orNil()
}
