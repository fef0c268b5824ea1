package enum

import (
	"strings"

	"github.com/laporinfra/laporinfra/pkg/logger"
)

// Mapper converts UI labels to API tokens. It holds no mutable state, so the
// same label always maps to the same token.
type Mapper struct {
	allowFallback bool
	log           *logger.Logger
}

// NewMapper creates a mapper. With allowFallback an unmapped label is sent
// uppercased and a warning is logged instead of failing.
func NewMapper(allowFallback bool, log *logger.Logger) *Mapper {
	if log == nil {
		log = logger.Nop()
	}
	return &Mapper{allowFallback: allowFallback, log: log.WithComponent("enum")}
}

// Map looks label up in v. An empty label maps to an empty token so optional
// fields pass through untouched.
func (m *Mapper) Map(v *Vocabulary, label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", nil
	}
	if token, ok := v.Lookup(label); ok {
		return token, nil
	}
	if m.allowFallback {
		token := strings.ToUpper(label)
		m.log.Warn().
			Str("vocabulary", v.Name()).
			Str("label", label).
			Str("token", token).
			Msg("unmapped label sent as uppercase fallback")
		return token, nil
	}
	return "", &UnmappedError{Vocabulary: v.Name(), Label: label}
}

func (m *Mapper) Role(label string) (string, error)       { return m.Map(Roles, label) }
func (m *Mapper) Institution(label string) (string, error) { return m.Map(Institutions, label) }
func (m *Mapper) AreaCategory(label string) (string, error) {
	return m.Map(AreaCategories, label)
}
func (m *Mapper) ViolationType(label string) (string, error) {
	return m.Map(ViolationTypes, label)
}
func (m *Mapper) ViolationLevel(label string) (string, error) {
	return m.Map(ViolationLevels, label)
}
func (m *Mapper) EnvironmentalImpact(label string) (string, error) {
	return m.Map(EnvironmentalImpacts, label)
}
func (m *Mapper) Urgency(label string) (string, error)      { return m.Map(Urgencies, label) }
func (m *Mapper) BuildingType(label string) (string, error) { return m.Map(BuildingTypes, label) }
func (m *Mapper) BuildingStatus(label string) (string, error) {
	return m.Map(BuildingStatuses, label)
}
func (m *Mapper) FundingSource(label string) (string, error) {
	return m.Map(FundingSources, label)
}
func (m *Mapper) FloorCount(label string) (string, error) { return m.Map(FloorCounts, label) }
func (m *Mapper) WorkType(label string) (string, error)   { return m.Map(WorkTypes, label) }
func (m *Mapper) ConditionAfterRehab(label string) (string, error) {
	return m.Map(RehabConditions, label)
}
func (m *Mapper) IrrigationType(label string) (string, error) {
	return m.Map(IrrigationTypes, label)
}
func (m *Mapper) WaterDamageType(label string) (string, error) {
	return m.Map(WaterDamageTypes, label)
}
func (m *Mapper) DamageLevel(label string) (string, error)  { return m.Map(DamageLevels, label) }
func (m *Mapper) PavementType(label string) (string, error) { return m.Map(PavementTypes, label) }
func (m *Mapper) RoadDamageType(label string) (string, error) {
	return m.Map(RoadDamageTypes, label)
}
func (m *Mapper) TrafficCondition(label string) (string, error) {
	return m.Map(TrafficConditions, label)
}
func (m *Mapper) BridgeSection(label string) (string, error) {
	return m.Map(BridgeSections, label)
}
func (m *Mapper) BridgeStructureType(label string) (string, error) {
	return m.Map(BridgeStructureTypes, label)
}
func (m *Mapper) BridgeDamageType(label string) (string, error) {
	return m.Map(BridgeDamageTypes, label)
}
