package submission

import (
	"strings"
	"time"

	"github.com/laporinfra/laporinfra/internal/intake"
	"github.com/laporinfra/laporinfra/internal/session"
	"github.com/shopspring/decimal"
)

// Report types sent on the shared Bina Marga endpoint
const (
	ReportTypeRoad   = "road"
	ReportTypeBridge = "bridge"
	// BridgeRoadName fills road_name for bridge reports
	BridgeRoadName = "JEMBATAN"
)

// SpatialPlanningReport is a mapped spatial-planning payload
type SpatialPlanningReport struct {
	Institution         string
	AreaDescription     string
	AreaCategory        string
	ViolationType       string
	ViolationLevel      string
	EnvironmentalImpact string
	UrgencyLevel        string
	Latitude            string
	Longitude           string
	Address             string
	Notes               string
	Photos              []intake.File
}

// BuildingReport is a mapped building payload
type BuildingReport struct {
	ReporterRole         string
	District             string
	BuildingName         string
	BuildingType         string
	ReportStatus         string
	FundingSource        string
	LastYearConstruction string
	FullAddress          string
	Latitude             string
	Longitude            string
	FloorArea            string
	FloorCount           string
	WorkType             string
	ConditionAfterRehab  string
	Photos               []intake.File
}

// WaterResourceReport is a mapped irrigation payload
type WaterResourceReport struct {
	ReporterRole          string
	IrrigationAreaName    string
	IrrigationType        string
	Latitude              string
	Longitude             string
	DamageType            string
	DamageLevel           string
	EstimatedLength       string
	EstimatedWidth        string
	EstimatedDepth        string
	EstimatedArea         string
	EstimatedVolume       string
	AffectedRiceFieldArea string
	AffectedFarmersCount  string
	UrgencyCategory       string
	Photos                []intake.File
}

// RoadReport is a mapped road payload
type RoadReport struct {
	ReporterRole       string
	District           string
	RoadName           string
	SegmentLength      string
	Latitude           string
	Longitude          string
	PavementType       string
	DamageType         string
	DamageLevel        string
	DamagedLength      string
	DamagedWidth       string
	TotalDamagedArea   string
	TrafficCondition   string
	TrafficImpact      string
	DailyTrafficVolume string
	UrgencyLevel       string
	CauseOfDamage      string
	Notes              string
	Photos             []intake.File
}

// BridgeReport is a mapped bridge payload
type BridgeReport struct {
	ReporterRole        string
	District            string
	BridgeName          string
	BridgeSection       string
	BridgeStructureType string
	BridgeDamageType    string
	BridgeDamageLevel   string
	Latitude            string
	Longitude           string
	TrafficCondition    string
	TrafficImpact       string
	DailyTrafficVolume  string
	UrgencyLevel        string
	CauseOfDamage       string
	Notes               string
	Photos              []intake.File
}

// Field is one text part of the multipart body
type Field struct {
	Name  string
	Value string
}

// Form is an ordered multipart body
type Form struct {
	Fields []Field
	Photos []intake.File
}

func (f *Form) add(name, value string) {
	f.Fields = append(f.Fields, Field{Name: name, Value: value})
}

func (f *Form) addOptional(name, value string) {
	if strings.TrimSpace(value) != "" {
		f.add(name, value)
	}
}

// Value returns the first value of a text part
func (f *Form) Value(name string) (string, bool) {
	for _, fld := range f.Fields {
		if fld.Name == name {
			return fld.Value, true
		}
	}
	return "", false
}

// FormatDatetime renders a report date as RFC 3339 UTC without fractions
func FormatDatetime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}

// number normalizes a decimal string ("12.50" -> "12.5"); other text passes through
func number(s string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return s
	}
	return d.String()
}

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func (f *Form) addReporter(r session.Reporter, role string) {
	f.add("reporter_name", r.ReporterName)
	f.add("reporter_role", role)
	f.add("phone_number", r.PhoneNumber)
	f.add("village", r.Village)
	f.add("report_datetime", FormatDatetime(r.ReportDatetime))
}

// SpatialPlanningForm lays out a spatial-planning report
func SpatialPlanningForm(r session.Reporter, p SpatialPlanningReport) *Form {
	f := &Form{Photos: p.Photos}
	f.add("reporter_name", r.ReporterName)
	f.add("institution", p.Institution)
	f.add("phone_number", r.PhoneNumber)
	f.add("report_datetime", FormatDatetime(r.ReportDatetime))
	f.add("area_description", p.AreaDescription)
	f.add("area_category", p.AreaCategory)
	f.add("violation_type", p.ViolationType)
	f.add("violation_level", p.ViolationLevel)
	f.add("environmental_impact", p.EnvironmentalImpact)
	f.add("urgency_level", p.UrgencyLevel)
	f.add("latitude", p.Latitude)
	f.add("longitude", p.Longitude)
	f.add("address", p.Address)
	f.add("notes", p.Notes)
	if len(f.Photos) == 0 {
		f.Photos = []intake.File{Placeholder()}
	}
	return f
}

// BuildingForm lays out a building report
func BuildingForm(r session.Reporter, p BuildingReport) *Form {
	f := &Form{Photos: p.Photos}
	f.add("reporter_name", r.ReporterName)
	f.add("reporter_role", p.ReporterRole)
	f.add("village", r.Village)
	f.add("district", p.District)
	f.add("building_name", p.BuildingName)
	f.add("building_type", p.BuildingType)
	f.add("report_status", p.ReportStatus)
	f.add("funding_source", p.FundingSource)
	f.add("last_year_construction", p.LastYearConstruction)
	f.add("full_address", p.FullAddress)
	f.add("latitude", p.Latitude)
	f.add("longitude", p.Longitude)
	f.add("floor_area", number(p.FloorArea))
	f.add("floor_count", p.FloorCount)
	f.addOptional("work_type", p.WorkType)
	f.addOptional("condition_after_rehab", p.ConditionAfterRehab)
	return f
}

// WaterResourceForm lays out an irrigation report
func WaterResourceForm(r session.Reporter, p WaterResourceReport) *Form {
	f := &Form{Photos: p.Photos}
	f.addReporter(r, p.ReporterRole)
	f.add("irrigation_area_name", p.IrrigationAreaName)
	f.add("irrigation_type", p.IrrigationType)
	f.add("latitude", p.Latitude)
	f.add("longitude", p.Longitude)
	f.add("damage_type", p.DamageType)
	f.add("damage_level", upper(p.DamageLevel))
	f.add("estimated_length", number(p.EstimatedLength))
	f.add("estimated_width", number(p.EstimatedWidth))
	f.add("estimated_depth", number(p.EstimatedDepth))
	f.add("estimated_area", number(p.EstimatedArea))
	f.add("estimated_volume", number(p.EstimatedVolume))
	f.add("affected_rice_field_area", number(p.AffectedRiceFieldArea))
	f.add("affected_farmers_count", number(p.AffectedFarmersCount))
	f.add("urgency_category", upper(p.UrgencyCategory))
	return f
}

// RoadForm lays out a road report
func RoadForm(r session.Reporter, p RoadReport) *Form {
	f := &Form{Photos: p.Photos}
	f.add("report_type", ReportTypeRoad)
	f.addReporter(r, p.ReporterRole)
	f.add("district", p.District)
	f.add("road_name", p.RoadName)
	f.add("segment_length", number(p.SegmentLength))
	f.add("latitude", p.Latitude)
	f.add("longitude", p.Longitude)
	f.add("pavement_type", upper(p.PavementType))
	f.add("damage_type", p.DamageType)
	f.add("damage_level", upper(p.DamageLevel))
	f.add("damaged_length", number(p.DamagedLength))
	f.add("damaged_width", number(p.DamagedWidth))
	f.add("total_damaged_area", number(p.TotalDamagedArea))
	f.add("traffic_condition", p.TrafficCondition)
	f.addOptional("traffic_impact", p.TrafficImpact)
	f.add("daily_traffic_volume", number(p.DailyTrafficVolume))
	f.add("urgency_level", upper(p.UrgencyLevel))
	f.addOptional("cause_of_damage", p.CauseOfDamage)
	f.addOptional("notes", p.Notes)
	return f
}

// BridgeForm lays out a bridge report on the road endpoint
func BridgeForm(r session.Reporter, p BridgeReport) *Form {
	f := &Form{Photos: p.Photos}
	f.add("report_type", ReportTypeBridge)
	f.addReporter(r, p.ReporterRole)
	f.add("district", p.District)
	f.add("road_name", BridgeRoadName)
	f.add("bridge_name", p.BridgeName)
	f.add("bridge_section", p.BridgeSection)
	f.add("bridge_structure_type", p.BridgeStructureType)
	f.add("bridge_damage_type", p.BridgeDamageType)
	f.add("bridge_damage_level", upper(p.BridgeDamageLevel))
	f.add("latitude", p.Latitude)
	f.add("longitude", p.Longitude)
	f.add("traffic_condition", p.TrafficCondition)
	f.addOptional("traffic_impact", p.TrafficImpact)
	f.add("daily_traffic_volume", number(p.DailyTrafficVolume))
	f.add("urgency_level", upper(p.UrgencyLevel))
	f.addOptional("cause_of_damage", p.CauseOfDamage)
	f.addOptional("notes", p.Notes)
	return f
}
