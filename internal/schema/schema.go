package schema

import "time"

// Photo limits
const (
	MaxPhotoSize = 5 * 1024 * 1024
)

// AllowedPhotoTypes is the photo MIME allow-list
var AllowedPhotoTypes = []string{"image/jpeg", "image/jpg", "image/pjpeg", "image/png"}

// Photo is the metadata of one attached photo
type Photo struct {
	Name string `json:"name"`
	Size int64  `json:"size" validate:"gt=0,lte=5242880"`
	MIME string `json:"mime" validate:"oneof=image/jpeg image/jpg image/pjpeg image/png"`
}

// Identity is the reporter identity step
type Identity struct {
	ReporterName   string    `json:"reporter_name" validate:"required,max=100"`
	PhoneNumber    string    `json:"phone_number" validate:"required,phone_id"`
	Role           string    `json:"role" validate:"required"`
	Village        string    `json:"village" validate:"required,max=100"`
	ReportDatetime time.Time `json:"report_datetime" validate:"required"`
	Latitude       string    `json:"latitude" validate:"required,lat"`
	Longitude      string    `json:"longitude" validate:"required,lon"`
}

// CategorySelection is the category menu step
type CategorySelection struct {
	Category string `json:"category" validate:"required,category"`
}

// SpatialPlanning is the spatial-planning violation step. Photos are
// optional; the submission layer adds a placeholder when none are attached.
type SpatialPlanning struct {
	Institution         string  `json:"institution" validate:"required"`
	AreaDescription     string  `json:"area_description" validate:"required,max=1000"`
	AreaCategory        string  `json:"area_category" validate:"required"`
	ViolationType       string  `json:"violation_type" validate:"required"`
	ViolationLevel      string  `json:"violation_level" validate:"required"`
	EnvironmentalImpact string  `json:"environmental_impact" validate:"required"`
	UrgencyLevel        string  `json:"urgency_level" validate:"required"`
	Latitude            string  `json:"latitude" validate:"required,lat"`
	Longitude           string  `json:"longitude" validate:"required,lon"`
	Address             string  `json:"address" validate:"required,max=500"`
	Notes               string  `json:"notes" validate:"max=1000"`
	Photos              []Photo `json:"photos" validate:"omitempty,dive"`
}

// Building is the government building step. WorkType, ConditionAfterRehab
// and Photos are checked by the report status profile in ValidateBuilding.
type Building struct {
	District             string  `json:"district" validate:"required"`
	BuildingName         string  `json:"building_name" validate:"required,max=200"`
	BuildingType         string  `json:"building_type" validate:"required"`
	ReportStatus         string  `json:"report_status" validate:"required"`
	FundingSource        string  `json:"funding_source" validate:"required"`
	LastYearConstruction string  `json:"last_year_construction" validate:"required,year"`
	FullAddress          string  `json:"full_address" validate:"required,max=500"`
	Latitude             string  `json:"latitude" validate:"required,lat"`
	Longitude            string  `json:"longitude" validate:"required,lon"`
	FloorArea            string  `json:"floor_area" validate:"required,measure_pos"`
	FloorCount           string  `json:"floor_count" validate:"required"`
	WorkType             string  `json:"work_type" validate:"-"`
	ConditionAfterRehab  string  `json:"condition_after_rehab" validate:"-"`
	Photos               []Photo `json:"photos" validate:"-"`
}

// WaterResource is the irrigation damage step
type WaterResource struct {
	IrrigationAreaName    string  `json:"irrigation_area_name" validate:"required,max=200"`
	IrrigationType        string  `json:"irrigation_type" validate:"required"`
	Latitude              string  `json:"latitude" validate:"required,lat"`
	Longitude             string  `json:"longitude" validate:"required,lon"`
	DamageType            string  `json:"damage_type" validate:"required"`
	DamageLevel           string  `json:"damage_level" validate:"required"`
	EstimatedLength       string  `json:"estimated_length" validate:"required,measure_pos"`
	EstimatedWidth        string  `json:"estimated_width" validate:"required,measure_pos"`
	EstimatedDepth        string  `json:"estimated_depth" validate:"required,measure_pos"`
	EstimatedArea         string  `json:"estimated_area" validate:"required,measure_pos"`
	EstimatedVolume       string  `json:"estimated_volume" validate:"required,measure_nonneg"`
	AffectedRiceFieldArea string  `json:"affected_rice_field_area" validate:"required,measure_nonneg"`
	AffectedFarmersCount  string  `json:"affected_farmers_count" validate:"required,count"`
	UrgencyCategory       string  `json:"urgency_category" validate:"required"`
	Photos                []Photo `json:"photos" validate:"min=1,dive"`
}

// Road is the road damage step
type Road struct {
	District           string  `json:"district" validate:"required"`
	RoadName           string  `json:"road_name" validate:"required,max=200"`
	SegmentLength      string  `json:"segment_length" validate:"required,measure_pos"`
	Latitude           string  `json:"latitude" validate:"required,lat"`
	Longitude          string  `json:"longitude" validate:"required,lon"`
	PavementType       string  `json:"pavement_type" validate:"required"`
	DamageType         string  `json:"damage_type" validate:"required"`
	DamageLevel        string  `json:"damage_level" validate:"required"`
	DamagedLength      string  `json:"damaged_length" validate:"required,measure_pos"`
	DamagedWidth       string  `json:"damaged_width" validate:"required,measure_pos"`
	TotalDamagedArea   string  `json:"total_damaged_area" validate:"required,measure_pos"`
	TrafficCondition   string  `json:"traffic_condition" validate:"required"`
	TrafficImpact      string  `json:"traffic_impact" validate:"max=500"`
	DailyTrafficVolume string  `json:"daily_traffic_volume" validate:"required,count"`
	UrgencyLevel       string  `json:"urgency_level" validate:"required"`
	CauseOfDamage      string  `json:"cause_of_damage" validate:"max=500"`
	Notes              string  `json:"notes" validate:"max=1000"`
	Photos             []Photo `json:"photos" validate:"min=1,dive"`
}

// Bridge is the bridge damage step
type Bridge struct {
	District            string  `json:"district" validate:"required"`
	BridgeName          string  `json:"bridge_name" validate:"required,max=200"`
	BridgeSection       string  `json:"bridge_section" validate:"required"`
	BridgeStructureType string  `json:"bridge_structure_type" validate:"required"`
	BridgeDamageType    string  `json:"bridge_damage_type" validate:"required"`
	BridgeDamageLevel   string  `json:"bridge_damage_level" validate:"required"`
	Latitude            string  `json:"latitude" validate:"required,lat"`
	Longitude           string  `json:"longitude" validate:"required,lon"`
	TrafficCondition    string  `json:"traffic_condition" validate:"required"`
	TrafficImpact       string  `json:"traffic_impact" validate:"max=500"`
	DailyTrafficVolume  string  `json:"daily_traffic_volume" validate:"required,count"`
	UrgencyLevel        string  `json:"urgency_level" validate:"required"`
	CauseOfDamage       string  `json:"cause_of_damage" validate:"max=500"`
	Notes               string  `json:"notes" validate:"max=1000"`
	Photos              []Photo `json:"photos" validate:"min=1,dive"`
}
