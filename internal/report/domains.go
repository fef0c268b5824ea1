package report

import (
	"context"

	"github.com/laporinfra/laporinfra/internal/enum"
	"github.com/laporinfra/laporinfra/internal/intake"
	"github.com/laporinfra/laporinfra/internal/schema"
	"github.com/laporinfra/laporinfra/internal/session"
	"github.com/laporinfra/laporinfra/internal/submission"
)

type (
	SpatialPlanningController = Controller[schema.SpatialPlanning, submission.SpatialPlanningReport]
	BuildingController        = Controller[schema.Building, submission.BuildingReport]
	WaterResourceController   = Controller[schema.WaterResource, submission.WaterResourceReport]
	RoadController            = Controller[schema.Road, submission.RoadReport]
	BridgeController          = Controller[schema.Bridge, submission.BridgeReport]
)

// New returns the detail step of category
func New(category enum.Category, deps Deps, photos *intake.Gallery) (Detail, error) {
	switch category {
	case enum.CategorySpatialPlanning:
		return NewSpatialPlanning(deps, photos), nil
	case enum.CategoryBuilding:
		return NewBuilding(deps, photos), nil
	case enum.CategoryWaterResource:
		return NewWaterResource(deps, photos), nil
	case enum.CategoryRoad:
		return NewRoad(deps, photos), nil
	case enum.CategoryBridge:
		return NewBridge(deps, photos), nil
	}
	return nil, ErrUnknownCategory
}

// NewSpatialPlanning creates the spatial-planning violation step
func NewSpatialPlanning(deps Deps, photos *intake.Gallery) *SpatialPlanningController {
	return newController(enum.CategorySpatialPlanning, deps, photos, definition[schema.SpatialPlanning, submission.SpatialPlanningReport]{
		photos: func(f *schema.SpatialPlanning) *[]schema.Photo { return &f.Photos },
		point:  func(f *schema.SpatialPlanning) (string, string) { return f.Latitude, f.Longitude },
		build: func(m *mapping, _ session.Reporter, f *schema.SpatialPlanning, files []intake.File) submission.SpatialPlanningReport {
			return submission.SpatialPlanningReport{
				Institution:         m.token("institution", m.mapper.Institution, f.Institution),
				AreaDescription:     f.AreaDescription,
				AreaCategory:        m.token("area_category", m.mapper.AreaCategory, f.AreaCategory),
				ViolationType:       m.token("violation_type", m.mapper.ViolationType, f.ViolationType),
				ViolationLevel:      m.token("violation_level", m.mapper.ViolationLevel, f.ViolationLevel),
				EnvironmentalImpact: m.token("environmental_impact", m.mapper.EnvironmentalImpact, f.EnvironmentalImpact),
				UrgencyLevel:        m.token("urgency_level", m.mapper.Urgency, f.UrgencyLevel),
				Latitude:            f.Latitude,
				Longitude:           f.Longitude,
				Address:             f.Address,
				Notes:               f.Notes,
				Photos:              files,
			}
		},
		submit: func(ctx context.Context, c Submitter, r session.Reporter, p submission.SpatialPlanningReport) (*submission.Response, error) {
			return c.SubmitSpatialPlanning(ctx, r, p)
		},
	})
}

// NewBuilding creates the government building step
func NewBuilding(deps Deps, photos *intake.Gallery) *BuildingController {
	return newController(enum.CategoryBuilding, deps, photos, definition[schema.Building, submission.BuildingReport]{
		photos: func(f *schema.Building) *[]schema.Photo { return &f.Photos },
		point:  func(f *schema.Building) (string, string) { return f.Latitude, f.Longitude },
		build: func(m *mapping, r session.Reporter, f *schema.Building, files []intake.File) submission.BuildingReport {
			return submission.BuildingReport{
				ReporterRole:         m.token("role", m.mapper.Role, r.Role),
				District:             f.District,
				BuildingName:         f.BuildingName,
				BuildingType:         m.token("building_type", m.mapper.BuildingType, f.BuildingType),
				ReportStatus:         m.token("report_status", m.mapper.BuildingStatus, f.ReportStatus),
				FundingSource:        m.token("funding_source", m.mapper.FundingSource, f.FundingSource),
				LastYearConstruction: f.LastYearConstruction,
				FullAddress:          f.FullAddress,
				Latitude:             f.Latitude,
				Longitude:            f.Longitude,
				FloorArea:            f.FloorArea,
				FloorCount:           m.token("floor_count", m.mapper.FloorCount, f.FloorCount),
				WorkType:             m.token("work_type", m.mapper.WorkType, f.WorkType),
				ConditionAfterRehab:  m.token("condition_after_rehab", m.mapper.ConditionAfterRehab, f.ConditionAfterRehab),
				Photos:               files,
			}
		},
		submit: func(ctx context.Context, c Submitter, r session.Reporter, p submission.BuildingReport) (*submission.Response, error) {
			return c.SubmitBuilding(ctx, r, p)
		},
	})
}

// NewWaterResource creates the irrigation damage step
func NewWaterResource(deps Deps, photos *intake.Gallery) *WaterResourceController {
	return newController(enum.CategoryWaterResource, deps, photos, definition[schema.WaterResource, submission.WaterResourceReport]{
		photos: func(f *schema.WaterResource) *[]schema.Photo { return &f.Photos },
		point:  func(f *schema.WaterResource) (string, string) { return f.Latitude, f.Longitude },
		build: func(m *mapping, r session.Reporter, f *schema.WaterResource, files []intake.File) submission.WaterResourceReport {
			return submission.WaterResourceReport{
				ReporterRole:          m.token("role", m.mapper.Role, r.Role),
				IrrigationAreaName:    f.IrrigationAreaName,
				IrrigationType:        m.token("irrigation_type", m.mapper.IrrigationType, f.IrrigationType),
				Latitude:              f.Latitude,
				Longitude:             f.Longitude,
				DamageType:            m.token("damage_type", m.mapper.WaterDamageType, f.DamageType),
				DamageLevel:           m.token("damage_level", m.mapper.DamageLevel, f.DamageLevel),
				EstimatedLength:       f.EstimatedLength,
				EstimatedWidth:        f.EstimatedWidth,
				EstimatedDepth:        f.EstimatedDepth,
				EstimatedArea:         f.EstimatedArea,
				EstimatedVolume:       f.EstimatedVolume,
				AffectedRiceFieldArea: f.AffectedRiceFieldArea,
				AffectedFarmersCount:  f.AffectedFarmersCount,
				UrgencyCategory:       m.token("urgency_category", m.mapper.Urgency, f.UrgencyCategory),
				Photos:                files,
			}
		},
		submit: func(ctx context.Context, c Submitter, r session.Reporter, p submission.WaterResourceReport) (*submission.Response, error) {
			return c.SubmitWaterResource(ctx, r, p)
		},
	})
}

// NewRoad creates the road damage step
func NewRoad(deps Deps, photos *intake.Gallery) *RoadController {
	return newController(enum.CategoryRoad, deps, photos, definition[schema.Road, submission.RoadReport]{
		photos: func(f *schema.Road) *[]schema.Photo { return &f.Photos },
		point:  func(f *schema.Road) (string, string) { return f.Latitude, f.Longitude },
		build: func(m *mapping, r session.Reporter, f *schema.Road, files []intake.File) submission.RoadReport {
			return submission.RoadReport{
				ReporterRole:       m.token("role", m.mapper.Role, r.Role),
				District:           f.District,
				RoadName:           f.RoadName,
				SegmentLength:      f.SegmentLength,
				Latitude:           f.Latitude,
				Longitude:          f.Longitude,
				PavementType:       m.token("pavement_type", m.mapper.PavementType, f.PavementType),
				DamageType:         m.token("damage_type", m.mapper.RoadDamageType, f.DamageType),
				DamageLevel:        m.token("damage_level", m.mapper.DamageLevel, f.DamageLevel),
				DamagedLength:      f.DamagedLength,
				DamagedWidth:       f.DamagedWidth,
				TotalDamagedArea:   f.TotalDamagedArea,
				TrafficCondition:   m.token("traffic_condition", m.mapper.TrafficCondition, f.TrafficCondition),
				TrafficImpact:      f.TrafficImpact,
				DailyTrafficVolume: f.DailyTrafficVolume,
				UrgencyLevel:       m.token("urgency_level", m.mapper.Urgency, f.UrgencyLevel),
				CauseOfDamage:      f.CauseOfDamage,
				Notes:              f.Notes,
				Photos:             files,
			}
		},
		submit: func(ctx context.Context, c Submitter, r session.Reporter, p submission.RoadReport) (*submission.Response, error) {
			return c.SubmitRoad(ctx, r, p)
		},
	})
}

// NewBridge creates the bridge damage step
func NewBridge(deps Deps, photos *intake.Gallery) *BridgeController {
	return newController(enum.CategoryBridge, deps, photos, definition[schema.Bridge, submission.BridgeReport]{
		photos: func(f *schema.Bridge) *[]schema.Photo { return &f.Photos },
		point:  func(f *schema.Bridge) (string, string) { return f.Latitude, f.Longitude },
		build: func(m *mapping, r session.Reporter, f *schema.Bridge, files []intake.File) submission.BridgeReport {
			return submission.BridgeReport{
				ReporterRole:        m.token("role", m.mapper.Role, r.Role),
				District:            f.District,
				BridgeName:          f.BridgeName,
				BridgeSection:       m.token("bridge_section", m.mapper.BridgeSection, f.BridgeSection),
				BridgeStructureType: m.token("bridge_structure_type", m.mapper.BridgeStructureType, f.BridgeStructureType),
				BridgeDamageType:    m.token("bridge_damage_type", m.mapper.BridgeDamageType, f.BridgeDamageType),
				BridgeDamageLevel:   m.token("bridge_damage_level", m.mapper.DamageLevel, f.BridgeDamageLevel),
				Latitude:            f.Latitude,
				Longitude:           f.Longitude,
				TrafficCondition:    m.token("traffic_condition", m.mapper.TrafficCondition, f.TrafficCondition),
				TrafficImpact:       f.TrafficImpact,
				DailyTrafficVolume:  f.DailyTrafficVolume,
				UrgencyLevel:        m.token("urgency_level", m.mapper.Urgency, f.UrgencyLevel),
				CauseOfDamage:       f.CauseOfDamage,
				Notes:               f.Notes,
				Photos:              files,
			}
		},
		submit: func(ctx context.Context, c Submitter, r session.Reporter, p submission.BridgeReport) (*submission.Response, error) {
			return c.SubmitBridge(ctx, r, p)
		},
	})
}
