package schema

import (
	"strconv"
	"testing"
	"time"

	"github.com/laporinfra/laporinfra/pkg/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jpeg() Photo {
	return Photo{Name: "kerusakan.jpg", Size: 120 * 1024, MIME: "image/jpeg"}
}

func validRoad() Road {
	return Road{
		District:           "Ngawi",
		RoadName:           "Jl. Raya Ngawi - Solo",
		SegmentLength:      "1200",
		Latitude:           "-7.4034",
		Longitude:          "111.4464",
		PavementType:       "Aspal",
		DamageType:         "Berlubang",
		DamageLevel:        "Sedang",
		DamagedLength:      "15.5",
		DamagedWidth:       "3",
		TotalDamagedArea:   "46.5",
		TrafficCondition:   "Padat",
		DailyTrafficVolume: "0",
		UrgencyLevel:       "Tinggi",
		Photos:             []Photo{jpeg()},
	}
}

func validWater() WaterResource {
	return WaterResource{
		IrrigationAreaName:    "DI Kedung Putri",
		IrrigationType:        "Irigasi Teknis",
		Latitude:              "-7.41",
		Longitude:             "111.45",
		DamageType:            "Saluran Jebol",
		DamageLevel:           "Berat",
		EstimatedLength:       "10",
		EstimatedWidth:        "2",
		EstimatedDepth:        "1.5",
		EstimatedArea:         "20",
		EstimatedVolume:       "0",
		AffectedRiceFieldArea: "0",
		AffectedFarmersCount:  "0",
		UrgencyCategory:       "Darurat",
		Photos:                []Photo{jpeg()},
	}
}

func TestCoordinateRanges(t *testing.T) {
	tests := []struct {
		value string
		lat   bool
		lon   bool
	}{
		{"-90", true, true},
		{"90", true, true},
		{"-180", false, true},
		{"180", false, true},
		{"90.0001", false, true},
		{"180.0001", false, false},
		{"-7.4034", true, true},
		{"", false, false},
		{"abc", false, false},
		{"NaN", false, false},
		{"Inf", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.lat, ValidLatitude(tt.value), "latitude")
			assert.Equal(t, tt.lon, ValidLongitude(tt.value), "longitude")

			road := validRoad()
			road.Latitude = tt.value
			road.Longitude = tt.value
			errs := Validate(road)
			_, latErr := errs["latitude"]
			_, lonErr := errs["longitude"]
			assert.Equal(t, !tt.lat, latErr)
			assert.Equal(t, !tt.lon, lonErr)
		})
	}
}

func TestValidate_ValidSchemas(t *testing.T) {
	assert.Nil(t, Validate(validRoad()))
	assert.Nil(t, Validate(validWater()))
}

func TestValidate_ZeroBoundary(t *testing.T) {
	road := validRoad()
	road.DamagedLength = "0"
	road.DailyTrafficVolume = "0"
	errs := Validate(road)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "damaged_length")
	assert.NotContains(t, errs, "daily_traffic_volume")

	water := validWater()
	water.EstimatedWidth = "0"
	errs = Validate(water)
	assert.Contains(t, errs, "estimated_width")
	assert.NotContains(t, errs, "affected_farmers_count")
	assert.NotContains(t, errs, "estimated_volume")
}

func TestValidate_NumericFormats(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"12", true},
		{"12.5", true},
		{"0.1", true},
		{"-1", false},
		{"1e3", false},
		{"12,5", false},
		{".5", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			road := validRoad()
			road.SegmentLength = tt.value
			_, failed := Validate(road)["segment_length"]
			assert.Equal(t, !tt.ok, failed)
		})
	}
}

func TestValidate_CountRejectsFraction(t *testing.T) {
	water := validWater()
	water.AffectedFarmersCount = "2.5"
	assert.Contains(t, Validate(water), "affected_farmers_count")
}

func TestValidate_Photos(t *testing.T) {
	road := validRoad()
	road.Photos = nil
	errs := Validate(road)
	assert.Equal(t, "Minimal 1 foto kerusakan wajib diunggah", errs["photos"])

	road.Photos = []Photo{jpeg(), {Name: "big.jpg", Size: MaxPhotoSize + 1, MIME: "image/jpeg"}}
	errs = Validate(road)
	assert.Contains(t, errs["photos"], "maksimal")

	road.Photos = []Photo{{Name: "doc.gif", Size: 10, MIME: "image/gif"}}
	errs = Validate(road)
	assert.Equal(t, "Format foto harus JPG atau PNG", errs["photos"])

	road.Photos = []Photo{{Name: "x.jpg", Size: MaxPhotoSize, MIME: "image/pjpeg"}}
	assert.Nil(t, Validate(road))
}

func TestValidate_SpatialPlanningPhotosOptional(t *testing.T) {
	sp := SpatialPlanning{
		Institution:         "Masyarakat Umum",
		AreaDescription:     "Bangunan di sempadan sungai",
		AreaCategory:        "Sempadan Sungai",
		ViolationType:       "Pelanggaran Sempadan",
		ViolationLevel:      "Sedang",
		EnvironmentalImpact: "Tinggi",
		UrgencyLevel:        "Tinggi",
		Latitude:            "-7.4",
		Longitude:           "111.4",
		Address:             "Desa Ngawi",
	}
	assert.Nil(t, Validate(sp))
}

func TestValidate_MessagesIndonesian(t *testing.T) {
	errs := Validate(Road{})
	require.NotNil(t, errs)
	assert.Equal(t, "Nama ruas jalan wajib diisi", errs["road_name"])
	assert.Equal(t, "Latitude wajib diisi", errs["latitude"])
}

func TestValidateWith_English(t *testing.T) {
	errs := ValidateWith(i18n.NewLocalizer(i18n.LocaleEnglish), Road{})
	require.NotNil(t, errs)
	assert.Contains(t, errs["road_name"], "required")
}

func TestValidate_Identity(t *testing.T) {
	id := Identity{
		ReporterName:   "Samsudin",
		PhoneNumber:    "081234567890",
		Role:           "Masyarakat Umum",
		Village:        "Ngawi",
		ReportDatetime: time.Now(),
		Latitude:       "-7.4034",
		Longitude:      "111.4464",
	}
	assert.Nil(t, Validate(id))

	id.PhoneNumber = "12345"
	id.ReportDatetime = time.Time{}
	errs := Validate(id)
	assert.Contains(t, errs, "phone_number")
	assert.Contains(t, errs, "report_datetime")

	id.PhoneNumber = "+62 812-3456-7890"
	assert.NotContains(t, Validate(id), "phone_number")
}

func TestValidate_Category(t *testing.T) {
	assert.Nil(t, Validate(CategorySelection{Category: "jembatan"}))
	assert.Contains(t, Validate(CategorySelection{Category: "taman"}), "category")
	assert.Contains(t, Validate(CategorySelection{}), "category")
}

func TestValidate_Year(t *testing.T) {
	next := strconv.Itoa(time.Now().Year() + 1)
	for value, ok := range map[string]bool{"1899": false, "1900": true, "2015": true, next: false, "15": false} {
		b := validBuilding("Lainnya")
		b.LastYearConstruction = value
		_, failed := Validate(b)["last_year_construction"]
		assert.Equal(t, !ok, failed, value)
	}
}

func TestFieldKey(t *testing.T) {
	assert.Equal(t, "photos", fieldKey("Road.photos[0].size"))
	assert.Equal(t, "road_name", fieldKey("Road.road_name"))
	assert.Equal(t, "work_type", fieldKey("rehabilitationProfile.work_type"))
}

func TestFieldErrors_Error(t *testing.T) {
	err := FieldErrors{"b": "two", "a": "one"}
	assert.Equal(t, "a: one; b: two", err.Error())
}
