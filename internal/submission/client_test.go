package submission

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/laporinfra/laporinfra/internal/intake"
	"github.com/laporinfra/laporinfra/internal/session"
	"github.com/laporinfra/laporinfra/pkg/config"
	"github.com/laporinfra/laporinfra/pkg/i18n"
	"github.com/laporinfra/laporinfra/pkg/logger"
	"github.com/laporinfra/laporinfra/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reporter() session.Reporter {
	return session.Reporter{
		ReporterName:   "Sri",
		PhoneNumber:    "081234567890",
		Role:           "Masyarakat",
		Village:        "Beran",
		ReportDatetime: time.Date(2026, 3, 1, 10, 30, 15, 500, time.FixedZone("WIB", 7*3600)),
		Latitude:       "-7.4",
		Longitude:      "111.44",
	}
}

func newClient(url string) *Client {
	return NewClient(&config.APIConfig{BaseURL: url, Version: "v1", Timeout: 5 * time.Second}, logger.Nop())
}

type captured struct {
	path string
	form *testutil.ParsedMultipart
}

func mockAPI(t *testing.T, status int, body interface{}) (*Client, *captured) {
	t.Helper()
	got := &captured{}
	srv := testutil.MockAPI(t, status, body, func(r *http.Request) {
		got.path = r.URL.Path
		got.form = testutil.ParseMultipart(t, r)
	})
	return newClient(srv.URL), got
}

var okBody = map[string]interface{}{"success": true, "message": "ok", "data": map[string]interface{}{"id": 7}}

func TestFormatDatetime(t *testing.T) {
	assert.Equal(t, "2026-03-01T03:30:15Z", FormatDatetime(reporter().ReportDatetime))
}

func TestSubmitRoad_OrderAndConstants(t *testing.T) {
	c, got := mockAPI(t, http.StatusOK, okBody)

	resp, err := c.SubmitRoad(context.Background(), reporter(), RoadReport{
		ReporterRole:       "MASYARAKAT",
		District:           "Ngawi",
		RoadName:           "Jl. Raya",
		SegmentLength:      "120.50",
		Latitude:           "-7.4",
		Longitude:          "111.44",
		PavementType:       "aspal",
		DamageType:         "POTHOLES",
		DamageLevel:        "berat",
		DamagedLength:      "10",
		DamagedWidth:       "2",
		TotalDamagedArea:   "20",
		TrafficCondition:   "MASIH_BISA_DILALUI",
		DailyTrafficVolume: "300",
		UrgencyLevel:       "mendesak",
		Photos:             []intake.File{{Name: "a.jpg", MIME: "image/jpeg", Data: testutil.PlainJPEG()}},
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)

	assert.Equal(t, "/api/v1/bina-marga/reports", got.path)
	assert.Equal(t, "report_type", got.form.Order[0])
	assert.Equal(t, "road", got.form.Values["report_type"])
	assert.Equal(t, "2026-03-01T03:30:15Z", got.form.Values["report_datetime"])
	assert.Equal(t, "120.5", got.form.Values["segment_length"])
	assert.Equal(t, "ASPAL", got.form.Values["pavement_type"])
	assert.Equal(t, "BERAT", got.form.Values["damage_level"])
	assert.Equal(t, "MENDESAK", got.form.Values["urgency_level"])
	assert.NotContains(t, got.form.Values, "traffic_impact")
	assert.NotContains(t, got.form.Values, "notes")
	assert.Equal(t, PhotoField, got.form.Order[len(got.form.Order)-1])
	require.Len(t, got.form.Files, 1)
	assert.Equal(t, "a.jpg", got.form.Files[0].Name)
}

func TestSubmitBridge_UsesRoadEndpoint(t *testing.T) {
	c, got := mockAPI(t, http.StatusCreated, okBody)

	_, err := c.SubmitBridge(context.Background(), reporter(), BridgeReport{
		ReporterRole:      "MASYARAKAT",
		BridgeName:        "Jembatan Kali Madiun",
		BridgeDamageLevel: "sedang",
		Photos:            []intake.File{{Name: "b.png", MIME: "image/png", Data: testutil.PlainPNG()}},
	})
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/bina-marga/reports", got.path)
	assert.Equal(t, "bridge", got.form.Values["report_type"])
	assert.Equal(t, BridgeRoadName, got.form.Values["road_name"])
	assert.Equal(t, "SEDANG", got.form.Values["bridge_damage_level"])
}

func TestSubmitSpatialPlanning_Placeholder(t *testing.T) {
	c, got := mockAPI(t, http.StatusOK, okBody)

	_, err := c.SubmitSpatialPlanning(context.Background(), reporter(), SpatialPlanningReport{
		Institution:  "DINAS_PU",
		AreaCategory: "KAWASAN_LINDUNG",
	})
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/tata-ruang/reports", got.path)
	assert.Equal(t, []string{"reporter_name", "institution", "phone_number", "report_datetime"}, got.form.Order[:4])
	assert.Contains(t, got.form.Values, "notes")
	require.Len(t, got.form.Files, 1)
	assert.Equal(t, PlaceholderName, got.form.Files[0].Name)
	assert.Equal(t, PhotoField, got.form.Files[0].Field)
}

func TestSubmitBuilding_OptionalFields(t *testing.T) {
	tests := []struct {
		name     string
		workType string
		wantWork bool
	}{
		{"damage omits rehab fields", "", false},
		{"rehab sends work type", "REHABILITASI_RINGAN", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, got := mockAPI(t, http.StatusOK, okBody)
			_, err := c.SubmitBuilding(context.Background(), reporter(), BuildingReport{
				ReporterRole: "MASYARAKAT",
				ReportStatus: "REHABILITATION",
				FloorArea:    "150.0",
				WorkType:     tt.workType,
				Photos:       []intake.File{{Name: "a.jpg", MIME: "image/jpeg", Data: testutil.PlainJPEG()}},
			})
			require.NoError(t, err)
			assert.Equal(t, "/api/v1/bangunan/reports", got.path)
			assert.Equal(t, "150", got.form.Values["floor_area"])
			_, ok := got.form.Values["work_type"]
			assert.Equal(t, tt.wantWork, ok)
			assert.NotContains(t, got.form.Values, "condition_after_rehab")
		})
	}
}

func TestSubmit_IncompleteReporter(t *testing.T) {
	called := false
	srv := testutil.MockAPI(t, http.StatusOK, okBody, func(*http.Request) { called = true })
	c := newClient(srv.URL)

	r := reporter()
	r.Village = ""
	_, err := c.SubmitWaterResource(context.Background(), r, WaterResourceReport{})
	assert.ErrorIs(t, err, ErrReporterIncomplete)
	assert.False(t, called)
}

func TestSubmit_FailureMessages(t *testing.T) {
	l := i18n.NewLocalizer(i18n.LocaleIndonesian)

	tests := []struct {
		name   string
		status int
		body   interface{}
		want   string
	}{
		{"message field", http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Nama wajib"}, "Nama wajib"},
		{"detail string", http.StatusUnprocessableEntity, map[string]interface{}{"detail": "bad photo"}, "bad photo"},
		{"detail list", http.StatusUnprocessableEntity, map[string]interface{}{"detail": []string{"x"}}, `["x"]`},
		{"raw body", http.StatusInternalServerError, "gateway down", "gateway down"},
		{"success false on 200", http.StatusOK, map[string]interface{}{"success": false, "message": "duplikat"}, "duplikat"},
		{"empty body", http.StatusBadGateway, nil, l.T("errors.submission_generic")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := mockAPI(t, tt.status, tt.body)
			_, err := c.SubmitWaterResource(context.Background(), reporter(), WaterResourceReport{
				Photos: []intake.File{{Name: "a.jpg", MIME: "image/jpeg", Data: testutil.PlainJPEG()}},
			})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrRejected)
			assert.Equal(t, tt.want, Message(l, err))
		})
	}
}

func TestSubmit_TransportError(t *testing.T) {
	c := newClient("http://127.0.0.1:1")
	_, err := c.SubmitRoad(context.Background(), reporter(), RoadReport{})
	require.Error(t, err)

	var se *Error
	require.True(t, errors.As(err, &se))
	assert.True(t, se.Transport)
	assert.Contains(t, Message(i18n.NewLocalizer(i18n.LocaleEnglish), err), "127.0.0.1:1")
}

func TestPlaceholder_IsPNG(t *testing.T) {
	p := Placeholder()
	assert.Equal(t, "image/png", p.MIME)
	assert.Equal(t, []byte("\x89PNG"), p.Data[:4])
}
