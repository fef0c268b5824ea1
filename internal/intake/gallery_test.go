package intake

import (
	"context"
	"fmt"
	"testing"

	"github.com/laporinfra/laporinfra/pkg/i18n"
	"github.com/laporinfra/laporinfra/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func photo(name string) File {
	return File{Name: name, MIME: "image/jpeg", Data: testutil.PlainJPEG()}
}

func gpsPhoto(name string, lat, lon float64) File {
	return File{Name: name, MIME: "image/jpeg", Data: testutil.JPEGWithGPS(lat, lon)}
}

func TestGallery_PreservesOrder(t *testing.T) {
	g := NewGallery(Config{MaxFiles: 20, Policy: PolicyRejectAll, ExtractGPS: true, Workers: 8}, nil)

	files := make([]File, 0, 12)
	for i := 0; i < 12; i++ {
		if i%2 == 0 {
			files = append(files, gpsPhoto(fmt.Sprintf("gps-%02d.jpg", i), -7.0-float64(i)/100, 111.0))
		} else {
			files = append(files, photo(fmt.Sprintf("plain-%02d.jpg", i)))
		}
	}

	res, err := g.Add(context.Background(), SourceUpload, files)
	require.NoError(t, err)
	assert.Equal(t, 12, res.Accepted)
	assert.Empty(t, res.Warnings)

	attachments := g.Attachments()
	require.Len(t, attachments, len(files))
	assert.Len(t, g.Previews(), len(files))
	assert.Len(t, g.Files(), len(files))

	for i, a := range attachments {
		assert.Equal(t, files[i].Name, a.File.Name)
		assert.Equal(t, files[i].Data, a.File.Data)
		assert.Equal(t, DataURL("image/jpeg", files[i].Data), a.Preview)
		if i%2 == 0 {
			require.NotNil(t, a.GPS, a.File.Name)
			assert.InDelta(t, -7.0-float64(i)/100, a.GPS.Lat(), 1e-5)
		} else {
			assert.Nil(t, a.GPS, a.File.Name)
		}
	}
}

func TestGallery_CameraNeverExtractsGPS(t *testing.T) {
	g := NewGallery(StrictPreset(5), nil)

	res, err := g.Add(context.Background(), SourceCamera, []File{gpsPhoto("capture.jpg", -7.4, 111.4)})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Accepted)

	a := g.Attachments()[0]
	assert.Nil(t, a.GPS)
	assert.Equal(t, SourceCamera, a.File.Source)
}

func TestGallery_ExtractGPSDisabled(t *testing.T) {
	g := NewGallery(BasicPreset(5), nil)
	_, err := g.Add(context.Background(), SourceUpload, []File{gpsPhoto("a.jpg", -7.4, 111.4)})
	require.NoError(t, err)
	assert.Nil(t, g.Attachments()[0].GPS)
}

func TestGallery_CameraDisabled(t *testing.T) {
	g := NewGallery(BasicPreset(5), nil)
	_, err := g.Add(context.Background(), SourceCamera, []File{photo("a.jpg")})
	assert.ErrorIs(t, err, ErrCameraDisabled)
	assert.Zero(t, g.Len())
}

func TestGallery_Remove(t *testing.T) {
	g := NewGallery(SmartPreset(10), nil)
	files := []File{
		gpsPhoto("0.jpg", -7.1, 111.1),
		photo("1.jpg"),
		gpsPhoto("2.jpg", -7.3, 111.3),
		photo("3.jpg"),
		gpsPhoto("4.jpg", -7.5, 111.5),
	}
	_, err := g.Add(context.Background(), SourceUpload, files)
	require.NoError(t, err)
	before := g.Attachments()

	require.NoError(t, g.Remove(1))

	after := g.Attachments()
	require.Len(t, after, 4)
	assert.Equal(t, before[0], after[0])
	for k := 1; k < 4; k++ {
		assert.Equal(t, before[k+1], after[k], "index %d", k)
	}

	// earlier snapshots are not affected
	assert.Equal(t, "1.jpg", before[1].File.Name)

	assert.ErrorIs(t, g.Remove(4), ErrIndexOutOfRange)
	assert.ErrorIs(t, g.Remove(-1), ErrIndexOutOfRange)
}

func TestGallery_CapacityPolicies(t *testing.T) {
	batch := []File{photo("a.jpg"), photo("b.jpg"), photo("c.jpg")}
	l := i18n.NewLocalizer(i18n.DefaultLocale)

	t.Run("strict rejects whole batch", func(t *testing.T) {
		g := NewGallery(StrictPreset(2), nil)
		res, err := g.Add(context.Background(), SourceUpload, batch)
		require.NoError(t, err)
		assert.Zero(t, res.Accepted)
		assert.Zero(t, g.Len())
		require.Len(t, res.Warnings, 1)
		assert.Equal(t, "intake.over_capacity", res.Warnings[0].Key)
		assert.Equal(t, "Maksimal 2 foto. Sisa kapasitas 2 foto", res.Warnings[0].Message(l))
	})

	t.Run("smart truncates", func(t *testing.T) {
		g := NewGallery(SmartPreset(2), nil)
		res, err := g.Add(context.Background(), SourceUpload, batch)
		require.NoError(t, err)
		assert.Equal(t, 2, res.Accepted)
		assert.Equal(t, []string{"a.jpg", "b.jpg"}, []string{g.Files()[0].Name, g.Files()[1].Name})
		require.Len(t, res.Warnings, 1)
		assert.Equal(t, "intake.truncated", res.Warnings[0].Key)
		assert.Equal(t, "1", res.Warnings[0].Params["excess"])
	})

	t.Run("remaining capacity counts existing photos", func(t *testing.T) {
		g := NewGallery(StrictPreset(3), nil)
		_, err := g.Add(context.Background(), SourceUpload, batch[:2])
		require.NoError(t, err)
		res, err := g.Add(context.Background(), SourceUpload, batch[:2])
		require.NoError(t, err)
		assert.Zero(t, res.Accepted)
		assert.Equal(t, "1", res.Warnings[0].Params["remaining"])
		assert.Equal(t, 2, g.Len())
	})
}

func TestGallery_FiltersNonImages(t *testing.T) {
	g := NewGallery(Config{MaxFiles: 5, Policy: PolicyRejectAll, MaxFileSize: 1024 * 1024}, nil)

	res, err := g.Add(context.Background(), SourceUpload, []File{
		{Name: "laporan.pdf", Data: []byte("%PDF-1.4")},
		photo("ok.jpg"),
		{Name: "huge.jpg", Data: testutil.OversizedJPEG(1024 * 1024)},
		{Name: "tiny.png", MIME: "application/octet-stream", Data: testutil.PlainPNG()},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Accepted)
	require.Len(t, res.Warnings, 2)
	assert.Equal(t, "intake.not_image", res.Warnings[0].Key)
	assert.Equal(t, "laporan.pdf", res.Warnings[0].Params["name"])
	assert.Equal(t, "intake.photo_too_large", res.Warnings[1].Key)

	files := g.Files()
	assert.Equal(t, "image/png", files[1].MIME)
}

func TestGallery_Reset(t *testing.T) {
	g := NewGallery(StrictPreset(5), nil)
	_, err := g.Add(context.Background(), SourceUpload, []File{photo("a.jpg")})
	require.NoError(t, err)
	g.Reset()
	assert.Zero(t, g.Len())
}

func TestGallery_CanceledContext(t *testing.T) {
	g := NewGallery(StrictPreset(5), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Add(ctx, SourceUpload, []File{photo("a.jpg")})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, g.Len())
}

func TestParsePolicyAndSource(t *testing.T) {
	p, ok := ParsePolicy("truncate")
	assert.True(t, ok)
	assert.Equal(t, PolicyTruncate, p)
	_, ok = ParsePolicy("drop")
	assert.False(t, ok)

	s, ok := ParseSource("camera")
	assert.True(t, ok)
	assert.Equal(t, SourceCamera, s)
	_, ok = ParseSource("scanner")
	assert.False(t, ok)
}
