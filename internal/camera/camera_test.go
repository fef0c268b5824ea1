package camera

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/laporinfra/laporinfra/internal/imagegps"
	"github.com/laporinfra/laporinfra/internal/intake"
	"github.com/laporinfra/laporinfra/pkg/i18n"
	"github.com/laporinfra/laporinfra/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Capture(t *testing.T) {
	dev := &StillDevice{Image: testutil.SolidImage(16, 9, color.RGBA{G: 200, A: 255})}
	s := NewSession(dev, nil)

	require.NoError(t, s.Open(context.Background()))
	assert.True(t, dev.Busy())
	assert.Equal(t, FacingEnvironment, s.Facing())

	f, err := s.Capture()
	require.NoError(t, err)
	assert.Equal(t, intake.SourceCamera, f.Source)
	assert.Equal(t, "image/jpeg", imagegps.DetectMIME(f.Data))
	assert.Contains(t, f.Name, "camera-")

	assert.False(t, s.Active(), "capture stops the stream")
	assert.False(t, dev.Busy())

	_, err = s.Capture()
	assert.ErrorIs(t, err, ErrNotOpen)
}

type brokenStream struct{ stopped bool }

func (s *brokenStream) Frame() (image.Image, error) { return nil, errors.New("sensor timeout") }
func (s *brokenStream) Stop()                        { s.stopped = true }

type brokenDevice struct{ stream *brokenStream }

func (d *brokenDevice) Open(context.Context, Constraints) (Stream, error) {
	d.stream = &brokenStream{}
	return d.stream, nil
}

func TestSession_CaptureFailureStopsStream(t *testing.T) {
	dev := &brokenDevice{}
	s := NewSession(dev, nil)
	require.NoError(t, s.Open(context.Background()))

	_, err := s.Capture()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sensor timeout")
	assert.True(t, dev.stream.stopped)
	assert.False(t, s.Active())
}

func TestSession_OpenReleasesPreviousStream(t *testing.T) {
	dev := &StillDevice{Image: testutil.SolidImage(2, 2, color.Black)}
	s := NewSession(dev, nil)

	require.NoError(t, s.Open(context.Background()))
	require.NoError(t, s.Open(context.Background()))
	assert.Equal(t, 2, dev.Opened())

	s.Close()
	assert.False(t, dev.Busy())
}

func TestSession_Switch(t *testing.T) {
	dev := &StillDevice{Image: testutil.SolidImage(2, 2, color.Black)}
	s := NewSession(dev, nil)
	require.NoError(t, s.Open(context.Background()))

	require.NoError(t, s.Switch(context.Background()))
	assert.Equal(t, FacingUser, s.Facing())
	assert.True(t, s.Active())
}

func TestSession_SwitchFallsBack(t *testing.T) {
	dev := &StillDevice{
		Image:   testutil.SolidImage(2, 2, color.Black),
		Facings: []Facing{FacingEnvironment},
	}
	s := NewSession(dev, nil)
	require.NoError(t, s.Open(context.Background()))

	err := s.Switch(context.Background())
	assert.ErrorIs(t, err, ErrDeviceNotFound)
	assert.Equal(t, FacingEnvironment, s.Facing())
	assert.True(t, s.Active())
	assert.Equal(t, 2, dev.Opened())
}

func TestSession_OpenFailures(t *testing.T) {
	l := i18n.NewLocalizer(i18n.DefaultLocale)

	tests := []struct {
		err  error
		want string
	}{
		{ErrPermissionDenied, "Izin kamera ditolak"},
		{ErrDeviceNotFound, "Kamera tidak ditemukan"},
		{ErrDeviceBusy, "Kamera sedang digunakan aplikasi lain"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			s := NewSession(&StillDevice{Err: tt.err}, nil)
			err := s.Open(context.Background())
			assert.ErrorIs(t, err, tt.err)
			assert.False(t, s.Active())
			assert.Equal(t, tt.want, Message(l, err))
		})
	}
}

func TestStillDevice_Exclusive(t *testing.T) {
	dev := &StillDevice{Image: testutil.SolidImage(2, 2, color.Black)}
	first, err := dev.Open(context.Background(), DefaultConstraints())
	require.NoError(t, err)

	_, err = dev.Open(context.Background(), DefaultConstraints())
	assert.ErrorIs(t, err, ErrDeviceBusy)

	first.Stop()
	_, err = dev.Open(context.Background(), DefaultConstraints())
	assert.NoError(t, err)
}

func TestNewStillDevice(t *testing.T) {
	dev, err := NewStillDevice(testutil.PlainPNG())
	require.NoError(t, err)
	assert.Equal(t, 4, dev.Image.Bounds().Dx())

	_, err = NewStillDevice([]byte("nope"))
	assert.Error(t, err)
}
