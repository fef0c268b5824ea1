// Package camera drives a single exclusive capture stream and turns frames
// into gallery files.
package camera

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"sync"
	"time"

	"github.com/laporinfra/laporinfra/internal/intake"
	"github.com/laporinfra/laporinfra/pkg/i18n"
	"github.com/laporinfra/laporinfra/pkg/logger"
)

var (
	ErrPermissionDenied = errors.New("camera permission denied")
	ErrDeviceNotFound   = errors.New("camera device not found")
	ErrDeviceBusy       = errors.New("camera device busy")
	ErrNotOpen          = errors.New("camera stream not open")
)

// Facing selects the front or rear camera
type Facing string

const (
	FacingEnvironment Facing = "environment"
	FacingUser        Facing = "user"
)

// Opposite returns the other facing
func (f Facing) Opposite() Facing {
	if f == FacingUser {
		return FacingEnvironment
	}
	return FacingUser
}

// Constraints are requested when opening a stream
type Constraints struct {
	Facing Facing
	Width  int
	Height int
}

// DefaultConstraints asks for the rear camera at 1920x1080
func DefaultConstraints() Constraints {
	return Constraints{Facing: FacingEnvironment, Width: 1920, Height: 1080}
}

// Device is a platform camera
type Device interface {
	Open(ctx context.Context, c Constraints) (Stream, error)
}

// Stream is an open camera stream
type Stream interface {
	Frame() (image.Image, error)
	Stop()
}

// Session owns at most one open stream at a time
type Session struct {
	mu          sync.Mutex
	device      Device
	constraints Constraints
	stream      Stream
	quality     int
	now         func() time.Time
	log         *logger.Logger
}

// NewSession creates a closed session on device
func NewSession(device Device, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	return &Session{
		device:      device,
		constraints: DefaultConstraints(),
		quality:     90,
		now:         time.Now,
		log:         log.WithComponent("camera"),
	}
}

// Open acquires a stream with the current constraints, releasing any stream
// already held.
func (s *Session) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	return s.openLocked(ctx, s.constraints)
}

func (s *Session) openLocked(ctx context.Context, c Constraints) error {
	stream, err := s.device.Open(ctx, c)
	if err != nil {
		return err
	}
	s.stream = stream
	s.constraints = c
	s.log.Debug().Str("facing", string(c.Facing)).Msg("camera stream opened")
	return nil
}

func (s *Session) stopLocked() {
	if s.stream != nil {
		s.stream.Stop()
		s.stream = nil
	}
}

// Facing returns the facing of the current or last stream
func (s *Session) Facing() Facing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.constraints.Facing
}

// Active reports whether a stream is open
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stream != nil
}

// Switch moves to the opposite camera. If that fails the original facing is
// reopened and the failure is returned.
func (s *Session) Switch(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	original := s.constraints
	s.stopLocked()

	next := original
	next.Facing = original.Facing.Opposite()
	err := s.openLocked(ctx, next)
	if err == nil {
		return nil
	}

	s.log.Warn().Err(err).Str("facing", string(next.Facing)).Msg("camera switch failed, restoring")
	if rerr := s.openLocked(ctx, original); rerr != nil {
		return errors.Join(err, rerr)
	}
	return err
}

// Capture copies the current frame, encodes it as JPEG and stops the stream
func (s *Session) Capture() (intake.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stream == nil {
		return intake.File{}, ErrNotOpen
	}
	defer s.stopLocked()

	frame, err := s.stream.Frame()
	if err != nil {
		return intake.File{}, fmt.Errorf("read frame: %w", err)
	}

	snapshot := image.NewRGBA(frame.Bounds())
	draw.Draw(snapshot, snapshot.Bounds(), frame, frame.Bounds().Min, draw.Src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, snapshot, &jpeg.Options{Quality: s.quality}); err != nil {
		return intake.File{}, fmt.Errorf("encode frame: %w", err)
	}

	return intake.File{
		Name:   fmt.Sprintf("camera-%s.jpg", s.now().Format("20060102-150405")),
		MIME:   "image/jpeg",
		Data:   buf.Bytes(),
		Source: intake.SourceCamera,
	}, nil
}

// Close stops the stream if one is open
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// Message returns the user-facing message for a device failure
func Message(l *i18n.Localizer, err error) string {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return l.T("camera.permission_denied")
	case errors.Is(err, ErrDeviceNotFound):
		return l.T("camera.not_found")
	case errors.Is(err, ErrDeviceBusy):
		return l.T("camera.busy")
	case errors.Is(err, intake.ErrCameraDisabled):
		return l.T("camera.disabled")
	default:
		return l.T("camera.other", map[string]string{"message": err.Error()})
	}
}
