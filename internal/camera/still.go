package camera

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"sync"
)

// StillDevice serves a fixed image as every frame. It allows one open
// stream at a time like a real device.
type StillDevice struct {
	Image image.Image
	// Facings lists the available cameras; empty means both
	Facings []Facing
	// Err is returned from every Open when set
	Err error

	mu     sync.Mutex
	active *stillStream
	opened int
}

// NewStillDevice decodes a JPEG or PNG into a still device
func NewStillDevice(data []byte) (*StillDevice, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode still image: %w", err)
	}
	return &StillDevice{Image: img}, nil
}

func (d *StillDevice) Open(ctx context.Context, c Constraints) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.Err != nil {
		return nil, d.Err
	}
	if !d.has(c.Facing) {
		return nil, ErrDeviceNotFound
	}
	if d.active != nil {
		return nil, ErrDeviceBusy
	}

	d.active = &stillStream{device: d}
	d.opened++
	return d.active, nil
}

// Opened returns how many streams were opened so far
func (d *StillDevice) Opened() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opened
}

// Busy reports whether a stream is open
func (d *StillDevice) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active != nil
}

func (d *StillDevice) has(f Facing) bool {
	if len(d.Facings) == 0 {
		return true
	}
	for _, x := range d.Facings {
		if x == f {
			return true
		}
	}
	return false
}

type stillStream struct {
	device  *StillDevice
	stopped bool
}

func (s *stillStream) Frame() (image.Image, error) {
	s.device.mu.Lock()
	defer s.device.mu.Unlock()
	if s.stopped {
		return nil, ErrNotOpen
	}
	return s.device.Image, nil
}

func (s *stillStream) Stop() {
	s.device.mu.Lock()
	defer s.device.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	if s.device.active == s {
		s.device.active = nil
	}
}
