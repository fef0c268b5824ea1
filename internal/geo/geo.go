// Package geo keeps the report coordinate in sync between a location
// provider, a map pin and the two free-text coordinate fields.
package geo

import (
	"context"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// DefaultCenter is the map centre used before any position is known
var DefaultCenter = orb.Point{111.4464, -7.4034}

// Options are passed to the location provider
type Options struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaximumAge   time.Duration
}

// DefaultOptions returns high accuracy, a 10s timeout and a 60s cache age
func DefaultOptions() Options {
	return Options{
		HighAccuracy: true,
		Timeout:      10 * time.Second,
		MaximumAge:   60 * time.Second,
	}
}

// Position is a fix returned by a Locator
type Position struct {
	Point     orb.Point
	Accuracy  float64
	Timestamp time.Time
}

// Locator is a platform location provider
type Locator interface {
	CurrentPosition(ctx context.Context, opts Options) (Position, error)
}

// FuncLocator adapts a function to Locator
type FuncLocator func(ctx context.Context, opts Options) (Position, error)

func (f FuncLocator) CurrentPosition(ctx context.Context, opts Options) (Position, error) {
	return f(ctx, opts)
}

// StaticLocator always reports the same point
type StaticLocator struct {
	Point orb.Point
}

func (s StaticLocator) CurrentPosition(ctx context.Context, _ Options) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, err
	}
	return Position{Point: s.Point, Timestamp: time.Now()}, nil
}

// Helper holds the coordinate pair and the two text fields bound to it.
// The point only changes on a successful fix, a map pin, or when both texts
// parse to in-range numbers.
type Helper struct {
	mu      sync.Mutex
	locator Locator
	opts    Options
	now     func() time.Time

	point   orb.Point
	latText string
	lonText string
	last    *Position
}

// NewHelper creates a helper centred on center. locator may be nil when the
// platform has no location service.
func NewHelper(locator Locator, center orb.Point, opts Options) *Helper {
	h := &Helper{
		locator: locator,
		opts:    opts,
		now:     time.Now,
	}
	h.setPoint(center)
	return h
}

// Point returns the current coordinate
func (h *Helper) Point() orb.Point {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.point
}

// LatitudeText returns the latitude field as typed or last synced
func (h *Helper) LatitudeText() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latText
}

// LongitudeText returns the longitude field as typed or last synced
func (h *Helper) LongitudeText() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lonText
}

// Activate requests a single fix. A cached fix younger than MaximumAge is
// reused. Failures leave the coordinate untouched.
func (h *Helper) Activate(ctx context.Context) (Position, error) {
	h.mu.Lock()
	if h.last != nil && h.opts.MaximumAge > 0 && h.now().Sub(h.last.Timestamp) < h.opts.MaximumAge {
		pos := *h.last
		h.setPoint(pos.Point)
		h.mu.Unlock()
		return pos, nil
	}
	locator, opts := h.locator, h.opts
	h.mu.Unlock()

	if locator == nil {
		return Position{}, ErrUnsupported
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	pos, err := locator.CurrentPosition(ctx, opts)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return Position{}, classify(err)
	}
	if !inRange(pos.Point) {
		return Position{}, ErrPositionUnavailable
	}
	if pos.Timestamp.IsZero() {
		pos.Timestamp = h.now()
	}

	h.mu.Lock()
	h.last = &pos
	h.setPoint(pos.Point)
	h.mu.Unlock()

	return pos, nil
}

// SetPoint moves the coordinate, e.g. from a map pin
func (h *Helper) SetPoint(p orb.Point) bool {
	if !inRange(p) {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.setPoint(p)
	return true
}

// SetLatitudeText stores s; the point moves when both fields are valid
func (h *Helper) SetLatitudeText(s string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.latText = s
	return h.syncFromText()
}

// SetLongitudeText stores s; the point moves when both fields are valid
func (h *Helper) SetLongitudeText(s string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lonText = s
	return h.syncFromText()
}

func (h *Helper) syncFromText() bool {
	lat, err := strconv.ParseFloat(strings.TrimSpace(h.latText), 64)
	if err != nil {
		return false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(h.lonText), 64)
	if err != nil {
		return false
	}
	p := orb.Point{lon, lat}
	if !inRange(p) {
		return false
	}
	h.point = p
	return true
}

func (h *Helper) setPoint(p orb.Point) {
	h.point = p
	h.latText = FormatCoordinate(p.Lat())
	h.lonText = FormatCoordinate(p.Lon())
}

// FormatCoordinate renders a coordinate the way the text fields show it
func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParsePoint parses a latitude/longitude text pair
func ParsePoint(lat, lon string) (orb.Point, bool) {
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return orb.Point{}, false
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return orb.Point{}, false
	}
	p := orb.Point{lo, la}
	return p, inRange(p)
}

// DistanceMeters is the great-circle distance between two points
func DistanceMeters(a, b orb.Point) float64 {
	return orbgeo.Distance(a, b)
}

func inRange(p orb.Point) bool {
	lat, lon := p.Lat(), p.Lon()
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
