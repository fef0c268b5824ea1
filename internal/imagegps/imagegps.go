// Package imagegps reads the GPS position embedded in photo EXIF metadata.
package imagegps

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/paulmach/orb"
	"github.com/rwcarlsen/goexif/exif"
)

var (
	// ErrNotImage is returned when the bytes are not an image
	ErrNotImage = errors.New("not an image")
	// ErrNoGPS is returned by MustExtract when the image has no GPS tags
	ErrNoGPS = errors.New("image has no GPS metadata")
)

// DetectMIME sniffs the content type of data
func DetectMIME(data []byte) string {
	return mimetype.Detect(data).String()
}

// IsImage reports whether data sniffs as any image type
func IsImage(data []byte) bool {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "image/") {
			return true
		}
	}
	return false
}

// Extract returns the embedded GPS position as lon/lat, or nil when the image
// carries none. Unreadable or missing EXIF is not an error.
func Extract(data []byte) (*orb.Point, error) {
	if !IsImage(data) {
		return nil, fmt.Errorf("%w: detected %s", ErrNotImage, DetectMIME(data))
	}

	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil
	}

	lat, lon, err := x.LatLong()
	if err != nil || !valid(lat, lon) {
		return nil, nil
	}

	return &orb.Point{lon, lat}, nil
}

// MustExtract is Extract for callers that require a position
func MustExtract(data []byte) (orb.Point, error) {
	p, err := Extract(data)
	if err != nil {
		return orb.Point{}, err
	}
	if p == nil {
		return orb.Point{}, ErrNoGPS
	}
	return *p, nil
}

func valid(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
