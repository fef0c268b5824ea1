package testutil

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
)

// Image fixtures used across intake, imagegps and submission tests.

// SolidImage returns a w×h image filled with c
func SolidImage(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// PlainJPEG returns a small JPEG without EXIF metadata
func PlainJPEG() []byte {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, SolidImage(8, 8, color.RGBA{R: 120, G: 90, B: 60, A: 255}), nil); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// PlainPNG returns a small PNG
func PlainPNG() []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, SolidImage(4, 4, color.White)); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// OversizedJPEG returns a JPEG padded past size bytes. Only the header is a
// real image, which is enough for MIME sniffing and size checks.
func OversizedJPEG(size int) []byte {
	data := PlainJPEG()
	return append(data, make([]byte, size-len(data)+1)...)
}

// JPEGWithGPS returns PlainJPEG with an APP1 Exif segment carrying the
// given position in the GPS IFD.
func JPEGWithGPS(lat, lon float64) []byte {
	plain := PlainJPEG()

	tiff := gpsTIFF(lat, lon)
	payload := append([]byte("Exif\x00\x00"), tiff...)

	var out bytes.Buffer
	out.Write(plain[:2]) // SOI
	out.Write([]byte{0xFF, 0xE1})
	binary.Write(&out, binary.BigEndian, uint16(len(payload)+2))
	out.Write(payload)
	out.Write(plain[2:])
	return out.Bytes()
}

// gpsTIFF lays out a little-endian TIFF with IFD0 -> GPS IFD:
// header(8) | IFD0(18) | GPS IFD(54) | lat rationals(24) | lon rationals(24)
func gpsTIFF(lat, lon float64) []byte {
	const (
		ifd0Off   = 8
		gpsIFDOff = ifd0Off + 2 + 12 + 4
		latOff    = gpsIFDOff + 2 + 4*12 + 4
		lonOff    = latOff + 24
	)

	le := binary.LittleEndian
	var b bytes.Buffer
	w := func(v any) { binary.Write(&b, le, v) }

	b.WriteString("II")
	w(uint16(42))
	w(uint32(ifd0Off))

	// IFD0: GPSInfo pointer
	w(uint16(1))
	entry(&b, 0x8825, 4, 1, uint32(gpsIFDOff))
	w(uint32(0))

	latRef, lonRef := "N", "E"
	if lat < 0 {
		latRef = "S"
	}
	if lon < 0 {
		lonRef = "W"
	}

	// GPS IFD
	w(uint16(4))
	entry(&b, 0x0001, 2, 2, inlineASCII(latRef))
	entry(&b, 0x0002, 5, 3, uint32(latOff))
	entry(&b, 0x0003, 2, 2, inlineASCII(lonRef))
	entry(&b, 0x0004, 5, 3, uint32(lonOff))
	w(uint32(0))

	writeDMS(&b, math.Abs(lat))
	writeDMS(&b, math.Abs(lon))

	return b.Bytes()
}

func entry(b *bytes.Buffer, tag, typ uint16, count, value uint32) {
	le := binary.LittleEndian
	binary.Write(b, le, tag)
	binary.Write(b, le, typ)
	binary.Write(b, le, count)
	binary.Write(b, le, value)
}

func inlineASCII(s string) uint32 {
	var v [4]byte
	copy(v[:], s)
	return binary.LittleEndian.Uint32(v[:])
}

// writeDMS writes degrees, minutes and seconds as three RATIONALs
func writeDMS(b *bytes.Buffer, v float64) {
	deg := math.Floor(v)
	minutes := math.Floor((v - deg) * 60)
	seconds := ((v-deg)*60 - minutes) * 60

	le := binary.LittleEndian
	for _, r := range [][2]uint32{
		{uint32(deg), 1},
		{uint32(minutes), 1},
		{uint32(math.Round(seconds * 10000)), 10000},
	} {
		binary.Write(b, le, r[0])
		binary.Write(b, le, r[1])
	}
}
