package submission

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"

	"github.com/laporinfra/laporinfra/internal/intake"
)

// PlaceholderName is the file sent when a spatial-planning report has no photos
const PlaceholderName = "placeholder.png"

var placeholderPNG = sync.OnceValue(func() []byte {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.NRGBA{A: 0})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
})

// Placeholder returns a transparent 1x1 PNG upload
func Placeholder() intake.File {
	return intake.File{
		Name:   PlaceholderName,
		MIME:   "image/png",
		Data:   placeholderPNG(),
		Source: intake.SourceUpload,
	}
}
