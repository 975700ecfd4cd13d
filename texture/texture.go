package texture

import (
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG format with image.Decode
	_ "image/png"  // register PNG format with image.Decode
	"io"
	"log/slog"
	"math"

	"github.com/echoflaresat/tiff"
	"golang.org/x/exp/mmap"
	"golang.org/x/image/draw"

	"github.com/echoflaresat/raytrace/colors"
	"github.com/echoflaresat/raytrace/vectors"
)

// Texture is an equirectangular RGB map sampled by direction vectors.
type Texture struct {
	Width  int
	Height int
	img    image.Image
}

func FromImage(img image.Image) *Texture {
	b := img.Bounds()
	return &Texture{
		Width:  b.Dx(),
		Height: b.Dy(),
		img:    img,
	}
}

// Load decodes a TIFF, JPEG or PNG texture from path.
func Load(path string) (*Texture, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	defer reader.Close()

	size := int64(reader.Len())
	img, err := tiff.Decode(io.NewSectionReader(reader, 0, size))
	if err != nil {
		slog.Debug("not a TIFF, trying image codecs", "path", path, "error", err)

		// fallback to image codecs
		img, _, err = image.Decode(io.NewSectionReader(reader, 0, size))
		if err != nil {
			return nil, fmt.Errorf("texture: decode %s: %w", path, err)
		}
	}

	// The mapping is released on return, so keep a private copy of the pixels.
	return FromImage(toNRGBA(img)), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Resize returns a copy of t resampled to w×h with bilinear filtering.
func (t *Texture) Resize(w, h int) *Texture {
	if w == t.Width && h == t.Height {
		return t
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), t.img, t.img.Bounds(), draw.Src, nil)
	return FromImage(dst)
}

// Sample maps the direction of p to lon/lat texture coordinates and returns
// the nearest texel. Longitude 0 sits at the horizontal centre of the map.
func (t *Texture) Sample(p vectors.Point3) vectors.Color {
	return t.colorAt(t.texel(p))
}

func (t *Texture) texel(p vectors.Point3) (int, int) {
	lat := math.Atan2(p.Z, math.Sqrt(p.X*p.X+p.Y*p.Y))
	lon := math.Atan2(p.Y, p.X)

	u := (lon + math.Pi) / (2 * math.Pi) * float64(t.Width)
	v := (0.5 - lat/math.Pi) * float64(t.Height)
	return int(math.Floor(u)), int(math.Floor(v))
}

func (t *Texture) colorAt(x, y int) vectors.Color {
	if x < 0 {
		x = 0
	} else if x >= t.Width {
		x = t.Width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= t.Height {
		y = t.Height - 1
	}

	b := t.img.Bounds()
	return colors.FromStandardColor(t.img.At(b.Min.X+x, b.Min.Y+y))
}
