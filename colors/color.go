package colors

import (
	"fmt"
	"image/color"
	"io"
	"strconv"

	"github.com/echoflaresat/raytrace/vectors"
)

// Scale maps a [0,1] channel onto [0,255] under truncation.
// 255.999 keeps 1.0 at 255 without a separate rounding step.
const Scale = 255.999

// Quantize converts each channel to an integer by truncation toward zero.
// Channels outside [0,1] are not clamped.
func Quantize(c vectors.Color) (r, g, b int) {
	return int(Scale * c.X), int(Scale * c.Y), int(Scale * c.Z)
}

// AppendColor appends the "r g b\n" pixel record for c to dst.
func AppendColor(dst []byte, c vectors.Color) []byte {
	r, g, b := Quantize(c)
	dst = strconv.AppendInt(dst, int64(r), 10)
	dst = append(dst, ' ')
	dst = strconv.AppendInt(dst, int64(g), 10)
	dst = append(dst, ' ')
	dst = strconv.AppendInt(dst, int64(b), 10)
	return append(dst, '\n')
}

// WriteColor writes one pixel record to w in a single Write call.
func WriteColor(w io.Writer, c vectors.Color) error {
	var buf [48]byte
	line := AppendColor(buf[:0], c)
	n, err := w.Write(line)
	if err != nil {
		return fmt.Errorf("colors: write pixel: %w", err)
	}
	if n != len(line) {
		return fmt.Errorf("colors: write pixel: %w", io.ErrShortWrite)
	}
	return nil
}

// FromStandardColor converts any image color into a linear Color in [0,1],
// undoing alpha premultiplication. Fully transparent input maps to black.
func FromStandardColor(c color.Color) vectors.Color {
	r16, g16, b16, a16 := c.RGBA()
	if a16 == 0 {
		return vectors.Zero()
	}

	invA := float64(0xFFFF) / float64(a16)
	return vectors.Color{
		X: float64(r16) * invA / 65535.0,
		Y: float64(g16) * invA / 65535.0,
		Z: float64(b16) * invA / 65535.0,
	}
}

func From8BitRGB(r, g, b byte) vectors.Color {
	return vectors.Color{
		X: float64(r) / 255.0,
		Y: float64(g) / 255.0,
		Z: float64(b) / 255.0,
	}
}
