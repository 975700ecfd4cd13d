package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"strconv"

	"github.com/echoflaresat/raytrace/vectors"
	"golang.org/x/exp/mmap"
)

var (
	ErrBadMagic    = errors.New("ppm: not a plain PPM (P3) stream")
	ErrSampleRange = errors.New("ppm: sample outside [0, maxval]")
)

// maxPrealloc caps the samples reserved up front from the header.
const maxPrealloc = 1 << 20

// Image is a decoded plain PPM. Pix holds Width*Height*3 samples, row-major.
type Image struct {
	Width  int
	Height int
	MaxVal int
	Pix    []int
}

// At returns the samples of pixel (x, y).
func (m *Image) At(x, y int) (r, g, b int) {
	i := (y*m.Width + x) * 3
	return m.Pix[i], m.Pix[i+1], m.Pix[i+2]
}

// Color returns pixel (x, y) scaled back into [0,1].
func (m *Image) Color(x, y int) vectors.Color {
	r, g, b := m.At(x, y)
	return vectors.New(float64(r), float64(g), float64(b)).Div(float64(m.MaxVal))
}

// NRGBA converts the image to 8-bit samples for use with image tooling.
func (m *Image) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			r, g, b := m.At(x, y)
			o := img.PixOffset(x, y)
			img.Pix[o] = uint8(r * 255 / m.MaxVal)
			img.Pix[o+1] = uint8(g * 255 / m.MaxVal)
			img.Pix[o+2] = uint8(b * 255 / m.MaxVal)
			img.Pix[o+3] = 255
		}
	}
	return img
}

type tokenizer struct {
	r *bufio.Reader
}

// next returns the next whitespace-separated token, skipping '#' comments.
func (t *tokenizer) next() (string, error) {
	var tok []byte
	for {
		c, err := t.r.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			return "", err
		}
		switch {
		case c == '#' && len(tok) == 0:
			if _, err := t.r.ReadString('\n'); err != nil && err != io.EOF {
				return "", err
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f':
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, c)
		}
	}
}

func (t *tokenizer) nextInt(what string) (int, error) {
	tok, err := t.next()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return 0, fmt.Errorf("ppm: read %s: %w", what, err)
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("ppm: parse %s %q: %w", what, tok, err)
	}
	return n, nil
}

// Decode parses a plain PPM stream.
func Decode(r io.Reader) (*Image, error) {
	t := &tokenizer{r: bufio.NewReader(r)}

	magic, err := t.next()
	if err == io.EOF {
		return nil, ErrBadMagic
	}
	if err != nil {
		return nil, fmt.Errorf("ppm: read magic: %w", err)
	}
	if magic != Magic {
		return nil, ErrBadMagic
	}

	width, err := t.nextInt("width")
	if err != nil {
		return nil, err
	}
	height, err := t.nextInt("height")
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 || width > math.MaxInt/3/height {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	maxVal, err := t.nextInt("maxval")
	if err != nil {
		return nil, err
	}
	if maxVal <= 0 || maxVal > 65535 {
		return nil, fmt.Errorf("ppm: invalid maxval %d", maxVal)
	}

	// Pix grows with the stream; the header only bounds it.
	samples := width * height * 3
	m := &Image{
		Width:  width,
		Height: height,
		MaxVal: maxVal,
		Pix:    make([]int, 0, min(samples, maxPrealloc)),
	}
	for i := 0; i < samples; i++ {
		v, err := t.nextInt("sample")
		if err != nil {
			return nil, fmt.Errorf("pixel %d: %w", i/3, err)
		}
		if v < 0 || v > maxVal {
			return nil, fmt.Errorf("%w: pixel %d has %d", ErrSampleRange, i/3, v)
		}
		m.Pix = append(m.Pix, v)
	}
	return m, nil
}

// Open memory-maps the file at path and decodes it.
func Open(path string) (*Image, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ppm: %w", err)
	}
	defer reader.Close()

	m, err := Decode(io.NewSectionReader(reader, 0, int64(reader.Len())))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
