package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	lru "github.com/hashicorp/golang-lru"

	"github.com/echoflaresat/raytrace/colors"
	"github.com/echoflaresat/raytrace/vectors"
)

// Magic identifies the plain-text, full-color PPM variant.
const Magic = "P3"

// MaxVal is the maximum channel value written in the header.
const MaxVal = 255

// DefaultCacheSize is the number of formatted pixel records a Writer keeps.
const DefaultCacheSize = 256

var (
	ErrInvalidDimensions = errors.New("ppm: width and height must be positive")
	ErrTooManyPixels     = errors.New("ppm: more pixels than width*height")
	ErrIncomplete        = errors.New("ppm: fewer pixels than width*height")
)

// AppendHeader appends the three header lines for a width×height image.
func AppendHeader(dst []byte, width, height int) []byte {
	dst = append(dst, Magic...)
	dst = append(dst, '\n')
	dst = strconv.AppendInt(dst, int64(width), 10)
	dst = append(dst, ' ')
	dst = strconv.AppendInt(dst, int64(height), 10)
	dst = append(dst, '\n')
	dst = strconv.AppendInt(dst, MaxVal, 10)
	return append(dst, '\n')
}

// WriteHeader writes "P3\n<width> <height>\n255\n".
func WriteHeader(w io.Writer, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if _, err := w.Write(AppendHeader(nil, width, height)); err != nil {
		return fmt.Errorf("ppm: write header: %w", err)
	}
	return nil
}

// Writer frames a stream of pixel records into a complete image.
// The header goes out with the first pixel (or on Close for an empty stream).
// Errors are sticky: once a write fails every later call returns the same error.
type Writer struct {
	out       *bufio.Writer
	width     int
	height    int
	written   int
	headerOut bool
	cache     *lru.Cache // [3]int -> []byte
	line      []byte
	err       error
}

type Option func(*Writer)

// WithCacheSize sets how many formatted records are memoized. Zero disables the cache.
func WithCacheSize(n int) Option {
	return func(w *Writer) {
		if n <= 0 {
			w.cache = nil
			return
		}
		w.cache, _ = lru.New(n)
	}
}

func NewWriter(w io.Writer, width, height int, opts ...Option) (*Writer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	cache, err := lru.New(DefaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("ppm: record cache: %w", err)
	}
	pw := &Writer{
		out:    bufio.NewWriter(w),
		width:  width,
		height: height,
		cache:  cache,
		line:   make([]byte, 0, 48),
	}
	for _, opt := range opts {
		opt(pw)
	}
	return pw, nil
}

// Pixels returns the number of pixel records accepted so far.
func (w *Writer) Pixels() int {
	return w.written
}

func (w *Writer) writeHeader() error {
	if w.headerOut {
		return nil
	}
	w.headerOut = true
	if _, err := w.out.Write(AppendHeader(w.line[:0], w.width, w.height)); err != nil {
		return fmt.Errorf("ppm: write header: %w", err)
	}
	return nil
}

// WritePixel appends the record for the next pixel in row-major order.
func (w *Writer) WritePixel(c vectors.Color) error {
	if w.err != nil {
		return w.err
	}
	if w.written >= w.width*w.height {
		return ErrTooManyPixels
	}
	if err := w.writeHeader(); err != nil {
		w.err = err
		return err
	}
	if _, err := w.out.Write(w.record(c)); err != nil {
		w.err = fmt.Errorf("ppm: write pixel %d: %w", w.written, err)
		return w.err
	}
	w.written++
	return nil
}

func (w *Writer) record(c vectors.Color) []byte {
	if w.cache == nil {
		w.line = colors.AppendColor(w.line[:0], c)
		return w.line
	}
	r, g, b := colors.Quantize(c)
	key := [3]int{r, g, b}
	if v, ok := w.cache.Get(key); ok {
		return v.([]byte)
	}
	line := colors.AppendColor(nil, c)
	w.cache.Add(key, line)
	return line
}

// Flush pushes buffered records to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.out.Flush(); err != nil {
		w.err = fmt.Errorf("ppm: flush: %w", err)
	}
	return w.err
}

// Close flushes and checks that exactly width*height pixels were written.
// It does not close the underlying writer.
func (w *Writer) Close() error {
	if w.err == nil {
		if err := w.writeHeader(); err != nil {
			w.err = err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if want := w.width * w.height; w.written != want {
		return fmt.Errorf("%w: wrote %d of %d", ErrIncomplete, w.written, want)
	}
	return nil
}
