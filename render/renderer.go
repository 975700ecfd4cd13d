package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/echoflaresat/raytrace/ppm"
	"github.com/echoflaresat/raytrace/vectors"
)

// Shader computes the color of pixel (x, y) in a width×height image.
// Row 0 is the top of the image.
type Shader interface {
	Shade(x, y, width, height int) vectors.Color
}

// ShaderFunc adapts a plain function to the Shader interface.
type ShaderFunc func(x, y, width, height int) vectors.Color

func (f ShaderFunc) Shade(x, y, width, height int) vectors.Color {
	return f(x, y, width, height)
}

// Render writes a complete plain PPM image to w: the header followed by
// width*height pixel records, row-major from the top row, left to right.
// ctx is checked between rows.
func Render(ctx context.Context, w io.Writer, width, height int, s Shader) error {
	out, err := ppm.NewWriter(w, width, height)
	if err != nil {
		return err
	}

	progressMilestone := 0
	for y := 0; y < height; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if progress := (y * 100) / height; progress >= progressMilestone {
			slog.Debug("rendering", "scanlines_remaining", height-y, "progress", progressMilestone)
			progressMilestone += 10
		}

		for x := 0; x < width; x++ {
			if err := out.WritePixel(s.Shade(x, y, width, height)); err != nil {
				return err
			}
		}
	}

	if err := out.Close(); err != nil {
		return err
	}
	slog.Debug("render complete", "width", width, "height", height, "pixels", out.Pixels())
	return nil
}

// RenderFile renders into a new file at path. A partially written file is removed.
func RenderFile(ctx context.Context, path string, width, height int, s Shader) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("render: close %s: %w", path, cerr)
		}
		if err != nil {
			if rerr := os.Remove(path); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
				slog.Warn("failed to remove partial image", "path", path, "error", rerr)
			}
		}
	}()

	if err := Render(ctx, f, width, height, s); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}
