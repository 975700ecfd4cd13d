package main

import (
	"fmt"
	"io"
	"os"

	"github.com/echoflaresat/raytrace/ppm"
	"github.com/echoflaresat/raytrace/vectors"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <image.ppm> [more.ppm ...]\n", os.Args[0])
		os.Exit(1)
	}

	failed := 0
	for _, path := range os.Args[1:] {
		if err := describe(os.Stdout, path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// describe prints the dimensions and mean color of the image at path.
func describe(w io.Writer, path string) error {
	m, err := ppm.Open(path)
	if err != nil {
		return err
	}

	mean := meanColor(m)
	_, err = fmt.Fprintf(w, "%s: %dx%d maxval %d mean %.3f %.3f %.3f\n",
		path, m.Width, m.Height, m.MaxVal, mean.X, mean.Y, mean.Z)
	return err
}

func meanColor(m *ppm.Image) vectors.Color {
	var sum vectors.Color
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			sum.AddAssign(m.Color(x, y))
		}
	}
	sum.DivAssign(float64(m.Width * m.Height))
	return sum
}
