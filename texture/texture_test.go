package texture

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/echoflaresat/raytrace/vectors"
)

// quadrants builds a 4×2 map: one color per texel, distinct everywhere.
func quadrants() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 60), G: uint8(y * 200), B: 10, A: 255})
		}
	}
	return img
}

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tex.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func direction(latDeg, lonDeg float64) vectors.Vec3 {
	lat := latDeg * math.Pi / 180
	lon := lonDeg * math.Pi / 180
	return vectors.New(math.Cos(lat)*math.Cos(lon), math.Cos(lat)*math.Sin(lon), math.Sin(lat))
}

func TestLoadAndSample(t *testing.T) {
	tex, err := Load(writePNG(t, quadrants()))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tex.Width != 4 || tex.Height != 2 {
		t.Fatalf("size = %dx%d", tex.Width, tex.Height)
	}

	cases := []struct {
		name     string
		lat, lon float64
		x, y     int
	}{
		{"north west", 45, -135, 0, 0},
		{"north east", 45, 135, 3, 0},
		{"south just east of 0", -45, 10, 2, 1},
		{"south just west of 0", -45, -10, 1, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := tex.Sample(direction(c.lat, c.lon).Scale(6371))
			want := vectors.New(float64(c.x*60)/255, float64(c.y*200)/255, 10.0/255)
			if vectors.Distance(got, want) > 1e-9 {
				t.Errorf("Sample = %v, want %v", got, want)
			}
		})
	}
}

func TestSampleClampsPoles(t *testing.T) {
	tex := FromImage(quadrants())
	top := tex.Sample(vectors.New(0, 0, 1))
	if top.Y != 0 {
		t.Errorf("north pole sampled the southern row: %v", top)
	}
	bottom := tex.Sample(vectors.New(0, 0, -1))
	if math.Abs(bottom.Y-200.0/255) > 1e-9 {
		t.Errorf("south pole sampled the northern row: %v", bottom)
	}
}

func TestResize(t *testing.T) {
	tex := FromImage(quadrants())
	if tex.Resize(4, 2) != tex {
		t.Errorf("same-size Resize should return the receiver")
	}
	big := tex.Resize(8, 4)
	if big.Width != 8 || big.Height != 4 {
		t.Fatalf("resized = %dx%d", big.Width, big.Height)
	}
	c := big.Sample(direction(45, -170))
	if c.Z < 0.03 || c.Z > 0.05 {
		t.Errorf("resized blue channel drifted: %v", c)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.tif")); err == nil {
		t.Errorf("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("expected decode error for junk file")
	}
}
