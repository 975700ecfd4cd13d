package render

import (
	"math"

	"github.com/echoflaresat/raytrace/earth"
	"github.com/echoflaresat/raytrace/texture"
	"github.com/echoflaresat/raytrace/vectors"
)

// Smoothstep performs a Hermite interpolation between 0 and 1 across [edge0, edge1].
// Returns 0 if x < edge0, 1 if x > edge1.
func Smoothstep(edge0, edge1, x float64) float64 {
	// Avoid division by zero
	if edge0 == edge1 {
		if x < edge0 {
			return 0.0
		}
		return 1.0
	}

	t := Clip((x-edge0)/(edge1-edge0), 0.0, 1.0)
	return t * t * (3.0 - 2.0*t)
}

// Clip clamps x into the inclusive range [min, max].
func Clip(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

// Gradient is red across the image and green down it.
type Gradient struct{}

func (Gradient) Shade(x, y, width, height int) vectors.Color {
	return vectors.New(ratio(x, width), ratio(y, height), 0)
}

// ratio maps i in [0, n-1] onto [0, 1]; a single-pixel axis maps to 0.
func ratio(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// Solid fills every pixel with one color.
type Solid struct {
	Color vectors.Color
}

func (s Solid) Shade(_, _, _, _ int) vectors.Color {
	return s.Color
}

// Pixels replays a row-major color list; pixels past the end are black.
type Pixels []vectors.Color

func (p Pixels) Shade(x, y, width, _ int) vectors.Color {
	if i := y*width + x; i < len(p) {
		return p[i]
	}
	return vectors.Zero()
}

// Daylight paints an equirectangular world map lit by the Sun.
// Each pixel is a (lon, lat) cell; lon -180° is the left edge and lat +90° the top.
type Daylight struct {
	SunDir vectors.Vec3

	DayColor   vectors.Color
	NightColor vectors.Color

	// Optional textures override the flat colors.
	Day   *texture.Texture
	Night *texture.Texture
}

var (
	DefaultDayColor   = vectors.New(0.25, 0.60, 1.00)
	DefaultNightColor = vectors.New(0.05, 0.07, 0.20)
)

func NewDaylight(sunDir vectors.Vec3) *Daylight {
	return &Daylight{
		SunDir:     sunDir.UnitVector(),
		DayColor:   DefaultDayColor,
		NightColor: DefaultNightColor,
	}
}

// Coordinates returns the latitude and longitude (radians) at the centre of pixel (x, y).
func Coordinates(x, y, width, height int) (lat, lon float64) {
	lon = -math.Pi + 2*math.Pi*(float64(x)+0.5)/float64(width)
	lat = math.Pi/2 - math.Pi*(float64(y)+0.5)/float64(height)
	return lat, lon
}

// Light returns the sunlight factor in [0, 1] for a surface normal,
// with a soft terminator about 6° wide.
func (d *Daylight) Light(normal vectors.Vec3) float64 {
	return Smoothstep(-0.1, 0.1, normal.Dot(d.SunDir))
}

func (d *Daylight) Shade(x, y, width, height int) vectors.Color {
	lat, lon := Coordinates(x, y, width, height)
	normal := earth.SurfaceNormal(lat, lon)
	surface := vectors.NewRay(vectors.Zero(), normal).At(earth.Radius)

	day, night := d.DayColor, d.NightColor
	if d.Day != nil {
		day = d.Day.Sample(surface)
	}
	if d.Night != nil {
		night = d.Night.Sample(surface)
	}
	return night.Lerp(day, d.Light(normal))
}
