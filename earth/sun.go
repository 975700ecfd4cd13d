package earth

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"

	"github.com/echoflaresat/raytrace/vectors"
)

const Radius = 6371.0 // Earth radius in km (spherical approximation)

// SunDirection returns the unit vector from the Earth's centre toward the Sun
// in Earth-fixed coordinates (X through lon 0, Z through the north pole).
func SunDirection(t time.Time) vectors.Vec3 {
	jd := julian.TimeToJD(t.UTC())

	// apparent RA/Dec of the Sun
	ra, dec := solar.ApparentEquatorial(jd)
	raRad, decRad := ra.Rad(), dec.Rad()

	eci := vectors.New(
		math.Cos(decRad)*math.Cos(raRad),
		math.Cos(decRad)*math.Sin(raRad),
		math.Sin(decRad),
	)

	// rotate inertial → Earth-fixed by Greenwich apparent sidereal time
	gst := sidereal.Apparent(jd).Angle().Rad()
	cosG, sinG := math.Cos(gst), math.Sin(gst)

	return vectors.New(
		eci.X*cosG+eci.Y*sinG,
		-eci.X*sinG+eci.Y*cosG,
		eci.Z,
	)
}

// SurfaceNormal returns the outward unit normal at geodetic (lat, lon) in radians.
func SurfaceNormal(lat, lon float64) vectors.Vec3 {
	return vectors.New(
		math.Cos(lat)*math.Cos(lon),
		math.Cos(lat)*math.Sin(lon),
		math.Sin(lat),
	)
}

// SurfacePoint returns the point on the sphere at (lat, lon), in km.
func SurfacePoint(lat, lon float64) vectors.Point3 {
	return vectors.NewRay(vectors.Zero(), SurfaceNormal(lat, lon)).At(Radius)
}
