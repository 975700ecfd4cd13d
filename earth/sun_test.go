package earth

import (
	"math"
	"testing"
	"time"
)

func TestSunDirectionIsUnit(t *testing.T) {
	for _, ts := range []string{
		"2024-01-01T00:00:00Z",
		"2024-08-08T09:23:00Z",
		"2025-12-21T18:00:00Z",
	} {
		tm, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			t.Fatal(err)
		}
		if l := SunDirection(tm).Length(); math.Abs(l-1) > 1e-9 {
			t.Errorf("%s: |sun| = %v", ts, l)
		}
	}
}

func TestSunDirectionEquinoxNoon(t *testing.T) {
	// Near the March equinox at 12:00 UTC the Sun is close to overhead at (0°, ~0°).
	tm := time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)
	sun := SunDirection(tm)
	if math.Abs(sun.Z) > 0.02 {
		t.Errorf("declination too large: %v", sun)
	}
	if sun.X < 0.98 {
		t.Errorf("sub-solar point far from lon 0: %v", sun)
	}
}

func TestSunDirectionSolstices(t *testing.T) {
	june := SunDirection(time.Date(2024, time.June, 20, 12, 0, 0, 0, time.UTC))
	dec := math.Asin(june.Z) * 180 / math.Pi
	if math.Abs(dec-23.44) > 0.2 {
		t.Errorf("June solstice declination = %v", dec)
	}

	december := SunDirection(time.Date(2024, time.December, 21, 12, 0, 0, 0, time.UTC))
	dec = math.Asin(december.Z) * 180 / math.Pi
	if math.Abs(dec+23.44) > 0.2 {
		t.Errorf("December solstice declination = %v", dec)
	}
}

func TestSurfacePoint(t *testing.T) {
	p := SurfacePoint(0, 0)
	if math.Abs(p.X-Radius) > 1e-9 || math.Abs(p.Y) > 1e-9 || math.Abs(p.Z) > 1e-9 {
		t.Errorf("SurfacePoint(0,0) = %v", p)
	}
	north := SurfacePoint(math.Pi/2, 1.234)
	if math.Abs(north.Z-Radius) > 1e-9 {
		t.Errorf("north pole = %v", north)
	}
	if l := SurfaceNormal(0.3, -2.1).Length(); math.Abs(l-1) > 1e-12 {
		t.Errorf("normal length = %v", l)
	}
}
