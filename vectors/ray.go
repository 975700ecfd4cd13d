package vectors

// Ray is the parametric line origin + t*direction.
// The direction is stored as given and is not normalized.
type Ray struct {
	orig Point3
	dir  Vec3
}

func NewRay(origin Point3, direction Vec3) Ray {
	return Ray{orig: origin, dir: direction}
}

func (r Ray) Origin() Point3 {
	return r.orig
}

func (r Ray) Direction() Vec3 {
	return r.dir
}

// At returns the point at parameter t along the ray. Negative t walks backwards.
func (r Ray) At(t float64) Point3 {
	return r.orig.Add(r.dir.Scale(t))
}
