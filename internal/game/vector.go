package game

import "math"

// Vec3 is a 3D vector (Y up) with fixed-precision arithmetic so that
// repeated simulations of the same shot land on identical positions.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vec2 is a ground-plane vector (X east, Z south) used for path and
// hole-distance math.
type Vec2 struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// fix rounds to 4 decimal places. NaN collapses to 0 so a degenerate
// intermediate value can never poison a position.
func fix(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return math.Round(n*10000) / 10000
}

func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: fix(x), Y: fix(y), Z: fix(z)}
}

func (v Vec3) Plus(o Vec3) Vec3 {
	return Vec3{X: fix(v.X + o.X), Y: fix(v.Y + o.Y), Z: fix(v.Z + o.Z)}
}

func (v Vec3) Minus(o Vec3) Vec3 {
	return Vec3{X: fix(v.X - o.X), Y: fix(v.Y - o.Y), Z: fix(v.Z - o.Z)}
}

func (v Vec3) Times(s float64) Vec3 {
	return Vec3{X: fix(v.X * s), Y: fix(v.Y * s), Z: fix(v.Z * s)}
}

func (v Vec3) Dot(o Vec3) float64 {
	return fix(v.X*o.X + v.Y*o.Y + v.Z*o.Z)
}

func (v Vec3) Magnitude() float64 {
	return fix(math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z))
}

func (v Vec3) MagnitudeSquared() float64 {
	return fix(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v Vec3) Normalize() Vec3 {
	m := v.Magnitude()
	if m == 0 {
		return Vec3{}
	}
	return v.Times(1.0 / m)
}

// Horizontal drops the vertical component.
func (v Vec3) Horizontal() Vec2 {
	return Vec2{X: v.X, Z: v.Z}
}

// HorizontalMagnitude is the ground-plane speed.
func (v Vec3) HorizontalMagnitude() float64 {
	return fix(math.Sqrt(v.X*v.X + v.Z*v.Z))
}

func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

func NewVec2(x, z float64) Vec2 {
	return Vec2{X: fix(x), Z: fix(z)}
}

func (v Vec2) Plus(o Vec2) Vec2 {
	return Vec2{X: fix(v.X + o.X), Z: fix(v.Z + o.Z)}
}

func (v Vec2) Minus(o Vec2) Vec2 {
	return Vec2{X: fix(v.X - o.X), Z: fix(v.Z - o.Z)}
}

func (v Vec2) Times(s float64) Vec2 {
	return Vec2{X: fix(v.X * s), Z: fix(v.Z * s)}
}

func (v Vec2) Dot(o Vec2) float64 {
	return fix(v.X*o.X + v.Z*o.Z)
}

func (v Vec2) Magnitude() float64 {
	return fix(math.Sqrt(v.X*v.X + v.Z*v.Z))
}

func (v Vec2) MagnitudeSquared() float64 {
	return fix(v.X*v.X + v.Z*v.Z)
}

func (v Vec2) Normalize() Vec2 {
	m := v.Magnitude()
	if m == 0 {
		return Vec2{}
	}
	return v.Times(1.0 / m)
}

func (v Vec2) DistanceTo(o Vec2) float64 {
	return v.Minus(o).Magnitude()
}

// lerp linearly interpolates between a and b.
func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// smoothstep is the cubic ease 3t²−2t³ on a clamped [0,1] input.
func smoothstep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3.0 - 2.0*t)
}

// clamp bounds n to [lo, hi].
func clamp(n, lo, hi float64) float64 {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// distanceToSegment returns the distance from p to segment a-b, with the
// projection clamped to the segment ends.
func distanceToSegment(p, a, b Vec2) float64 {
	ab := b.Minus(a)
	lenSq := ab.MagnitudeSquared()
	if lenSq == 0 {
		return p.DistanceTo(a)
	}
	t := clamp(p.Minus(a).Dot(ab)/lenSq, 0, 1)
	closest := a.Plus(ab.Times(t))
	return p.DistanceTo(closest)
}
