package common

import "math"

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Vec3 is a point or extent in level space. Y is up; zones sit on the Y=0 plane.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Forward is the reference axis door orientations are measured from.
var Forward = Vec3{X: 0, Y: 0, Z: -1}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vec3) Distance(o Vec3) float64 {
	return v.Sub(o).Length()
}

// Normalize returns the unit vector of v, or the zero vector when v has no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Vec3) Vec3 {
	return Vec3{X: Lerp(a.X, b.X, 0.5), Y: Lerp(a.Y, b.Y, 0.5), Z: Lerp(a.Z, b.Z, 0.5)}
}

// Quat is a unit rotation quaternion.
type Quat struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
	W float64 `yaml:"w"`
}

var QuatIdentity = Quat{W: 1}

// RotationArc returns the shortest rotation taking unit vector from onto unit vector to.
func RotationArc(from, to Vec3) Quat {
	d := from.Dot(to)
	if d >= 1-1e-9 {
		return QuatIdentity
	}
	if d <= -1+1e-9 {
		// Opposite vectors: any perpendicular axis works, pick one deterministically.
		axis := Vec3{X: 1}.Cross(from)
		if axis.Length() < 1e-6 {
			axis = Vec3{Y: 1}.Cross(from)
		}
		axis = axis.Normalize()
		return Quat{X: axis.X, Y: axis.Y, Z: axis.Z, W: 0}
	}
	c := from.Cross(to)
	q := Quat{X: c.X, Y: c.Y, Z: c.Z, W: 1 + d}
	return q.Normalize()
}

func (q Quat) Normalize() Quat {
	l := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if l == 0 {
		return QuatIdentity
	}
	return Quat{X: q.X / l, Y: q.Y / l, Z: q.Z / l, W: q.W / l}
}

// Rotate applies q to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// YawXZ returns the heading of a direction on the XZ plane in radians.
func YawXZ(v Vec3) float64 {
	return math.Atan2(v.Z, v.X)
}
