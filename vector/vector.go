package vector

import (
	"fmt"
	"math"
)

//Vector helpers for the 2D lattice. Package functions are immutable,
//methods mutate the receiver and return it for chaining.

//Vec2 Default Vector Implementation - x, y components
type Vec2 [2]float64

//Int2 Integer lattice offset (discrete velocities)
type Int2 [2]int

//NewVec2 Returns pointer
func NewVec2(x, y float64) *Vec2 {
	return &Vec2{x, y}
}

//Float converts an integer lattice offset into a Vec2
func (i Int2) Float() Vec2 {
	return Vec2{float64(i[0]), float64(i[1])}
}

func Dot(a Vec2, b Vec2) float64 {
	return a[0]*b[0] + a[1]*b[1]
}

func (v *Vec2) Dot(b Vec2) float64 {
	return v[0]*b[0] + v[1]*b[1]
}

//Scale - Scales vector by scalar a
func Scale(v Vec2, a float64) Vec2 {
	return Vec2{v[0] * a, v[1] * a}
}

func (v *Vec2) Scale(a float64) *Vec2 {
	v[0] *= a
	v[1] *= a
	return v
}

func (v *Vec2) Clear() *Vec2 {
	v[0] = 0
	v[1] = 0
	return v
}

func Add(v Vec2, b Vec2) Vec2 {
	return Vec2{v[0] + b[0], v[1] + b[1]}
}

func Sub(v Vec2, b Vec2) Vec2 {
	return Vec2{v[0] - b[0], v[1] - b[1]}
}

//Add - Mutate
func (v *Vec2) Add(b Vec2) *Vec2 {
	v[0] += b[0]
	v[1] += b[1]
	return v
}

func (v *Vec2) Sub(b Vec2) *Vec2 {
	v[0] -= b[0]
	v[1] -= b[1]
	return v
}

//LengthSq avoids the square root for threshold tests
func LengthSq(a Vec2) float64 {
	return a[0]*a[0] + a[1]*a[1]
}

func Length(a Vec2) float64 {
	return math.Hypot(a[0], a[1])
}

func (v *Vec2) Length() float64 {
	return math.Hypot(v[0], v[1])
}

func Distance(a Vec2, b Vec2) float64 {
	return Length(Sub(a, b))
}

func (v *Vec2) Distance(a Vec2) float64 {
	return Length(Sub(*v, a))
}

//Normalize returns the unit vector of a, or the zero vector
func Normalize(a Vec2) Vec2 {
	l := Length(a)
	if l == 0 {
		return Vec2{}
	}
	return Vec2{a[0] / l, a[1] / l}
}

//Reflect a about normal n
func Reflect(n Vec2, v Vec2) Vec2 {
	b := Scale(n, Dot(n, v)*2.0/LengthSq(n))
	return Sub(v, b)
}

func VecEquals(v Vec2, a Vec2) bool {
	return v[0] == a[0] && v[1] == a[1]
}

//IsFinite reports whether both components are neither NaN nor Inf
func IsFinite(v Vec2) bool {
	return !math.IsNaN(v[0]) && !math.IsInf(v[0], 0) && !math.IsNaN(v[1]) && !math.IsInf(v[1], 0)
}

func isEpsilon(a float64, b float64) bool {
	return math.Abs(b-a) <= 1e-12
}

func (v Vec2) String() string {
	return fmt.Sprintf("[ %f, %f]", v[0], v[1])
}
