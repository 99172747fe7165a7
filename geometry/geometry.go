package geometry

import (
	"fmt"
	"math"

	V "diesel.com/lattice/vector"
)

//diesel geometry library - lattice extents and static obstacle occupancy.
//Masks are computed once per simulation setup and never mutated afterwards.

const DefaultRadius = 20.0

//Lattice holds the immutable cell extents of the simulation domain
type Lattice struct {
	NX int //Columns (width)
	NY int //Rows (height)
}

//NewLattice validates the extents
func NewLattice(nx, ny int) (Lattice, error) {
	if nx <= 0 || ny <= 0 {
		return Lattice{}, fmt.Errorf("%w: %dx%d", ErrEmptyLattice, nx, ny)
	}
	return Lattice{NX: nx, NY: ny}, nil
}

//Cells is the number of lattice sites
func (l Lattice) Cells() int {
	return l.NX * l.NY
}

//Index maps (x,y) to a row-major index
func (l Lattice) Index(x, y int) int {
	return y*l.NX + x
}

//Coordinate converts a row-major index back to (x,y)
func (l Lattice) Coordinate(idx int) (x, y int) {
	return idx % l.NX, idx / l.NX
}

func (l Lattice) InBounds(x, y int) bool {
	return x >= 0 && x < l.NX && y >= 0 && y < l.NY
}

func (l Lattice) String() string {
	return fmt.Sprintf("%dx%d", l.NX, l.NY)
}

//Shape reports occupancy of a point in lattice coordinates
type Shape interface {
	Contains(x, y float64) bool
}

//Circle - solid iff the distance to Center is strictly below Radius
type Circle struct {
	Center V.Vec2
	Radius float64
}

func (c Circle) Contains(x, y float64) bool {
	return V.Distance(c.Center, V.Vec2{x, y}) < c.Radius
}

//Rect - axis aligned square or rectangle, Min inclusive / Max inclusive
type Rect struct {
	Min V.Vec2
	Max V.Vec2
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.Min[0] && x <= r.Max[0] && y >= r.Min[1] && y <= r.Max[1]
}

//Airfoil - cambered NACA 4-digit profile. Leading edge sits at Origin and
//the chord runs along +x.
type Airfoil struct {
	Origin    V.Vec2
	Chord     float64
	Thickness float64 //max thickness as a fraction of chord
	Camber    float64 //max camber as a fraction of chord
	CamberPos float64 //position of max camber as a fraction of chord
}

func (a Airfoil) Contains(x, y float64) bool {
	if a.Chord <= 0 {
		return false
	}
	xn := (x - a.Origin[0]) / a.Chord
	yn := (y - a.Origin[1]) / a.Chord
	if xn < 0 || xn > 1 {
		return false
	}

	m, p := a.Camber, a.CamberPos
	var yc, dyc float64
	switch {
	case m == 0 || p <= 0 || p >= 1:
		yc, dyc = 0, 0
	case xn < p:
		yc = m / (p * p) * (2*p*xn - xn*xn)
		dyc = 2 * m / (p * p) * (p - xn)
	default:
		yc = m / ((1 - p) * (1 - p)) * ((1 - 2*p) + 2*p*xn - xn*xn)
		dyc = 2 * m / ((1 - p) * (1 - p)) * (p - xn)
	}

	yt := 5 * a.Thickness * (0.2969*math.Sqrt(xn) -
		0.1260*xn -
		0.3516*xn*xn +
		0.2843*xn*xn*xn -
		0.1015*xn*xn*xn*xn)
	theta := math.Atan(dyc)
	upper := yc + yt*math.Cos(theta)
	lower := yc - yt*math.Cos(theta)

	return yn >= lower && yn <= upper
}
