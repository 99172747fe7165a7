package geometry

import (
	"fmt"
	"math"
	"strings"

	V "diesel.com/lattice/vector"
)

//CylinderSpec places the circular obstacle. Nil centre coordinates take
//the defaults floor(NX/4) and floor(NY/2).
type CylinderSpec struct {
	CenterX *float64
	CenterY *float64
	Radius  float64
}

//CylinderCircle resolves the circle actually tested against the lattice.
//The vertical reference point is floor(CenterY/2), not CenterY: with the
//default CenterY of NY/2 the cylinder sits at a quarter of the height.
func (l Lattice) CylinderCircle(spec CylinderSpec) (Circle, error) {
	if spec.Radius <= 0 {
		return Circle{}, fmt.Errorf("%w: %g", ErrBadRadius, spec.Radius)
	}
	cx := float64(l.NX / 4)
	cy := float64(l.NY / 2)
	if spec.CenterX != nil {
		cx = *spec.CenterX
	}
	if spec.CenterY != nil {
		cy = *spec.CenterY
	}
	return Circle{Center: V.Vec2{cx, math.Floor(cy / 2)}, Radius: spec.Radius}, nil
}

//Cylinder builds the obstacle mask for spec
func (l Lattice) Cylinder(spec CylinderSpec) (*Mask, error) {
	c, err := l.CylinderCircle(spec)
	if err != nil {
		return nil, err
	}
	return NewMask(l, c), nil
}

//Obstacle shapes selectable by name
const (
	ShapeCylinder = "cylinder"
	ShapeSquare   = "square"
	ShapeAirfoil  = "airfoil"
)

//ObstacleSpec - named shape + placement. Square and airfoil are centred on
//the same (halved) reference point as the cylinder and sized by Radius.
type ObstacleSpec struct {
	Shape string
	CylinderSpec
}

//Obstacle builds a mask for any named shape
func (l Lattice) Obstacle(spec ObstacleSpec) (*Mask, error) {
	c, err := l.CylinderCircle(spec.CylinderSpec)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(spec.Shape) {
	case "", ShapeCylinder:
		return NewMask(l, c), nil
	case ShapeSquare:
		r := c.Radius
		return NewMask(l, Rect{
			Min: V.Vec2{c.Center[0] - r, c.Center[1] - r},
			Max: V.Vec2{c.Center[0] + r, c.Center[1] + r},
		}), nil
	case ShapeAirfoil:
		chord := 4 * c.Radius
		return NewMask(l, Airfoil{
			Origin:    V.Vec2{c.Center[0] - chord/2, c.Center[1]},
			Chord:     chord,
			Thickness: 0.12,
			Camber:    0.02,
			CamberPos: 0.4,
		}), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownShape, spec.Shape)
}
