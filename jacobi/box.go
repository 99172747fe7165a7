package jacobi

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//Ports places the inlet on the top edge and the outlet on the right edge.
//Inlet is the column where the inlet starts, Width its extent, and Outlet
//the stream function value carried out of the box.
type Ports struct {
	Inlet  int
	Width  int
	Outlet int
}

//Box holds the stream function psi over a (Length+2)x(Length+2) grid whose
//outer ring carries the boundary conditions.
type Box struct {
	Length int
	Ports  Ports
	Psi    *mat.Dense
}

//NewBox allocates psi and applies the inlet and outlet boundary values.
func NewBox(length int, ports Ports) (*Box, error) {
	if length < 1 {
		return nil, fmt.Errorf("%w: length %d", ErrBadBox, length)
	}
	if ports.Inlet < 0 || ports.Width < 0 || ports.Outlet < 0 {
		return nil, fmt.Errorf("%w: negative port %+v", ErrBadBox, ports)
	}
	if ports.Inlet+ports.Width > length+2 || ports.Width+ports.Outlet > length+2 {
		return nil, fmt.Errorf("%w: ports %+v do not fit length %d", ErrBadBox, ports, length)
	}
	n := length + 2
	b := &Box{Length: length, Ports: ports, Psi: mat.NewDense(n, n, nil)}
	b.setInlet()
	b.setOutlet()
	return b, nil
}

//setInlet ramps the top row across the inlet opening.
func (b *Box) setInlet() {
	p := b.Ports
	for i := p.Inlet + 1; i < p.Inlet+p.Width; i++ {
		b.Psi.Set(0, i, float64(i-p.Inlet))
	}
}

//setOutlet holds the rest of the top row and the right column at the
//outlet value, ramping down below the outlet opening.
func (b *Box) setOutlet() {
	p := b.Ports
	out := float64(p.Outlet)
	for i := p.Inlet + p.Outlet; i <= b.Length; i++ {
		b.Psi.Set(0, i, out)
	}
	right := b.Length + 1
	for j := 1; j <= p.Width; j++ {
		b.Psi.Set(j, right, out)
	}
	for j := p.Width + 1; j < p.Width+p.Outlet; j++ {
		b.Psi.Set(j, right, float64(p.Outlet-j+p.Width))
	}
}

//Solve relaxes the box interior in place.
func (b *Box) Solve(iterations, workers int) {
	Solve(b.Psi, iterations, workers)
}
