package fluid

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

//Perturbation scale applied by the reference initial condition
const (
	PerturbScale  = 0.01
	SeedDirection = 3   //rightward population seeded to start the flow
	SeedValue     = 2.3 //value forced into SeedDirection everywhere
)

//Field - per cell, per direction populations. Storage is row-major over
//cells with the Q directions contiguous: data[(y*NX+x)*Q + k].
//A Field is owned by one simulation; step functions never retain it.
type Field struct {
	NX, NY  int
	Workers int //row workers for the parallel sub-steps, <= 0 uses GOMAXPROCS

	data    []float64
	scratch []float64 //one direction slice, used by streaming
}

//NewField allocates a field with every population set to 1
func NewField(nx, ny int) (*Field, error) {
	if nx < 2 || ny < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, nx, ny)
	}
	f := &Field{
		NX:      nx,
		NY:      ny,
		data:    make([]float64, nx*ny*Q),
		scratch: make([]float64, nx*ny),
	}
	for i := range f.data {
		f.data[i] = 1
	}
	return f, nil
}

//InitialField builds the reference starting distribution: ones, optional
//Gaussian noise from rng, and the rightward seed.
func InitialField(nx, ny int, rng *rand.Rand, perturb bool) (*Field, error) {
	f, err := NewField(nx, ny)
	if err != nil {
		return nil, err
	}
	if perturb {
		f.Perturb(rng, PerturbScale)
	}
	f.Fill(SeedDirection, SeedValue)
	return f, nil
}

//Perturb adds independent N(0, scale^2) noise to every population
func (f *Field) Perturb(rng *rand.Rand, scale float64) {
	for i := range f.data {
		f.data[i] += scale * rng.NormFloat64()
	}
}

//Fill sets direction k to v in every cell
func (f *Field) Fill(k int, v float64) {
	for i := k; i < len(f.data); i += Q {
		f.data[i] = v
	}
}

//Data exposes the backing slice. Callers must not resize it.
func (f *Field) Data() []float64 {
	return f.data
}

//Cell returns the Q populations of (x,y) as a view into the field
func (f *Field) Cell(x, y int) []float64 {
	i := (y*f.NX + x) * Q
	return f.data[i : i+Q : i+Q]
}

func (f *Field) cellAt(idx int) []float64 {
	i := idx * Q
	return f.data[i : i+Q : i+Q]
}

func (f *Field) At(x, y, k int) float64 {
	return f.data[(y*f.NX+x)*Q+k]
}

func (f *Field) Set(x, y, k int, v float64) {
	f.data[(y*f.NX+x)*Q+k] = v
}

//SetCell overwrites all populations of (x,y)
func (f *Field) SetCell(x, y int, values [Q]float64) {
	copy(f.Cell(x, y), values[:])
}

//TotalMass is the sum of every population in the domain
func (f *Field) TotalMass() float64 {
	return floats.Sum(f.data)
}

//Clone deep copies the populations (scratch is not shared)
func (f *Field) Clone() *Field {
	c := &Field{
		NX:      f.NX,
		NY:      f.NY,
		Workers: f.Workers,
		data:    make([]float64, len(f.data)),
		scratch: make([]float64, len(f.scratch)),
	}
	copy(c.data, f.data)
	return c
}
