package app

import (
	"strconv"

	"diesel.com/lattice/fluid"
)

//Frame is a read-only snapshot handed to observers. Scalar is the speed
//grid (NX x NY) or the curl grid ((NX-2) x (NY-2)) depending on Mode.
type Frame struct {
	Step   int
	Mode   Mode
	Scalar *fluid.ScalarField
	Macro  *fluid.Macro
	Mass   float64
}

//Label is the caption drawn on rendered frames
func (f *Frame) Label() string {
	return "Time " + strconv.Itoa(f.Step)
}

//Observer receives every emitted frame in step order. An error stops the run.
type Observer interface {
	Observe(f *Frame) error
}

//Finisher is implemented by observers that flush output once the run ends
type Finisher interface {
	Finish() error
}

//ObserverFunc adapts a function to Observer
type ObserverFunc func(f *Frame) error

func (fn ObserverFunc) Observe(f *Frame) error {
	return fn(f)
}
