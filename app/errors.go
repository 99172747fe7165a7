package app

import (
	"errors"
	"fmt"
	"strings"
)

var (
	//ErrInvalidMode - visualization mode other than speed or vortices
	ErrInvalidMode = errors.New("app: invalid mode, choose either 'speed' or 'vortices'")
	//ErrInvalidConfig - any other rejected configuration value
	ErrInvalidConfig = errors.New("app: invalid configuration")
	//ErrComplete - Step called after the last timestep
	ErrComplete = errors.New("app: simulation already complete")
	//ErrViewerClosed - the live view window was closed by the user
	ErrViewerClosed = errors.New("app: viewer closed")
)

//StepError ties a failure to the timestep that produced it
type StepError struct {
	Step int
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

//problemList collects every rejected setting so one error reports them all
type problemList []error

func (p problemList) Error() string {
	msgs := make([]string, len(p))
	for i, err := range p {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

func (p problemList) Unwrap() []error {
	return p
}
