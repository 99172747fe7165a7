package main

import (
	"time"

	"diesel.com/lattice/jacobi"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newJacobiCmd(g *globals) *cobra.Command {
	var (
		length     int
		ports      jacobi.Ports
		iterations int
		workers    int
		scaling    float64
		out        string
	)
	cmd := &cobra.Command{
		Use:   "jacobi",
		Short: "Solve the box stream function and write the flow data file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			box, err := jacobi.NewBox(length, ports)
			if err != nil {
				return err
			}
			start := time.Now()
			box.Solve(iterations, workers)
			g.log.WithFields(logrus.Fields{
				"iterations": iterations,
				"residual":   jacobi.Residual(box.Psi),
				"elapsed":    time.Since(start).Round(time.Microsecond),
			}).Info("calculation done")
			if err := jacobi.SaveData(afero.NewOsFs(), out, box.Psi, scaling); err != nil {
				return err
			}
			g.log.WithField("path", out).Info("data writing complete")
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&length, "length", 64, "box interior size")
	f.IntVar(&ports.Inlet, "inlet", 8, "inlet start column")
	f.IntVar(&ports.Width, "port-width", 16, "inlet width")
	f.IntVar(&ports.Outlet, "outlet", 16, "outlet stream function value")
	f.IntVar(&iterations, "iterations", 5000, "Jacobi sweeps")
	f.IntVar(&workers, "workers", 0, "row workers (0 uses GOMAXPROCS)")
	f.Float64Var(&scaling, "scaling", jacobi.DefaultScaling, "exponent applied to the squared speed")
	f.StringVar(&out, "out", "datafiles/jacobi_flow.dat", "data file to write")
	return cmd
}
