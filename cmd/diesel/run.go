package main

import (
	"diesel.com/lattice/app"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newRunCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a headless simulation and write the configured outputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			sim, err := app.NewSimulation(cfg, app.WithLogger(g.log))
			if err != nil {
				return err
			}
			obs, err := app.Outputs(cfg, afero.NewOsFs(), g.log)
			if err != nil {
				return err
			}
			g.log.Info(sim.Summary())
			return sim.Run(obs...)
		},
	}
	app.RegisterFlags(cmd.Flags())
	return cmd
}
