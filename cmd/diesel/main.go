//Command diesel runs lattice Boltzmann flow simulations and the Jacobi
//stream function solver.
package main

import (
	"fmt"
	"os"
	"runtime"

	"diesel.com/lattice/app"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	//GLFW and OpenGL calls must stay on the main thread
	runtime.LockOSThread()
}

type globals struct {
	configFile string
	profileDir string

	v        *viper.Viper
	log      *logrus.Logger
	profiler interface{ Stop() }
}

func newRootCmd() *cobra.Command {
	g := &globals{v: app.NewViper(afero.NewOsFs())}
	root := &cobra.Command{
		Use:           "diesel",
		Short:         "2D lattice Boltzmann flow past obstacles",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if g.configFile != "" {
				g.v.SetConfigFile(g.configFile)
				if err := g.v.ReadInConfig(); err != nil {
					return fmt.Errorf("reading config %s: %w", g.configFile, err)
				}
			}
			if err := g.v.BindPFlag("log_level", cmd.Flags().Lookup("log-level")); err != nil {
				return err
			}
			log, err := app.NewLogger(g.v.GetString("log_level"))
			if err != nil {
				return err
			}
			g.log = log
			if g.profileDir != "" {
				g.profiler = profile.Start(profile.CPUProfile, profile.ProfilePath(g.profileDir))
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if g.profiler != nil {
				g.profiler.Stop()
			}
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&g.configFile, "config", "", "config file (toml, yaml or json)")
	pf.String("log-level", "info", "log level: debug, info, warn or error")
	pf.StringVar(&g.profileDir, "profile", "", "write a CPU profile into this directory")

	root.AddCommand(
		newRunCmd(g),
		newViewCmd(g),
		newJacobiCmd(g),
		newPlotCmd(g),
		newConfigCmd(g),
	)
	return root
}

//loadConfig binds the command's flags and decodes the merged configuration.
//The config file was already read before the command ran.
func (g *globals) loadConfig(cmd *cobra.Command) (app.Config, error) {
	if err := app.BindFlags(g.v, cmd.Flags()); err != nil {
		return app.Config{}, err
	}
	return app.LoadConfig(g.v, "")
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "diesel:", err)
		os.Exit(1)
	}
}
