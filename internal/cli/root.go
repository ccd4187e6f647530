// Package cli implements the fleet command-line interface. Every command
// that touches the graph loads it from the data directory, applies one
// operation and, for mutations, writes it back.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/freighter/internal/paths"
)

// Version is overridden at build time with -ldflags "-X".
var Version = "0.1.0-dev"

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	debug     bool
}

// app is the state shared by one command tree.
type app struct {
	flags     rootFlags
	configDir string
	cfg       *viper.Viper
}

// NewRootCmd creates the top-level "fleet" command with its global flags and
// every subcommand registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "fleet",
		Short:         "Manage ships, cargo, galaxies and crew",
		Long:          "Fleet keeps a graph of galaxies, ships, cargo, crew members and contracts\nin a local data directory and enforces its business rules on every change.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := paths.ResolveConfigDir(a.flags.configDir)
			if err != nil {
				return systemError{fmt.Errorf("resolve config dir: %w", err)}
			}
			cfg, err := loadConfig(configDir)
			if err != nil {
				return systemError{err}
			}
			a.configDir = configDir
			a.cfg = cfg
			return nil
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: .fleet-db)")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	pf.BoolVar(&a.flags.debug, "debug", false, "log at debug level to <data-dir>/logs/fleet.log")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newStatusCmd(a),
		newOwnerCmd(a),
		newGalaxyCmd(a),
		newShipCmd(a),
		newCargoCmd(a),
		newCrewCmd(a),
		newContractCmd(a),
	)
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// usageError marks bad flags or arguments.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// systemError marks failures of the environment rather than the request:
// unreadable config, storage, corrupt data files.
type systemError struct{ err error }

func (e systemError) Error() string { return e.err.Error() }
func (e systemError) Unwrap() error { return e.err }

// exitCode maps an error returned by a command to a process exit code.
// Rule violations and bad input are user errors; anything marked as a
// system error exits with exitSysError.
func exitCode(err error) int {
	var sys systemError
	switch {
	case err == nil:
		return exitSuccess
	case errors.As(err, &sys):
		return exitSysError
	default:
		return exitUserError
	}
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}
