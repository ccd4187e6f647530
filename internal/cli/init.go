package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/freighter/internal/sqlite"
	"github.com/mesh-intelligence/freighter/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and data directories",
		Long:  "Write config.yaml if it is missing and create the data files. Running init again is harmless.",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			dataDir, err := a.dataDir()
			if err != nil {
				return err
			}

			written, err := writeConfigIfMissing(a.configDir, configFile{
				Backend:  types.BackendSQLite,
				DataDir:  dataDir,
				LogLevel: a.cfg.GetString(cfgKeyLogLevel),
			})
			if err != nil {
				return systemError{err}
			}

			store := sqlite.NewStore()
			if err := store.Attach(storeConfig(a.cfg, dataDir)); err != nil {
				return systemError{fmt.Errorf("initialize storage: %w", err)}
			}
			if err := store.Detach(); err != nil {
				return systemError{fmt.Errorf("finalize storage: %w", err)}
			}

			return a.printer(cmd.OutOrStdout()).result(map[string]any{
				"config_dir":     a.configDir,
				"data_dir":       dataDir,
				"config_written": written,
			}, "Fleet initialized in %s", dataDir)
		},
	}
}
