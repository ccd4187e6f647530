package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/freighter/internal/fleet"
	"github.com/mesh-intelligence/freighter/internal/logger"
	"github.com/mesh-intelligence/freighter/internal/paths"
	"github.com/mesh-intelligence/freighter/internal/sqlite"
	"github.com/mesh-intelligence/freighter/pkg/types"
)

// session is one command's view of the stored graph.
type session struct {
	fleet *fleet.Fleet
	store *sqlite.Store
}

// dataDir resolves the data directory from flag, config and environment.
func (a *app) dataDir() (string, error) {
	dir, err := paths.ResolveDataDir(a.flags.dataDir, a.cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return "", systemError{fmt.Errorf("resolve data dir: %w", err)}
	}
	return dir, nil
}

// view loads the stored graph and runs fn against it without saving.
func (a *app) view(cmd *cobra.Command, fn func(s *session) error) error {
	return a.run(cmd, false, fn)
}

// update loads the stored graph, runs fn against it and saves the result
// when fn succeeds.
func (a *app) update(cmd *cobra.Command, fn func(s *session) error) error {
	return a.run(cmd, true, fn)
}

func (a *app) run(cmd *cobra.Command, save bool, fn func(s *session) error) error {
	dataDir, err := a.dataDir()
	if err != nil {
		return err
	}
	cfg := storeConfig(a.cfg, dataDir)
	if err := cfg.Validate(); err != nil {
		return systemError{fmt.Errorf("config: %w", err)}
	}

	cleanup, err := logger.Setup(logger.Config{Dir: dataDir, Level: cfg.LogLevel, Debug: a.flags.debug})
	if err != nil {
		return systemError{fmt.Errorf("set up logging: %w", err)}
	}
	defer func() { _ = cleanup() }()
	if err := logger.IsReady(); err != nil {
		return systemError{err}
	}
	log := logger.L().With("command", cmd.CommandPath())

	store := sqlite.NewStore()
	if err := store.Attach(cfg); err != nil {
		return systemError{fmt.Errorf("attach store: %w", err)}
	}
	defer func() { _ = store.Detach() }()

	snap, err := store.Load()
	if err != nil {
		return systemError{fmt.Errorf("load fleet: %w", err)}
	}
	f := fleet.New(fleet.WithLogger(log))
	if err := f.Import(snap); err != nil {
		return systemError{fmt.Errorf("load fleet: %w", err)}
	}

	if err := fn(&session{fleet: f, store: store}); err != nil {
		return err
	}
	if !save {
		return nil
	}

	out := f.Export()
	if err := store.Save(out); err != nil {
		return systemError{fmt.Errorf("save fleet: %w", err)}
	}
	log.Debug("fleet.saved", "data_dir", dataDir, "ships", len(out.Ships), "cargo", len(out.Cargo))
	return nil
}

// galaxyRef resolves a galaxy given by code or handle. "none" and "" mean
// no galaxy.
func galaxyRef(f *fleet.Fleet, ref string) (string, error) {
	if ref == "" || ref == noneRef {
		return "", nil
	}
	if g, err := f.GalaxyByCode(ref); err == nil {
		return g.GalaxyID, nil
	}
	g, err := f.Galaxy(ref)
	if err != nil {
		return "", fmt.Errorf("galaxy %q: %w", ref, types.ErrNotFound)
	}
	return g.GalaxyID, nil
}

// noneRef clears an optional reference on the command line.
const noneRef = "none"
