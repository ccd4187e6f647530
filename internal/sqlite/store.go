// Package sqlite persists fleet snapshots. JSONL files under the data
// directory are the source of truth; SQLite is the query engine, rebuilt
// from the files on Attach and after every Save.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/freighter/pkg/types"
)

// DatabaseFile is the SQLite file created in the data directory.
const DatabaseFile = "fleet.db"

// Store saves and loads snapshots of the entity graph.
type Store struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
}

// NewStore creates a new store. The store is not attached; call Attach with
// a Config to initialize.
func NewStore() *Store {
	return &Store{}
}

// Attach initializes the store with the given configuration. It creates
// DataDir if needed, builds a fresh SQLite schema, creates empty JSONL files
// for missing tables and loads the JSONL files into SQLite.
// Returns ErrAlreadyAttached if already attached.
func (s *Store) Attach(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	// The database is a cache of the JSONL files; start from a fresh schema.
	dbPath := filepath.Join(dataDir, DatabaseFile)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}

	for _, ddl := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	if err := initJSONLFiles(dataDir); err != nil {
		db.Close()
		return err
	}

	if err := loadAllJSONL(db, dataDir); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	config.DataDir = dataDir
	s.db = db
	s.config = config
	s.attached = true
	return nil
}

// Detach closes the SQLite connection. After Detach, all operations return
// ErrStoreDetached. Detach is idempotent.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return err
		}
		s.db = nil
	}

	s.attached = false
	return nil
}

// DataDir returns the directory the store is attached to.
func (s *Store) DataDir() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config.DataDir
}

// Save writes snap to the JSONL files, one file per table, each replaced
// atomically, then reloads SQLite from them.
func (s *Store) Save(snap types.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return types.ErrStoreDetached
	}

	owners := make([]ownerJSON, 0, len(snap.Owners))
	for _, o := range snap.Owners {
		owners = append(owners, ownerJSON{Owner: o})
	}

	files := []struct {
		name   string
		encode func() ([]json.RawMessage, error)
	}{
		{ownersJSONL, func() ([]json.RawMessage, error) { return marshalRecords(owners) }},
		{galaxiesJSONL, func() ([]json.RawMessage, error) { return marshalRecords(snap.Galaxies) }},
		{shipsJSONL, func() ([]json.RawMessage, error) { return marshalRecords(snap.Ships) }},
		{cargoJSONL, func() ([]json.RawMessage, error) { return marshalRecords(snap.Cargo) }},
		{crewJSONL, func() ([]json.RawMessage, error) { return marshalRecords(snap.Crew) }},
		{contractsJSONL, func() ([]json.RawMessage, error) { return marshalRecords(snap.Contracts) }},
	}
	for _, f := range files {
		records, err := f.encode()
		if err != nil {
			return fmt.Errorf("encoding %s: %w", f.name, err)
		}
		if err := writeJSONL(filepath.Join(s.config.DataDir, f.name), records); err != nil {
			return fmt.Errorf("writing %s: %w", f.name, err)
		}
	}

	if err := loadAllJSONL(s.db, s.config.DataDir); err != nil {
		return fmt.Errorf("reload JSONL: %w", err)
	}
	return nil
}

// Load reads the stored snapshot back from SQLite. Rows come back in file
// order; owners are sorted.
func (s *Store) Load() (types.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.attached {
		return types.Snapshot{}, types.ErrStoreDetached
	}

	var (
		snap types.Snapshot
		err  error
	)
	if snap.Owners, err = queryOwners(s.db); err != nil {
		return types.Snapshot{}, err
	}
	if snap.Galaxies, err = queryGalaxies(s.db); err != nil {
		return types.Snapshot{}, err
	}
	if snap.Ships, err = queryShips(s.db); err != nil {
		return types.Snapshot{}, err
	}
	if snap.Cargo, err = queryCargo(s.db, "", nil); err != nil {
		return types.Snapshot{}, err
	}
	if snap.Crew, err = queryCrew(s.db); err != nil {
		return types.Snapshot{}, err
	}
	if snap.Contracts, err = queryContracts(s.db); err != nil {
		return types.Snapshot{}, err
	}
	return snap, nil
}

// CargoByOwner returns the stored cargo that belongs to owner.
func (s *Store) CargoByOwner(owner string) ([]types.Cargo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.attached {
		return nil, types.ErrStoreDetached
	}
	return queryCargo(s.db, "WHERE owner = ?", []any{owner})
}

// Counts returns the number of stored rows per table.
func (s *Store) Counts() (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.attached {
		return nil, types.ErrStoreDetached
	}

	counts := make(map[string]int, len(types.StandardTableNames))
	for _, table := range types.StandardTableNames {
		var n int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			return nil, fmt.Errorf("counting %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}
