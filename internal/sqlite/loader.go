package sqlite

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/freighter/pkg/types"
)

// jsonlTableMapping maps JSONL filenames to their SQLite tables and column lists.
// The order matters: tables with foreign keys must load after their referenced tables.
var jsonlTableMapping = []struct {
	file    string
	table   string
	columns []string
}{
	{ownersJSONL, types.OwnersTable, []string{"owner"}},
	{galaxiesJSONL, types.GalaxiesTable, []string{"galaxy_id", "name", "code", "type", "peaceful_since", "at_war", "solar_flare_strength", "ship_ids", "cargo_ids"}},
	{shipsJSONL, types.ShipsTable, []string{"ship_id", "kind", "name", "max_cargo_mass", "type", "solar_flare_shield_strength", "ai_type", "food_types", "galaxy_id", "cargo_ids", "contract_ids"}},
	{cargoJSONL, types.CargoTable, []string{"cargo_id", "name", "mass", "owner", "destination_id", "ship_id"}},
	{crewJSONL, types.CrewTable, []string{"crew_id", "kind", "serial_number", "model_number", "name", "acceptable_food_type", "contract_ids"}},
	{contractsJSONL, types.ContractsTable, []string{"contract_id", "role", "salary", "ship_id", "crew_member_id"}},
}

// loadAllJSONL replaces the contents of every table with the records in the
// JSONL files under dataDir. Loading is transactional: all tables load or
// none change. Malformed lines and unknown fields are ignored.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	// Disable foreign keys during loading, re-enable after.
	if _, err := tx.Exec("PRAGMA foreign_keys = OFF"); err != nil {
		return fmt.Errorf("disabling foreign keys for load: %w", err)
	}

	// Clear in reverse dependency order.
	for i := len(jsonlTableMapping) - 1; i >= 0; i-- {
		table := jsonlTableMapping[i].table
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for _, mapping := range jsonlTableMapping {
		path := filepath.Join(dataDir, mapping.file)
		records, err := readJSONL(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", mapping.file, err)
		}

		if len(records) == 0 {
			continue
		}

		if err := insertRecords(tx, mapping.table, mapping.columns, records); err != nil {
			return fmt.Errorf("loading %s into %s: %w", mapping.file, mapping.table, err)
		}
	}

	if _, err := tx.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("re-enabling foreign keys: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}

	return nil
}

// insertRecords inserts parsed JSONL records into a SQLite table. Only the
// listed columns are extracted, so fields added by newer versions do not
// cause errors. Array values are stored as JSON text.
func insertRecords(tx *sql.Tx, table string, columns []string, records []json.RawMessage) error {
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	insertSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	for i, rec := range records {
		obj, err := decodeRecord(rec)
		if err != nil {
			continue
		}

		args := make([]any, len(columns))
		for j, col := range columns {
			val, ok := obj[col]
			if !ok {
				args[j] = nil
				continue
			}
			switch v := val.(type) {
			case map[string]any, []any:
				b, err := json.Marshal(v)
				if err != nil {
					args[j] = nil
					continue
				}
				args[j] = string(b)
			case json.Number:
				args[j] = numberArg(v)
			default:
				args[j] = val
			}
		}

		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
	}

	return nil
}

// decodeRecord parses one JSONL record, keeping numbers exact.
func decodeRecord(rec json.RawMessage) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(rec))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// numberArg binds integers as int64 so they survive past 2^53.
func numberArg(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
