package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/freighter/pkg/types"
)

// ownerJSON is the JSONL record for a registered owner.
type ownerJSON struct {
	Owner string `json:"owner"`
}

// rowScanner is satisfied by *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func queryOwners(db *sql.DB) ([]string, error) {
	rows, err := db.Query("SELECT owner FROM owners ORDER BY owner")
	if err != nil {
		return nil, fmt.Errorf("querying owners: %w", err)
	}
	defer rows.Close()

	var owners []string
	for rows.Next() {
		var o string
		if err := rows.Scan(&o); err != nil {
			return nil, fmt.Errorf("scanning owner: %w", err)
		}
		owners = append(owners, o)
	}
	return owners, rows.Err()
}

func queryGalaxies(db *sql.DB) ([]types.Galaxy, error) {
	rows, err := db.Query(`SELECT galaxy_id, name, code, type, peaceful_since, at_war,
		solar_flare_strength, ship_ids, cargo_ids FROM galaxies ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying galaxies: %w", err)
	}
	defer rows.Close()

	var out []types.Galaxy
	for rows.Next() {
		g, err := hydrateGalaxy(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func hydrateGalaxy(row rowScanner) (types.Galaxy, error) {
	var (
		g              types.Galaxy
		peacefulSince  sql.NullString
		atWar          sql.NullBool
		flare          sql.NullInt64
		shipIDs, cargo sql.NullString
	)
	if err := row.Scan(&g.GalaxyID, &g.Name, &g.Code, &g.Type, &peacefulSince, &atWar,
		&flare, &shipIDs, &cargo); err != nil {
		return types.Galaxy{}, fmt.Errorf("scanning galaxy: %w", err)
	}
	if peacefulSince.Valid {
		t, err := time.Parse(time.RFC3339Nano, peacefulSince.String)
		if err != nil {
			return types.Galaxy{}, fmt.Errorf("galaxy %s: parsing peaceful_since: %w", g.GalaxyID, err)
		}
		g.PeacefulSince = &t
	}
	if atWar.Valid {
		g.AtWar = &atWar.Bool
	}
	if flare.Valid {
		n := int(flare.Int64)
		g.SolarFlareStrength = &n
	}
	var err error
	if g.ShipIDs, err = decodeList(shipIDs); err != nil {
		return types.Galaxy{}, fmt.Errorf("galaxy %s: ship_ids: %w", g.GalaxyID, err)
	}
	if g.CargoIDs, err = decodeList(cargo); err != nil {
		return types.Galaxy{}, fmt.Errorf("galaxy %s: cargo_ids: %w", g.GalaxyID, err)
	}
	return g, nil
}

func queryShips(db *sql.DB) ([]types.Ship, error) {
	rows, err := db.Query(`SELECT ship_id, kind, name, max_cargo_mass, type,
		solar_flare_shield_strength, ai_type, food_types, galaxy_id, cargo_ids, contract_ids
		FROM ships ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying ships: %w", err)
	}
	defer rows.Close()

	var out []types.Ship
	for rows.Next() {
		s, err := hydrateShip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func hydrateShip(row rowScanner) (types.Ship, error) {
	var (
		s                         types.Ship
		shield                    sql.NullInt64
		aiType, galaxyID          sql.NullString
		foods, cargoIDs, contract sql.NullString
	)
	if err := row.Scan(&s.ShipID, &s.Kind, &s.Name, &s.MaxCargoMass, &s.Type,
		&shield, &aiType, &foods, &galaxyID, &cargoIDs, &contract); err != nil {
		return types.Ship{}, fmt.Errorf("scanning ship: %w", err)
	}
	if shield.Valid {
		n := int(shield.Int64)
		s.SolarFlareShieldStrength = &n
	}
	s.AIType = aiType.String
	s.GalaxyID = galaxyID.String
	var err error
	if s.FoodTypes, err = decodeList(foods); err != nil {
		return types.Ship{}, fmt.Errorf("ship %s: food_types: %w", s.ShipID, err)
	}
	if s.CargoIDs, err = decodeList(cargoIDs); err != nil {
		return types.Ship{}, fmt.Errorf("ship %s: cargo_ids: %w", s.ShipID, err)
	}
	if s.ContractIDs, err = decodeList(contract); err != nil {
		return types.Ship{}, fmt.Errorf("ship %s: contract_ids: %w", s.ShipID, err)
	}
	return s, nil
}

// queryCargo returns cargo rows in file order, filtered by an optional WHERE
// clause.
func queryCargo(db *sql.DB, where string, args []any) ([]types.Cargo, error) {
	q := "SELECT cargo_id, name, mass, owner, destination_id, ship_id FROM cargo"
	if where != "" {
		q += " " + where
	}
	q += " ORDER BY rowid"

	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying cargo: %w", err)
	}
	defer rows.Close()

	var out []types.Cargo
	for rows.Next() {
		var (
			c            types.Cargo
			dest, shipID sql.NullString
		)
		if err := rows.Scan(&c.CargoID, &c.Name, &c.Mass, &c.Owner, &dest, &shipID); err != nil {
			return nil, fmt.Errorf("scanning cargo: %w", err)
		}
		c.DestinationID = dest.String
		c.ShipID = shipID.String
		out = append(out, c)
	}
	return out, rows.Err()
}

func queryCrew(db *sql.DB) ([]types.CrewMember, error) {
	rows, err := db.Query(`SELECT crew_id, kind, serial_number, model_number, name,
		acceptable_food_type, contract_ids FROM crew ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying crew: %w", err)
	}
	defer rows.Close()

	var out []types.CrewMember
	for rows.Next() {
		var (
			c                     types.CrewMember
			serial, model, name   sql.NullString
			food, contractIDsText sql.NullString
		)
		if err := rows.Scan(&c.CrewID, &c.Kind, &serial, &model, &name, &food, &contractIDsText); err != nil {
			return nil, fmt.Errorf("scanning crew: %w", err)
		}
		c.SerialNumber = serial.String
		c.ModelNumber = model.String
		c.Name = name.String
		c.AcceptableFoodType = food.String
		if c.ContractIDs, err = decodeList(contractIDsText); err != nil {
			return nil, fmt.Errorf("crew %s: contract_ids: %w", c.CrewID, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func queryContracts(db *sql.DB) ([]types.Contract, error) {
	rows, err := db.Query(`SELECT contract_id, role, salary, ship_id, crew_member_id
		FROM contracts ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying contracts: %w", err)
	}
	defer rows.Close()

	var out []types.Contract
	for rows.Next() {
		var (
			c      types.Contract
			salary sql.NullFloat64
		)
		if err := rows.Scan(&c.ContractID, &c.Role, &salary, &c.ShipID, &c.CrewMemberID); err != nil {
			return nil, fmt.Errorf("scanning contract: %w", err)
		}
		if salary.Valid {
			v := salary.Float64
			c.Salary = &v
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// decodeList parses a JSON array column. NULL and empty arrays decode to nil.
func decodeList(col sql.NullString) ([]string, error) {
	if !col.Valid || col.String == "" {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(col.String), &ids); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return ids, nil
}
