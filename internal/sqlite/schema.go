package sqlite

// Schema DDL for the entity tables. Reciprocal handle lists and food types
// are stored as JSON array text.
const (
	createOwners = `CREATE TABLE owners (
    owner TEXT PRIMARY KEY
);`

	createGalaxies = `CREATE TABLE galaxies (
    galaxy_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    code TEXT NOT NULL UNIQUE,
    type TEXT NOT NULL,
    peaceful_since TEXT,
    at_war INTEGER,
    solar_flare_strength INTEGER,
    ship_ids TEXT,
    cargo_ids TEXT
);`

	createShips = `CREATE TABLE ships (
    ship_id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    name TEXT NOT NULL,
    max_cargo_mass INTEGER NOT NULL,
    type TEXT NOT NULL,
    solar_flare_shield_strength INTEGER,
    ai_type TEXT,
    food_types TEXT,
    galaxy_id TEXT,
    cargo_ids TEXT,
    contract_ids TEXT,
    FOREIGN KEY (galaxy_id) REFERENCES galaxies(galaxy_id)
);`

	createCargo = `CREATE TABLE cargo (
    cargo_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    mass INTEGER NOT NULL,
    owner TEXT NOT NULL,
    destination_id TEXT,
    ship_id TEXT,
    FOREIGN KEY (owner) REFERENCES owners(owner),
    FOREIGN KEY (destination_id) REFERENCES galaxies(galaxy_id),
    FOREIGN KEY (ship_id) REFERENCES ships(ship_id)
);`

	createCrew = `CREATE TABLE crew (
    crew_id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    serial_number TEXT,
    model_number TEXT,
    name TEXT,
    acceptable_food_type TEXT,
    contract_ids TEXT
);`

	createContracts = `CREATE TABLE contracts (
    contract_id TEXT PRIMARY KEY,
    role TEXT NOT NULL,
    salary REAL,
    ship_id TEXT NOT NULL,
    crew_member_id TEXT NOT NULL,
    FOREIGN KEY (ship_id) REFERENCES ships(ship_id),
    FOREIGN KEY (crew_member_id) REFERENCES crew(crew_id)
);`
)

// Index DDL for common queries.
const (
	idxCargoOwner       = `CREATE INDEX idx_cargo_owner ON cargo(owner);`
	idxCargoShip        = `CREATE INDEX idx_cargo_ship ON cargo(ship_id);`
	idxCargoDestination = `CREATE INDEX idx_cargo_destination ON cargo(destination_id);`
	idxShipsGalaxy      = `CREATE INDEX idx_ships_galaxy ON ships(galaxy_id);`
	idxContractsPair    = `CREATE UNIQUE INDEX idx_contracts_pair ON contracts(ship_id, crew_member_id);`
	idxContractsCrew    = `CREATE INDEX idx_contracts_crew ON contracts(crew_member_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createOwners,
	createGalaxies,
	createShips,
	createCargo,
	createCrew,
	createContracts,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxCargoOwner,
	idxCargoShip,
	idxCargoDestination,
	idxShipsGalaxy,
	idxContractsPair,
	idxContractsCrew,
}
