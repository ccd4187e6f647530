package types

// Entity table names used by the store and the CLI.
const (
	OwnersTable    = "owners"
	GalaxiesTable  = "galaxies"
	ShipsTable     = "ships"
	CargoTable     = "cargo"
	CrewTable      = "crew"
	ContractsTable = "contracts"
)

// StandardTableNames lists all entity tables in load order: referenced
// tables come before the tables that reference them.
var StandardTableNames = []string{
	OwnersTable,
	GalaxiesTable,
	ShipsTable,
	CargoTable,
	CrewTable,
	ContractsTable,
}
