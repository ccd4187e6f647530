package types

// Snapshot is the whole entity graph plus the registered-owner set. Forward
// references (Cargo.DestinationID, Cargo.ShipID, Ship.GalaxyID and the
// contract parties) are authoritative; reciprocal ID lists are rebuilt on
// import.
type Snapshot struct {
	Owners    []string     `json:"owners"`
	Galaxies  []Galaxy     `json:"galaxies"`
	Ships     []Ship       `json:"ships"`
	Cargo     []Cargo      `json:"cargo"`
	Crew      []CrewMember `json:"crew"`
	Contracts []Contract   `json:"contracts"`
}
