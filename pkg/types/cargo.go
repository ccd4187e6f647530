package types

import "cmp"

// Cargo is a consignment owned by a registered owner. It may be bound for
// one destination galaxy and carried by one ship, independently.
type Cargo struct {
	CargoID       string `json:"cargo_id"`
	Name          string `json:"name"`
	Mass          int    `json:"mass"`
	Owner         string `json:"owner"`
	DestinationID string `json:"destination_id,omitempty"`
	ShipID        string `json:"ship_id,omitempty"`
}

// CompareCargoByMass orders cargo by ascending mass.
func CompareCargoByMass(a, b Cargo) int {
	return cmp.Compare(a.Mass, b.Mass)
}
