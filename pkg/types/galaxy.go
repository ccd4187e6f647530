package types

import "time"

// Galaxy types. A galaxy is in exactly one mode; each mode owns its own
// attribute set.
const (
	GalaxyPeaceful  = "peaceful"
	GalaxyDangerous = "dangerous"
)

// ValidGalaxyType reports whether t is a recognized galaxy type.
func ValidGalaxyType(t string) bool {
	return t == GalaxyPeaceful || t == GalaxyDangerous
}

// Galaxy is a destination for cargo and a location for ships.
//
// PeacefulSince is set only in peaceful mode; AtWar and SolarFlareStrength
// are set only in dangerous mode. ShipIDs and CargoIDs are the reciprocal
// sides of Ship.GalaxyID and Cargo.DestinationID.
type Galaxy struct {
	GalaxyID           string     `json:"galaxy_id"`
	Name               string     `json:"name"`
	Code               string     `json:"code"`
	Type               string     `json:"type"`
	PeacefulSince      *time.Time `json:"peaceful_since,omitempty"`
	AtWar              *bool      `json:"at_war,omitempty"`
	SolarFlareStrength *int       `json:"solar_flare_strength,omitempty"`
	ShipIDs            []string   `json:"ship_ids,omitempty"`
	CargoIDs           []string   `json:"cargo_ids,omitempty"`
}

// Peaceful returns the date the galaxy became peaceful.
// Returns ErrNotPeaceful in dangerous mode.
func (g Galaxy) Peaceful() (time.Time, error) {
	if g.Type != GalaxyPeaceful || g.PeacefulSince == nil {
		return time.Time{}, ErrNotPeaceful
	}
	return *g.PeacefulSince, nil
}

// War returns whether a dangerous galaxy is at war.
// Returns ErrNotDangerous in peaceful mode.
func (g Galaxy) War() (bool, error) {
	if g.Type != GalaxyDangerous || g.AtWar == nil {
		return false, ErrNotDangerous
	}
	return *g.AtWar, nil
}

// FlareStrength returns the solar flare strength of a dangerous galaxy.
// Returns ErrNotDangerous in peaceful mode.
func (g Galaxy) FlareStrength() (int, error) {
	if g.Type != GalaxyDangerous || g.SolarFlareStrength == nil {
		return 0, ErrNotDangerous
	}
	return *g.SolarFlareStrength, nil
}

// ValidateModeAttributes checks that exactly the attributes of the active
// mode are populated and valid.
func (g Galaxy) ValidateModeAttributes() error {
	if !ValidGalaxyType(g.Type) {
		return ErrInvalidGalaxyType
	}
	switch g.Type {
	case GalaxyPeaceful:
		if g.PeacefulSince == nil || g.PeacefulSince.IsZero() {
			return ErrMissingDate
		}
		if g.AtWar != nil || g.SolarFlareStrength != nil {
			return ErrNotDangerous
		}
	case GalaxyDangerous:
		if g.AtWar == nil || g.SolarFlareStrength == nil {
			return ErrNotDangerous
		}
		if err := RequireNonNegativeInt(*g.SolarFlareStrength); err != nil {
			return err
		}
		if g.PeacefulSince != nil {
			return ErrNotPeaceful
		}
	}
	return nil
}
