package fleet

import (
	"fmt"

	"github.com/mesh-intelligence/freighter/pkg/types"
)

// CheckInvariants walks the whole graph and returns the first broken
// invariant, or nil. Every Fleet operation keeps the graph valid, so a
// non-nil result means the graph was corrupted from outside.
func (f *Fleet) CheckInvariants() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.g.checkInvariants()
}

func (g *graph) checkInvariants() error {
	codes := make(map[string]string)
	for _, gx := range g.galaxies.all() {
		if err := types.RequireNonEmpty(gx.Name); err != nil {
			return fmt.Errorf("galaxy %s name: %w", gx.GalaxyID, err)
		}
		if err := types.RequireNonEmpty(gx.Code); err != nil {
			return fmt.Errorf("galaxy %s code: %w", gx.GalaxyID, err)
		}
		if other, ok := codes[gx.Code]; ok {
			return fmt.Errorf("galaxies %s and %s share code %q: %w", other, gx.GalaxyID, gx.Code, types.ErrDuplicateGalaxyCode)
		}
		codes[gx.Code] = gx.GalaxyID
		if err := gx.ValidateModeAttributes(); err != nil {
			return fmt.Errorf("galaxy %s: %w", gx.GalaxyID, err)
		}
		if err := g.checkGalaxyLinks(gx); err != nil {
			return err
		}
	}

	for _, s := range g.ships.all() {
		if err := s.Params().Validate(); err != nil {
			return fmt.Errorf("ship %s: %w", s.ShipID, err)
		}
		if err := s.ValidateKindAttributes(); err != nil {
			return fmt.Errorf("ship %s: %w", s.ShipID, err)
		}
		if g.overloaded(s) {
			return fmt.Errorf("ship %s carries %d of %d: %w", s.ShipID, g.loadedMass(s), s.MaxCargoMass, types.ErrCargoOverCapacity)
		}
		if err := g.checkShipLinks(s); err != nil {
			return err
		}
	}

	for _, c := range g.cargo.all() {
		if err := types.RequireNonEmpty(c.Name); err != nil {
			return fmt.Errorf("cargo %s name: %w", c.CargoID, err)
		}
		if err := types.RequirePositiveInt(c.Mass); err != nil {
			return fmt.Errorf("cargo %s mass: %w", c.CargoID, err)
		}
		if err := g.checkOwner(c.Owner); err != nil {
			return fmt.Errorf("cargo %s owner %q: %w", c.CargoID, c.Owner, err)
		}
		if err := g.checkCargoLinks(c); err != nil {
			return err
		}
	}

	for _, m := range g.crew.all() {
		if err := m.ValidateKindAttributes(); err != nil {
			return fmt.Errorf("crew member %s: %w", m.CrewID, err)
		}
		for _, id := range m.ContractIDs {
			ct, ok := g.contracts.get(id)
			if !ok || ct.CrewMemberID != m.CrewID {
				return fmt.Errorf("crew member %s contract %s: %w", m.CrewID, id, types.ErrAsymmetricLink)
			}
		}
	}

	pairs := make(map[[2]string]string)
	for _, ct := range g.contracts.all() {
		if err := types.RequireNonEmpty(ct.Role); err != nil {
			return fmt.Errorf("contract %s role: %w", ct.ContractID, err)
		}
		s, err := g.ship(ct.ShipID)
		if err != nil {
			return fmt.Errorf("contract %s: %w", ct.ContractID, err)
		}
		m, err := g.crewMember(ct.CrewMemberID)
		if err != nil {
			return fmt.Errorf("contract %s: %w", ct.ContractID, err)
		}
		if err := m.ValidateSalary(ct.Salary); err != nil {
			return fmt.Errorf("contract %s salary: %w", ct.ContractID, err)
		}
		if !containsID(s.ContractIDs, ct.ContractID) || !containsID(m.ContractIDs, ct.ContractID) {
			return fmt.Errorf("contract %s: %w", ct.ContractID, types.ErrAsymmetricLink)
		}
		key := [2]string{ct.ShipID, ct.CrewMemberID}
		if other, ok := pairs[key]; ok {
			return fmt.Errorf("contracts %s and %s: %w", other, ct.ContractID, types.ErrDuplicateContract)
		}
		pairs[key] = ct.ContractID
	}
	return nil
}

func (g *graph) checkGalaxyLinks(gx *types.Galaxy) error {
	if hasDuplicates(gx.ShipIDs) || hasDuplicates(gx.CargoIDs) {
		return fmt.Errorf("galaxy %s lists a handle twice: %w", gx.GalaxyID, types.ErrAsymmetricLink)
	}
	for _, id := range gx.ShipIDs {
		s, ok := g.ships.get(id)
		if !ok || s.GalaxyID != gx.GalaxyID {
			return fmt.Errorf("galaxy %s ship %s: %w", gx.GalaxyID, id, types.ErrAsymmetricLink)
		}
	}
	for _, id := range gx.CargoIDs {
		c, ok := g.cargo.get(id)
		if !ok || c.DestinationID != gx.GalaxyID {
			return fmt.Errorf("galaxy %s cargo %s: %w", gx.GalaxyID, id, types.ErrAsymmetricLink)
		}
	}
	return nil
}

func (g *graph) checkShipLinks(s *types.Ship) error {
	if hasDuplicates(s.CargoIDs) || hasDuplicates(s.ContractIDs) {
		return fmt.Errorf("ship %s lists a handle twice: %w", s.ShipID, types.ErrAsymmetricLink)
	}
	if s.GalaxyID != "" {
		gx, ok := g.galaxies.get(s.GalaxyID)
		if !ok || !containsID(gx.ShipIDs, s.ShipID) {
			return fmt.Errorf("ship %s galaxy %s: %w", s.ShipID, s.GalaxyID, types.ErrAsymmetricLink)
		}
	}
	for _, id := range s.CargoIDs {
		c, ok := g.cargo.get(id)
		if !ok || c.ShipID != s.ShipID {
			return fmt.Errorf("ship %s cargo %s: %w", s.ShipID, id, types.ErrAsymmetricLink)
		}
	}
	for _, id := range s.ContractIDs {
		ct, ok := g.contracts.get(id)
		if !ok || ct.ShipID != s.ShipID {
			return fmt.Errorf("ship %s contract %s: %w", s.ShipID, id, types.ErrAsymmetricLink)
		}
	}
	return nil
}

func (g *graph) checkCargoLinks(c *types.Cargo) error {
	if c.DestinationID != "" {
		gx, ok := g.galaxies.get(c.DestinationID)
		if !ok || !containsID(gx.CargoIDs, c.CargoID) {
			return fmt.Errorf("cargo %s destination %s: %w", c.CargoID, c.DestinationID, types.ErrAsymmetricLink)
		}
	}
	if c.ShipID != "" {
		s, ok := g.ships.get(c.ShipID)
		if !ok || !containsID(s.CargoIDs, c.CargoID) {
			return fmt.Errorf("cargo %s ship %s: %w", c.CargoID, c.ShipID, types.ErrAsymmetricLink)
		}
	}
	return nil
}

func hasDuplicates(ids []string) bool {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}
