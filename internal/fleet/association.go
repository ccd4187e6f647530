package fleet

import (
	"math"

	"github.com/mesh-intelligence/freighter/pkg/types"
)

// Every bidirectional relation follows the same protocol:
//
//  1. Same target as now: no-op.
//  2. Detach from the current target on both sides.
//  3. Nil target: stop, the relation is unset.
//  4. Validate the new target, then insert on both sides.
//
// The helpers below are the detach and attach halves for each relation.
// Callers decide where validation happens relative to the detach.

// moveShip places s in galaxy gx, or nowhere when gx is nil.
func (g *graph) moveShip(s *types.Ship, gx *types.Galaxy) {
	if gx != nil && s.GalaxyID == gx.GalaxyID {
		return
	}
	g.detachShipGalaxy(s)
	if gx == nil {
		return
	}
	s.GalaxyID = gx.GalaxyID
	gx.ShipIDs = addID(gx.ShipIDs, s.ShipID)
}

func (g *graph) detachShipGalaxy(s *types.Ship) {
	if s.GalaxyID == "" {
		return
	}
	if gx, ok := g.galaxies.get(s.GalaxyID); ok {
		gx.ShipIDs = removeID(gx.ShipIDs, s.ShipID)
	}
	s.GalaxyID = ""
}

// destine binds cargo c to galaxy gx, or clears the destination when gx is nil.
func (g *graph) destine(c *types.Cargo, gx *types.Galaxy) {
	if gx != nil && c.DestinationID == gx.GalaxyID {
		return
	}
	g.detachCargoDestination(c)
	if gx == nil {
		return
	}
	c.DestinationID = gx.GalaxyID
	gx.CargoIDs = addID(gx.CargoIDs, c.CargoID)
}

func (g *graph) detachCargoDestination(c *types.Cargo) {
	if c.DestinationID == "" {
		return
	}
	if gx, ok := g.galaxies.get(c.DestinationID); ok {
		gx.CargoIDs = removeID(gx.CargoIDs, c.CargoID)
	}
	c.DestinationID = ""
}

func (g *graph) detachCargoShip(c *types.Cargo) {
	if c.ShipID == "" {
		return
	}
	if s, ok := g.ships.get(c.ShipID); ok {
		s.CargoIDs = removeID(s.CargoIDs, c.CargoID)
	}
	c.ShipID = ""
}

func (g *graph) attachCargoShip(c *types.Cargo, s *types.Ship) {
	c.ShipID = s.ShipID
	s.CargoIDs = addID(s.CargoIDs, c.CargoID)
}

// loadedMass is the total mass of cargo aboard s, saturating at math.MaxInt.
func (g *graph) loadedMass(s *types.Ship) int {
	total := 0
	for _, id := range s.CargoIDs {
		if c, ok := g.cargo.get(id); ok {
			if c.Mass > math.MaxInt-total {
				return math.MaxInt
			}
			total += c.Mass
		}
	}
	return total
}

// overloaded reports whether the cargo aboard s weighs more than its
// capacity, without summing past it.
func (g *graph) overloaded(s *types.Ship) bool {
	room := s.MaxCargoMass
	for _, id := range s.CargoIDs {
		if c, ok := g.cargo.get(id); ok {
			if c.Mass > room {
				return true
			}
			room -= c.Mass
		}
	}
	return false
}

// checkCapacity fails when adding delta to the mass aboard s would exceed
// its capacity. Masses are non-negative, so the subtraction cannot wrap.
func (g *graph) checkCapacity(s *types.Ship, delta int) error {
	if delta > s.MaxCargoMass-g.loadedMass(s) {
		return types.ErrCargoOverCapacity
	}
	return nil
}

// loadCargo puts c aboard s with the capacity check ahead of any mutation.
// The cargo leaves its previous ship only when the load is accepted.
func (g *graph) loadCargo(s *types.Ship, c *types.Cargo) error {
	if c.ShipID == s.ShipID {
		return nil
	}
	if err := g.checkCapacity(s, c.Mass); err != nil {
		return err
	}
	g.detachCargoShip(c)
	g.attachCargoShip(c, s)
	return nil
}

// boardCargo is the cargo-side entry: the current ship is left first and
// the capacity of the new ship is checked afterwards. When that check
// fails the cargo stays unlinked; it is not put back on its old ship.
func (g *graph) boardCargo(c *types.Cargo, s *types.Ship) error {
	if s != nil && c.ShipID == s.ShipID {
		return nil
	}
	g.detachCargoShip(c)
	if s == nil {
		return nil
	}
	if err := g.checkCapacity(s, c.Mass); err != nil {
		return err
	}
	g.attachCargoShip(c, s)
	return nil
}

// hasContractWith reports whether s already employs crew member crewID
// under a contract other than exceptID.
func (g *graph) hasContractWith(s *types.Ship, crewID, exceptID string) bool {
	for _, id := range s.ContractIDs {
		if id == exceptID {
			continue
		}
		if ct, ok := g.contracts.get(id); ok && ct.CrewMemberID == crewID {
			return true
		}
	}
	return false
}

// attachShipContract records ct on its ship. ct must name s as its ship.
func (g *graph) attachShipContract(s *types.Ship, ct *types.Contract) error {
	if containsID(s.ContractIDs, ct.ContractID) {
		return nil
	}
	if ct.ShipID != s.ShipID {
		return types.ErrContractMismatch
	}
	if g.hasContractWith(s, ct.CrewMemberID, ct.ContractID) {
		return types.ErrDuplicateContract
	}
	s.ContractIDs = append(s.ContractIDs, ct.ContractID)
	return nil
}

// attachCrewContract records ct on its crew member. ct must name m as its
// crew member.
func (g *graph) attachCrewContract(m *types.CrewMember, ct *types.Contract) error {
	if containsID(m.ContractIDs, ct.ContractID) {
		return nil
	}
	if ct.CrewMemberID != m.CrewID {
		return types.ErrContractMismatch
	}
	for _, id := range m.ContractIDs {
		if other, ok := g.contracts.get(id); ok && other.ShipID == ct.ShipID {
			return types.ErrDuplicateContract
		}
	}
	m.ContractIDs = append(m.ContractIDs, ct.ContractID)
	return nil
}

// dissolve removes ct from both parties and retires it. A dissolved
// contract is never reattached; parties sign a new one instead.
func (g *graph) dissolve(ct *types.Contract) {
	if s, ok := g.ships.get(ct.ShipID); ok {
		s.ContractIDs = removeID(s.ContractIDs, ct.ContractID)
	}
	if m, ok := g.crew.get(ct.CrewMemberID); ok {
		m.ContractIDs = removeID(m.ContractIDs, ct.ContractID)
	}
	ct.ShipID = ""
	ct.CrewMemberID = ""
	g.contracts.retire(ct.ContractID)
}
