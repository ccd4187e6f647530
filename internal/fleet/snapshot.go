package fleet

import (
	"fmt"
	"slices"

	"github.com/mesh-intelligence/freighter/pkg/types"
)

// Export returns a deep copy of every live entity and the registered-owner
// set.
func (f *Fleet) Export() types.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap := types.Snapshot{
		Owners:    f.g.sortedOwners(),
		Galaxies:  make([]types.Galaxy, 0, f.g.galaxies.len()),
		Ships:     make([]types.Ship, 0, f.g.ships.len()),
		Cargo:     make([]types.Cargo, 0, f.g.cargo.len()),
		Crew:      make([]types.CrewMember, 0, f.g.crew.len()),
		Contracts: make([]types.Contract, 0, f.g.contracts.len()),
	}
	for _, gx := range f.g.galaxies.all() {
		snap.Galaxies = append(snap.Galaxies, cloneGalaxy(gx))
	}
	for _, s := range f.g.ships.all() {
		snap.Ships = append(snap.Ships, cloneShip(s))
	}
	for _, c := range f.g.cargo.all() {
		snap.Cargo = append(snap.Cargo, *c)
	}
	for _, m := range f.g.crew.all() {
		snap.Crew = append(snap.Crew, cloneCrew(m))
	}
	for _, ct := range f.g.contracts.all() {
		snap.Contracts = append(snap.Contracts, cloneContract(ct))
	}
	return snap
}

// Import replaces the whole graph with snap. Forward references are
// authoritative: reciprocal handle lists are rebuilt from them, keeping the
// order recorded in snap when it agrees. Every invariant is checked on the
// rebuilt graph before it replaces the current one; on error the Fleet is
// unchanged.
func (f *Fleet) Import(snap types.Snapshot) error {
	g, err := buildGraph(snap)
	if err != nil {
		return fmt.Errorf("importing snapshot: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.g = g
	f.log.Info("fleet.imported",
		"owners", len(g.owners),
		"galaxies", g.galaxies.len(),
		"ships", g.ships.len(),
		"cargo", g.cargo.len(),
		"crew", g.crew.len(),
		"contracts", g.contracts.len(),
	)
	return nil
}

func buildGraph(snap types.Snapshot) (*graph, error) {
	g := newGraph()
	for _, o := range snap.Owners {
		if err := types.RequireNonEmpty(o); err != nil {
			return nil, fmt.Errorf("owner: %w", err)
		}
		g.owners[o] = struct{}{}
	}

	// Register entities with their scalar attributes and forward references
	// only; reciprocal lists start empty.
	for i := range snap.Galaxies {
		gx := cloneGalaxy(&snap.Galaxies[i])
		gx.ShipIDs, gx.CargoIDs = nil, nil
		if err := registerUnique(g.galaxies, gx.GalaxyID, &gx); err != nil {
			return nil, fmt.Errorf("galaxy: %w", err)
		}
	}
	for i := range snap.Ships {
		s := cloneShip(&snap.Ships[i])
		s.CargoIDs, s.ContractIDs = nil, nil
		if err := registerUnique(g.ships, s.ShipID, &s); err != nil {
			return nil, fmt.Errorf("ship: %w", err)
		}
	}
	for i := range snap.Cargo {
		c := snap.Cargo[i]
		if err := registerUnique(g.cargo, c.CargoID, &c); err != nil {
			return nil, fmt.Errorf("cargo: %w", err)
		}
	}
	for i := range snap.Crew {
		m := cloneCrew(&snap.Crew[i])
		m.ContractIDs = nil
		if err := registerUnique(g.crew, m.CrewID, &m); err != nil {
			return nil, fmt.Errorf("crew member: %w", err)
		}
	}
	for i := range snap.Contracts {
		ct := cloneContract(&snap.Contracts[i])
		if err := registerUnique(g.contracts, ct.ContractID, &ct); err != nil {
			return nil, fmt.Errorf("contract: %w", err)
		}
	}

	if err := g.rebuildReciprocals(); err != nil {
		return nil, err
	}
	if err := g.adoptRecordedOrder(snap); err != nil {
		return nil, err
	}
	if err := g.checkInvariants(); err != nil {
		return nil, err
	}
	return g, nil
}

func registerUnique[T any](e *extent[T], id string, item *T) error {
	if err := types.RequireNonEmpty(id); err != nil {
		return err
	}
	if _, ok := e.get(id); ok {
		return fmt.Errorf("handle %s: %w", id, types.ErrDuplicateHandle)
	}
	e.register(id, item)
	return nil
}

// rebuildReciprocals fills every reciprocal handle list from the forward
// references, failing on references to unknown entities.
func (g *graph) rebuildReciprocals() error {
	for _, s := range g.ships.all() {
		if s.GalaxyID == "" {
			continue
		}
		gx, err := g.galaxy(s.GalaxyID)
		if err != nil {
			return fmt.Errorf("ship %s location: %w", s.ShipID, err)
		}
		gx.ShipIDs = append(gx.ShipIDs, s.ShipID)
	}
	for _, c := range g.cargo.all() {
		if c.DestinationID != "" {
			gx, err := g.galaxy(c.DestinationID)
			if err != nil {
				return fmt.Errorf("cargo %s destination: %w", c.CargoID, err)
			}
			gx.CargoIDs = append(gx.CargoIDs, c.CargoID)
		}
		if c.ShipID != "" {
			s, err := g.ship(c.ShipID)
			if err != nil {
				return fmt.Errorf("cargo %s ship: %w", c.CargoID, err)
			}
			s.CargoIDs = append(s.CargoIDs, c.CargoID)
		}
	}
	for _, ct := range g.contracts.all() {
		s, err := g.ship(ct.ShipID)
		if err != nil {
			return fmt.Errorf("contract %s ship: %w", ct.ContractID, err)
		}
		m, err := g.crewMember(ct.CrewMemberID)
		if err != nil {
			return fmt.Errorf("contract %s crew member: %w", ct.ContractID, err)
		}
		s.ContractIDs = append(s.ContractIDs, ct.ContractID)
		m.ContractIDs = append(m.ContractIDs, ct.ContractID)
	}
	return nil
}

// adoptRecordedOrder replaces each rebuilt reciprocal list with the order
// recorded in snap. A recorded list must hold exactly the rebuilt handles;
// an empty recorded list keeps the rebuilt order.
func (g *graph) adoptRecordedOrder(snap types.Snapshot) error {
	for _, rec := range snap.Galaxies {
		gx, _ := g.galaxies.get(rec.GalaxyID)
		var err error
		if gx.ShipIDs, err = reorder(gx.ShipIDs, rec.ShipIDs); err != nil {
			return fmt.Errorf("galaxy %s ships: %w", gx.GalaxyID, err)
		}
		if gx.CargoIDs, err = reorder(gx.CargoIDs, rec.CargoIDs); err != nil {
			return fmt.Errorf("galaxy %s cargo: %w", gx.GalaxyID, err)
		}
	}
	for _, rec := range snap.Ships {
		s, _ := g.ships.get(rec.ShipID)
		var err error
		if s.CargoIDs, err = reorder(s.CargoIDs, rec.CargoIDs); err != nil {
			return fmt.Errorf("ship %s cargo: %w", s.ShipID, err)
		}
		if s.ContractIDs, err = reorder(s.ContractIDs, rec.ContractIDs); err != nil {
			return fmt.Errorf("ship %s contracts: %w", s.ShipID, err)
		}
	}
	for _, rec := range snap.Crew {
		m, _ := g.crew.get(rec.CrewID)
		var err error
		if m.ContractIDs, err = reorder(m.ContractIDs, rec.ContractIDs); err != nil {
			return fmt.Errorf("crew member %s contracts: %w", m.CrewID, err)
		}
	}
	return nil
}

func reorder(rebuilt, recorded []string) ([]string, error) {
	if len(recorded) == 0 {
		return rebuilt, nil
	}
	a, b := slices.Clone(rebuilt), slices.Clone(recorded)
	slices.Sort(a)
	slices.Sort(b)
	if !slices.Equal(a, b) {
		return nil, types.ErrAsymmetricLink
	}
	return slices.Clone(recorded), nil
}

func cloneGalaxy(gx *types.Galaxy) types.Galaxy {
	out := *gx
	if gx.PeacefulSince != nil {
		v := *gx.PeacefulSince
		out.PeacefulSince = &v
	}
	if gx.AtWar != nil {
		v := *gx.AtWar
		out.AtWar = &v
	}
	if gx.SolarFlareStrength != nil {
		v := *gx.SolarFlareStrength
		out.SolarFlareStrength = &v
	}
	out.ShipIDs = cloneIDs(gx.ShipIDs)
	out.CargoIDs = cloneIDs(gx.CargoIDs)
	return out
}

func cloneShip(s *types.Ship) types.Ship {
	out := *s
	if s.SolarFlareShieldStrength != nil {
		v := *s.SolarFlareShieldStrength
		out.SolarFlareShieldStrength = &v
	}
	out.FoodTypes = cloneIDs(s.FoodTypes)
	out.CargoIDs = cloneIDs(s.CargoIDs)
	out.ContractIDs = cloneIDs(s.ContractIDs)
	return out
}

func cloneCrew(m *types.CrewMember) types.CrewMember {
	out := *m
	out.ContractIDs = cloneIDs(m.ContractIDs)
	return out
}

func cloneContract(ct *types.Contract) types.Contract {
	out := *ct
	out.Salary = copyFloat(ct.Salary)
	return out
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	x := *v
	return &x
}

// cloneIDs copies a handle list, mapping an empty list to nil.
func cloneIDs(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	return slices.Clone(ids)
}
