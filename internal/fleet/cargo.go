package fleet

import (
	"fmt"

	"github.com/mesh-intelligence/freighter/pkg/types"
)

// CreateCargo registers new cargo. The owner must be registered.
func (f *Fleet) CreateCargo(name string, mass int, owner string) (types.Cargo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := types.RequireNonEmpty(name); err != nil {
		return types.Cargo{}, f.reject("cargo.create", fmt.Errorf("cargo name: %w", err))
	}
	if err := types.RequirePositiveInt(mass); err != nil {
		return types.Cargo{}, f.reject("cargo.create", fmt.Errorf("cargo mass: %w", err))
	}
	if err := f.g.checkOwner(owner); err != nil {
		return types.Cargo{}, f.reject("cargo.create", fmt.Errorf("cargo owner %q: %w", owner, err))
	}

	c := &types.Cargo{
		CargoID: generateUUID(),
		Name:    name,
		Mass:    mass,
		Owner:   owner,
	}
	f.g.cargo.register(c.CargoID, c)
	f.log.Debug("cargo.created", "cargo_id", c.CargoID, "mass", mass, "owner", owner)
	return *c, nil
}

// Cargo returns a copy of the cargo with the given handle.
func (f *Fleet) Cargo(id string) (types.Cargo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, err := f.g.cargoItem(id)
	if err != nil {
		return types.Cargo{}, err
	}
	return *c, nil
}

// AllCargo returns every live cargo in creation order.
func (f *Fleet) AllCargo() []types.Cargo {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]types.Cargo, 0, f.g.cargo.len())
	for _, c := range f.g.cargo.all() {
		out = append(out, *c)
	}
	return out
}

// SetCargoName renames cargo.
func (f *Fleet) SetCargoName(id, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, err := f.g.cargoItem(id)
	if err != nil {
		return f.reject("cargo.rename", err)
	}
	if err := types.RequireNonEmpty(name); err != nil {
		return f.reject("cargo.rename", fmt.Errorf("cargo name: %w", err))
	}
	c.Name = name
	return nil
}

// SetCargoMass changes the mass of cargo. When the cargo is aboard a ship
// the difference is checked against the ship's free capacity first; on
// ErrCargoOverCapacity the mass is unchanged.
func (f *Fleet) SetCargoMass(id string, mass int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, err := f.g.cargoItem(id)
	if err != nil {
		return f.reject("cargo.mass", err)
	}
	if err := types.RequirePositiveInt(mass); err != nil {
		return f.reject("cargo.mass", fmt.Errorf("cargo mass: %w", err))
	}
	if c.ShipID != "" {
		s, err := f.g.ship(c.ShipID)
		if err != nil {
			return f.reject("cargo.mass", err)
		}
		if err := f.g.checkCapacity(s, mass-c.Mass); err != nil {
			return f.reject("cargo.mass", fmt.Errorf("cargo mass %d aboard %s: %w", mass, s.Name, err))
		}
	}
	c.Mass = mass
	return nil
}

// SetCargoOwner transfers cargo to another registered owner.
func (f *Fleet) SetCargoOwner(id, owner string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, err := f.g.cargoItem(id)
	if err != nil {
		return f.reject("cargo.owner", err)
	}
	if err := f.g.checkOwner(owner); err != nil {
		return f.reject("cargo.owner", fmt.Errorf("cargo owner %q: %w", owner, err))
	}
	c.Owner = owner
	return nil
}

// SetCargoDestination binds cargo to galaxy galaxyID. An empty galaxyID
// clears the destination.
func (f *Fleet) SetCargoDestination(id, galaxyID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, err := f.g.cargoItem(id)
	if err != nil {
		return f.reject("cargo.destine", err)
	}
	gx, err := f.g.optionalGalaxy(galaxyID)
	if err != nil {
		return f.reject("cargo.destine", err)
	}
	f.g.destine(c, gx)
	f.log.Debug("cargo.destined", "cargo_id", id, "galaxy_id", galaxyID)
	return nil
}

// SetCargoShip moves cargo aboard ship shipID; an empty shipID unloads it.
//
// The cargo leaves its current ship before the new ship's capacity is
// checked. If the new ship cannot take it, the call fails with
// ErrCargoOverCapacity and the cargo ends up aboard no ship.
func (f *Fleet) SetCargoShip(id, shipID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, err := f.g.cargoItem(id)
	if err != nil {
		return f.reject("cargo.board", err)
	}
	s, err := f.g.optionalShip(shipID)
	if err != nil {
		return f.reject("cargo.board", err)
	}
	if err := f.g.boardCargo(c, s); err != nil {
		return f.reject("cargo.board", fmt.Errorf("cargo %s: %w", c.Name, err))
	}
	f.log.Debug("cargo.boarded", "cargo_id", id, "ship_id", shipID)
	return nil
}

// RetireCargo unlinks cargo from its ship and destination and removes it
// from the registry. Its owner no longer counts it.
func (f *Fleet) RetireCargo(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, err := f.g.cargoItem(id)
	if err != nil {
		return f.reject("cargo.retire", err)
	}
	f.g.detachCargoShip(c)
	f.g.detachCargoDestination(c)
	f.g.cargo.retire(id)
	f.log.Debug("cargo.retired", "cargo_id", id)
	return nil
}
