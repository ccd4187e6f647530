package fleet

import (
	"fmt"

	"github.com/mesh-intelligence/freighter/pkg/types"
)

// CreateNoLifeSupportShip registers a ship run by an onboard AI.
func (f *Fleet) CreateNoLifeSupportShip(p types.ShipParams, aiType string) (types.Ship, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := p.Validate(); err != nil {
		return types.Ship{}, f.reject("ship.create", fmt.Errorf("ship: %w", err))
	}
	if err := types.RequireNonEmpty(aiType); err != nil {
		return types.Ship{}, f.reject("ship.create", fmt.Errorf("ship AI type: %w", err))
	}

	s := newShip(p, types.ShipKindNoLifeSupport)
	s.AIType = aiType
	f.g.ships.register(s.ShipID, s)
	f.log.Debug("ship.created", "ship_id", s.ShipID, "kind", s.Kind, "type", s.Type)
	return cloneShip(s), nil
}

// CreateOrganicSupportShip registers a ship that feeds organic crew with
// the given food types. Duplicate food types collapse into one.
func (f *Fleet) CreateOrganicSupportShip(p types.ShipParams, foodTypes []string) (types.Ship, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := p.Validate(); err != nil {
		return types.Ship{}, f.reject("ship.create", fmt.Errorf("ship: %w", err))
	}
	if err := types.ValidateFoodTypes(foodTypes); err != nil {
		return types.Ship{}, f.reject("ship.create", fmt.Errorf("ship food types: %w", err))
	}

	s := newShip(p, types.ShipKindOrganicSupport)
	s.FoodTypes = dedupeStrings(foodTypes)
	f.g.ships.register(s.ShipID, s)
	f.log.Debug("ship.created", "ship_id", s.ShipID, "kind", s.Kind, "type", s.Type)
	return cloneShip(s), nil
}

func newShip(p types.ShipParams, kind string) *types.Ship {
	s := &types.Ship{
		ShipID:       generateUUID(),
		Kind:         kind,
		Name:         p.Name,
		MaxCargoMass: p.MaxCargoMass,
		Type:         p.Type,
	}
	if p.SolarFlareShieldStrength != nil {
		v := *p.SolarFlareShieldStrength
		s.SolarFlareShieldStrength = &v
	}
	return s
}

// Ship returns a copy of the ship with the given handle.
func (f *Fleet) Ship(id string) (types.Ship, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.g.ship(id)
	if err != nil {
		return types.Ship{}, err
	}
	return cloneShip(s), nil
}

// Ships returns every live ship in creation order.
func (f *Fleet) Ships() []types.Ship {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]types.Ship, 0, f.g.ships.len())
	for _, s := range f.g.ships.all() {
		out = append(out, cloneShip(s))
	}
	return out
}

// SetShipName renames a ship.
func (f *Fleet) SetShipName(id, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.g.ship(id)
	if err != nil {
		return f.reject("ship.rename", err)
	}
	if err := types.RequireNonEmpty(name); err != nil {
		return f.reject("ship.rename", fmt.Errorf("ship name: %w", err))
	}
	s.Name = name
	return nil
}

// SetShipCapacity changes the maximum cargo mass. The new capacity must
// still hold the cargo already aboard.
func (f *Fleet) SetShipCapacity(id string, capacity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.g.ship(id)
	if err != nil {
		return f.reject("ship.capacity", err)
	}
	if err := types.RequirePositiveInt(capacity); err != nil {
		return f.reject("ship.capacity", fmt.Errorf("max cargo mass: %w", err))
	}
	if loaded := f.g.loadedMass(s); loaded > capacity {
		return f.reject("ship.capacity", fmt.Errorf("%d aboard, capacity %d: %w", loaded, capacity, types.ErrCapacityBelowLoad))
	}
	s.MaxCargoMass = capacity
	return nil
}

// SetShieldStrength changes the solar flare shield of a shielded ship.
func (f *Fleet) SetShieldStrength(id string, strength int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.g.ship(id)
	if err != nil {
		return f.reject("ship.shield", err)
	}
	if s.Type != types.ShipShielded {
		return f.reject("ship.shield", types.ErrNotShielded)
	}
	if err := types.RequireNonNegativeInt(strength); err != nil {
		return f.reject("ship.shield", fmt.Errorf("shield strength: %w", err))
	}
	s.SolarFlareShieldStrength = &strength
	return nil
}

// SetShipAIType changes the AI of a no-life-support ship.
func (f *Fleet) SetShipAIType(id, aiType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.g.ship(id)
	if err != nil {
		return f.reject("ship.ai", err)
	}
	if s.Kind != types.ShipKindNoLifeSupport {
		return f.reject("ship.ai", types.ErrWrongShipKind)
	}
	if err := types.RequireNonEmpty(aiType); err != nil {
		return f.reject("ship.ai", fmt.Errorf("ship AI type: %w", err))
	}
	s.AIType = aiType
	return nil
}

// SetShipFoodTypes replaces the food carried by an organic support ship.
func (f *Fleet) SetShipFoodTypes(id string, foodTypes []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.g.ship(id)
	if err != nil {
		return f.reject("ship.food", err)
	}
	if s.Kind != types.ShipKindOrganicSupport {
		return f.reject("ship.food", types.ErrWrongShipKind)
	}
	if err := types.ValidateFoodTypes(foodTypes); err != nil {
		return f.reject("ship.food", fmt.Errorf("ship food types: %w", err))
	}
	s.FoodTypes = dedupeStrings(foodTypes)
	return nil
}

// SetShipGalaxy moves ship id to galaxy galaxyID. An empty galaxyID takes
// the ship out of its galaxy; moving to the current galaxy is a no-op.
func (f *Fleet) SetShipGalaxy(id, galaxyID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.g.ship(id)
	if err != nil {
		return f.reject("ship.move", err)
	}
	gx, err := f.g.optionalGalaxy(galaxyID)
	if err != nil {
		return f.reject("ship.move", err)
	}
	f.g.moveShip(s, gx)
	f.log.Debug("ship.moved", "ship_id", id, "galaxy_id", galaxyID)
	return nil
}

// AddCargoToShip loads cargo cargoID aboard ship id. The capacity check runs
// before anything changes: on ErrCargoOverCapacity the cargo stays where it
// was. Loading cargo that is already aboard is a no-op.
func (f *Fleet) AddCargoToShip(id, cargoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.g.ship(id)
	if err != nil {
		return f.reject("ship.load", err)
	}
	c, err := f.g.cargoItem(cargoID)
	if err != nil {
		return f.reject("ship.load", err)
	}
	if err := f.g.loadCargo(s, c); err != nil {
		return f.reject("ship.load", fmt.Errorf("ship %s load %d: %w", s.Name, c.Mass, err))
	}
	f.log.Debug("cargo.loaded", "cargo_id", cargoID, "ship_id", id)
	return nil
}

// RemoveCargoFromShip unloads cargo cargoID from ship id. Unloading cargo
// that is not aboard is a no-op.
func (f *Fleet) RemoveCargoFromShip(id, cargoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.g.ship(id)
	if err != nil {
		return f.reject("ship.unload", err)
	}
	c, err := f.g.cargoItem(cargoID)
	if err != nil {
		return f.reject("ship.unload", err)
	}
	if c.ShipID != s.ShipID {
		return nil
	}
	f.g.detachCargoShip(c)
	f.log.Debug("cargo.unloaded", "cargo_id", cargoID, "ship_id", id)
	return nil
}

// AddShipContract records an existing contract on ship id. The contract must
// name this ship, and the ship must not already employ the contract's crew
// member under another contract.
func (f *Fleet) AddShipContract(id, contractID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.g.ship(id)
	if err != nil {
		return f.reject("ship.add_contract", err)
	}
	ct, err := f.g.contract(contractID)
	if err != nil {
		return f.reject("ship.add_contract", err)
	}
	if err := f.g.attachShipContract(s, ct); err != nil {
		return f.reject("ship.add_contract", err)
	}
	return nil
}

// RemoveShipContract dissolves contract contractID if ship id holds it.
func (f *Fleet) RemoveShipContract(id, contractID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.g.ship(id)
	if err != nil {
		return f.reject("ship.remove_contract", err)
	}
	if !containsID(s.ContractIDs, contractID) {
		return nil
	}
	ct, err := f.g.contract(contractID)
	if err != nil {
		return f.reject("ship.remove_contract", err)
	}
	f.g.dissolve(ct)
	f.log.Debug("contract.dissolved", "contract_id", contractID, "ship_id", id)
	return nil
}
