package fleet

import (
	"fmt"
	"time"

	"github.com/mesh-intelligence/freighter/pkg/types"
)

// CreatePeacefulGalaxy registers a new peaceful galaxy. The code must be
// unique among live galaxies and since must be set.
func (f *Fleet) CreatePeacefulGalaxy(name, code string, since time.Time) (types.Galaxy, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.g.checkGalaxyScalars(name, code, ""); err != nil {
		return types.Galaxy{}, f.reject("galaxy.create", err)
	}
	if since.IsZero() {
		return types.Galaxy{}, f.reject("galaxy.create", fmt.Errorf("peaceful since: %w", types.ErrMissingDate))
	}

	gx := &types.Galaxy{
		GalaxyID:      generateUUID(),
		Name:          name,
		Code:          code,
		Type:          types.GalaxyPeaceful,
		PeacefulSince: &since,
	}
	f.g.galaxies.register(gx.GalaxyID, gx)
	f.log.Debug("galaxy.created", "galaxy_id", gx.GalaxyID, "code", code, "type", gx.Type)
	return cloneGalaxy(gx), nil
}

// CreateDangerousGalaxy registers a new dangerous galaxy.
func (f *Fleet) CreateDangerousGalaxy(name, code string, atWar bool, solarFlareStrength int) (types.Galaxy, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.g.checkGalaxyScalars(name, code, ""); err != nil {
		return types.Galaxy{}, f.reject("galaxy.create", err)
	}
	if err := types.RequireNonNegativeInt(solarFlareStrength); err != nil {
		return types.Galaxy{}, f.reject("galaxy.create", fmt.Errorf("solar flare strength: %w", err))
	}

	gx := &types.Galaxy{
		GalaxyID:           generateUUID(),
		Name:               name,
		Code:               code,
		Type:               types.GalaxyDangerous,
		AtWar:              &atWar,
		SolarFlareStrength: &solarFlareStrength,
	}
	f.g.galaxies.register(gx.GalaxyID, gx)
	f.log.Debug("galaxy.created", "galaxy_id", gx.GalaxyID, "code", code, "type", gx.Type)
	return cloneGalaxy(gx), nil
}

func (g *graph) checkGalaxyScalars(name, code, selfID string) error {
	if err := types.RequireNonEmpty(name); err != nil {
		return fmt.Errorf("galaxy name: %w", err)
	}
	return g.checkGalaxyCode(code, selfID)
}

// checkGalaxyCode fails when code is empty or used by a live galaxy other
// than selfID.
func (g *graph) checkGalaxyCode(code, selfID string) error {
	if err := types.RequireNonEmpty(code); err != nil {
		return fmt.Errorf("galaxy code: %w", err)
	}
	for _, other := range g.galaxies.all() {
		if other.GalaxyID != selfID && other.Code == code {
			return fmt.Errorf("galaxy code %q: %w", code, types.ErrDuplicateGalaxyCode)
		}
	}
	return nil
}

// Galaxy returns a copy of the galaxy with the given handle.
func (f *Fleet) Galaxy(id string) (types.Galaxy, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	gx, err := f.g.galaxy(id)
	if err != nil {
		return types.Galaxy{}, err
	}
	return cloneGalaxy(gx), nil
}

// GalaxyByCode returns the live galaxy with the given code.
func (f *Fleet) GalaxyByCode(code string) (types.Galaxy, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, gx := range f.g.galaxies.all() {
		if gx.Code == code {
			return cloneGalaxy(gx), nil
		}
	}
	return types.Galaxy{}, fmt.Errorf("galaxy code %q: %w", code, types.ErrNotFound)
}

// Galaxies returns every live galaxy in creation order.
func (f *Fleet) Galaxies() []types.Galaxy {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]types.Galaxy, 0, f.g.galaxies.len())
	for _, gx := range f.g.galaxies.all() {
		out = append(out, cloneGalaxy(gx))
	}
	return out
}

// SetGalaxyName renames a galaxy.
func (f *Fleet) SetGalaxyName(id, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	gx, err := f.g.galaxy(id)
	if err != nil {
		return f.reject("galaxy.rename", err)
	}
	if err := types.RequireNonEmpty(name); err != nil {
		return f.reject("galaxy.rename", fmt.Errorf("galaxy name: %w", err))
	}
	gx.Name = name
	return nil
}

// SetGalaxyCode changes a galaxy's code. Setting the current code is a
// no-op; any other code must be unused.
func (f *Fleet) SetGalaxyCode(id, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	gx, err := f.g.galaxy(id)
	if err != nil {
		return f.reject("galaxy.recode", err)
	}
	if gx.Code == code {
		return nil
	}
	if err := f.g.checkGalaxyCode(code, gx.GalaxyID); err != nil {
		return f.reject("galaxy.recode", err)
	}
	f.log.Debug("galaxy.recoded", "galaxy_id", id, "from", gx.Code, "to", code)
	gx.Code = code
	return nil
}

// ConvertToPeaceful switches a dangerous galaxy to peaceful mode. The
// dangerous attributes are cleared and since is recorded in one step.
func (f *Fleet) ConvertToPeaceful(id string, since time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	gx, err := f.g.galaxy(id)
	if err != nil {
		return f.reject("galaxy.convert", err)
	}
	if gx.Type == types.GalaxyPeaceful {
		return f.reject("galaxy.convert", types.ErrAlreadyPeaceful)
	}
	if since.IsZero() {
		return f.reject("galaxy.convert", fmt.Errorf("peaceful since: %w", types.ErrMissingDate))
	}

	gx.Type = types.GalaxyPeaceful
	gx.PeacefulSince = &since
	gx.AtWar = nil
	gx.SolarFlareStrength = nil
	f.log.Debug("galaxy.converted", "galaxy_id", id, "type", gx.Type)
	return nil
}

// ConvertToDangerous switches a peaceful galaxy to dangerous mode.
func (f *Fleet) ConvertToDangerous(id string, atWar bool, solarFlareStrength int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	gx, err := f.g.galaxy(id)
	if err != nil {
		return f.reject("galaxy.convert", err)
	}
	if gx.Type == types.GalaxyDangerous {
		return f.reject("galaxy.convert", types.ErrAlreadyDangerous)
	}
	if err := types.RequireNonNegativeInt(solarFlareStrength); err != nil {
		return f.reject("galaxy.convert", fmt.Errorf("solar flare strength: %w", err))
	}

	gx.Type = types.GalaxyDangerous
	gx.PeacefulSince = nil
	gx.AtWar = &atWar
	gx.SolarFlareStrength = &solarFlareStrength
	f.log.Debug("galaxy.converted", "galaxy_id", id, "type", gx.Type)
	return nil
}

// SetAtWar updates the war status of a dangerous galaxy.
func (f *Fleet) SetAtWar(id string, atWar bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	gx, err := f.g.galaxy(id)
	if err != nil {
		return f.reject("galaxy.war", err)
	}
	if gx.Type != types.GalaxyDangerous {
		return f.reject("galaxy.war", types.ErrNotDangerous)
	}
	gx.AtWar = &atWar
	return nil
}

// SetSolarFlareStrength updates the flare strength of a dangerous galaxy.
func (f *Fleet) SetSolarFlareStrength(id string, strength int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	gx, err := f.g.galaxy(id)
	if err != nil {
		return f.reject("galaxy.flare", err)
	}
	if gx.Type != types.GalaxyDangerous {
		return f.reject("galaxy.flare", types.ErrNotDangerous)
	}
	if err := types.RequireNonNegativeInt(strength); err != nil {
		return f.reject("galaxy.flare", fmt.Errorf("solar flare strength: %w", err))
	}
	gx.SolarFlareStrength = &strength
	return nil
}

// SetPeacefulSince updates the peace date of a peaceful galaxy.
func (f *Fleet) SetPeacefulSince(id string, since time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	gx, err := f.g.galaxy(id)
	if err != nil {
		return f.reject("galaxy.peace", err)
	}
	if gx.Type != types.GalaxyPeaceful {
		return f.reject("galaxy.peace", types.ErrNotPeaceful)
	}
	if since.IsZero() {
		return f.reject("galaxy.peace", fmt.Errorf("peaceful since: %w", types.ErrMissingDate))
	}
	gx.PeacefulSince = &since
	return nil
}

// AddShipToGalaxy places ship shipID in galaxy id. Adding a ship that is
// already there is a no-op.
func (f *Fleet) AddShipToGalaxy(id, shipID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	gx, err := f.g.galaxy(id)
	if err != nil {
		return f.reject("galaxy.add_ship", err)
	}
	s, err := f.g.ship(shipID)
	if err != nil {
		return f.reject("galaxy.add_ship", err)
	}
	f.g.moveShip(s, gx)
	f.log.Debug("ship.moved", "ship_id", shipID, "galaxy_id", id)
	return nil
}

// RemoveShipFromGalaxy takes ship shipID out of galaxy id. Removing a ship
// that is not there is a no-op.
func (f *Fleet) RemoveShipFromGalaxy(id, shipID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	gx, err := f.g.galaxy(id)
	if err != nil {
		return f.reject("galaxy.remove_ship", err)
	}
	s, err := f.g.ship(shipID)
	if err != nil {
		return f.reject("galaxy.remove_ship", err)
	}
	if s.GalaxyID != gx.GalaxyID {
		return nil
	}
	f.g.moveShip(s, nil)
	f.log.Debug("ship.moved", "ship_id", shipID, "galaxy_id", "")
	return nil
}

// AddCargoToGalaxy makes galaxy id the destination of cargo cargoID.
func (f *Fleet) AddCargoToGalaxy(id, cargoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	gx, err := f.g.galaxy(id)
	if err != nil {
		return f.reject("galaxy.add_cargo", err)
	}
	c, err := f.g.cargoItem(cargoID)
	if err != nil {
		return f.reject("galaxy.add_cargo", err)
	}
	f.g.destine(c, gx)
	f.log.Debug("cargo.destined", "cargo_id", cargoID, "galaxy_id", id)
	return nil
}

// RemoveCargoFromGalaxy clears the destination of cargo cargoID if it is
// galaxy id.
func (f *Fleet) RemoveCargoFromGalaxy(id, cargoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	gx, err := f.g.galaxy(id)
	if err != nil {
		return f.reject("galaxy.remove_cargo", err)
	}
	c, err := f.g.cargoItem(cargoID)
	if err != nil {
		return f.reject("galaxy.remove_cargo", err)
	}
	if c.DestinationID != gx.GalaxyID {
		return nil
	}
	f.g.destine(c, nil)
	f.log.Debug("cargo.destined", "cargo_id", cargoID, "galaxy_id", "")
	return nil
}
