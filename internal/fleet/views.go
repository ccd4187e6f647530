package fleet

import (
	"slices"

	"github.com/mesh-intelligence/freighter/pkg/types"
)

// NoDestination is the CargoGroupedByDestination key for cargo without a
// destination galaxy.
const NoDestination = ""

// CurrentCargoMass returns the total mass aboard ship id.
func (f *Fleet) CurrentCargoMass(id string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.g.ship(id)
	if err != nil {
		return 0, err
	}
	return f.g.loadedMass(s), nil
}

// CanGoToGalaxy reports whether ship id may enter galaxy galaxyID. An empty
// galaxyID is a validation error.
func (f *Fleet) CanGoToGalaxy(id, galaxyID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.g.ship(id)
	if err != nil {
		return false, err
	}
	gx, err := f.g.galaxy(galaxyID)
	if err != nil {
		return false, err
	}
	return s.CanEnter(*gx), nil
}

// CargoGroupedByDestination maps each destination galaxy handle to the
// cargo aboard ship id bound there. Cargo without a destination is keyed
// by NoDestination. Groups keep the ship's loading order.
func (f *Fleet) CargoGroupedByDestination(id string) (map[string][]types.Cargo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.g.ship(id)
	if err != nil {
		return nil, err
	}
	groups := make(map[string][]types.Cargo)
	for _, c := range f.g.aboard(s) {
		groups[c.DestinationID] = append(groups[c.DestinationID], *c)
	}
	return groups, nil
}

// CargoSortedByMass returns the cargo destined for galaxy id in ascending
// mass. Cargo of equal mass keeps the order it was destined in.
func (f *Fleet) CargoSortedByMass(id string) ([]types.Cargo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	gx, err := f.g.galaxy(id)
	if err != nil {
		return nil, err
	}
	out := make([]types.Cargo, 0, len(gx.CargoIDs))
	for _, cid := range gx.CargoIDs {
		if c, ok := f.g.cargo.get(cid); ok {
			out = append(out, *c)
		}
	}
	slices.SortStableFunc(out, types.CompareCargoByMass)
	return out, nil
}

// DestinationSummary aggregates the cargo aboard a ship bound for one galaxy.
type DestinationSummary struct {
	GalaxyID  string `json:"galaxy_id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Reachable bool   `json:"reachable"`
	Count     int    `json:"count"`
	Mass      int    `json:"mass"`
}

// RoutePlan splits the cargo aboard a ship by whether the ship can reach
// its destination.
type RoutePlan struct {
	ShipID       string               `json:"ship_id"`
	Loaded       int                  `json:"loaded"`
	Capacity     int                  `json:"capacity"`
	Destinations []DestinationSummary `json:"destinations"`
	Undestined   int                  `json:"undestined"`
}

// Unreachable returns the destinations the ship cannot enter.
func (p RoutePlan) Unreachable() []DestinationSummary {
	var out []DestinationSummary
	for _, d := range p.Destinations {
		if !d.Reachable {
			out = append(out, d)
		}
	}
	return out
}

// RoutePlan summarizes ship id's cargo by destination, in order of first
// appearance aboard, with the reachability of each destination.
func (f *Fleet) RoutePlan(id string) (RoutePlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.g.ship(id)
	if err != nil {
		return RoutePlan{}, err
	}
	plan := RoutePlan{ShipID: s.ShipID, Capacity: s.MaxCargoMass}
	index := make(map[string]int)
	for _, c := range f.g.aboard(s) {
		plan.Loaded += c.Mass
		if c.DestinationID == "" {
			plan.Undestined++
			continue
		}
		i, ok := index[c.DestinationID]
		if !ok {
			gx, err := f.g.galaxy(c.DestinationID)
			if err != nil {
				return RoutePlan{}, err
			}
			i = len(plan.Destinations)
			index[c.DestinationID] = i
			plan.Destinations = append(plan.Destinations, DestinationSummary{
				GalaxyID:  gx.GalaxyID,
				Code:      gx.Code,
				Name:      gx.Name,
				Reachable: s.CanEnter(*gx),
			})
		}
		plan.Destinations[i].Count++
		plan.Destinations[i].Mass += c.Mass
	}
	return plan, nil
}

// UnloadCargoGoingTo unloads every cargo aboard ship id whose destination is
// galaxyID. An empty galaxyID unloads the cargo that has no destination.
// It returns the unloaded handles.
func (f *Fleet) UnloadCargoGoingTo(id, galaxyID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.g.ship(id)
	if err != nil {
		return nil, f.reject("ship.unload_destination", err)
	}
	if _, err := f.g.optionalGalaxy(galaxyID); err != nil {
		return nil, f.reject("ship.unload_destination", err)
	}
	unloaded := f.g.unloadWhere(s, func(c *types.Cargo) bool {
		return c.DestinationID == galaxyID
	})
	f.log.Debug("ship.unloaded", "ship_id", id, "galaxy_id", galaxyID, "count", len(unloaded))
	return unloaded, nil
}

// UnloadAllUnreachableCargo unloads every cargo aboard ship id whose
// destination the ship cannot enter. Cargo without a destination stays
// aboard. It returns the unloaded handles.
func (f *Fleet) UnloadAllUnreachableCargo(id string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.g.ship(id)
	if err != nil {
		return nil, f.reject("ship.unload_unreachable", err)
	}
	unloaded := f.g.unloadWhere(s, func(c *types.Cargo) bool {
		if c.DestinationID == "" {
			return false
		}
		gx, ok := f.g.galaxies.get(c.DestinationID)
		return ok && !s.CanEnter(*gx)
	})
	f.log.Debug("ship.unloaded", "ship_id", id, "reason", "unreachable", "count", len(unloaded))
	return unloaded, nil
}

// aboard returns the cargo aboard s in loading order.
func (g *graph) aboard(s *types.Ship) []*types.Cargo {
	out := make([]*types.Cargo, 0, len(s.CargoIDs))
	for _, id := range s.CargoIDs {
		if c, ok := g.cargo.get(id); ok {
			out = append(out, c)
		}
	}
	return out
}

// unloadWhere unlinks every cargo aboard s selected by match, on both sides.
func (g *graph) unloadWhere(s *types.Ship, match func(*types.Cargo) bool) []string {
	var unloaded []string
	for _, c := range g.aboard(s) {
		if match(c) {
			g.detachCargoShip(c)
			unloaded = append(unloaded, c.CargoID)
		}
	}
	return unloaded
}
