package fleet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/freighter/pkg/types"
)

// routeFixture loads a shielded ship (shield 5) with cargo bound for a
// peaceful galaxy, a calm dangerous galaxy, a galaxy at war and nowhere.
type routeFixture struct {
	f                      *Fleet
	ship                   types.Ship
	peaceful, calm, war    types.Galaxy
	toPeaceful, toCalm     types.Cargo
	toWar, toWar2, nowhere types.Cargo
}

func newRouteFixture(t *testing.T) routeFixture {
	t.Helper()
	f := newTestFleet(t)
	fx := routeFixture{
		f:        f,
		ship:     mustShip(t, f, shielded(5)),
		peaceful: mustPeaceful(t, f, "PEA"),
		calm:     mustDangerous(t, f, "CLM", false, 4),
		war:      mustDangerous(t, f, "WAR", true, 0),
	}
	load := func(name string, mass int, dest string) types.Cargo {
		c := mustCargo(t, f, name, mass)
		if dest != "" {
			require.NoError(t, f.SetCargoDestination(c.CargoID, dest))
		}
		require.NoError(t, f.AddCargoToShip(fx.ship.ShipID, c.CargoID))
		got, _ := f.Cargo(c.CargoID)
		return got
	}
	fx.toPeaceful = load("grain", 10, fx.peaceful.GalaxyID)
	fx.toWar = load("arms", 20, fx.war.GalaxyID)
	fx.toCalm = load("ice", 15, fx.calm.GalaxyID)
	fx.nowhere = load("mail", 1, "")
	fx.toWar2 = load("ammo", 5, fx.war.GalaxyID)
	return fx
}

func TestCargoGroupedByDestination(t *testing.T) {
	fx := newRouteFixture(t)

	groups, err := fx.f.CargoGroupedByDestination(fx.ship.ShipID)
	require.NoError(t, err)

	assert.Len(t, groups, 4)
	assert.Equal(t, []types.Cargo{fx.toPeaceful}, groups[fx.peaceful.GalaxyID])
	assert.Equal(t, []types.Cargo{fx.toCalm}, groups[fx.calm.GalaxyID])
	assert.Equal(t, []types.Cargo{fx.toWar, fx.toWar2}, groups[fx.war.GalaxyID])
	assert.Equal(t, []types.Cargo{fx.nowhere}, groups[NoDestination])
}

func TestRoutePlan(t *testing.T) {
	fx := newRouteFixture(t)

	plan, err := fx.f.RoutePlan(fx.ship.ShipID)
	require.NoError(t, err)

	assert.Equal(t, 51, plan.Loaded)
	assert.Equal(t, 100, plan.Capacity)
	assert.Equal(t, 1, plan.Undestined)
	require.Len(t, plan.Destinations, 3)
	assert.Equal(t, "PEA", plan.Destinations[0].Code)
	assert.Equal(t, "WAR", plan.Destinations[1].Code)
	assert.Equal(t, 2, plan.Destinations[1].Count)
	assert.Equal(t, 25, plan.Destinations[1].Mass)
	assert.False(t, plan.Destinations[1].Reachable)
	assert.True(t, plan.Destinations[2].Reachable)

	unreachable := plan.Unreachable()
	require.Len(t, unreachable, 1)
	assert.Equal(t, fx.war.GalaxyID, unreachable[0].GalaxyID)
}

func TestUnloadCargoGoingTo(t *testing.T) {
	fx := newRouteFixture(t)

	unloaded, err := fx.f.UnloadCargoGoingTo(fx.ship.ShipID, fx.war.GalaxyID)
	require.NoError(t, err)
	assert.Equal(t, []string{fx.toWar.CargoID, fx.toWar2.CargoID}, unloaded)

	ship, _ := fx.f.Ship(fx.ship.ShipID)
	assert.Equal(t, []string{fx.toPeaceful.CargoID, fx.toCalm.CargoID, fx.nowhere.CargoID}, ship.CargoIDs)
	for _, id := range unloaded {
		c, _ := fx.f.Cargo(id)
		assert.Empty(t, c.ShipID, "unloaded on both sides")
		assert.Equal(t, fx.war.GalaxyID, c.DestinationID, "destination is kept")
	}

	unloaded, err = fx.f.UnloadCargoGoingTo(fx.ship.ShipID, NoDestination)
	require.NoError(t, err)
	assert.Equal(t, []string{fx.nowhere.CargoID}, unloaded)

	unloaded, err = fx.f.UnloadCargoGoingTo(fx.ship.ShipID, fx.war.GalaxyID)
	require.NoError(t, err)
	assert.Empty(t, unloaded)

	_, err = fx.f.UnloadCargoGoingTo(fx.ship.ShipID, "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.NoError(t, fx.f.CheckInvariants())
}

func TestUnloadAllUnreachableCargo(t *testing.T) {
	fx := newRouteFixture(t)

	unloaded, err := fx.f.UnloadAllUnreachableCargo(fx.ship.ShipID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{fx.toWar.CargoID, fx.toWar2.CargoID}, unloaded)

	ship, _ := fx.f.Ship(fx.ship.ShipID)
	assert.ElementsMatch(t, []string{fx.toPeaceful.CargoID, fx.toCalm.CargoID, fx.nowhere.CargoID}, ship.CargoIDs)

	// Strong flares make the calm galaxy unreachable as well.
	require.NoError(t, fx.f.SetSolarFlareStrength(fx.calm.GalaxyID, 6))
	unloaded, err = fx.f.UnloadAllUnreachableCargo(fx.ship.ShipID)
	require.NoError(t, err)
	assert.Equal(t, []string{fx.toCalm.CargoID}, unloaded)

	mass, _ := fx.f.CurrentCargoMass(fx.ship.ShipID)
	assert.Equal(t, 11, mass)
	assert.NoError(t, fx.f.CheckInvariants())
}
