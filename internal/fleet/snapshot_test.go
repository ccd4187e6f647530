package fleet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/freighter/pkg/types"
)

// populate builds a graph that uses every relation.
func populate(t *testing.T) *Fleet {
	t.Helper()
	f := newTestFleet(t)
	require.NoError(t, f.RegisterOwner("zeta"))

	home := mustPeaceful(t, f, "HOM")
	rim := mustDangerous(t, f, "RIM", false, 3)
	aegis := mustShip(t, f, shielded(5))
	ark, err := f.CreateOrganicSupportShip(unprotected(40), []string{types.FoodPlant})
	require.NoError(t, err)
	require.NoError(t, f.SetShipGalaxy(aegis.ShipID, rim.GalaxyID))
	require.NoError(t, f.SetShipGalaxy(ark.ShipID, home.GalaxyID))

	for i, mass := range []int{12, 3, 7} {
		c, err := f.CreateCargo("crate", mass, "acme")
		require.NoError(t, err)
		require.NoError(t, f.SetCargoDestination(c.CargoID, []string{home.GalaxyID, rim.GalaxyID, ""}[i]))
		require.NoError(t, f.AddCargoToShip(aegis.ShipID, c.CargoID))
	}
	loose, err := f.CreateCargo("spare", 1, "zeta")
	require.NoError(t, err)
	require.NoError(t, f.SetCargoDestination(loose.CargoID, home.GalaxyID))

	robot, _ := f.CreateMechanicalCrewMember("SN-1", "R2")
	human, _ := f.CreateOrganicCrewMember("Ripley", types.FoodPlant)
	_, err = f.CreateContract("engineer", nil, aegis.ShipID, robot.CrewID)
	require.NoError(t, err)
	_, err = f.CreateContract("pilot", floatPtr(42.5), ark.ShipID, human.CrewID)
	require.NoError(t, err)
	_, err = f.CreateContract("mechanic", nil, ark.ShipID, robot.CrewID)
	require.NoError(t, err)
	require.NoError(t, f.CheckInvariants())
	return f
}

func TestExportImportRoundTrip(t *testing.T) {
	src := populate(t)
	snap := src.Export()

	assert.Equal(t, []string{"acme", "zeta"}, snap.Owners)
	assert.Len(t, snap.Galaxies, 2)
	assert.Len(t, snap.Ships, 2)
	assert.Len(t, snap.Cargo, 4)
	assert.Len(t, snap.Crew, 2)
	assert.Len(t, snap.Contracts, 3)

	dst := New()
	require.NoError(t, dst.Import(snap))
	assert.Equal(t, snap, dst.Export())
	assert.NoError(t, dst.CheckInvariants())

	// The imported graph is live: rules still apply.
	_, err := dst.CreatePeacefulGalaxy("Copy", "HOM", epoch)
	assert.ErrorIs(t, err, types.ErrDuplicateGalaxyCode)
	assert.ErrorIs(t, dst.DeregisterOwner("zeta"), types.ErrOwnerHasCargo)
}

func TestImportRebuildsReciprocalLists(t *testing.T) {
	snap := populate(t).Export()
	for i := range snap.Galaxies {
		snap.Galaxies[i].ShipIDs = nil
		snap.Galaxies[i].CargoIDs = nil
	}
	for i := range snap.Ships {
		snap.Ships[i].CargoIDs = nil
		snap.Ships[i].ContractIDs = nil
	}
	for i := range snap.Crew {
		snap.Crew[i].ContractIDs = nil
	}

	f := New()
	require.NoError(t, f.Import(snap))
	assert.NoError(t, f.CheckInvariants())

	for _, s := range f.Ships() {
		if s.GalaxyID == "" {
			continue
		}
		gx, err := f.Galaxy(s.GalaxyID)
		require.NoError(t, err)
		assert.Contains(t, gx.ShipIDs, s.ShipID)
	}
	for _, c := range f.AllCargo() {
		if c.ShipID != "" {
			s, _ := f.Ship(c.ShipID)
			assert.Contains(t, s.CargoIDs, c.CargoID)
		}
	}
	assert.Len(t, f.Contracts(), 3)
}

func TestImportRejectsBrokenSnapshots(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(s *types.Snapshot)
		wantErr error
	}{
		{
			name:    "duplicate galaxy code",
			corrupt: func(s *types.Snapshot) { s.Galaxies[1].Code = s.Galaxies[0].Code },
			wantErr: types.ErrDuplicateGalaxyCode,
		},
		{
			name:    "cargo owned by unregistered owner",
			corrupt: func(s *types.Snapshot) { s.Owners = []string{"acme"} },
			wantErr: types.ErrUnregisteredOwner,
		},
		{
			name:    "ship over capacity",
			corrupt: func(s *types.Snapshot) { s.Ships[0].MaxCargoMass = 1 },
			wantErr: types.ErrCargoOverCapacity,
		},
		{
			name: "aboard mass past math.MaxInt",
			corrupt: func(s *types.Snapshot) {
				s.Ships[0].MaxCargoMass = math.MaxInt
				s.Cargo[0].Mass = math.MaxInt
				s.Cargo[1].Mass = math.MaxInt
			},
			wantErr: types.ErrCargoOverCapacity,
		},
		{
			name:    "cargo bound for unknown galaxy",
			corrupt: func(s *types.Snapshot) { s.Cargo[0].DestinationID = "missing" },
			wantErr: types.ErrNotFound,
		},
		{
			name:    "reciprocal list disagrees with forward references",
			corrupt: func(s *types.Snapshot) { s.Ships[0].CargoIDs = s.Ships[0].CargoIDs[:1] },
			wantErr: types.ErrAsymmetricLink,
		},
		{
			name: "duplicate contract",
			corrupt: func(s *types.Snapshot) {
				dup := s.Contracts[0]
				dup.ContractID = "dup"
				s.Contracts = append(s.Contracts, dup)
				s.Ships[0].ContractIDs = append(s.Ships[0].ContractIDs, "dup")
				s.Crew[0].ContractIDs = append(s.Crew[0].ContractIDs, "dup")
			},
			wantErr: types.ErrDuplicateContract,
		},
		{
			name:    "duplicate handle",
			corrupt: func(s *types.Snapshot) { s.Cargo[1].CargoID = s.Cargo[0].CargoID },
			wantErr: types.ErrDuplicateHandle,
		},
		{
			name:    "galaxy in both modes",
			corrupt: func(s *types.Snapshot) { s.Galaxies[0].AtWar = new(bool) },
			wantErr: types.ErrValidation,
		},
		{
			name:    "mechanical crew with salary",
			corrupt: func(s *types.Snapshot) { s.Contracts[0].Salary = floatPtr(1) },
			wantErr: types.ErrSalaryForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := populate(t).Export()
			tt.corrupt(&snap)

			f := newTestFleet(t)
			before := f.Export()
			err := f.Import(snap)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, f.Export(), "failed import leaves the fleet unchanged")
		})
	}
}
