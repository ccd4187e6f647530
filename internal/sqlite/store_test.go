package sqlite

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/freighter/internal/fleet"
	"github.com/mesh-intelligence/freighter/pkg/types"
)

func attachStore(t *testing.T, dir string) *Store {
	t.Helper()
	s := NewStore()
	require.NoError(t, s.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	t.Cleanup(func() { _ = s.Detach() })
	return s
}

// sampleSnapshot builds a small graph with every relation populated.
func sampleSnapshot(t *testing.T) types.Snapshot {
	t.Helper()
	f := fleet.New()
	require.NoError(t, f.RegisterOwner("acme"))
	require.NoError(t, f.RegisterOwner("zeta"))

	home, err := f.CreatePeacefulGalaxy("Home", "HOM", time.Date(2301, 4, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	rim, err := f.CreateDangerousGalaxy("Rim", "RIM", false, 3)
	require.NoError(t, err)

	strength := 5
	hauler, err := f.CreateNoLifeSupportShip(types.ShipParams{
		Name: "Aegis", MaxCargoMass: 100, Type: types.ShipShielded, SolarFlareShieldStrength: &strength,
	}, "HAL")
	require.NoError(t, err)
	ark, err := f.CreateOrganicSupportShip(types.ShipParams{
		Name: "Ark", MaxCargoMass: 40, Type: types.ShipNoProtection,
	}, []string{types.FoodPlant, types.FoodMeat})
	require.NoError(t, err)
	require.NoError(t, f.SetShipGalaxy(hauler.ShipID, rim.GalaxyID))

	grain, err := f.CreateCargo("grain", 12, "acme")
	require.NoError(t, err)
	require.NoError(t, f.SetCargoDestination(grain.CargoID, home.GalaxyID))
	require.NoError(t, f.AddCargoToShip(hauler.ShipID, grain.CargoID))
	_, err = f.CreateCargo("spare", 1, "zeta")
	require.NoError(t, err)

	robot, err := f.CreateMechanicalCrewMember("SN-1", "R2")
	require.NoError(t, err)
	human, err := f.CreateOrganicCrewMember("Ripley", types.FoodPlant)
	require.NoError(t, err)
	salary := 42.5
	_, err = f.CreateContract("engineer", nil, hauler.ShipID, robot.CrewID)
	require.NoError(t, err)
	_, err = f.CreateContract("pilot", &salary, ark.ShipID, human.CrewID)
	require.NoError(t, err)

	return f.Export()
}

func TestAttachCreatesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	attachStore(t, dir)

	for _, name := range []string{ownersJSONL, galaxiesJSONL, shipsJSONL, cargoJSONL, crewJSONL, contractsJSONL, DatabaseFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestAttachTwice(t *testing.T) {
	s := attachStore(t, t.TempDir())
	err := s.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})
	assert.ErrorIs(t, err, types.ErrAlreadyAttached)
}

func TestAttachRejectsBadConfig(t *testing.T) {
	s := NewStore()
	assert.ErrorIs(t, s.Attach(types.Config{DataDir: t.TempDir()}), types.ErrBackendEmpty)
	assert.ErrorIs(t, s.Attach(types.Config{Backend: "mongo", DataDir: t.TempDir()}), types.ErrBackendUnknown)
}

func TestDetachedStore(t *testing.T) {
	s := NewStore()
	assert.NoError(t, s.Detach())

	_, err := s.Load()
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	assert.ErrorIs(t, s.Save(types.Snapshot{}), types.ErrStoreDetached)
	_, err = s.Counts()
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	_, err = s.CargoByOwner("acme")
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}

func TestEmptyStoreLoadsEmptySnapshot(t *testing.T) {
	s := attachStore(t, t.TempDir())
	snap, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, types.Snapshot{}, snap)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := attachStore(t, t.TempDir())
	want := sampleSnapshot(t)

	require.NoError(t, s.Save(want))
	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	f := fleet.New()
	require.NoError(t, f.Import(got))
	assert.NoError(t, f.CheckInvariants())
}

func TestSaveLoadKeepsLargeNumbersExact(t *testing.T) {
	s := attachStore(t, t.TempDir())
	f := fleet.New()
	require.NoError(t, f.RegisterOwner("acme"))
	ship, err := f.CreateOrganicSupportShip(types.ShipParams{
		Name: "Titan", MaxCargoMass: math.MaxInt, Type: types.ShipNoProtection,
	}, []string{types.FoodPlant})
	require.NoError(t, err)
	c, err := f.CreateCargo("core", 1<<53+1, "acme")
	require.NoError(t, err)
	require.NoError(t, f.AddCargoToShip(ship.ShipID, c.CargoID))
	human, err := f.CreateOrganicCrewMember("Ripley", types.FoodPlant)
	require.NoError(t, err)
	salary := 40.0
	_, err = f.CreateContract("pilot", &salary, ship.ShipID, human.CrewID)
	require.NoError(t, err)
	want := f.Export()

	require.NoError(t, s.Save(want))
	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	require.Len(t, got.Cargo, 1)
	assert.Equal(t, 1<<53+1, got.Cargo[0].Mass)
	assert.Equal(t, math.MaxInt, got.Ships[0].MaxCargoMass)
}

func TestSaveReplacesPreviousContents(t *testing.T) {
	s := attachStore(t, t.TempDir())
	require.NoError(t, s.Save(sampleSnapshot(t)))
	require.NoError(t, s.Save(types.Snapshot{Owners: []string{"solo"}}))

	counts, err := s.Counts()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		types.OwnersTable:    1,
		types.GalaxiesTable:  0,
		types.ShipsTable:     0,
		types.CargoTable:     0,
		types.CrewTable:      0,
		types.ContractsTable: 0,
	}, counts)
}

func TestPersistsAcrossReattach(t *testing.T) {
	dir := t.TempDir()
	want := sampleSnapshot(t)

	first := NewStore()
	require.NoError(t, first.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	require.NoError(t, first.Save(want))
	require.NoError(t, first.Detach())

	second := attachStore(t, dir)
	got, err := second.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCounts(t *testing.T) {
	s := attachStore(t, t.TempDir())
	require.NoError(t, s.Save(sampleSnapshot(t)))

	counts, err := s.Counts()
	require.NoError(t, err)
	assert.Equal(t, 2, counts[types.OwnersTable])
	assert.Equal(t, 2, counts[types.GalaxiesTable])
	assert.Equal(t, 2, counts[types.ShipsTable])
	assert.Equal(t, 2, counts[types.CargoTable])
	assert.Equal(t, 2, counts[types.CrewTable])
	assert.Equal(t, 2, counts[types.ContractsTable])
}

func TestCargoByOwner(t *testing.T) {
	s := attachStore(t, t.TempDir())
	require.NoError(t, s.Save(sampleSnapshot(t)))

	tests := []struct {
		owner string
		want  []string
	}{
		{"acme", []string{"grain"}},
		{"zeta", []string{"spare"}},
		{"nobody", nil},
	}
	for _, tt := range tests {
		t.Run(tt.owner, func(t *testing.T) {
			cargo, err := s.CargoByOwner(tt.owner)
			require.NoError(t, err)
			var names []string
			for _, c := range cargo {
				names = append(names, c.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestAttachSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	content := "{\"owner\":\"acme\"}\nnot json\n\n{\"owner\":\"zeta\",\"extra\":1}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ownersJSONL), []byte(content), 0o644))

	s := attachStore(t, dir)
	snap, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"acme", "zeta"}, snap.Owners)
}

func TestAttachFailsOnDuplicateRows(t *testing.T) {
	dir := t.TempDir()
	content := "{\"owner\":\"acme\"}\n{\"owner\":\"acme\"}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ownersJSONL), []byte(content), 0o644))

	s := NewStore()
	assert.Error(t, s.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
}

func TestWriteJSONLReplacesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.jsonl")
	require.NoError(t, writeJSONL(path, nil))
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0o644))

	records, err := marshalRecords([]ownerJSON{{Owner: "a"}, {Owner: "b"}})
	require.NoError(t, err)
	require.NoError(t, writeJSONL(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"owner\":\"a\"}\n{\"owner\":\"b\"}\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}
