package fleet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/freighter/pkg/types"
)

func TestCreateCrewMember(t *testing.T) {
	f := New()

	robot, err := f.CreateMechanicalCrewMember("SN-1", "R2")
	require.NoError(t, err)
	assert.Equal(t, types.CrewMechanical, robot.Kind)

	human, err := f.CreateOrganicCrewMember("Ripley", types.FoodPlant)
	require.NoError(t, err)
	assert.Equal(t, types.CrewOrganic, human.Kind)

	_, err = f.CreateMechanicalCrewMember("", "R2")
	assert.ErrorIs(t, err, types.ErrEmptyString)
	_, err = f.CreateOrganicCrewMember("Ripley", "nectar")
	assert.ErrorIs(t, err, types.ErrInvalidFoodType)

	assert.Len(t, f.CrewMembers(), 2)
}

func TestCrewSetters(t *testing.T) {
	f := New()
	robot, _ := f.CreateMechanicalCrewMember("SN-1", "R2")
	human, _ := f.CreateOrganicCrewMember("Ripley", types.FoodPlant)

	require.NoError(t, f.SetSerialNumber(robot.CrewID, "SN-2"))
	require.NoError(t, f.SetModelNumber(robot.CrewID, "R3"))
	require.NoError(t, f.SetCrewName(human.CrewID, "Dallas"))
	require.NoError(t, f.SetCrewFoodType(human.CrewID, types.FoodMeat))

	assert.ErrorIs(t, f.SetCrewName(robot.CrewID, "Bishop"), types.ErrWrongCrewKind)
	assert.ErrorIs(t, f.SetSerialNumber(human.CrewID, "SN-9"), types.ErrWrongCrewKind)
	assert.ErrorIs(t, f.SetCrewFoodType(human.CrewID, "nectar"), types.ErrInvalidFoodType)

	gotRobot, _ := f.CrewMember(robot.CrewID)
	gotHuman, _ := f.CrewMember(human.CrewID)
	assert.Equal(t, "SN-2", gotRobot.SerialNumber)
	assert.Equal(t, "R3", gotRobot.ModelNumber)
	assert.Empty(t, gotRobot.Name)
	assert.Equal(t, "Dallas", gotHuman.Name)
	assert.Equal(t, types.FoodMeat, gotHuman.AcceptableFoodType)
}

func TestCanJoin(t *testing.T) {
	f := New()
	meatShip, err := f.CreateOrganicSupportShip(unprotected(10), []string{types.FoodMeat})
	require.NoError(t, err)
	mixedShip, err := f.CreateOrganicSupportShip(unprotected(10), []string{types.FoodPlant, types.FoodMeat})
	require.NoError(t, err)
	aiShip := mustShip(t, f, unprotected(10))
	vegan, _ := f.CreateOrganicCrewMember("Ripley", types.FoodPlant)
	robot, _ := f.CreateMechanicalCrewMember("SN-1", "R2")

	tests := []struct {
		name   string
		crewID string
		shipID string
		want   bool
	}{
		{name: "organic on ship without its food", crewID: vegan.CrewID, shipID: meatShip.ShipID, want: false},
		{name: "organic on ship with its food", crewID: vegan.CrewID, shipID: mixedShip.ShipID, want: true},
		{name: "organic on no-life-support ship", crewID: vegan.CrewID, shipID: aiShip.ShipID, want: false},
		{name: "mechanical on organic ship", crewID: robot.CrewID, shipID: meatShip.ShipID, want: true},
		{name: "mechanical on no-life-support ship", crewID: robot.CrewID, shipID: aiShip.ShipID, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.CanJoin(tt.crewID, tt.shipID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateContractSalaryRules(t *testing.T) {
	tests := []struct {
		name    string
		organic bool
		salary  *float64
		wantErr error
	}{
		{name: "mechanical with salary", organic: false, salary: floatPtr(50.0), wantErr: types.ErrSalaryForbidden},
		{name: "mechanical without salary", organic: false, salary: nil},
		{name: "organic with salary", organic: true, salary: floatPtr(50.0)},
		{name: "organic with zero salary", organic: true, salary: floatPtr(0)},
		{name: "organic without salary", organic: true, salary: nil, wantErr: types.ErrSalaryRequired},
		{name: "organic with negative salary", organic: true, salary: floatPtr(-1), wantErr: types.ErrNegativeReal},
		{name: "organic with infinite salary", organic: true, salary: floatPtr(math.Inf(1)), wantErr: types.ErrNegativeReal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New()
			s := mustShip(t, f, unprotected(10))
			var m types.CrewMember
			if tt.organic {
				m, _ = f.CreateOrganicCrewMember("Ripley", types.FoodPlant)
			} else {
				m, _ = f.CreateMechanicalCrewMember("SN-1", "R2")
			}

			ct, err := f.CreateContract("pilot", tt.salary, s.ShipID, m.CrewID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, types.ErrValidation)
				assert.Empty(t, f.Contracts())
				gotShip, _ := f.Ship(s.ShipID)
				assert.Empty(t, gotShip.ContractIDs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.salary, ct.Salary)

			gotShip, _ := f.Ship(s.ShipID)
			gotCrew, _ := f.CrewMember(m.CrewID)
			assert.Equal(t, []string{ct.ContractID}, gotShip.ContractIDs)
			assert.Equal(t, []string{ct.ContractID}, gotCrew.ContractIDs)
			assert.NoError(t, f.CheckInvariants())
		})
	}
}

func TestContractUniqueness(t *testing.T) {
	f := New()
	s := mustShip(t, f, unprotected(10))
	other := mustShip(t, f, unprotected(10))
	robot, _ := f.CreateMechanicalCrewMember("SN-1", "R2")

	_, err := f.CreateContract("pilot", nil, s.ShipID, robot.CrewID)
	require.NoError(t, err)

	_, err = f.CreateContract("cook", nil, s.ShipID, robot.CrewID)
	assert.ErrorIs(t, err, types.ErrDuplicateContract)
	assert.ErrorIs(t, err, types.ErrConflict)
	assert.Len(t, f.Contracts(), 1)

	_, err = f.CreateContract("pilot", nil, other.ShipID, robot.CrewID)
	require.NoError(t, err, "the same crew member may serve another ship")

	_, err = f.CreateContract("", nil, other.ShipID, robot.CrewID)
	assert.ErrorIs(t, err, types.ErrEmptyString)
	_, err = f.CreateContract("pilot", nil, "", robot.CrewID)
	assert.ErrorIs(t, err, types.ErrMissingReference)

	assert.NoError(t, f.CheckInvariants())
}

func TestContractAttachRules(t *testing.T) {
	f := New()
	s := mustShip(t, f, unprotected(10))
	other := mustShip(t, f, unprotected(10))
	robot, _ := f.CreateMechanicalCrewMember("SN-1", "R2")
	droid, _ := f.CreateMechanicalCrewMember("SN-2", "R2")
	ct, err := f.CreateContract("pilot", nil, s.ShipID, robot.CrewID)
	require.NoError(t, err)

	require.NoError(t, f.AddShipContract(s.ShipID, ct.ContractID), "already recorded: no-op")
	require.NoError(t, f.AddCrewContract(robot.CrewID, ct.ContractID), "already recorded: no-op")
	assert.ErrorIs(t, f.AddShipContract(other.ShipID, ct.ContractID), types.ErrContractMismatch)
	assert.ErrorIs(t, f.AddCrewContract(droid.CrewID, ct.ContractID), types.ErrContractMismatch)
	assert.NoError(t, f.CheckInvariants())
}

func TestDissolveContract(t *testing.T) {
	for _, side := range []string{"ship", "crew"} {
		t.Run("from "+side, func(t *testing.T) {
			f := New()
			s := mustShip(t, f, unprotected(10))
			m, _ := f.CreateOrganicCrewMember("Ripley", types.FoodPlant)
			ct, err := f.CreateContract("pilot", floatPtr(10), s.ShipID, m.CrewID)
			require.NoError(t, err)

			if side == "ship" {
				require.NoError(t, f.RemoveShipContract(s.ShipID, ct.ContractID))
			} else {
				require.NoError(t, f.RemoveCrewContract(m.CrewID, ct.ContractID))
			}

			gotShip, _ := f.Ship(s.ShipID)
			gotCrew, _ := f.CrewMember(m.CrewID)
			assert.Empty(t, gotShip.ContractIDs)
			assert.Empty(t, gotCrew.ContractIDs)
			_, err = f.Contract(ct.ContractID)
			assert.ErrorIs(t, err, types.ErrNotFound, "a dissolved contract is retired")
			assert.NoError(t, f.CheckInvariants())

			// A new contract between the same parties is allowed again.
			_, err = f.CreateContract("pilot", floatPtr(12), s.ShipID, m.CrewID)
			assert.NoError(t, err)
		})
	}
}

func TestContractSetters(t *testing.T) {
	f := New()
	s := mustShip(t, f, unprotected(10))
	robot, _ := f.CreateMechanicalCrewMember("SN-1", "R2")
	human, _ := f.CreateOrganicCrewMember("Ripley", types.FoodPlant)
	mech, _ := f.CreateContract("engineer", nil, s.ShipID, robot.CrewID)
	org, _ := f.CreateContract("pilot", floatPtr(10), s.ShipID, human.CrewID)

	require.NoError(t, f.SetContractRole(mech.ContractID, "navigator"))
	assert.ErrorIs(t, f.SetContractRole(mech.ContractID, ""), types.ErrEmptyString)
	assert.ErrorIs(t, f.SetContractSalary(mech.ContractID, floatPtr(1)), types.ErrSalaryForbidden)
	assert.ErrorIs(t, f.SetContractSalary(org.ContractID, nil), types.ErrSalaryRequired)
	require.NoError(t, f.SetContractSalary(org.ContractID, floatPtr(25)))

	gotMech, _ := f.Contract(mech.ContractID)
	gotOrg, _ := f.Contract(org.ContractID)
	assert.Equal(t, "navigator", gotMech.Role)
	assert.Nil(t, gotMech.Salary)
	require.NotNil(t, gotOrg.Salary)
	assert.InDelta(t, 25.0, *gotOrg.Salary, 1e-9)
}
