package fleet

import (
	"fmt"

	"github.com/mesh-intelligence/freighter/pkg/types"
)

// CreateMechanicalCrewMember registers a robotic crew member.
func (f *Fleet) CreateMechanicalCrewMember(serialNumber, modelNumber string) (types.CrewMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	m := &types.CrewMember{
		CrewID:       generateUUID(),
		Kind:         types.CrewMechanical,
		SerialNumber: serialNumber,
		ModelNumber:  modelNumber,
	}
	if err := m.ValidateKindAttributes(); err != nil {
		return types.CrewMember{}, f.reject("crew.create", fmt.Errorf("mechanical crew member: %w", err))
	}
	f.g.crew.register(m.CrewID, m)
	f.log.Debug("crew.created", "crew_id", m.CrewID, "kind", m.Kind)
	return cloneCrew(m), nil
}

// CreateOrganicCrewMember registers a living crew member who eats foodType.
func (f *Fleet) CreateOrganicCrewMember(name, foodType string) (types.CrewMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	m := &types.CrewMember{
		CrewID:             generateUUID(),
		Kind:               types.CrewOrganic,
		Name:               name,
		AcceptableFoodType: foodType,
	}
	if err := m.ValidateKindAttributes(); err != nil {
		return types.CrewMember{}, f.reject("crew.create", fmt.Errorf("organic crew member: %w", err))
	}
	f.g.crew.register(m.CrewID, m)
	f.log.Debug("crew.created", "crew_id", m.CrewID, "kind", m.Kind)
	return cloneCrew(m), nil
}

// CrewMember returns a copy of the crew member with the given handle.
func (f *Fleet) CrewMember(id string) (types.CrewMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, err := f.g.crewMember(id)
	if err != nil {
		return types.CrewMember{}, err
	}
	return cloneCrew(m), nil
}

// CrewMembers returns every live crew member in creation order.
func (f *Fleet) CrewMembers() []types.CrewMember {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]types.CrewMember, 0, f.g.crew.len())
	for _, m := range f.g.crew.all() {
		out = append(out, cloneCrew(m))
	}
	return out
}

// updateCrew applies mutate to a copy of the crew member and commits it only
// if the kind attributes still validate.
func (f *Fleet) updateCrew(op, id string, mutate func(*types.CrewMember)) error {
	m, err := f.g.crewMember(id)
	if err != nil {
		return f.reject(op, err)
	}
	next := *m
	mutate(&next)
	if err := next.ValidateKindAttributes(); err != nil {
		return f.reject(op, err)
	}
	*m = next
	return nil
}

// SetCrewName renames an organic crew member.
func (f *Fleet) SetCrewName(id, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updateCrew("crew.rename", id, func(m *types.CrewMember) { m.Name = name })
}

// SetCrewFoodType changes what an organic crew member eats.
func (f *Fleet) SetCrewFoodType(id, foodType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updateCrew("crew.food", id, func(m *types.CrewMember) { m.AcceptableFoodType = foodType })
}

// SetSerialNumber changes a mechanical crew member's serial number.
func (f *Fleet) SetSerialNumber(id, serial string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updateCrew("crew.serial", id, func(m *types.CrewMember) { m.SerialNumber = serial })
}

// SetModelNumber changes a mechanical crew member's model number.
func (f *Fleet) SetModelNumber(id, model string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updateCrew("crew.model", id, func(m *types.CrewMember) { m.ModelNumber = model })
}

// CanJoin reports whether crew member crewID could serve aboard ship shipID.
func (f *Fleet) CanJoin(crewID, shipID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, err := f.g.crewMember(crewID)
	if err != nil {
		return false, err
	}
	s, err := f.g.ship(shipID)
	if err != nil {
		return false, err
	}
	return m.CanJoin(*s), nil
}

// CreateContract signs a contract between a ship and a crew member and
// records it on both. The salary must match the crew member's kind, and a
// ship may hold at most one contract per crew member.
func (f *Fleet) CreateContract(role string, salary *float64, shipID, crewID string) (types.Contract, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := types.RequireNonEmpty(role); err != nil {
		return types.Contract{}, f.reject("contract.create", fmt.Errorf("contract role: %w", err))
	}
	s, err := f.g.ship(shipID)
	if err != nil {
		return types.Contract{}, f.reject("contract.create", err)
	}
	m, err := f.g.crewMember(crewID)
	if err != nil {
		return types.Contract{}, f.reject("contract.create", err)
	}
	if err := m.ValidateSalary(salary); err != nil {
		return types.Contract{}, f.reject("contract.create", fmt.Errorf("contract salary: %w", err))
	}
	if f.g.hasContractWith(s, m.CrewID, "") {
		return types.Contract{}, f.reject("contract.create", types.ErrDuplicateContract)
	}

	ct := &types.Contract{
		ContractID:   generateUUID(),
		Role:         role,
		Salary:       copyFloat(salary),
		ShipID:       s.ShipID,
		CrewMemberID: m.CrewID,
	}
	f.g.contracts.register(ct.ContractID, ct)
	if err := f.g.attachShipContract(s, ct); err != nil {
		f.g.contracts.retire(ct.ContractID)
		return types.Contract{}, f.reject("contract.create", err)
	}
	if err := f.g.attachCrewContract(m, ct); err != nil {
		s.ContractIDs = removeID(s.ContractIDs, ct.ContractID)
		f.g.contracts.retire(ct.ContractID)
		return types.Contract{}, f.reject("contract.create", err)
	}
	f.log.Debug("contract.created", "contract_id", ct.ContractID, "ship_id", shipID, "crew_id", crewID)
	return cloneContract(ct), nil
}

// Contract returns a copy of the live contract with the given handle.
func (f *Fleet) Contract(id string) (types.Contract, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ct, err := f.g.contract(id)
	if err != nil {
		return types.Contract{}, err
	}
	return cloneContract(ct), nil
}

// Contracts returns every live contract in creation order.
func (f *Fleet) Contracts() []types.Contract {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]types.Contract, 0, f.g.contracts.len())
	for _, ct := range f.g.contracts.all() {
		out = append(out, cloneContract(ct))
	}
	return out
}

// SetContractRole changes a contract's role.
func (f *Fleet) SetContractRole(id, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	ct, err := f.g.contract(id)
	if err != nil {
		return f.reject("contract.role", err)
	}
	if err := types.RequireNonEmpty(role); err != nil {
		return f.reject("contract.role", fmt.Errorf("contract role: %w", err))
	}
	ct.Role = role
	return nil
}

// SetContractSalary changes a contract's salary, checked against the crew
// member's kind.
func (f *Fleet) SetContractSalary(id string, salary *float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	ct, err := f.g.contract(id)
	if err != nil {
		return f.reject("contract.salary", err)
	}
	m, err := f.g.crewMember(ct.CrewMemberID)
	if err != nil {
		return f.reject("contract.salary", err)
	}
	if err := m.ValidateSalary(salary); err != nil {
		return f.reject("contract.salary", fmt.Errorf("contract salary: %w", err))
	}
	ct.Salary = copyFloat(salary)
	return nil
}

// AddCrewContract records an existing contract on crew member id.
func (f *Fleet) AddCrewContract(id, contractID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, err := f.g.crewMember(id)
	if err != nil {
		return f.reject("crew.add_contract", err)
	}
	ct, err := f.g.contract(contractID)
	if err != nil {
		return f.reject("crew.add_contract", err)
	}
	if err := f.g.attachCrewContract(m, ct); err != nil {
		return f.reject("crew.add_contract", err)
	}
	return nil
}

// RemoveCrewContract dissolves contract contractID if crew member id holds it.
func (f *Fleet) RemoveCrewContract(id, contractID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, err := f.g.crewMember(id)
	if err != nil {
		return f.reject("crew.remove_contract", err)
	}
	if !containsID(m.ContractIDs, contractID) {
		return nil
	}
	ct, err := f.g.contract(contractID)
	if err != nil {
		return f.reject("crew.remove_contract", err)
	}
	f.g.dissolve(ct)
	f.log.Debug("contract.dissolved", "contract_id", contractID, "crew_id", id)
	return nil
}
