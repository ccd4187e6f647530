package types

// Crew member kinds.
const (
	CrewMechanical = "mechanical"
	CrewOrganic    = "organic"
)

// CrewMember works aboard ships under contracts. Mechanical members carry a
// serial and model number; organic members carry a name and the food type
// they can eat.
type CrewMember struct {
	CrewID             string   `json:"crew_id"`
	Kind               string   `json:"kind"`
	SerialNumber       string   `json:"serial_number,omitempty"`
	ModelNumber        string   `json:"model_number,omitempty"`
	Name               string   `json:"name,omitempty"`
	AcceptableFoodType string   `json:"acceptable_food_type,omitempty"`
	ContractIDs        []string `json:"contract_ids,omitempty"`
}

// CanJoin reports whether the crew member can serve aboard s. Mechanical
// crew can join any ship; organic crew need an organic support ship that
// carries their food.
func (c CrewMember) CanJoin(s Ship) bool {
	switch c.Kind {
	case CrewMechanical:
		return true
	case CrewOrganic:
		return s.SupportsFood(c.AcceptableFoodType)
	default:
		return false
	}
}

// ValidateSalary checks a contract salary against the crew member's kind.
// Mechanical crew are never paid; organic crew are always paid a
// non-negative amount.
func (c CrewMember) ValidateSalary(salary *float64) error {
	switch c.Kind {
	case CrewMechanical:
		if salary != nil {
			return ErrSalaryForbidden
		}
		return nil
	case CrewOrganic:
		if salary == nil {
			return ErrSalaryRequired
		}
		return RequireNonNegativeReal(*salary)
	default:
		return ErrWrongCrewKind
	}
}

// ValidateKindAttributes checks the attributes owned by the crew member's kind.
func (c CrewMember) ValidateKindAttributes() error {
	switch c.Kind {
	case CrewMechanical:
		if c.Name != "" || c.AcceptableFoodType != "" {
			return ErrWrongCrewKind
		}
		if err := RequireNonEmpty(c.SerialNumber); err != nil {
			return err
		}
		return RequireNonEmpty(c.ModelNumber)
	case CrewOrganic:
		if c.SerialNumber != "" || c.ModelNumber != "" {
			return ErrWrongCrewKind
		}
		if err := RequireNonEmpty(c.Name); err != nil {
			return err
		}
		if !ValidFoodType(c.AcceptableFoodType) {
			return ErrInvalidFoodType
		}
		return nil
	default:
		return ErrWrongCrewKind
	}
}

// Contract employs one crew member aboard one ship.
type Contract struct {
	ContractID   string   `json:"contract_id"`
	Role         string   `json:"role"`
	Salary       *float64 `json:"salary,omitempty"`
	ShipID       string   `json:"ship_id"`
	CrewMemberID string   `json:"crew_member_id"`
}
