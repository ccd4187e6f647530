package types

// Ship protection types.
const (
	ShipShielded     = "shielded"
	ShipNoProtection = "no_protection"
)

// Ship kinds. The kind is a closed tag; kind-specific attributes live on the
// Ship struct and are only meaningful for their kind.
const (
	ShipKindNoLifeSupport  = "no_life_support"
	ShipKindOrganicSupport = "organic_support"
)

// Food types carried by organic support ships and eaten by organic crew.
const (
	FoodPlant     = "plant"
	FoodMeat      = "meat"
	FoodMineral   = "mineral"
	FoodSynthetic = "synthetic"
)

var validFoodTypes = map[string]bool{
	FoodPlant:     true,
	FoodMeat:      true,
	FoodMineral:   true,
	FoodSynthetic: true,
}

// ValidFoodType reports whether f is a recognized food type.
func ValidFoodType(f string) bool { return validFoodTypes[f] }

// ShipParams holds the attributes shared by every ship kind.
type ShipParams struct {
	Name                     string
	MaxCargoMass             int
	Type                     string
	SolarFlareShieldStrength *int
}

// Validate checks the shared ship attributes, including the cross-constraint
// between Type and SolarFlareShieldStrength.
func (p ShipParams) Validate() error {
	if err := RequireNonEmpty(p.Name); err != nil {
		return err
	}
	if err := RequirePositiveInt(p.MaxCargoMass); err != nil {
		return err
	}
	switch p.Type {
	case ShipShielded:
		if p.SolarFlareShieldStrength == nil {
			return ErrShieldRequired
		}
		return RequireNonNegativeInt(*p.SolarFlareShieldStrength)
	case ShipNoProtection:
		if p.SolarFlareShieldStrength != nil {
			return ErrShieldForbidden
		}
		return nil
	default:
		return ErrInvalidShipType
	}
}

// Ship carries cargo between galaxies and employs crew through contracts.
type Ship struct {
	ShipID                   string   `json:"ship_id"`
	Kind                     string   `json:"kind"`
	Name                     string   `json:"name"`
	MaxCargoMass             int      `json:"max_cargo_mass"`
	Type                     string   `json:"type"`
	SolarFlareShieldStrength *int     `json:"solar_flare_shield_strength,omitempty"`
	AIType                   string   `json:"ai_type,omitempty"`
	FoodTypes                []string `json:"food_types,omitempty"`
	GalaxyID                 string   `json:"galaxy_id,omitempty"`
	CargoIDs                 []string `json:"cargo_ids,omitempty"`
	ContractIDs              []string `json:"contract_ids,omitempty"`
}

// Params returns the shared attributes of s.
func (s Ship) Params() ShipParams {
	return ShipParams{
		Name:                     s.Name,
		MaxCargoMass:             s.MaxCargoMass,
		Type:                     s.Type,
		SolarFlareShieldStrength: s.SolarFlareShieldStrength,
	}
}

// ShieldStrength returns the solar flare shield strength.
// Returns ErrNotShielded for unprotected ships.
func (s Ship) ShieldStrength() (int, error) {
	if s.Type != ShipShielded || s.SolarFlareShieldStrength == nil {
		return 0, ErrNotShielded
	}
	return *s.SolarFlareShieldStrength, nil
}

// SupportsFood reports whether the ship can feed crew that eat f.
// Only organic support ships carry food.
func (s Ship) SupportsFood(f string) bool {
	if s.Kind != ShipKindOrganicSupport {
		return false
	}
	for _, ft := range s.FoodTypes {
		if ft == f {
			return true
		}
	}
	return false
}

// CanEnter reports whether the ship may travel to g. Shielded ships enter
// any peaceful galaxy and dangerous galaxies that are not at war and whose
// solar flares do not exceed the shield. Unprotected ships enter only
// peaceful galaxies.
func (s Ship) CanEnter(g Galaxy) bool {
	if g.Type == GalaxyPeaceful {
		return true
	}
	if s.Type != ShipShielded {
		return false
	}
	atWar, err := g.War()
	if err != nil || atWar {
		return false
	}
	flare, err := g.FlareStrength()
	if err != nil {
		return false
	}
	shield, err := s.ShieldStrength()
	if err != nil {
		return false
	}
	return flare <= shield
}

// ValidateKindAttributes checks the attributes owned by the ship's kind.
func (s Ship) ValidateKindAttributes() error {
	switch s.Kind {
	case ShipKindNoLifeSupport:
		if len(s.FoodTypes) != 0 {
			return ErrWrongShipKind
		}
		return RequireNonEmpty(s.AIType)
	case ShipKindOrganicSupport:
		if s.AIType != "" {
			return ErrWrongShipKind
		}
		return ValidateFoodTypes(s.FoodTypes)
	default:
		return ErrWrongShipKind
	}
}

// ValidateFoodTypes checks that every entry is a recognized food type.
func ValidateFoodTypes(foods []string) error {
	for _, f := range foods {
		if !ValidFoodType(f) {
			return ErrInvalidFoodType
		}
	}
	return nil
}
