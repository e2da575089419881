package dice

// Geometry holds the die sizes for the two- and three-dice layouts.
type Geometry struct {
	TwoDiceSize   int
	ThreeDiceSize int
}

// DefaultGeometry matches the 160x128 display of the handheld.
func DefaultGeometry() Geometry {
	return Geometry{
		TwoDiceSize:   70,
		ThreeDiceSize: 50,
	}
}

// Die is a single die on screen.
type Die struct {
	Role    Role
	Face    int
	Size    int
	DotSize int
}

// variantDice lists the dice rolled for each variant, in render order.
var variantDice = [numVariants][]Role{
	VariantBase:                 {RolePrimaryWhite, RolePrimaryRed},
	VariantCitiesAndKnights:     {RolePrimaryWhite, RolePrimaryRed, RoleEventCastle},
	VariantTradersAndBarbarians: {RolePrimaryWhite, RolePrimaryRed, RoleEventColor},
}

// DiceSetComposer decides which dice take part in a roll and keeps their
// geometry in sync with the active variant.
type DiceSetComposer struct {
	rng      *RandomSource
	geometry Geometry
	dice     [4]Die
}

// NewDiceSetComposer creates a composer for variant.
func NewDiceSetComposer(rng *RandomSource, geometry Geometry, variant GameVariant) *DiceSetComposer {
	c := &DiceSetComposer{rng: rng, geometry: geometry}
	for _, role := range []Role{RolePrimaryWhite, RolePrimaryRed, RoleEventColor, RoleEventCastle} {
		c.dice[role] = Die{Role: role, Face: MaxFace}
	}
	c.SetVariant(variant)
	return c
}

// ActiveDice returns the roles rolled for variant, in render order.
func (c *DiceSetComposer) ActiveDice(variant GameVariant) []Role {
	roles := variantDice[variant.normalized()]
	out := make([]Role, len(roles))
	copy(out, roles)
	return out
}

// EventRole returns the third die's role for variant, if it has one.
func (c *DiceSetComposer) EventRole(variant GameVariant) (Role, bool) {
	switch variant {
	case VariantCitiesAndKnights:
		return RoleEventCastle, true
	case VariantTradersAndBarbarians:
		return RoleEventColor, true
	default:
		return 0, false
	}
}

// DrawEventDie returns a uniform face for the event die. It never affects
// statistics.
func (c *DiceSetComposer) DrawEventDie() int {
	return c.rng.NextFace()
}

// SetVariant resizes every die for the layout used by variant.
func (c *DiceSetComposer) SetVariant(variant GameVariant) {
	size := c.geometry.TwoDiceSize
	if variant.HasEventDie() {
		size = c.geometry.ThreeDiceSize
	}
	for i := range c.dice {
		c.dice[i].Size = size
		c.dice[i].DotSize = dotSize(c.dice[i].Role, size)
	}
}

func dotSize(role Role, size int) int {
	switch {
	case role.IsPrimary():
		return size / 10
	case role == RoleEventColor:
		return size / 3
	default:
		return 0
	}
}

// SetFace updates the face shown for role.
func (c *DiceSetComposer) SetFace(role Role, face int) {
	c.dice[role].Face = face
}

// Dice returns the dice to render for variant, with their current faces.
func (c *DiceSetComposer) Dice(variant GameVariant) []Die {
	roles := variantDice[variant.normalized()]
	out := make([]Die, len(roles))
	for i, role := range roles {
		out[i] = c.dice[role]
	}
	return out
}
