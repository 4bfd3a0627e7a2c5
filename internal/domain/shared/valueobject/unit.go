package valueobject

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spicetrade/backend/internal/domain/shared"
)

// UnitCode identifies a unit of measure from the closed set the business
// trades in. Conversion is only defined within a measurement family.
type UnitCode string

const (
	UnitKg   UnitCode = "kg"
	UnitG    UnitCode = "g"
	UnitLb   UnitCode = "lb"
	UnitOz   UnitCode = "oz"
	UnitL    UnitCode = "l"
	UnitMl   UnitCode = "ml"
	UnitPcs  UnitCode = "pcs"
	UnitBox  UnitCode = "box"
	UnitPack UnitCode = "pack"
	UnitBag  UnitCode = "bag"
)

// UnitFamily groups units that can be converted between each other
type UnitFamily string

const (
	FamilyMass   UnitFamily = "mass"   // base unit: gram
	FamilyVolume UnitFamily = "volume" // base unit: milliliter
	FamilyCount  UnitFamily = "count"  // no conversion between members
)

// baseEquivalents maps each convertible unit to its base-unit equivalent
// (grams for mass, milliliters for volume). Count units have no entry.
var baseEquivalents = map[UnitCode]decimal.Decimal{
	UnitKg: decimal.NewFromInt(1000),
	UnitG:  decimal.NewFromInt(1),
	UnitLb: decimal.RequireFromString("453.592"),
	UnitOz: decimal.RequireFromString("28.3495"),
	UnitL:  decimal.NewFromInt(1000),
	UnitMl: decimal.NewFromInt(1),
}

var unitFamilies = map[UnitCode]UnitFamily{
	UnitKg:   FamilyMass,
	UnitG:    FamilyMass,
	UnitLb:   FamilyMass,
	UnitOz:   FamilyMass,
	UnitL:    FamilyVolume,
	UnitMl:   FamilyVolume,
	UnitPcs:  FamilyCount,
	UnitBox:  FamilyCount,
	UnitPack: FamilyCount,
	UnitBag:  FamilyCount,
}

var thousand = decimal.NewFromInt(1000)

// ParseUnitCode normalizes and validates a unit code string
func ParseUnitCode(s string) (UnitCode, error) {
	code := UnitCode(strings.ToLower(strings.TrimSpace(s)))
	if !code.IsValid() {
		return "", shared.NewDomainError("INVALID_UNIT", "Unknown unit code: "+s)
	}
	return code, nil
}

// IsValid checks if the code belongs to the closed unit set
func (u UnitCode) IsValid() bool {
	_, ok := unitFamilies[u]
	return ok
}

// Family returns the measurement family of the unit
func (u UnitCode) Family() UnitFamily {
	return unitFamilies[u]
}

// String returns the string representation of the unit code
func (u UnitCode) String() string {
	return string(u)
}

// AllUnitCodes returns every valid unit code, mass then volume then count
func AllUnitCodes() []UnitCode {
	return []UnitCode{UnitKg, UnitG, UnitLb, UnitOz, UnitL, UnitMl, UnitPcs, UnitBox, UnitPack, UnitBag}
}

// ConvertUnit converts a quantity between two units of the same family.
// Same-unit conversion is an exact identity. The kg/g pair converts by a
// straight factor of 1000 rather than the generic base-unit path, so round
// trips between the two stay exact. Count units only permit identity.
// Full precision is preserved; callers round for display.
func ConvertUnit(value decimal.Decimal, from, to UnitCode) (decimal.Decimal, error) {
	if !from.IsValid() {
		return decimal.Zero, shared.NewDomainError("INVALID_UNIT", "Unknown source unit: "+from.String())
	}
	if !to.IsValid() {
		return decimal.Zero, shared.NewDomainError("INVALID_UNIT", "Unknown target unit: "+to.String())
	}
	if from == to {
		return value, nil
	}
	if from.Family() != to.Family() || from.Family() == FamilyCount {
		return decimal.Zero, shared.ErrIncompatibleUnits
	}

	// Exact fast path for the dominant kg/g case
	if from == UnitKg && to == UnitG {
		return value.Mul(thousand), nil
	}
	if from == UnitG && to == UnitKg {
		return value.Div(thousand), nil
	}

	return value.Mul(baseEquivalents[from]).Div(baseEquivalents[to]), nil
}
