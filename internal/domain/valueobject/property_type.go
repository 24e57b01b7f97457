package valueobject

import (
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// PropertyType – immutable value object
// ---------------------------------------------------------------------------

// PropertyType distinguishes public housing (HDB) from private property. It
// selects the tenure cap, the MSR rule, the pledge divisor and the fee tables.
type PropertyType struct {
	value string
}

const (
	propertyHDB     = "HDB"
	propertyPrivate = "PRIVATE"
)

var (
	PropertyHDB     = PropertyType{value: propertyHDB}
	PropertyPrivate = PropertyType{value: propertyPrivate}
)

var validPropertyTypes = map[string]PropertyType{
	propertyHDB:     PropertyHDB,
	propertyPrivate: PropertyPrivate,
}

// NewPropertyType creates a PropertyType from a raw string.
func NewPropertyType(s string) (PropertyType, error) {
	v, ok := validPropertyTypes[normalize(s)]
	if !ok {
		return PropertyType{}, fmt.Errorf("invalid property type: %q", s)
	}
	return v, nil
}

func (p PropertyType) String() string { return p.value }

// IsZero returns true if the type has not been initialised.
func (p PropertyType) IsZero() bool { return p.value == "" }

func (p PropertyType) Equal(other PropertyType) bool { return p.value == other.value }

// IsHDB reports whether the property is public housing.
func (p PropertyType) IsHDB() bool { return p.value == propertyHDB }

// normalize accepts "self-employed", "Self Employed", "permanentResident" and
// the canonical upper snake case spellings alike.
func normalize(s string) string {
	var b strings.Builder
	s = strings.TrimSpace(s)
	for i, r := range s {
		switch {
		case r == '-' || r == ' ':
			b.WriteByte('_')
		case r >= 'A' && r <= 'Z' && i > 0 && s[i-1] >= 'a' && s[i-1] <= 'z':
			b.WriteByte('_')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return strings.ToUpper(b.String())
}
