package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// Variant – immutable value object
// ---------------------------------------------------------------------------

// Variant names a regulatory parameter set.
type Variant struct {
	value string
}

const (
	variantStandard    = "STANDARD"
	variantAlternative = "ALTERNATIVE"
)

var (
	// VariantStandard is the 75% LTV parameter set.
	VariantStandard = Variant{value: variantStandard}
	// VariantAlternative is the 55% LTV parameter set with longer tenures.
	VariantAlternative = Variant{value: variantAlternative}
)

var validVariants = map[string]Variant{
	variantStandard:    VariantStandard,
	variantAlternative: VariantAlternative,
}

// NewVariant creates a Variant from a raw string.
func NewVariant(s string) (Variant, error) {
	v, ok := validVariants[normalize(s)]
	if !ok {
		return Variant{}, fmt.Errorf("invalid regulatory variant: %q", s)
	}
	return v, nil
}

// AllVariants returns every known variant in presentation order.
func AllVariants() []Variant {
	return []Variant{VariantStandard, VariantAlternative}
}

func (v Variant) String() string { return v.value }

// IsZero returns true if the variant has not been initialised.
func (v Variant) IsZero() bool { return v.value == "" }

func (v Variant) Equal(other Variant) bool { return v.value == other.value }
