package config

import (
	"fmt"
	"strings"
)

// Variant identifies which experiment a dataset belongs to. The variant
// decides the names of the two coded indicator columns.
type Variant string

const (
	// VariantAuto picks exp1 or exp2 from the input path.
	VariantAuto Variant = "auto"
	// VariantExp1 keeps the proximal/distal column names.
	VariantExp1 Variant = "exp1"
	// VariantExp2 renames proximal/distal to direct/absent.
	VariantExp2 Variant = "exp2"
)

// ValidVariants lists all accepted variant values.
var ValidVariants = []Variant{VariantAuto, VariantExp1, VariantExp2}

// Validate reports whether v is one of ValidVariants. The zero value is
// accepted and treated as VariantAuto.
func (v Variant) Validate() error {
	if v == "" {
		return nil
	}
	for _, valid := range ValidVariants {
		if v == valid {
			return nil
		}
	}
	return fmt.Errorf("%w: %q (valid: %v)", ErrInvalidVariant, string(v), ValidVariants)
}

// Resolve turns VariantAuto into a concrete variant: exp2 when path contains
// marker, exp1 otherwise. Concrete variants are returned unchanged.
func (v Variant) Resolve(path, marker string) Variant {
	if v != "" && v != VariantAuto {
		return v
	}
	if marker != "" && strings.Contains(path, marker) {
		return VariantExp2
	}
	return VariantExp1
}

// Alternate reports whether the indicator columns use the direct/absent names.
func (v Variant) Alternate() bool {
	return v == VariantExp2
}

// IndicatorColumns returns the final (proximal-like, distal-like) column
// names for a resolved variant.
func (c ColumnsConfig) IndicatorColumns(v Variant) (string, string) {
	if v.Alternate() {
		return c.Direct, c.Absent
	}
	return c.Proximal, c.Distal
}
