package serialize

import "github.com/venusgen/venus-gen/registry"

// Validity is the wire-initialization state of a variable at the point its
// plan is evaluated.
type Validity int

const (
	// Valid: fully initialized at this point on the wire.
	Valid Validity = iota
	// Invalid: produced by the callee; only a pointer placeholder is sent.
	Invalid
	// Partial: shape initialized, handle-id/sType/pNext content supplied by
	// the callee.
	Partial
)

// isInOutLength reports whether v is referenced as a sibling length
// expression's principal name by any other variable in siblings — the
// "another sibling's length expression refers to this variable" clause of
// the validity rule.
func isInOutLength(v *registry.Variable, siblings []*registry.Variable) bool {
	for _, sib := range siblings {
		if sib == v {
			continue
		}
		for key := range sib.Attrs {
			if key != "len_exprs" {
				continue
			}
			lenExprs, _ := sib.Attrs["len_exprs"].([]registry.LenExpr)
			for _, le := range lenExprs {
				if le.Principal == v.Name {
					return true
				}
			}
		}
	}
	return false
}

// VariableValidity assigns the three-state validity: a
// variable is Valid if the struct is declared fully initialized (callerOut
// is false) or if a sibling's length expression refers to it (in-out
// length); otherwise Partial if its base category is Handle or Struct,
// else Invalid.
func VariableValidity(v *registry.Variable, siblings []*registry.Variable, callerOut bool) Validity {
	if !callerOut || isInOutLength(v, siblings) {
		return Valid
	}
	switch v.Ty.Base.Category {
	case registry.Handle, registry.Struct:
		return Partial
	default:
		return Invalid
	}
}
