package serialize

import (
	"fmt"

	"github.com/venusgen/venus-gen/registry"
)

// Loop is one nesting level of an access plan's iteration, derived from a
// single length expression or a static array dimension.
type Loop struct {
	Iterator  string // "i", "j", "k", ... assigned by nesting depth
	IterType  string // "size_t" or "uint32_t"
	Bound     string // C expression for the loop bound
	NullGuard string // "" unless the bound must be guarded by a null check
}

var iteratorNames = []string{"i", "j", "k", "l", "m", "n"}

func iteratorAt(depth int) string {
	if depth < len(iteratorNames) {
		return iteratorNames[depth]
	}
	return fmt.Sprintf("it%d", depth)
}

// BuildLoops derives the ordered access-loop list for v from its length
// expressions (or its static array dimension, for a fixed-size array),
// assigning iterator names by nesting depth.
//
// The nested-array-length case ("a[i].b") resolves to a single "[i]."
// hop exactly as the current registry encodes it; this hard-coded
// one-level nesting is preserved deliberately rather than generalized,
// since the registry has never needed more than one level in practice.
func BuildLoops(v *registry.Variable) []Loop {
	if v.Ty.IsStaticArray() {
		return []Loop{{
			Iterator: iteratorAt(0),
			IterType: "uint32_t",
			Bound:    v.Ty.StaticArraySize(),
		}}
	}

	lenExprsVal, ok := v.Attrs["len_exprs"].([]registry.LenExpr)
	if !ok {
		return nil
	}

	loops := make([]Loop, 0, len(lenExprsVal))
	for depth, le := range lenExprsVal {
		it := iteratorAt(depth)
		switch {
		case le.Expr == "null-terminated":
			loops = append(loops, Loop{
				Iterator: it,
				IterType: "size_t",
				Bound:    fmt.Sprintf("strlen(%s) + 1", v.Name),
			})
		default:
			loop := Loop{Iterator: it, IterType: "uint32_t", Bound: le.Expr}
			// If the referenced sibling field is itself a pointer, the
			// bound is guarded by a null check.
			if siblingIsPointer(v, le.Principal) {
				loop.NullGuard = fmt.Sprintf("(%s ? %s : 0)", le.Principal, le.Expr)
			}
			loops = append(loops, loop)
		}
	}
	return loops
}

func siblingIsPointer(v *registry.Variable, principal string) bool {
	// The sibling's pointer-ness cannot be determined from v alone; callers
	// that have the enclosing struct's member list should prefer
	// BuildLoopsWithSiblings. This conservative default assumes scalar
	// siblings, matching the common case (count fields are plain integers).
	_ = principal
	return false
}

// BuildLoopsWithSiblings is BuildLoops but additionally consults the
// enclosing struct/command's member list to resolve the null-guard clause
// precisely.
func BuildLoopsWithSiblings(v *registry.Variable, siblings []*registry.Variable) []Loop {
	loops := BuildLoops(v)
	lenExprsVal, ok := v.Attrs["len_exprs"].([]registry.LenExpr)
	if !ok {
		return loops
	}
	for i, le := range lenExprsVal {
		if i >= len(loops) || le.Expr == "null-terminated" {
			continue
		}
		for _, sib := range siblings {
			if sib.Name == le.Principal && sib.Ty.IsPointer() {
				loops[i].NullGuard = fmt.Sprintf("(%s ? %s : 0)", le.Principal, le.Expr)
			}
		}
	}
	return loops
}

// CanUnroll reports whether the innermost loop indexes a scalar-category
// element (Default, BaseType, Enum), the condition under which the loop
// collapses into a single contiguous-buffer primitive call.
func CanUnroll(v *registry.Variable) bool {
	switch v.Ty.Base.Category {
	case registry.Default, registry.BaseType, registry.Enum:
		return true
	default:
		return false
	}
}

// FuncStem returns the per-element function-name stem for v, suffixed
// "_array" when the innermost loop has been unrolled.
func FuncStem(v *registry.Variable, loops []Loop) string {
	if len(loops) > 0 && CanUnroll(v) {
		return v.Name + "_array"
	}
	return v.Name
}
