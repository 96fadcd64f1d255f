package serialize

import "github.com/venusgen/venus-gen/registry"

// AllocStrategy names how decode-side storage is acquired for one pointer
// or array level of a variable.
type AllocStrategy int

const (
	// NoAlloc: the level needs no independent storage (e.g. fixed array
	// embedded in the parent, or a scalar).
	NoAlloc AllocStrategy = iota
	// AllocTemp: storage comes from a scratch arena.
	AllocTemp
	// GetBlobStorage: storage comes from an externally supplied output
	// window (blobs only).
	GetBlobStorage
)

// VariablePlan is the per-variable access plan produced by the planner:
// validity, access loops (with unrolling applied), allocation strategy per
// indirection level, and the supplementary facets (selector, string size,
// condition, stride).
type VariablePlan struct {
	Variable *registry.Variable

	Validity Validity
	Loops    []Loop

	// Unrolling
	Unrolled  bool
	FuncStem  string
	ArraySize string // loop bound absorbed into the plan when unrolled

	// Allocation, one entry per indirection level (outermost first).
	Alloc []AllocStrategy

	// Supplementary facets
	Selector   string // discriminator parameter name, for tagged unions
	StringSize string // precomputed size expression reused for a C-string
	Condition  string // gate from the ignorable-field table, "" if none
	Stride     string // caller-specified element stride, "" if contiguous
}

// BuildVariablePlan assembles the full AccessPlan for v, a member of
// enclosingTypeName with the given siblings, evaluated with the supplied
// validity context (callerOut distinguishes "fully initialized by the
// caller" structs from out-parameter structs the callee fills in).
func BuildVariablePlan(enclosingTypeName string, v *registry.Variable, siblings []*registry.Variable, callerOut bool) *VariablePlan {
	p := &VariablePlan{
		Variable:  v,
		Validity:  VariableValidity(v, siblings, callerOut),
		Condition: IgnorableCondition(enclosingTypeName, v.Name),
	}

	loops := BuildLoopsWithSiblings(v, siblings)

	if len(loops) > 0 && CanUnroll(v) {
		inner := loops[len(loops)-1]
		p.Unrolled = true
		p.ArraySize = inner.Bound
		loops = loops[:len(loops)-1]
		if v.HasCString() {
			p.StringSize = inner.Bound
		}
	}
	p.Loops = loops
	if p.Unrolled {
		p.FuncStem = v.Name + "_array"
	} else {
		p.FuncStem = v.Name
	}

	p.Alloc = buildAllocPlan(v)

	if sel, ok := v.Attrs["selector"].(string); ok {
		p.Selector = sel
	}
	if stride, ok := v.Attrs["stride"].(string); ok {
		p.Stride = stride
	}

	return p
}

// buildAllocPlan records, for each pointer/array level of v from outermost
// in, whether decode-side storage is scratch-arena-allocated or (for
// blobs) pulled from an externally supplied output window.
func buildAllocPlan(v *registry.Variable) []AllocStrategy {
	depth := v.Ty.IndirectionDepth()
	if v.Ty.IsStaticArray() {
		depth++
	}
	if depth == 0 {
		return nil
	}

	alloc := make([]AllocStrategy, depth)
	for i := range alloc {
		alloc[i] = AllocTemp
	}
	if v.IsBlob() {
		alloc[len(alloc)-1] = GetBlobStorage
	}
	return alloc
}
