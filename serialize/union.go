package serialize

import "github.com/venusgen/venus-gen/registry"

// UnionCase pairs a tag value with the member it selects.
type UnionCase struct {
	Tag    string
	Member *registry.Variable
}

// UnionCases returns the tag -> member mapping for a union type: for a
// valid union (every member carries "selection"), one case per selection
// value; otherwise a single case keyed by the fixed default-tag index.
func UnionCases(ty *registry.Type) []UnionCase {
	if ty.IsValidUnion() {
		var cases []UnionCase
		for _, m := range ty.Variables {
			sels, _ := m.Attrs["selection"].([]string)
			for _, s := range sels {
				cases = append(cases, UnionCase{Tag: s, Member: m})
			}
		}
		return cases
	}

	idx, ok := UnionDefaultTags[ty.Name]
	if !ok || idx >= len(ty.Variables) {
		return nil
	}
	return []UnionCase{{Tag: "", Member: ty.Variables[idx]}}
}
