package registry

import "strings"

// DependsExpr is a small AST for dependency expressions such as
// "A+B,(C+D)": '+' is conjunction, ',' is disjunction, parens group a
// sub-expression. Parsed once; downstream code evaluates the tree instead
// of pattern-matching the source string.
type DependsExpr interface {
	eval(enabled map[string]bool) bool
	// filter returns a simplified expression retaining only VK_-prefixed
	// extension-name leaves, or nil if nothing survives.
	filter() DependsExpr
	String() string
}

// Leaf is a single extension-name token.
type Leaf string

func (l Leaf) eval(enabled map[string]bool) bool { return enabled[string(l)] }
func (l Leaf) String() string                    { return string(l) }
func (l Leaf) filter() DependsExpr {
	if strings.HasPrefix(string(l), "VK_") && !strings.HasPrefix(string(l), "VK_VERSION") {
		return l
	}
	return nil
}

// And is a conjunction of sub-expressions.
type And []DependsExpr

func (a And) eval(enabled map[string]bool) bool {
	for _, e := range a {
		if !e.eval(enabled) {
			return false
		}
	}
	return true
}
func (a And) String() string { return joinExpr(a, "+") }
func (a And) filter() DependsExpr {
	var kept And
	for _, e := range a {
		if f := e.filter(); f != nil {
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	if len(kept) == 1 {
		return kept[0]
	}
	return kept
}

// Or is a disjunction of sub-expressions.
type Or []DependsExpr

func (o Or) eval(enabled map[string]bool) bool {
	for _, e := range o {
		if e.eval(enabled) {
			return true
		}
	}
	return false
}
func (o Or) String() string { return joinExpr(o, ",") }
func (o Or) filter() DependsExpr {
	var kept Or
	for _, e := range o {
		if f := e.filter(); f != nil {
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	if len(kept) == 1 {
		return kept[0]
	}
	return kept
}

func joinExpr(parts []DependsExpr, sep string) string {
	strs := make([]string, len(parts))
	for i, p := range parts {
		strs[i] = p.String()
	}
	return strings.Join(strs, sep)
}

// ParseDepends parses a raw "depends" attribute value into a DependsExpr.
// Empty input returns nil.
func ParseDepends(s string) DependsExpr {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var ors Or
	for _, orPart := range strings.Split(s, ",") {
		orPart = strings.Trim(orPart, "()")
		var ands And
		for _, andPart := range strings.Split(orPart, "+") {
			andPart = strings.TrimSpace(strings.Trim(andPart, "()"))
			if andPart == "" {
				continue
			}
			ands = append(ands, Leaf(andPart))
		}
		if len(ands) == 1 {
			ors = append(ors, ands[0])
		} else if len(ands) > 1 {
			ors = append(ors, ands)
		}
	}
	if len(ors) == 1 {
		return ors[0]
	}
	return ors
}

// FilterDepends trims sub-expressions whose only content is a core-API
// version token or a non-VK_ token, returning the simplified expression (or
// nil if nothing survives).
func FilterDepends(expr DependsExpr) DependsExpr {
	if expr == nil {
		return nil
	}
	return expr.filter()
}

// SupportTypeDepends reports whether expr is satisfied by the enabled set:
// true iff some disjunct has every conjunct present in enabled.
func SupportTypeDepends(expr DependsExpr, enabled map[string]bool) bool {
	if expr == nil {
		return true
	}
	return expr.eval(enabled)
}
