// Package guard builds the boolean "this type is not currently enabled"
// expression for each renderer-side type.
package guard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/venusgen/venus-gen/registry"
)

// CoreBaseline is the core API version threshold at or above which a type's
// first appearance requires a runtime guard; types present in core <=
// 1.2 need no guard at all.
const CoreBaseline = "1.3"

// Claim records why a type is gated: either a minimum core API version, or
// the set of extensions/extension-pairs that introduce it.
type Claim struct {
	CoreVersion string            // "" unless gated by a core API version
	Extensions  []string          // single-extension claims
	OptionalOf  [][2]string       // extension-pair claims (A, B both required)
}

// BuildGuard computes the guard expression for a type's claim:
//   - a core-version claim >= CoreBaseline yields "!has_api_version(MAJOR_MINOR)";
//   - each claiming extension contributes "!has_extension(N)";
//   - each optional-dependency pair contributes "!(has_extension(A) && has_extension(B))";
//   - all contributed clauses are AND-joined;
//   - a core-version claim below CoreBaseline produces no guard ("").
//
// BuildGuard does not check Venus-private ownership; callers skip those
// types with IsVenusPrivate.
//
// Extension iteration order is sorted so the result is deterministic.
func BuildGuard(claim Claim) string {
	if claim.CoreVersion != "" && claim.CoreVersion >= CoreBaseline {
		return fmt.Sprintf("!has_api_version(%s)", strings.Replace(claim.CoreVersion, ".", "_", 1))
	}
	if claim.CoreVersion != "" {
		return "" // core <= 1.2: no guard
	}

	var clauses []string

	exts := append([]string(nil), claim.Extensions...)
	sort.Strings(exts)
	for _, e := range exts {
		clauses = append(clauses, fmt.Sprintf("!has_extension(%s)", e))
	}

	pairs := append([][2]string(nil), claim.OptionalOf...)
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	for _, p := range pairs {
		clauses = append(clauses, fmt.Sprintf("!(has_extension(%s) && has_extension(%s))", p[0], p[1]))
	}

	return strings.Join(clauses, " && ")
}

// IsVenusPrivate reports whether ty belongs to the Venus private protocol
// extension, which never needs a guard.
func IsVenusPrivate(ty *registry.Type) bool {
	return ty.IsPrivate
}

// DeriveClaims walks every feature and extension in reg and builds the
// Claim each in-scope type accrues from them: the lowest core API version
// that first requires it, or the set of extensions (and optional-extension
// pairs) that pull it in. A type claimed by a core feature is never also
// recorded as extension-claimed — core presence already satisfies §4.I's
// "not currently enabled" test regardless of which extensions also mention
// the type.
func DeriveClaims(reg *registry.Registry) map[*registry.Type]Claim {
	claims := map[*registry.Type]Claim{}

	for _, f := range reg.Features {
		for _, t := range f.Types {
			c := claims[t]
			if c.CoreVersion == "" || f.Number < c.CoreVersion {
				c.CoreVersion = f.Number
			}
			claims[t] = c
		}
	}

	for _, e := range reg.Extensions {
		for _, t := range e.Types {
			if c := claims[t]; c.CoreVersion != "" {
				continue
			}
			c := claims[t]
			c.Extensions = append(c.Extensions, e.Name)
			claims[t] = c
		}
		for t, dep := range e.OptionalTypes {
			if c := claims[t]; c.CoreVersion != "" {
				continue
			}
			c := claims[t]
			for _, other := range leafNames(dep) {
				c.OptionalOf = append(c.OptionalOf, [2]string{e.Name, other})
			}
			claims[t] = c
		}
	}

	return claims
}

// leafNames flattens a DependsExpr down to the bare extension-name leaves
// it references, used to build OptionalOf pairs for an optionally-depended
// type.
func leafNames(expr registry.DependsExpr) []string {
	switch d := expr.(type) {
	case nil:
		return nil
	case registry.Leaf:
		return []string{string(d)}
	case registry.And:
		var names []string
		for _, e := range d {
			names = append(names, leafNames(e)...)
		}
		return names
	case registry.Or:
		var names []string
		for _, e := range d {
			names = append(names, leafNames(e)...)
		}
		return names
	default:
		return nil
	}
}
