package registry

import (
	"regexp"
	"strconv"
	"strings"
)

// resolve runs the single-threaded second phase of loading (private types
// are already labeled by Load): invert pNext/struct_extends, collapse enum-value alias chains,
// extract the header-version string, compute the maximum pre-existing
// opcode, and validate every type. After resolve returns successfully the
// registry is read-only except for planner-owned attribute labels.
func resolve(reg *Registry) error {
	resolveStructExtends(reg)

	for _, name := range reg.TypeOrder {
		ty := reg.TypeTable[name]
		if ty.Name != name { // alias key
			continue
		}
		if ty.Category == Enum && ty.EnumValues != nil {
			if err := ty.EnumValues.ResolveAliases(); err != nil {
				return err
			}
		}
	}

	reg.HeaderVersion = extractHeaderVersion(reg)
	reg.MaxPreExistingOpcode = extractMaxOpcode(reg)
	reg.PublicExtensionCount = countPublicExtensions(reg)

	return validateRegistry(reg)
}

// resolveStructExtends turns each struct's textual StructExtends list into
// real *Type pointers and appends the inverse edge to the target's PNext
// list exactly once, maintaining "A ∈ B.p_next ⇔ B ∈ A.struct_extends".
func resolveStructExtends(reg *Registry) {
	for _, name := range reg.TypeOrder {
		ty := reg.TypeTable[name]
		if ty.Name != name || ty.Category != Struct || len(ty.StructExtends) == 0 {
			continue
		}
		resolved := make([]*Type, 0, len(ty.StructExtends))
		for _, placeholder := range ty.StructExtends {
			target, ok := reg.TypeTable[placeholder.Name]
			if !ok {
				continue
			}
			resolved = append(resolved, target)
			already := false
			for _, existing := range target.PNext {
				if existing == ty {
					already = true
					break
				}
			}
			if !already {
				target.PNext = append(target.PNext, ty)
			}
		}
		ty.StructExtends = resolved
	}
}

var (
	headerVersionRe  = regexp.MustCompile(`VK_HEADER_VERSION\s+(\d+)`)
	headerCompleteRe = regexp.MustCompile(`VK_MAKE_API_VERSION\s*\(([^)]*)VK_HEADER_VERSION\s*\)`)
)

// extractHeaderVersion extracts the integer from the VK_HEADER_VERSION
// define and reconstructs the VK_MAKE_API_VERSION(...) call-site text the
// way the registry's own VK_HEADER_VERSION_COMPLETE macro does, taking the
// arguments before VK_HEADER_VERSION from that macro (0, 1, 4 if absent).
func extractHeaderVersion(reg *Registry) string {
	ty, ok := reg.TypeTable["VK_HEADER_VERSION"]
	if !ok || ty.Category != Define {
		return ""
	}
	m := headerVersionRe.FindStringSubmatch(stripXMLTags(ty.DefineBody))
	if m == nil {
		return ""
	}
	prefix := "0, 1, 4, "
	if ct, ok := reg.TypeTable["VK_HEADER_VERSION_COMPLETE"]; ok {
		if cm := headerCompleteRe.FindStringSubmatch(stripXMLTags(ct.DefineBody)); cm != nil {
			prefix = cm[1]
		}
	}
	return "VK_MAKE_API_VERSION(" + prefix + m[1] + ")"
}

// extractMaxOpcode computes the maximum pre-existing command opcode from
// the VkCommandTypeEXT enum, if present (it is defined by the private
// Venus registry extension, not the canonical Vulkan registry, so a
// canonical-only load legitimately yields zero values and a max of 0).
func extractMaxOpcode(reg *Registry) int {
	ty, ok := reg.TypeTable["VkCommandTypeEXT"]
	if !ok || ty.EnumValues == nil {
		return 0
	}
	max := 0
	for _, name := range ty.EnumValues.Names() {
		lit, _ := ty.EnumValues.Get(name)
		if n, err := strconv.Atoi(strings.TrimSpace(lit)); err == nil && n > max {
			max = n
		}
	}
	return max
}

func countPublicExtensions(reg *Registry) int {
	n := 0
	for _, ext := range reg.Extensions {
		if !isExtensionPrivate(reg, ext) {
			n++
		}
	}
	return n
}

func isExtensionPrivate(reg *Registry, ext *Extension) bool {
	for _, t := range ext.Types {
		if t.IsPrivate {
			return true
		}
	}
	return false
}

// validateRegistry runs the post-resolve invariant checks: base.base ==
// base, non-Include types have an identifier base name, and sType structs
// begin with sType/pNext.
func validateRegistry(reg *Registry) error {
	for _, name := range reg.TypeOrder {
		ty := reg.TypeTable[name]
		if ty.Name != name {
			continue // alias key, not an owning slot
		}
		if ty.Base == nil {
			return &InvariantViolationError{Invariant: "base-self", Detail: "type " + ty.Name + " has nil base"}
		}
		if ty.Base.Base != ty.Base {
			return &InvariantViolationError{Invariant: "base-self", Detail: "base.base != base for " + ty.Name}
		}
		if ty.Category != Include && !isIdentifier(ty.Base.Name) {
			return &InvariantViolationError{Invariant: "base-identifier", Detail: "base name not an identifier: " + ty.Base.Name}
		}
		if ty.SType != "" {
			if len(ty.Variables) < 2 || ty.Variables[0].Name != "sType" || ty.Variables[1].Name != "pNext" {
				return &InvariantViolationError{Invariant: "stype-layout", Detail: "sType struct " + ty.Name + " must begin with sType, pNext"}
			}
		}
	}
	return nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		ok := c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || (i > 0 && c >= '0' && c <= '9')
		if !ok {
			return false
		}
	}
	return true
}
