// Package registry builds the typed in-memory model of the Vulkan API
// registry: declarations, types, variables, enums, features and extensions.
package registry

import (
	"strings"
)

// Decor is the decoration attached to a declaration: an outermost qualifier,
// an array dimension (kept as source text, not evaluated), a bit-field size,
// and the ordered inner pointer qualifiers (outermost-first).
type Decor struct {
	Qual     string
	Dim      string
	BitSize  string
	RefQuals []string
}

// Decl is a single parsed C declaration: a name, a base type name and its
// decoration. Decl.FromC(s).ToC(false) reproduces s for the supported
// subset: scalars, one array dimension, arbitrary pointer nesting with const.
type Decl struct {
	Name     string
	TypeName string
	Decor    Decor
}

// ToC renders the declaration back to C source. When typeOnly is true the
// variable name is omitted, producing a bare type spelling.
func (d Decl) ToC(typeOnly bool) string {
	var b strings.Builder
	b.WriteString(d.TypeName)
	cdecl := b.String()

	quals := append(append([]string(nil), d.Decor.RefQuals...), d.Decor.Qual)
	for i, qual := range quals {
		isFirst := i == 0
		isLast := i == len(quals)-1

		if qual != "" {
			if isFirst {
				cdecl = qual + " " + cdecl
			} else {
				cdecl = cdecl + " " + qual
			}
		}

		if isLast {
			if !typeOnly {
				cdecl = cdecl + " " + d.Name
			}
			if d.Decor.Dim != "" {
				if strings.HasSuffix(cdecl, "*") {
					cdecl += " "
				}
				cdecl = cdecl + "[" + d.Decor.Dim + "]"
			}
			if d.Decor.BitSize != "" {
				cdecl = cdecl + ":" + d.Decor.BitSize
			}
		} else {
			cdecl += "*"
		}
	}
	return cdecl
}

// DeclFromC parses a C-declaration fragment such as "const int* const blah[4]"
// into a Decl. It is intentionally narrow: it does not model function types,
// multi-dimensional arrays, or anonymous types.
func DeclFromC(cDecl string) (Decl, error) {
	// extract bit size
	var bitSize string
	if idx := strings.IndexByte(cDecl, ':'); idx != -1 {
		bitSize = strings.TrimSpace(cDecl[idx+1:])
		cDecl = cDecl[:idx]
	}

	// extract array size
	var arraySize string
	if idx := strings.IndexByte(cDecl, '['); idx != -1 {
		close := strings.LastIndexByte(cDecl, ']')
		if close == -1 || close < idx {
			return Decl{}, &MalformedDeclError{Decl: cDecl, Reason: "unbalanced array brackets"}
		}
		arraySize = strings.TrimSpace(cDecl[idx+1 : close])
		cDecl = cDecl[:idx]
	}

	// extract name: scan backward past trailing non-alnum, then find
	// the preceding space.
	end := len(cDecl)
	for end > 0 && !isAlnum(cDecl[end-1]) {
		end--
	}
	if end == 0 {
		return Decl{}, &MalformedDeclError{Decl: cDecl, Reason: "missing identifier"}
	}
	idx := strings.LastIndexByte(cDecl[:end], ' ')
	if idx == -1 {
		return Decl{}, &MalformedDeclError{Decl: cDecl, Reason: "missing base type"}
	}
	name := cDecl[idx+1 : end]
	cDecl = cDecl[:idx]

	// extract base type, which is always before the first '*'
	quals := strings.Split(cDecl, "*")
	qualifiedTypeName := strings.Fields(quals[0])
	if len(qualifiedTypeName) == 0 {
		return Decl{}, &MalformedDeclError{Decl: cDecl, Reason: "missing base type"}
	}
	typeName := qualifiedTypeName[len(qualifiedTypeName)-1]
	quals[0] = strings.Join(qualifiedTypeName[:len(qualifiedTypeName)-1], " ")

	refQuals := make([]string, len(quals))
	for i, q := range quals {
		refQuals[i] = strings.TrimSpace(q)
	}
	qual := refQuals[len(refQuals)-1]
	refQuals = refQuals[:len(refQuals)-1]

	return Decl{
		Name:     name,
		TypeName: typeName,
		Decor: Decor{
			Qual:     qual,
			Dim:      arraySize,
			BitSize:  bitSize,
			RefQuals: refQuals,
		},
	}, nil
}

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}
