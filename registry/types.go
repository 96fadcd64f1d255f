package registry

// Category identifies which variant of Type a value holds. Go does not have
// tagged unions, so the deep class hierarchy of a registry model like this
// one collapses to this single enumerated field plus variant-specific
// members, all present on one struct.
type Category int

const (
	Include Category = iota
	Define
	Default
	BaseType
	Handle
	Enum
	Bitmask
	Struct
	Union
	FuncPointer
	Command
	Derived
	categoryCount
)

// TypeBlockList names the layered-API property-chain types (from
// VK_KHR_maintenance7) that are skipped at parse time: the driver fills
// these with core property structs, so they never need a wire
// representation.
var TypeBlockList = map[string]bool{
	"VkPhysicalDeviceLayeredApiPropertiesListKHR": true,
	"VkPhysicalDeviceLayeredApiPropertiesKHR":     true,
	"VkPhysicalDeviceLayeredApiVulkanPropertiesKHR": true,
	"VkLayeredApiPropertiesListKHR":                true,
}

// Type is one node of the registry's type graph. Every Type has a name, a
// category and a base pointer (itself, except for Derived). Category-specific
// fields are zero unless Category selects them.
type Type struct {
	Name     string
	Category Category
	Base     *Type

	Aliases    []string
	ExtAliases map[string]string // alias name -> owning extension name

	Attrs map[string]any

	IsPrivate bool

	// Define
	DefineBody string

	// BaseType / Bitmask
	Typedef *Type

	// Handle
	Dispatchable bool

	// Enum
	EnumBitWidth int
	EnumValues   *EnumValues

	// Bitmask (optional)
	Requires *Type

	// Struct (optional)
	SType         string
	StructExtends []*Type // textual, then resolved to Types this struct extends
	PNext         []*Type // inverse of StructExtends, computed by resolve
	ReturnedOnly  bool

	// FuncPointer / Command
	Ret           *Variable
	CanDeviceLost bool

	// Struct / Union / FuncPointer / Command
	Variables []*Variable

	// Derived
	Decor *Decor

	// Union selector type, if the union carries one
	SelectorType *Type
}

// IsStaticArray reports whether the type is an array decoration.
func (t *Type) IsStaticArray() bool {
	return t.Decor != nil && t.Decor.Dim != ""
}

// StaticArraySize returns the (textual) array dimension, or "" if none.
func (t *Type) StaticArraySize() string {
	if t.Decor == nil {
		return ""
	}
	return t.Decor.Dim
}

// IsPointer reports whether the type has at least one level of indirection.
func (t *Type) IsPointer() bool {
	return t.Decor != nil && len(t.Decor.RefQuals) > 0
}

// IndirectionDepth returns the number of pointer levels.
func (t *Type) IndirectionDepth() int {
	if t.Decor == nil {
		return 0
	}
	return len(t.Decor.RefQuals)
}

// IsConstStaticArray reports a const-qualified static array.
func (t *Type) IsConstStaticArray() bool {
	return t.IsStaticArray() && containsSubstr(t.Decor.Qual, "const")
}

// IsConstPointer reports whether any pointer level is const-qualified.
func (t *Type) IsConstPointer() bool {
	if !t.IsPointer() {
		return false
	}
	for _, q := range t.Decor.RefQuals {
		if containsSubstr(q, "const") {
			return true
		}
	}
	return false
}

// IsCString reports a single level of indirection over char (not arrays of
// char, not arrays of C-strings).
func (t *Type) IsCString() bool {
	return t.Base.Name == "char" && t.IndirectionDepth() == 1
}

// IsValidUnion reports whether every member carries a "selection" tag, the
// condition under which a union is directly serializable.
func (t *Type) IsValidUnion() bool {
	if t.Category != Union {
		return false
	}
	for _, v := range t.Variables {
		if _, ok := v.Attrs["selection"]; !ok {
			return false
		}
	}
	return true
}

func containsSubstr(s, sub string) bool {
	return len(sub) == 0 || (len(s) >= len(sub) && indexOf(s, sub) >= 0)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

// Variable is a (type, name, attrs) triple: a struct member, union member,
// command parameter or function-pointer parameter.
type Variable struct {
	Ty    *Type
	Name  string
	Attrs map[string]any
}

// CanValidate reports whether the variable is eligible for automatic
// validation (the registry's "noautovalidity" escape hatch is absent or
// false).
func (v *Variable) CanValidate() bool {
	if s, ok := v.Attrs["noautovalidity"].(string); ok && s == "true" {
		return false
	}
	return true
}

// IsOptional reports the first value of the "optional" attribute list being
// "true".
func (v *Variable) IsOptional() bool {
	if opts, ok := v.Attrs["optional"].([]string); ok && len(opts) > 0 {
		return opts[0] == "true"
	}
	return false
}

// MaybeNull reports a pointer variable explicitly marked optional.
func (v *Variable) MaybeNull() bool {
	return v.Ty.IsPointer() && v.IsOptional()
}

// IsBlob reports a single-indirection void* with a length expression: a
// contiguous byte range whose extent is given by another field.
func (v *Variable) IsBlob() bool {
	return v.Ty.IndirectionDepth() == 1 &&
		!v.Ty.IsStaticArray() &&
		v.Ty.Base.Name == "void" &&
		v.hasLenExprs()
}

// IsDynamicArray reports a pointer variable with a length expression.
func (v *Variable) IsDynamicArray() bool {
	return v.Ty.IsPointer() && v.hasLenExprs()
}

// HasCString reports a dynamic array whose length-expression list contains
// the null-terminated marker.
func (v *Variable) HasCString() bool {
	if !v.IsDynamicArray() {
		return false
	}
	for _, le := range v.lenExprs() {
		if le.Expr == "null-terminated" {
			return true
		}
	}
	return false
}

// IsPNext reports the field named "pNext".
func (v *Variable) IsPNext() bool {
	return v.Name == "pNext"
}

func (v *Variable) hasLenExprs() bool {
	le, ok := v.Attrs["len_exprs"]
	if !ok {
		return false
	}
	l, ok := le.([]LenExpr)
	return ok && len(l) > 0
}

func (v *Variable) lenExprs() []LenExpr {
	if le, ok := v.Attrs["len_exprs"].([]LenExpr); ok {
		return le
	}
	return nil
}

// ToC renders the declaration this variable came from.
func (v *Variable) ToC() string {
	return Decl{Name: v.Name, TypeName: v.Ty.Base.Name, Decor: derefDecor(v.Ty.Decor)}.ToC(false)
}

func derefDecor(d *Decor) Decor {
	if d == nil {
		return Decor{}
	}
	return *d
}

// LenExpr is one parsed entry of a "len" attribute: either the literal
// "null-terminated" marker, or an expression plus the principal sibling
// field name it references ("a->b" or "a[i].b" -> "b").
type LenExpr struct {
	Expr      string
	Principal string
}

// EnumValues is the ordered name -> literal mapping of an enum, preserving
// insertion order the way the registry's own require blocks extend it.
type EnumValues struct {
	order  []string
	values map[string]string
}

// NewEnumValues returns an empty, ready-to-use EnumValues.
func NewEnumValues() *EnumValues {
	return &EnumValues{values: map[string]string{}}
}

// Set inserts or overwrites a value, recording insertion order for first
// writes only.
func (e *EnumValues) Set(name, literal string) {
	if _, ok := e.values[name]; !ok {
		e.order = append(e.order, name)
	}
	e.values[name] = literal
}

// Get returns the literal for name and whether it was present.
func (e *EnumValues) Get(name string) (string, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Names returns value names in insertion order.
func (e *EnumValues) Names() []string {
	return append([]string(nil), e.order...)
}

// ResolveAliases collapses alias chains so every value maps to a terminal
// literal. A value is itself an alias if its literal is another key in the
// same table; resolution repeats lookups until a non-key literal is reached.
// Returns an error if a chain does not terminate within len(values) steps,
// which means it cycles instead of reaching a terminal literal.
func (e *EnumValues) ResolveAliases() error {
	for _, name := range e.order {
		seen := map[string]bool{}
		cur := name
		for i := 0; i < len(e.order)+1; i++ {
			lit := e.values[cur]
			if _, isAlias := e.values[lit]; !isAlias {
				e.values[name] = lit
				break
			}
			if seen[lit] {
				return &InvariantViolationError{
					Invariant: "enum-alias-termination",
					Detail:    "cycle detected resolving " + name,
				}
			}
			seen[lit] = true
			cur = lit
			if i == len(e.order) {
				return &InvariantViolationError{
					Invariant: "enum-alias-termination",
					Detail:    "alias chain for " + name + " did not terminate",
				}
			}
		}
	}
	return nil
}

// Feature is a named API level: a fixed set of in-scope types.
type Feature struct {
	API    string
	Name   string
	Number string
	Types  []*Type
}

// Extension is a named optional API addition.
type Extension struct {
	Name            string
	Number          int
	SupportedAPIs   []string
	Platform        string
	PromotedTo      string
	Requires        []string
	SpecVersion     string
	Types           []*Type
	OptionalTypes   map[*Type]DependsExpr
	ExtAliases      []string
}

// Registry is the resolved, read-only-after-resolve view of the API: the
// single source of truth for the planner stages that follow.
type Registry struct {
	Platforms map[string]string // platform name -> protect macro
	Tags      map[string]bool

	TypeTable map[string]*Type // insertion-ordered via TypeOrder
	TypeOrder []string

	Features   []*Feature
	Extensions []*Extension

	PublicExtensionCount int
	HeaderVersion        string
	MaxPreExistingOpcode int
}

// LookupType returns the type registered under name, or nil.
func (r *Registry) LookupType(name string) *Type {
	return r.TypeTable[name]
}
