package serialize

import "github.com/venusgen/venus-gen/registry"

// PrimitiveTypes are the fixed-width scalar base-type names serializable by
// raw size/encode/decode primitives, reproduced from the original
// generator's configuration.
var PrimitiveTypes = map[string]bool{
	"int8_t": true, "uint8_t": true,
	"int16_t": true, "uint16_t": true,
	"int32_t": true, "uint32_t": true,
	"int64_t": true, "uint64_t": true,
	"float": true, "double": true,
	"char":   true,
	"size_t": true,
}

// IsSerializable is the recursive predicate over the type graph, defined on
// a variable rather than bare type so pointer/maybe-null context is
// available.
func IsSerializable(v *registry.Variable) bool {
	return isSerializableType(v.Ty, v)
}

func isSerializableType(ty *registry.Type, v *registry.Variable) bool {
	base := ty.Base
	switch base.Category {
	case registry.Include, registry.Define, registry.FuncPointer:
		return false
	case registry.Default:
		if base.Name == "void" {
			return v != nil && v.IsBlob()
		}
		return PrimitiveTypes[base.Name]
	case registry.Handle, registry.Enum, registry.Bitmask:
		return true
	case registry.Union:
		if base.IsValidUnion() {
			return true
		}
		_, hasDefault := UnionDefaultTags[base.Name]
		return hasDefault
	case registry.Struct:
		if StructBlockList[base.Name] {
			return false
		}
		for _, m := range base.Variables {
			if m.MaybeNull() || m.IsPNext() {
				continue
			}
			if !IsSerializable(m) {
				return false
			}
		}
		return true
	case registry.Command:
		if CommandDenyList[base.Name] {
			return false
		}
		if base.Ret != nil && !IsSerializable(base.Ret) {
			return false
		}
		for _, p := range base.Variables {
			if !IsSerializable(p) {
				return false
			}
		}
		return true
	case registry.BaseType:
		if base.Typedef != nil {
			return isSerializableType(base.Typedef, v)
		}
		return false
	}
	return false
}
