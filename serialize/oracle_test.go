package serialize

import (
	"testing"

	"github.com/venusgen/venus-gen/registry"
)

func scalar(name string) *registry.Type {
	t := &registry.Type{Name: name, Category: registry.Default}
	t.Base = t
	return t
}

func TestIsSerializableStructMonotonicOverMembers(t *testing.T) {
	bad := &registry.Type{Name: "PFN_vkVoidFunction", Category: registry.FuncPointer}
	bad.Base = bad

	s := &registry.Type{Name: "VkFoo", Category: registry.Struct}
	s.Base = s
	s.Variables = []*registry.Variable{{Ty: bad, Name: "cb"}}

	if IsSerializable(&registry.Variable{Ty: s}) {
		t.Fatal("struct with a non-serializable member must not be serializable")
	}

	s.Variables[0].Ty = scalar("uint32_t")
	if !IsSerializable(&registry.Variable{Ty: s}) {
		t.Fatal("replacing the only bad member with a serializable one must make the struct serializable")
	}
}

func TestIsSerializableCommandMonotonicOverParams(t *testing.T) {
	bad := &registry.Type{Name: "PFN_vkVoidFunction", Category: registry.FuncPointer}
	bad.Base = bad

	cmd := &registry.Type{Name: "vkFoo", Category: registry.Command}
	cmd.Base = cmd
	cmd.Variables = []*registry.Variable{{Ty: bad, Name: "cb"}}

	if IsSerializable(&registry.Variable{Ty: cmd}) {
		t.Fatal("command with a non-serializable parameter must not be serializable")
	}

	cmd.Variables[0].Ty = scalar("uint32_t")
	if !IsSerializable(&registry.Variable{Ty: cmd}) {
		t.Fatal("replacing the only bad parameter with a serializable one must make the command serializable")
	}
}
