package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const minimalRegistryXML = `<?xml version="1.0"?>
<registry>
  <types>
    <type name="uint32_t"/>
    <type category="basetype" name="VkBool32"><type>uint32_t</type><name>VkBool32</name></type>
    <type name="VkBool32Alias" alias="VkBool32" category="basetype"/>
  </types>
</registry>
`

// TestLoadTypeTableBijection exercises the full Load pipeline against a
// minimal synthetic registry and checks that every name in TypeOrder is a
// key of TypeTable, that an alias name resolves to the same *Type as its
// target, and that every non-alias entry is its own table key.
func TestLoadTypeTableBijection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vk.xml")
	if err := os.WriteFile(path, []byte(minimalRegistryXML), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := Load(context.Background(), []string{path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(reg.TypeOrder) == 0 {
		t.Fatal("expected a non-empty TypeOrder")
	}
	seen := map[string]bool{}
	for _, name := range reg.TypeOrder {
		if seen[name] {
			t.Fatalf("TypeOrder lists %q more than once", name)
		}
		seen[name] = true
		ty, ok := reg.TypeTable[name]
		if !ok {
			t.Fatalf("TypeOrder name %q missing from TypeTable", name)
		}
		if ty.Name != name {
			t.Fatalf("TypeOrder entry %q maps to a differently-named type %q", name, ty.Name)
		}
	}

	alias, ok := reg.TypeTable["VkBool32Alias"]
	if !ok {
		t.Fatal("expected VkBool32Alias in TypeTable")
	}
	target, ok := reg.TypeTable["VkBool32"]
	if !ok {
		t.Fatal("expected VkBool32 in TypeTable")
	}
	if alias != target {
		t.Fatalf("expected VkBool32Alias to be the same *Type as VkBool32, got distinct pointers")
	}
}
