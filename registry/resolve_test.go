package registry

import "testing"

func TestResolveStructExtendsInvertsPNext(t *testing.T) {
	base := &Type{Name: "VkBaseOutStructure", Category: Struct}
	base.Base = base

	ext := &Type{
		Name:          "VkExtInfo",
		Category:      Struct,
		StructExtends: []*Type{{Name: "VkBaseOutStructure"}}, // textual placeholder
	}
	ext.Base = ext

	reg := &Registry{
		TypeTable: map[string]*Type{base.Name: base, ext.Name: ext},
		TypeOrder: []string{base.Name, ext.Name},
	}

	resolveStructExtends(reg)

	if len(ext.StructExtends) != 1 || ext.StructExtends[0] != base {
		t.Fatalf("expected ext.StructExtends resolved to base pointer, got %v", ext.StructExtends)
	}
	if len(base.PNext) != 1 || base.PNext[0] != ext {
		t.Fatalf("expected base.PNext to contain ext exactly once, got %v", base.PNext)
	}
}

func TestResolveStructExtendsNoDuplicateInverse(t *testing.T) {
	base := &Type{Name: "VkBaseOutStructure", Category: Struct}
	base.Base = base

	ext := &Type{
		Name:          "VkExtInfo",
		Category:      Struct,
		StructExtends: []*Type{{Name: "VkBaseOutStructure"}},
	}
	ext.Base = ext
	base.PNext = []*Type{ext} // simulate an already-inverted edge from a prior run

	reg := &Registry{
		TypeTable: map[string]*Type{base.Name: base, ext.Name: ext},
		TypeOrder: []string{base.Name, ext.Name},
	}

	resolveStructExtends(reg)

	if len(base.PNext) != 1 {
		t.Fatalf("expected resolveStructExtends not to duplicate an existing inverse edge, got %v", base.PNext)
	}
}

func TestEnumValuesResolveAliasesTerminates(t *testing.T) {
	e := NewEnumValues()
	e.Set("VK_FOO", "1")
	e.Set("VK_FOO_ALIAS", "VK_FOO")
	e.Set("VK_FOO_ALIAS2", "VK_FOO_ALIAS")

	if err := e.ResolveAliases(); err != nil {
		t.Fatalf("ResolveAliases: %v", err)
	}
	got, ok := e.Get("VK_FOO_ALIAS2")
	if !ok || got != "1" {
		t.Fatalf("expected VK_FOO_ALIAS2 to resolve to terminal literal \"1\", got %q, ok=%v", got, ok)
	}
}

func TestEnumValuesResolveAliasesDetectsCycle(t *testing.T) {
	e := NewEnumValues()
	e.Set("VK_A", "VK_B")
	e.Set("VK_B", "VK_A")

	if err := e.ResolveAliases(); err == nil {
		t.Fatal("expected an error for a cyclic alias chain")
	}
}
