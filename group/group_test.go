package group

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/venusgen/venus-gen/registry"
)

func scalarType(name string) *registry.Type {
	t := &registry.Type{Name: name, Category: registry.Default}
	t.Base = t
	return t
}

func TestPartitionEveryTypeInExactlyOneGroup(t *testing.T) {
	shared := &registry.Type{Name: "VkSharedInfo", Category: registry.Struct}
	shared.Base = shared
	shared.Variables = []*registry.Variable{{Ty: scalarType("uint32_t"), Name: "value"}}

	createFence := &registry.Type{Name: "vkCreateFence", Category: registry.Command}
	createFence.Base = createFence
	createFence.Variables = []*registry.Variable{{Ty: shared, Name: "info"}}

	createSemaphore := &registry.Type{Name: "vkCreateSemaphore", Category: registry.Command}
	createSemaphore.Base = createSemaphore
	createSemaphore.Variables = []*registry.Variable{{Ty: shared, Name: "info"}}

	groups := Partition([]*registry.Type{createFence, createSemaphore})

	seen := map[*registry.Type]int{}
	for _, g := range groups {
		for _, s := range g.Structs {
			seen[s]++
		}
		for _, c := range g.Commands {
			seen[c]++
		}
	}

	for ty, count := range seen {
		if count != 1 {
			t.Fatalf("type %s appears in %d groups, want exactly 1", ty.Name, count)
		}
	}
	if seen[shared] != 1 {
		t.Fatalf("shared struct used by two groups must be redistributed to exactly one group")
	}

	structsGroup := findGroup(groups, "structs")
	found := false
	for _, s := range structsGroup.Structs {
		if s == shared {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected shared struct to land in the structs sentinel group")
	}
}

func TestPartitionFenceCommandGoesToFenceGroup(t *testing.T) {
	createFence := &registry.Type{Name: "vkCreateFence", Category: registry.Command}
	createFence.Base = createFence

	groups := Partition([]*registry.Type{createFence})
	fenceGroup := findGroup(groups, "fence")

	var gotNames []string
	for _, c := range fenceGroup.Commands {
		gotNames = append(gotNames, c.Name)
	}
	if diff := cmp.Diff([]string{"vkCreateFence"}, gotNames); diff != "" {
		t.Fatalf("fence group commands mismatch (-want +got):\n%s", diff)
	}
}
