package opcode

import (
	"testing"

	"github.com/venusgen/venus-gen/registry"
)

func newCommandType(name string, aliases ...string) *registry.Type {
	return &registry.Type{Name: name, Category: registry.Command, Aliases: aliases}
}

func TestAssignReusesPreExisting(t *testing.T) {
	enumVals := registry.NewEnumValues()
	enumVals.Set("VK_COMMAND_TYPE_vkCreateFence_EXT", "5")

	reg := &registry.Registry{
		TypeTable: map[string]*registry.Type{
			"VkCommandTypeEXT": {Name: "VkCommandTypeEXT", Category: registry.Enum, EnumValues: enumVals},
		},
		MaxPreExistingOpcode: 5,
	}

	cmds := []*registry.Type{
		newCommandType("vkCreateFence"),
		newCommandType("vkDestroyFence"),
	}

	table, err := Assign(reg, cmds)
	if err != nil {
		t.Fatal(err)
	}
	if table.ByName["vkCreateFence"] != 5 {
		t.Fatalf("expected pre-existing id 5 reused, got %d", table.ByName["vkCreateFence"])
	}
	if table.ByName["vkDestroyFence"] <= 5 {
		t.Fatalf("expected new id > 5, got %d", table.ByName["vkDestroyFence"])
	}
}

func TestAssignIsBijective(t *testing.T) {
	reg := &registry.Registry{TypeTable: map[string]*registry.Type{}}
	cmds := []*registry.Type{
		newCommandType("vkA"),
		newCommandType("vkB", "vkBAlias"),
		newCommandType("vkC"),
	}

	table, err := Assign(reg, cmds)
	if err != nil {
		t.Fatal(err)
	}

	wantNames := []string{"vkA", "vkB", "vkBAlias", "vkC"}
	if len(table.ByName) != len(wantNames) {
		t.Fatalf("expected %d entries, got %d", len(wantNames), len(table.ByName))
	}
	seen := map[int]bool{}
	for _, n := range wantNames {
		id, ok := table.ByName[n]
		if !ok {
			t.Fatalf("missing opcode for %q", n)
		}
		if n == "vkBAlias" && id != table.ByName["vkB"] {
			t.Fatalf("alias vkBAlias must share vkB's opcode")
		}
		seen[id] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 distinct opcodes for 3 commands, got %d", len(seen))
	}
}
