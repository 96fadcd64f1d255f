// Package opcode assigns stable numeric opcodes to commands.
package opcode

import (
	"sort"
	"strconv"

	"github.com/venusgen/venus-gen/registry"
)

// Table is the opcode assignment: exactly one entry per command name plus
// alias, assigned deterministically from the registry's pre-existing
// VkCommandTypeEXT enum plus freshly allocated ids for new commands.
type Table struct {
	ByName map[string]int
	Max    int
}

// Assign walks commands in the order the caller passes them (it does not
// reorder them by feature or extension; plan.Build passes them sorted by
// name), reuses any opcode already present in VkCommandTypeEXT for a command's
// primary name or any of its aliases, and allocates the next integer above
// the registry's pre-existing maximum for everything else. The result is a
// bijection: command names + aliases -> contiguous-from-existing
// non-negative integers, with pre-existing ids never renumbered.
func Assign(reg *registry.Registry, commands []*registry.Type) (*Table, error) {
	existing := map[string]int{}
	if enumTy, ok := reg.TypeTable["VkCommandTypeEXT"]; ok && enumTy.EnumValues != nil {
		for _, name := range enumTy.EnumValues.Names() {
			lit, _ := enumTy.EnumValues.Get(name)
			if n, err := strconv.Atoi(lit); err == nil {
				existing[name] = n
			}
		}
	}

	table := &Table{ByName: map[string]int{}, Max: reg.MaxPreExistingOpcode}
	next := reg.MaxPreExistingOpcode + 1

	names := func(cmd *registry.Type) []string {
		all := make([]string, 0, len(cmd.Aliases)+1)
		all = append(all, cmd.Name)
		all = append(all, cmd.Aliases...)
		return all
	}

	for _, cmd := range commands {
		allNames := names(cmd)

		id := -1
		for _, n := range allNames {
			constName := "VK_COMMAND_TYPE_" + n + "_EXT"
			if v, ok := existing[constName]; ok {
				id = v
				break
			}
		}
		if id == -1 {
			id = next
			next++
		}
		if id > table.Max {
			table.Max = id
		}
		for _, n := range allNames {
			table.ByName[n] = id
		}
	}

	return table, nil
}

// Names returns the assigned command (+alias) names in ascending opcode
// order, for deterministic emission.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.ByName))
	for n := range t.ByName {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		if t.ByName[names[i]] != t.ByName[names[j]] {
			return t.ByName[names[i]] < t.ByName[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
