// Package plan orchestrates the registry model and the serialization
// planner into the plain data records an external templating layer
// consumes; concrete text-template rendering stays out of this package.
//
// The two-phase construction here — Build runs the registry load and
// computes scope/opcodes/groups/guards, then Document exposes an
// immutable view — matches a builder that owns working state during
// construction and hands back a read-only result once done.
package plan

import (
	"context"
	"sort"

	"github.com/venusgen/venus-gen/group"
	"github.com/venusgen/venus-gen/guard"
	"github.com/venusgen/venus-gen/opcode"
	"github.com/venusgen/venus-gen/registry"
	"github.com/venusgen/venus-gen/serialize"
)

// Variant selects which side of the wire protocol is being generated for.
type Variant int

const (
	Driver Variant = iota
	Renderer
)

// Options configures a single planning run.
type Options struct {
	RegistryPaths []string // primary XML first, private extension XMLs after
	Variant       Variant
	WireVersion   int
}

// Document is the fully planned, read-only output: one header-worth of
// structured data per group, plus the shared opcode and guard tables —
// group, plan per variable, opcode table, guard table — so any textual
// template engine can consume it without reaching back into the registry.
type Document struct {
	Registry *registry.Registry
	Variant  Variant

	Opcodes *opcode.Table
	Groups  []*group.Group
	Guards  map[*registry.Type]string

	VariablePlans map[*registry.Variable]*serialize.VariablePlan
}

// Build runs the full pipeline: load+resolve the registry, compute
// in-scope types and the opcode/group/guard tables, and plan every
// serializable variable. It returns a single immutable Document or the
// first fatal error encountered; there is no partial output on error.
func Build(ctx context.Context, opts Options) (*Document, error) {
	reg, err := registry.Load(ctx, opts.RegistryPaths)
	if err != nil {
		return nil, err
	}

	scope := serialize.InScopeTypes(reg)

	var commands []*registry.Type
	for t := range scope {
		if t.Category == registry.Command {
			commands = append(commands, t)
		}
	}
	sort.Slice(commands, func(i, j int) bool { return commands[i].Name < commands[j].Name })

	opcodes, err := opcode.Assign(reg, commands)
	if err != nil {
		return nil, err
	}
	if err := verifyOpcodeBijection(opcodes, commands); err != nil {
		return nil, err
	}

	groups := group.Partition(commands)

	claims := guard.DeriveClaims(reg)
	guards := map[*registry.Type]string{}
	for t := range scope {
		if guard.IsVenusPrivate(t) {
			continue
		}
		if expr := guard.BuildGuard(claims[t]); expr != "" {
			guards[t] = expr
		}
	}

	variablePlans := map[*registry.Variable]*serialize.VariablePlan{}
	for t := range scope {
		if t.Category != registry.Struct && t.Category != registry.Command {
			continue
		}
		for _, v := range t.Variables {
			if !serialize.IsSerializable(v) {
				continue
			}
			// Only a command's non-const pointer parameters are out-parameters.
			callerOut := t.Category == registry.Command && v.Ty.IsPointer() && !v.Ty.IsConstPointer()
			variablePlans[v] = serialize.BuildVariablePlan(t.Name, v, t.Variables, callerOut)
		}
	}

	return &Document{
		Registry:      reg,
		Variant:       opts.Variant,
		Opcodes:       opcodes,
		Groups:        groups,
		Guards:        guards,
		VariablePlans: variablePlans,
	}, nil
}

// verifyOpcodeBijection checks that the opcode table holds exactly one
// entry per command name plus alias. It compares counts only; the id
// values are not checked here.
func verifyOpcodeBijection(table *opcode.Table, commands []*registry.Type) error {
	want := 0
	for _, c := range commands {
		want += 1 + len(c.Aliases)
	}
	if len(table.ByName) != want {
		return &registry.OpcodeMismatchError{EnumValues: len(table.ByName), Commands: want}
	}
	return nil
}
