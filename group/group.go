// Package group partitions serializable commands and their dependent types
// into named emission groups, one header worth of generated code each.
package group

import (
	"github.com/venusgen/venus-gen/registry"
	"github.com/venusgen/venus-gen/serialize"
)

// Rules is the fixed, ordered list of (group name, command-name prefix
// list) pairs. Order matters: matching scans in reverse so later, more
// specific groups win over earlier, more general ones. "structs" and
// "transport" are the two reserved sentinel groups: "structs" collects
// types claimed by more than one group, "transport" matches every command
// none of the named groups claim. Reproduced from the original generator's
// grouping table.
var Rules = []struct {
	Name     string
	Prefixes []string
}{
	{"structs", nil},
	{"transport", nil}, // matches all
	{"instance", []string{"CreateInstance", "DestroyInstance", "EnumerateInstance", "GetInstance"}},
	{"device", []string{
		"EnumeratePhysicalDevice", "CreateDevice", "DestroyDevice", "Device",
		"GetDevice", "GetCalibratedTimestamps", "GetPhysicalDevice", "EnumerateDevice",
	}},
	{"queue", []string{"Queue"}},
	{"fence", []string{"CreateFence", "DestroyFence", "WaitForFence", "ResetFence", "GetFence", "ImportFence"}},
	{"semaphore", []string{"CreateSemaphore", "DestroySemaphore", "WaitSemaphore", "GetSemaphore", "SignalSemaphore", "ImportSemaphore"}},
	{"event", []string{"CreateEvent", "DestroyEvent", "ResetEvent", "SetEvent", "GetEvent"}},
	{"device_memory", []string{"AllocateMemory", "FlushMappedMemory", "FreeMemory", "GetDeviceMemory", "InvalidateMappedMemory", "MapMemory", "UnmapMemory", "GetMemory"}},
	{"image", []string{"BindImage", "CreateImage", "DestroyImage", "GetImage", "GetDeviceImage"}},
	{"image_view", []string{"CreateImageView", "DestroyImageView"}},
	{"sampler", []string{"CreateSampler", "DestroySampler"}},
	{"sampler_ycbcr_conversion", []string{"CreateSamplerYcbcrConversion", "DestroySamplerYcbcrConversion"}},
	{"buffer", []string{"BindBuffer", "CreateBuffer", "DestroyBuffer", "GetBuffer", "GetDeviceBuffer"}},
	{"buffer_view", []string{"CreateBufferView", "DestroyBufferView"}},
	{"descriptor_pool", []string{"CreateDescriptorPool", "DestroyDescriptorPool", "ResetDescriptorPool"}},
	{"descriptor_set", []string{"AllocateDescriptorSet", "FreeDescriptorSet", "UpdateDescriptorSet"}},
	{"descriptor_set_layout", []string{"CreateDescriptorSetLayout", "DestroyDescriptorSetLayout", "GetDescriptorSetLayout"}},
	{"descriptor_update_template", []string{"CreateDescriptorUpdateTemplate", "DestroyDescriptorUpdateTemplate"}},
	{"render_pass", []string{"CreateRenderPass", "DestroyRenderPass", "GetRenderArea", "GetRenderingArea"}},
	{"framebuffer", []string{"CreateFramebuffer", "DestroyFramebuffer"}},
	{"query_pool", []string{"CreateQueryPool", "DestroyQueryPool", "ResetQueryPool", "GetQueryPool"}},
	{"shader_module", []string{"CreateShaderModule", "DestroyShaderModule"}},
	{"pipeline", []string{"CreateComputePipeline", "CreateGraphicsPipeline", "CreateRayTracingPipeline", "DestroyPipeline", "GetRayTracing"}},
	{"pipeline_layout", []string{"CreatePipelineLayout", "DestroyPipelineLayout"}},
	{"pipeline_cache", []string{"CreatePipelineCache", "DestroyPipelineCache", "GetPipelineCache", "MergePipelineCache"}},
	{"command_pool", []string{"CreateCommandPool", "DestroyCommandPool", "ResetCommandPool", "TrimCommandPool"}},
	{"command_buffer", []string{"AllocateCommandBuffer", "BeginCommandBuffer", "EndCommandBuffer", "FreeCommandBuffer", "ResetCommandBuffer", "Cmd"}},
	{"private_data_slot", []string{"CreatePrivateDataSlot", "DestroyPrivateDataSlot", "GetPrivateData", "SetPrivateData"}},
	{"host_copy", []string{"CopyImageToImage", "CopyImageToMemory", "CopyMemoryToImage", "TransitionImageLayout"}},
	{"acceleration_structure", []string{
		"CreateAccelerationStructure", "DestroyAccelerationStructure", "GetAccelerationStructure",
		"GetDeviceAccelerationStructure", "BuildAccelerationStructure", "CopyAccelerationStructure",
		"CopyMemoryToAccelerationStructure", "WriteAccelerationStructure",
	}},
}

// Group is one emission unit: a named set of commands plus the types they
// exercise, split into generable structs/unions and ones only forward-
// declared ("skipped").
type Group struct {
	Name     string
	prefixes []string

	typeSet map[*registry.Type]bool

	Commands       []*registry.Type
	SkippedCommands []*registry.Type
	Structs        []*registry.Type
	ManualUnions   []*registry.Type
	SkippedStructs []*registry.Type

	generated map[*registry.Type]bool
}

func (g *Group) matchCommand(name string) bool {
	if len(g.prefixes) == 0 {
		// Both sentinel groups carry no prefixes and match unconditionally;
		// scan order (transport before structs, after reversal) ensures
		// transport always claims an unmatched command first, so structs
		// is never reached by direct command matching in practice.
		return true
	}
	stem := name
	if len(stem) > 2 {
		stem = stem[2:] // strip the "vk" prefix
	}
	for _, p := range g.prefixes {
		if hasPrefix(stem, p) {
			return true
		}
	}
	return false
}

func hasPrefix(s, p string) bool {
	return len(s) >= len(p) && s[:len(p)] == p
}

// Partition assigns every in-scope, serializable command (and the types it
// reaches) to exactly one Group: commands are matched against Rules in
// reverse order so specific groups win; types claimed by more than one
// group are redistributed to the sentinel "structs" group so each type is
// generated exactly once.
func Partition(commands []*registry.Type) []*Group {
	groups := make([]*Group, len(Rules))
	for i, r := range Rules {
		groups[i] = &Group{Name: r.Name, prefixes: r.Prefixes, typeSet: map[*registry.Type]bool{}, generated: map[*registry.Type]bool{}}
	}
	// reverse before matching, mirroring the original generator
	reversed := make([]*Group, len(groups))
	for i, g := range groups {
		reversed[len(groups)-1-i] = g
	}

	matchGroup := func(cmdName string) *Group {
		for _, g := range reversed {
			if g.matchCommand(cmdName) {
				return g
			}
		}
		return nil
	}

	for _, cmd := range commands {
		g := matchGroup(cmd.Name)
		if g == nil {
			continue
		}
		addTypeSetRecursive(g.typeSet, cmd)
	}

	// Redistribute pairwise intersections to the "structs" sentinel.
	structsGroup := findGroup(groups, "structs")
	common := map[*registry.Type]bool{}
	for i := 0; i < len(groups); i++ {
		for j := i + 1; j < len(groups); j++ {
			for t := range groups[i].typeSet {
				if groups[j].typeSet[t] {
					common[t] = true
					delete(groups[j].typeSet, t)
				}
			}
		}
		for t := range common {
			delete(groups[i].typeSet, t)
		}
	}
	structsGroup.typeSet = common

	for _, cmd := range commands {
		g := matchGroup(cmd.Name)
		if g == nil {
			continue
		}
		addGroupRecursive(groups, g, cmd)
	}

	return groups
}

func findGroup(groups []*Group, name string) *Group {
	for _, g := range groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func addTypeSetRecursive(set map[*registry.Type]bool, ty *registry.Type) {
	if ty.Category != registry.Command && ty.Category != registry.Struct && ty.Category != registry.Union {
		return
	}
	if set[ty] {
		return
	}

	var deps []*registry.Type
	for _, v := range ty.Variables {
		deps = append(deps, v.Ty.Base)
	}
	deps = append(deps, ty.PNext...)
	if ty.Ret != nil {
		deps = append(deps, ty.Ret.Ty.Base)
	}
	for _, dep := range deps {
		addTypeSetRecursive(set, dep)
	}
	set[ty] = true
}

func addGroupRecursive(groups []*Group, g *Group, ty *registry.Type) {
	if ty.Category != registry.Command && ty.Category != registry.Struct && ty.Category != registry.Union {
		return
	}

	if !g.typeSet[ty] {
		g = findGroup(groups, "structs")
		if !g.typeSet[ty] {
			return
		}
	}
	if g.generated[ty] {
		return
	}
	g.generated[ty] = true

	v := &registry.Variable{Ty: ty}
	if !serialize.IsSerializable(v) {
		switch ty.Category {
		case registry.Command:
			g.SkippedCommands = append(g.SkippedCommands, ty)
		default:
			if ty.Category == registry.Union && hasAnySerializableMember(ty) {
				g.ManualUnions = append(g.ManualUnions, ty)
			} else {
				g.SkippedStructs = append(g.SkippedStructs, ty)
			}
		}
		return
	}

	var deps []*registry.Type
	for _, mv := range ty.Variables {
		deps = append(deps, mv.Ty.Base)
	}
	deps = append(deps, ty.PNext...)
	if ty.Ret != nil {
		deps = append(deps, ty.Ret.Ty.Base)
	}
	for _, dep := range deps {
		addGroupRecursive(groups, g, dep)
	}

	if ty.Category == registry.Command {
		g.Commands = append(g.Commands, ty)
	} else {
		g.Structs = append(g.Structs, ty)
	}
}

func hasAnySerializableMember(ty *registry.Type) bool {
	for _, m := range ty.Variables {
		if serialize.IsSerializable(m) {
			return true
		}
	}
	return false
}
