package serialize

import "github.com/venusgen/venus-gen/registry"

// VkXMLExtensionList is the fixed allowlist of extension names the Venus
// wire protocol enables. It is reproduced verbatim from the original
// generator's configuration.
var VkXMLExtensionList = map[string]bool{
	// Venus extensions
	"VK_EXT_command_serialization": true,
	"VK_MESA_venus_protocol":       true,
	// promoted to VK_VERSION_1_1
	"VK_KHR_16bit_storage":                   true,
	"VK_KHR_bind_memory2":                    true,
	"VK_KHR_dedicated_allocation":            true,
	"VK_KHR_descriptor_update_template":      true,
	"VK_KHR_device_group":                    true,
	"VK_KHR_device_group_creation":           true,
	"VK_KHR_external_fence":                  true,
	"VK_KHR_external_fence_capabilities":     true,
	"VK_KHR_external_memory":                 true,
	"VK_KHR_external_memory_capabilities":    true,
	"VK_KHR_external_semaphore":              true,
	"VK_KHR_external_semaphore_capabilities": true,
	"VK_KHR_get_memory_requirements2":        true,
	"VK_KHR_get_physical_device_properties2": true,
	"VK_KHR_maintenance1":                    true,
	"VK_KHR_maintenance2":                    true,
	"VK_KHR_maintenance3":                    true,
	"VK_KHR_multiview":                       true,
	"VK_KHR_relaxed_block_layout":            true,
	"VK_KHR_sampler_ycbcr_conversion":        true,
	"VK_KHR_shader_draw_parameters":          true,
	"VK_KHR_storage_buffer_storage_class":    true,
	"VK_KHR_variable_pointers":               true,
	// promoted to VK_VERSION_1_2
	"VK_KHR_8bit_storage":                   true,
	"VK_KHR_buffer_device_address":          true,
	"VK_KHR_create_renderpass2":             true,
	"VK_KHR_depth_stencil_resolve":          true,
	"VK_KHR_draw_indirect_count":            true,
	"VK_KHR_driver_properties":              true,
	"VK_KHR_image_format_list":              true,
	"VK_KHR_imageless_framebuffer":          true,
	"VK_KHR_sampler_mirror_clamp_to_edge":   true,
	"VK_KHR_separate_depth_stencil_layouts": true,
	"VK_KHR_shader_atomic_int64":            true,
	"VK_KHR_shader_float16_int8":            true,
	"VK_KHR_shader_float_controls":          true,
	"VK_KHR_shader_subgroup_extended_types": true,
	"VK_KHR_spirv_1_4":                      true,
	"VK_KHR_timeline_semaphore":             true,
	"VK_KHR_uniform_buffer_standard_layout": true,
	"VK_KHR_vulkan_memory_model":            true,
	"VK_EXT_descriptor_indexing":            true,
	"VK_EXT_host_query_reset":               true,
	"VK_EXT_sampler_filter_minmax":          true,
	"VK_EXT_scalar_block_layout":            true,
	"VK_EXT_separate_stencil_usage":         true,
	"VK_EXT_shader_viewport_index_layer":    true,
	// promoted to VK_VERSION_1_3
	"VK_KHR_copy_commands2":                     true,
	"VK_KHR_dynamic_rendering":                  true,
	"VK_KHR_format_feature_flags2":              true,
	"VK_KHR_maintenance4":                       true,
	"VK_KHR_shader_integer_dot_product":         true,
	"VK_KHR_shader_non_semantic_info":           true,
	"VK_KHR_shader_terminate_invocation":        true,
	"VK_KHR_synchronization2":                   true,
	"VK_KHR_zero_initialize_workgroup_memory":   true,
	"VK_EXT_4444_formats":                       true,
	"VK_EXT_extended_dynamic_state":             true,
	"VK_EXT_extended_dynamic_state2":            true,
	"VK_EXT_image_robustness":                   true,
	"VK_EXT_inline_uniform_block":               true,
	"VK_EXT_pipeline_creation_cache_control":    true,
	"VK_EXT_pipeline_creation_feedback":         true,
	"VK_EXT_private_data":                       true,
	"VK_EXT_shader_demote_to_helper_invocation": true,
	"VK_EXT_subgroup_size_control":              true,
	"VK_EXT_texel_buffer_alignment":             true,
	"VK_EXT_texture_compression_astc_hdr":       true,
	"VK_EXT_tooling_info":                       true,
	"VK_EXT_ycbcr_2plane_444_formats":           true,
	// promoted to VK_VERSION_1_4
	"VK_KHR_dynamic_rendering_local_read": true,
	"VK_KHR_global_priority":              true,
	"VK_KHR_index_type_uint8":             true,
	"VK_KHR_line_rasterization":           true,
	"VK_KHR_load_store_op_none":           true,
	"VK_KHR_maintenance5":                 true,
	"VK_KHR_maintenance6":                 true,
	"VK_KHR_map_memory2":                  true,
	"VK_KHR_push_descriptor":              true,
	"VK_KHR_shader_expect_assume":         true,
	"VK_KHR_shader_float_controls2":       true,
	"VK_KHR_shader_subgroup_rotate":       true,
	"VK_KHR_vertex_attribute_divisor":     true,
	"VK_EXT_host_image_copy":              true,
	"VK_EXT_pipeline_protected_access":    true,
	"VK_EXT_pipeline_robustness":          true,
	// KHR extensions
	"VK_KHR_acceleration_structure":               true,
	"VK_KHR_calibrated_timestamps":                true,
	"VK_KHR_compute_shader_derivatives":           true,
	"VK_KHR_deferred_host_operations":             true,
	"VK_KHR_depth_clamp_zero_one":                 true,
	"VK_KHR_external_fence_fd":                    true,
	"VK_KHR_external_memory_fd":                   true,
	"VK_KHR_external_semaphore_fd":                true,
	"VK_KHR_fragment_shader_barycentric":          true,
	"VK_KHR_fragment_shading_rate":                true,
	"VK_KHR_maintenance7":                         true,
	"VK_KHR_pipeline_library":                     true,
	"VK_KHR_ray_query":                            true,
	"VK_KHR_ray_tracing_maintenance1":             true,
	"VK_KHR_ray_tracing_pipeline":                 true,
	"VK_KHR_ray_tracing_position_fetch":           true,
	"VK_KHR_shader_clock":                         true,
	"VK_KHR_shader_maximal_reconvergence":         true,
	"VK_KHR_shader_quad_control":                  true,
	"VK_KHR_shader_relaxed_extended_instruction":  true,
	"VK_KHR_shader_subgroup_uniform_control_flow": true,
	"VK_KHR_workgroup_memory_explicit_layout":     true,
	// EXT extensions
	"VK_EXT_attachment_feedback_loop_dynamic_state": true,
	"VK_EXT_attachment_feedback_loop_layout":        true,
	"VK_EXT_blend_operation_advanced":               true,
	"VK_EXT_border_color_swizzle":                   true,
	"VK_EXT_buffer_device_address":                  true,
	"VK_EXT_calibrated_timestamps":                  true,
	"VK_EXT_color_write_enable":                     true,
	"VK_EXT_conditional_rendering":                  true,
	"VK_EXT_conservative_rasterization":             true,
	"VK_EXT_custom_border_color":                    true,
	"VK_EXT_depth_bias_control":                     true,
	"VK_EXT_depth_clamp_control":                    true,
	"VK_EXT_depth_clamp_zero_one":                   true,
	"VK_EXT_depth_clip_control":                     true,
	"VK_EXT_depth_clip_enable":                      true,
	"VK_EXT_depth_range_unrestricted":               true,
	"VK_EXT_dynamic_rendering_unused_attachments":   true,
	"VK_EXT_extended_dynamic_state3":                true,
	"VK_EXT_external_memory_acquire_unmodified":     true,
	"VK_EXT_external_memory_dma_buf":                true,
	"VK_EXT_filter_cubic":                           true,
	"VK_EXT_fragment_shader_interlock":              true,
	"VK_EXT_global_priority":                        true,
	"VK_EXT_global_priority_query":                  true,
	"VK_EXT_graphics_pipeline_library":              true,
	"VK_EXT_image_2d_view_of_3d":                    true,
	"VK_EXT_image_drm_format_modifier":              true,
	"VK_EXT_image_sliced_view_of_3d":                true,
	"VK_EXT_image_view_min_lod":                     true,
	"VK_EXT_index_type_uint8":                       true,
	"VK_EXT_legacy_dithering":                       true,
	"VK_EXT_legacy_vertex_attributes":               true,
	"VK_EXT_line_rasterization":                     true,
	"VK_EXT_load_store_op_none":                     true,
	"VK_EXT_memory_budget":                          true,
	"VK_EXT_multi_draw":                             true,
	"VK_EXT_multisampled_render_to_single_sampled":  true,
	"VK_EXT_mutable_descriptor_type":                true,
	"VK_EXT_nested_command_buffer":                  true,
	"VK_EXT_non_seamless_cube_map":                  true,
	"VK_EXT_pci_bus_info":                           true,
	"VK_EXT_pipeline_library_group_handles":         true,
	"VK_EXT_post_depth_coverage":                    true,
	"VK_EXT_primitive_topology_list_restart":        true,
	"VK_EXT_primitives_generated_query":             true,
	"VK_EXT_provoking_vertex":                       true,
	"VK_EXT_queue_family_foreign":                   true,
	"VK_EXT_rasterization_order_attachment_access":  true,
	"VK_EXT_robustness2":                            true,
	"VK_EXT_sample_locations":                       true,
	"VK_EXT_shader_atomic_float":                    true,
	"VK_EXT_shader_atomic_float2":                   true,
	"VK_EXT_shader_image_atomic_int64":              true,
	"VK_EXT_shader_replicated_composites":           true,
	"VK_EXT_shader_stencil_export":                  true,
	"VK_EXT_shader_subgroup_ballot":                 true,
	"VK_EXT_shader_subgroup_vote":                   true,
	"VK_EXT_transform_feedback":                     true,
	"VK_EXT_vertex_attribute_divisor":               true,
	"VK_EXT_vertex_input_dynamic_state":             true,
	"VK_EXT_ycbcr_image_arrays":                     true,
	// vendor extensions
	"VK_ARM_rasterization_order_attachment_access": true,
	"VK_GOOGLE_decorate_string":                    true,
	"VK_GOOGLE_hlsl_functionality1":                true,
	"VK_GOOGLE_user_type":                          true,
	"VK_IMG_filter_cubic":                          true,
	"VK_NV_compute_shader_derivatives":             true,
	"VK_VALVE_mutable_descriptor_type":             true,
}

// IgnorableField names a struct/command member that is only emitted under a
// runtime condition, keyed by (struct-or-command name, field name) and
// reproduced from the original generator's ignorable-field table.
type IgnorableField struct {
	TypeName  string
	Field     string
	Condition string // C boolean expression, "val->" relative
}

// IgnorableList is the fixed table of fields gated by a runtime condition.
var IgnorableList = []IgnorableField{
	{TypeName: "VkImageCreateInfo", Field: "pQueueFamilyIndices", Condition: "val->sharingMode == VK_SHARING_MODE_CONCURRENT"},
	{TypeName: "VkBufferCreateInfo", Field: "pQueueFamilyIndices", Condition: "val->sharingMode == VK_SHARING_MODE_CONCURRENT"},
	{TypeName: "VkPhysicalDeviceImageDrmFormatModifierInfoEXT", Field: "pQueueFamilyIndices", Condition: "val->sharingMode == VK_SHARING_MODE_CONCURRENT"},
	{TypeName: "VkFramebufferCreateInfo", Field: "pAttachments", Condition: "!(val->flags & VK_FRAMEBUFFER_CREATE_IMAGELESS_BIT)"},
}

// IgnorableCondition returns the gating condition for (typeName, field), or
// "" if the field is unconditional.
func IgnorableCondition(typeName, field string) string {
	for _, ig := range IgnorableList {
		if ig.TypeName == typeName && ig.Field == field {
			return ig.Condition
		}
	}
	return ""
}

// CommandDenyList names host commands that are deliberately
// non-serializable regardless of how their signature is shaped. Most
// VK_KHR_acceleration_structure host commands are blocked since
// VkDeviceOrHostAddressKHR and VkDeviceOrHostAddressConstKHR have been
// redirected to VkDeviceAddress, which avoids invalid helpers.
var CommandDenyList = map[string]bool{
	"vkBuildAccelerationStructuresKHR":       true,
	"vkCopyAccelerationStructureToMemoryKHR": true,
	"vkCopyMemoryToAccelerationStructureKHR": true,
}

// StructBlockList names structs that are never directly serializable even
// when every member would otherwise qualify.
var StructBlockList = map[string]bool{
	"VkBaseInStructure":  true,
	"VkBaseOutStructure": true,
}

// UnionDefaultTags maps an untagged union's name to the index of its
// default member, the fallback that lets the union still serialize when
// none of its members carry a "selection" attribute.
var UnionDefaultTags = map[string]int{
	"VkClearColorValue":                     2,
	"VkClearValue":                          0,
	"VkDeviceOrHostAddressKHR":              0,
	"VkDeviceOrHostAddressConstKHR":         0,
	"VkPipelineExecutableStatisticValueKHR": 2,
}

// EnabledExtensions reduces reg.Extensions to the boolean set
// VkXMLExtensionList filters against real registry data, for callers that
// already have a loaded registry rather than a bare name.
func EnabledExtensions(reg *registry.Registry) map[string]bool {
	enabled := map[string]bool{}
	for _, ext := range reg.Extensions {
		if VkXMLExtensionList[ext.Name] {
			enabled[ext.Name] = true
		}
	}
	return enabled
}

// InScopeTypes computes the set of in-scope types: the union of feature
// types, enabled-extension types, and depends-satisfied optional-extension
// types, closed recursively over member/typedef/requires/return
// dependencies (never through pNext).
func InScopeTypes(reg *registry.Registry) map[*registry.Type]bool {
	enabled := EnabledExtensions(reg)

	roots := map[*registry.Type]bool{}
	for _, f := range reg.Features {
		for _, t := range f.Types {
			roots[t] = true
		}
	}
	for _, ext := range reg.Extensions {
		if !VkXMLExtensionList[ext.Name] {
			continue
		}
		for _, t := range ext.Types {
			roots[t] = true
		}
		for t, dep := range ext.OptionalTypes {
			if registry.SupportTypeDepends(dep, enabled) {
				roots[t] = true
			}
		}
	}

	scope := map[*registry.Type]bool{}
	var closeOver func(t *registry.Type)
	closeOver = func(t *registry.Type) {
		if t == nil || scope[t.Base] {
			return
		}
		base := t.Base
		scope[base] = true

		if base.Typedef != nil {
			closeOver(base.Typedef)
		}
		if base.Requires != nil {
			closeOver(base.Requires)
		}
		if base.Ret != nil {
			closeOver(base.Ret.Ty)
		}
		for _, v := range base.Variables {
			if v.Ty.Base != base {
				closeOver(v.Ty)
			}
		}
		// p_next is deliberately not a dependency edge.
	}
	for t := range roots {
		closeOver(t)
	}

	// Filter each struct's PNext list down to in-scope targets only.
	for t := range scope {
		if t.Category != registry.Struct || len(t.PNext) == 0 {
			continue
		}
		filtered := t.PNext[:0:0]
		for _, next := range t.PNext {
			if scope[next] {
				filtered = append(filtered, next)
			}
		}
		t.PNext = filtered
	}

	return scope
}
