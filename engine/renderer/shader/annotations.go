// annotations.go defines the @glow annotations understood by the WGSL pre-processor.
// An annotation is a single-line WGSL comment that either injects a registered struct
// definition, generates a bind group declaration, or tells the scene which resource
// provider feeds a bind group:
//
//	//@glow:include <struct_type>
//	//@glow:group <group> <binding> <address_space> <var_name> <struct_type | array<struct_type>>
//	//@glow:provider <group> <binding> <provider_identity> [binding_role]
package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const annotationPrefix = "@glow:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	// annotationTypeInclude injects a registered struct definition in place of the comment.
	annotationTypeInclude AnnotationType = "include"

	// AnnotationTypeBindingGroup generates an @group/@binding variable declaration and
	// records it as a declaration.
	AnnotationTypeBindingGroup AnnotationType = "group"

	// AnnotationTypeProvider records which resource provider supplies a bind group. It emits
	// no WGSL.
	AnnotationTypeProvider AnnotationType = "provider"
)

// Annotation is one parsed @glow comment.
type Annotation struct {
	// Type is the annotation kind.
	Type AnnotationType

	// Args holds the positional arguments after the group and binding numbers.
	// For group annotations: address space, variable name, struct type.
	// For provider annotations: provider identity and an optional binding role.
	Args []AnnotationArg

	// Line is the 1-based source line the annotation appeared on.
	Line int

	// Group is the bind group index, nil for include annotations.
	Group *int

	// Binding is the binding index, nil for include annotations.
	Binding *int
}

// AnnotationArg is a single validated annotation argument.
type AnnotationArg string

// Registered struct types.
const (
	AnnotationArgCamera         AnnotationArg = "camera"
	annotationArgVertex         AnnotationArg = "vertex"
	AnnotationArgModelData      AnnotationArg = "model_data"
	AnnotationArgSpritePoint    AnnotationArg = "sprite_point"
	AnnotationArgMaterialParams AnnotationArg = "material_params"
	AnnotationArgLightSet       AnnotationArg = "light_set"
	AnnotationArgShadowSet      AnnotationArg = "shadow_set"
	AnnotationArgShadowFace     AnnotationArg = "shadow_face"
)

// Address spaces accepted by group annotations.
const (
	annotationArgStorageTypeUniform   AnnotationArg = "storage_uniform"
	annotationArgStorageTypeRead      AnnotationArg = "storage_read"
	annotationArgStorageTypeReadWrite AnnotationArg = "storage_read_write"
)

// Provider identities. AnnotationArgCamera and AnnotationArgShadowFace double as identities.
const (
	// AnnotationArgObject is the per-node provider holding model data, material params and,
	// for point clouds, the sprite positions.
	AnnotationArgObject AnnotationArg = "object"

	// AnnotationArgLights is the scene-wide provider holding the light set, shadow matrices,
	// the shadow depth array and its comparison sampler.
	AnnotationArgLights AnnotationArg = "lights"
)

// Binding roles name non-buffer bindings inside a provider's group.
const (
	AnnotationArgShadowMap     AnnotationArg = "shadow_map"
	AnnotationArgShadowSampler AnnotationArg = "shadow_sampler"
)

var validStructTypes = []AnnotationArg{
	AnnotationArgCamera,
	annotationArgVertex,
	AnnotationArgModelData,
	AnnotationArgSpritePoint,
	AnnotationArgMaterialParams,
	AnnotationArgLightSet,
	AnnotationArgShadowSet,
	AnnotationArgShadowFace,
}

var validAddressSpaces = []AnnotationArg{
	annotationArgStorageTypeUniform,
	annotationArgStorageTypeRead,
	annotationArgStorageTypeReadWrite,
}

var validProviderIdentities = []AnnotationArg{
	AnnotationArgCamera,
	AnnotationArgObject,
	AnnotationArgLights,
	AnnotationArgShadowFace,
}

var validBindingRoles = []AnnotationArg{
	AnnotationArgShadowMap,
	AnnotationArgShadowSampler,
}

// parseAnnotation parses a single line. Lines without the @glow: prefix return nil, nil.
//
// Parameters:
//   - line: the raw source line
//   - lineNum: the 1-based line number used in error messages
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line has none
//   - error: if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "//") {
		return nil, nil
	}
	_, after, ok := strings.Cut(trimmed, annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @glow annotation", lineNum)
	}

	switch AnnotationType(args[0]) {
	case annotationTypeInclude:
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @glow include annotation requires exactly one argument", lineNum)
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[1])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in @glow include annotation", lineNum, args[1])
		}
		return &Annotation{
			Type: annotationTypeInclude,
			Args: []AnnotationArg{AnnotationArg(args[1])},
			Line: lineNum,
		}, nil

	case AnnotationTypeBindingGroup:
		if len(args) != 6 {
			return nil, fmt.Errorf("line %d: @glow group annotation requires group, binding, address space, name and type", lineNum)
		}
		group, binding, err := parseGroupBinding(args[1], args[2], lineNum)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(validAddressSpaces, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown address space %q in @glow group annotation", lineNum, args[3])
		}
		typeArg := args[5]
		if inner, ok := strings.CutPrefix(typeArg, "array<"); ok {
			typeArg = strings.TrimSuffix(inner, ">")
		}
		if !slices.Contains(validStructTypes, AnnotationArg(typeArg)) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in @glow group annotation", lineNum, typeArg)
		}
		return &Annotation{
			Type:    AnnotationTypeBindingGroup,
			Args:    []AnnotationArg{AnnotationArg(args[3]), AnnotationArg(args[4]), AnnotationArg(args[5])},
			Line:    lineNum,
			Group:   &group,
			Binding: &binding,
		}, nil

	case AnnotationTypeProvider:
		if len(args) < 4 || len(args) > 5 {
			return nil, fmt.Errorf("line %d: @glow provider annotation requires group, binding, identity and an optional role", lineNum)
		}
		group, binding, err := parseGroupBinding(args[1], args[2], lineNum)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(validProviderIdentities, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown provider identity %q in @glow provider annotation", lineNum, args[3])
		}
		providerArgs := []AnnotationArg{AnnotationArg(args[3])}
		if len(args) == 5 {
			if !slices.Contains(validBindingRoles, AnnotationArg(args[4])) {
				return nil, fmt.Errorf("line %d: unknown binding role %q in @glow provider annotation", lineNum, args[4])
			}
			providerArgs = append(providerArgs, AnnotationArg(args[4]))
		}
		return &Annotation{
			Type:    AnnotationTypeProvider,
			Args:    providerArgs,
			Line:    lineNum,
			Group:   &group,
			Binding: &binding,
		}, nil

	default:
		return nil, fmt.Errorf("line %d: unknown @glow annotation type %q", lineNum, args[0])
	}
}

func parseGroupBinding(groupArg, bindingArg string, lineNum int) (int, int, error) {
	group, err := strconv.Atoi(groupArg)
	if err != nil {
		return 0, 0, fmt.Errorf("line %d: invalid group number %q: %w", lineNum, groupArg, err)
	}
	binding, err := strconv.Atoi(bindingArg)
	if err != nil {
		return 0, 0, fmt.Errorf("line %d: invalid binding number %q: %w", lineNum, bindingArg, err)
	}
	return group, binding, nil
}
