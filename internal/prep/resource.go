package prep

// DType tags the numeric precision of a model's weights. It is passed
// through to resources that size their inference overhead by precision.
type DType string

const (
	DTypeF32  DType = "f32"
	DTypeF16  DType = "f16"
	DTypeBF16 DType = "bf16"
)

// Shape is a tensor shape. The leading dimension is the batch dimension.
type Shape []int

// Volume is the product of all dimensions. Shapes with a missing or
// non-positive dimension have volume zero.
func (s Shape) Volume() uint64 {
	if len(s) == 0 {
		return 0
	}
	v := uint64(1)
	for _, d := range s {
		if d <= 0 {
			return 0
		}
		v *= uint64(d)
	}
	return v
}

// clone returns an independent copy of s.
func (s Shape) clone() Shape {
	out := make(Shape, len(s))
	copy(out, s)
	return out
}

// Resource is any model-like object that occupies device memory while a
// computation runs. Implementations must be comparable values (in practice,
// pointers): deduplication throughout this package is by identity.
type Resource interface {
	// MemorySize reports the device-memory footprint of the resource's
	// weights in bytes.
	MemorySize() uint64
}

// Cleanable is implemented by resources that hold transient per-computation
// state. Cleanup must tolerate being called when there is nothing to release.
type Cleanable interface {
	Cleanup()
}

// Control is a node in a control chain: a linked sequence of auxiliary
// resources traversed toward its origin via Previous. Nodes may be shared
// across branches and across chains (shared tails); they are always handled
// by reference.
type Control interface {
	Resource
	// Previous returns the next node toward the chain's origin, or nil at
	// the origin.
	Previous() Control
	// ExtraHooks returns hooks this node contributes, or nil.
	ExtraHooks() *Group
	// Models returns the node's full dependency set, itself included if it
	// occupies device memory directly.
	Models() []Resource
	// InferenceMemory reports control-specific inference overhead in bytes
	// for the given weight precision.
	InferenceMemory(dtype DType) uint64
}

// EngineModel is the engine-facing model a Primary resolves to once its
// weights are resident. The numeric engine defines concrete types; prep
// treats it as opaque.
type EngineModel any

// Primary is the capability set prep requires of the primary model.
type Primary interface {
	Resource
	// ModelDType reports the weight precision used to size control overhead.
	ModelDType() DType
	// ExtraCondShapes maps an entry's payload to named shape-requirement
	// buckets. Must be pure: no resource state may be mutated.
	ExtraCondShapes(payload map[string]any) map[string]Shape
	// MemoryRequired reports the memory in bytes needed to run one pass at
	// the given output shape with the given per-bucket conditioning shapes.
	// Must be pure.
	MemoryRequired(output Shape, condShapes map[string][]Shape) uint64
	// NestedModels returns additional models the primary itself depends on.
	NestedModels() []Resource
	// Wrappers and Callbacks expose the primary's own registrations. prep
	// copies them before merging; the originals are never mutated.
	Wrappers() Registrations
	Callbacks() Registrations
	// RegisterHookPatches applies weight-patch hooks. Conflict policy is the
	// primary's own; its error is surfaced verbatim.
	RegisterHookPatches(hooks *Group, target TargetKey, opts *Options, registered *Group) error
	// Model resolves the engine-facing model backing this primary.
	Model() EngineModel
}

// dedupResources returns rs with identity duplicates removed, preserving
// first-seen order.
func dedupResources(rs []Resource) []Resource {
	seen := make(map[Resource]struct{}, len(rs))
	out := make([]Resource, 0, len(rs))
	for _, r := range rs {
		if r == nil {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
