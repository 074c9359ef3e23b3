package prep

// Kind enumerates the closed set of hook kinds prep knows how to dispatch.
type Kind uint8

const (
	// KindTransformerOptions hooks patch the transformer options of the
	// primary model.
	KindTransformerOptions Kind = iota + 1
	// KindAdditionalModels hooks attach extra resources that must be
	// resident during the computation.
	KindAdditionalModels
	// KindWeightPatch hooks are registered by the primary model itself.
	KindWeightPatch
)

func (k Kind) String() string {
	switch k {
	case KindTransformerOptions:
		return "transformer-options"
	case KindAdditionalModels:
		return "additional-models"
	case KindWeightPatch:
		return "weight-patch"
	default:
		return "unknown"
	}
}

// Hook is a tagged behavioral override contributed by conditioning.
// Hook definitions live with their contributors; prep only composes them.
type Hook interface {
	Kind() Kind
}

// PatchApplier is implemented by transformer-options and additional-models
// hooks: they register their own patches against the in-progress options.
type PatchApplier interface {
	Hook
	ApplyPatches(primary Primary, opts *Options, target TargetKey, registered *Group) error
}

// ModelsCarrier is implemented by additional-models hooks that reference
// resources needing device residency.
type ModelsCarrier interface {
	Hook
	Models() []Resource
}

// Group is an insertion-ordered set of hooks deduplicated by identity
// (pointer hooks) or equality (comparable value hooks). The zero value is
// ready to use.
type Group struct {
	hooks []Hook
	seen  map[Hook]struct{}
}

// NewGroup returns a Group seeded with the given hooks.
func NewGroup(hooks ...Hook) *Group {
	g := &Group{}
	for _, h := range hooks {
		g.Add(h)
	}
	return g
}

// Add inserts h unless an identical hook is already present.
func (g *Group) Add(h Hook) {
	if h == nil {
		return
	}
	if g.seen == nil {
		g.seen = make(map[Hook]struct{})
	}
	if _, ok := g.seen[h]; ok {
		return
	}
	g.seen[h] = struct{}{}
	g.hooks = append(g.hooks, h)
}

// AddGroup unions other into g, keeping g's insertion order for hooks it
// already holds.
func (g *Group) AddGroup(other *Group) {
	if other == nil {
		return
	}
	for _, h := range other.hooks {
		g.Add(h)
	}
}

// Hooks returns the hooks in insertion order. The slice is shared; callers
// must not mutate it.
func (g *Group) Hooks() []Hook {
	if g == nil {
		return nil
	}
	return g.hooks
}

// Len reports the number of distinct hooks.
func (g *Group) Len() int {
	if g == nil {
		return 0
	}
	return len(g.hooks)
}

// ByKind returns the hooks of kind k in insertion order.
func (g *Group) ByKind(k Kind) []Hook {
	if g == nil {
		return nil
	}
	var out []Hook
	for _, h := range g.hooks {
		if h.Kind() == k {
			out = append(out, h)
		}
	}
	return out
}

// CombineGroups unions the given groups, skipping nil and empty ones.
// Returns nil when nothing was collected.
func CombineGroups(groups []*Group) *Group {
	var out *Group
	for _, g := range groups {
		if g.Len() == 0 {
			continue
		}
		if out == nil {
			out = NewGroup()
		}
		out.AddGroup(g)
	}
	return out
}

// WeightTarget names the weight set hook patches apply against.
type WeightTarget string

// WeightTargetModel targets the primary model's own weights.
const WeightTargetModel WeightTarget = "model"

// TargetKey carries the resolved weight target through hook registration.
type TargetKey struct {
	Target WeightTarget
}

// NewTargetKey builds the target key for the given weight target.
func NewTargetKey(t WeightTarget) TargetKey {
	return TargetKey{Target: t}
}
