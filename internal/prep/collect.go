package prep

// CollectAdditionalModels walks set and returns every auxiliary resource it
// references (control-chain dependency sets, the model half of gated
// resources, explicitly attached models) plus a control-specific inference
// memory hint in bytes. Control roots shared across branches are counted
// once; the returned list is not yet deduplicated against the primary.
func CollectAdditionalModels(set Set, dtype DType) ([]Resource, uint64, error) {
	var (
		controls []Control
		gated    []Resource
		attached []Resource
	)
	ctlSeen := make(map[Control]struct{})
	for _, key := range set.branchKeys() {
		for _, e := range set[key] {
			if e == nil {
				return nil, 0, errMalformed(key, "nil conditioning entry")
			}
			if e.Control != nil {
				if _, ok := ctlSeen[e.Control]; !ok {
					ctlSeen[e.Control] = struct{}{}
					controls = append(controls, e.Control)
				}
			}
			for _, g := range e.Gated {
				if g.Model == nil {
					return nil, 0, errMalformed(key, "gated resource missing model")
				}
				gated = append(gated, g.Model)
			}
			for _, r := range e.Models {
				if r == nil {
					return nil, 0, errMalformed(key, "nil additional model")
				}
				attached = append(attached, r)
			}
		}
	}

	var models []Resource
	var hint uint64
	for _, c := range controls {
		models = append(models, c.Models()...)
		hint += c.InferenceMemory(dtype)
	}
	models = append(models, gated...)
	models = append(models, attached...)
	return models, hint, nil
}

// CollectHooks merges every hook referenced by set into one group: hooks
// attached to entries, plus the extra hooks carried by control-chain nodes,
// walking each distinct chain toward its origin. Nodes shared between chains
// are visited once; a chain that revisits a node is reported as a cycle.
func CollectHooks(set Set) (*Group, error) {
	full := NewGroup()
	var roots []Control
	rootSeen := make(map[Control]struct{})
	for _, key := range set.branchKeys() {
		for _, e := range set[key] {
			if e == nil {
				return nil, errMalformed(key, "nil conditioning entry")
			}
			if e.Hooks != nil {
				full.AddGroup(e.Hooks)
			}
			if e.Control != nil {
				if _, ok := rootSeen[e.Control]; !ok {
					rootSeen[e.Control] = struct{}{}
					roots = append(roots, e.Control)
				}
			}
		}
	}

	var collected []*Group
	visited := make(map[Control]struct{})
	for _, root := range roots {
		path := make(map[Control]struct{})
		for node := root; node != nil; node = node.Previous() {
			if _, ok := path[node]; ok {
				return nil, errChainCycle{}
			}
			if _, ok := visited[node]; ok {
				// Shared tail: the rest of this chain was already walked.
				break
			}
			path[node] = struct{}{}
			visited[node] = struct{}{}
			if eh := node.ExtraHooks(); eh != nil {
				collected = append(collected, eh)
			}
		}
	}
	if extra := CombineGroups(collected); extra != nil {
		full.AddGroup(extra)
	}
	return full, nil
}

// modelsFromRegisteredHooks returns resources referenced by already
// registered additional-models hooks in opts.
func modelsFromRegisteredHooks(opts *Options) []Resource {
	if opts == nil || opts.RegisteredHooks == nil {
		return nil
	}
	var out []Resource
	for _, h := range opts.RegisteredHooks.ByKind(KindAdditionalModels) {
		if mc, ok := h.(ModelsCarrier); ok {
			out = append(out, mc.Models()...)
		}
	}
	return out
}
