package prep

// CleanupModels releases every auxiliary resource acquired for a
// computation: each resource in resources that is Cleanable is cleaned
// once, and every control-chain node reachable from set is cleaned as well,
// whether or not it appeared in resources. Safe to call after a failed
// preparation; resources are cleaned at most once per call and Cleanup
// implementations tolerate repeats.
func CleanupModels(set Set, resources []Resource) {
	seen := make(map[Resource]struct{})
	clean := func(r Resource) {
		if r == nil {
			return
		}
		if _, ok := seen[r]; ok {
			return
		}
		seen[r] = struct{}{}
		if c, ok := r.(Cleanable); ok {
			c.Cleanup()
		}
	}

	for _, r := range resources {
		clean(r)
	}
	// Control chains may have been loaded through a path that never recorded
	// them in resources; re-derive them from the conditioning. The seen set
	// bounds the walk, so a cyclic chain cannot loop here.
	for _, key := range set.branchKeys() {
		for _, e := range set[key] {
			if e == nil {
				continue
			}
			for node := e.Control; node != nil; node = node.Previous() {
				if _, ok := seen[node]; ok {
					break
				}
				clean(node)
			}
		}
	}
}
