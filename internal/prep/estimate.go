package prep

// EstimateMemory computes the worst-case and minimum memory in bytes for
// sampling primary at the given output shape under set's conditioning.
//
// The worst case models two guidance passes concurrently resident: the
// output batch dimension is doubled and every shape seen per bucket is
// passed along. The minimum models a single pass fed only the
// largest-volume shape per bucket; volume ties keep the first shape seen.
func EstimateMemory(primary Primary, output Shape, set Set) (required, minimum uint64) {
	condShapes := make(map[string][]Shape)
	condShapesMin := make(map[string]Shape)
	for _, key := range set.branchKeys() {
		for _, e := range set[key] {
			if e == nil {
				continue
			}
			for name, s := range primary.ExtraCondShapes(e.Payload) {
				condShapes[name] = append(condShapes[name], s)
				if cur, ok := condShapesMin[name]; !ok || s.Volume() > cur.Volume() {
					condShapesMin[name] = s
				}
			}
		}
	}
	minShapes := make(map[string][]Shape, len(condShapesMin))
	for name, s := range condShapesMin {
		minShapes[name] = []Shape{s}
	}
	required = primary.MemoryRequired(doubleBatch(output), condShapes)
	minimum = primary.MemoryRequired(output.clone(), minShapes)
	return required, minimum
}

// doubleBatch returns a copy of s with the leading dimension doubled.
func doubleBatch(s Shape) Shape {
	if len(s) == 0 {
		return s
	}
	out := s.clone()
	out[0] *= 2
	return out
}
