package prep

import "context"

// Callback is an opaque engine-invoked registration (a wrapper or callback
// function). prep composes callbacks into load options without calling them;
// the execution engine decides when they run.
type Callback any

// Registrations groups callbacks by registration kind, then by name.
// This two-level shape is the wire contract with the execution engine.
type Registrations map[string]map[string][]Callback

// Clone returns a deep copy of r down to fresh callback slices, so merges
// into the copy never reach the original.
func (r Registrations) Clone() Registrations {
	if r == nil {
		return Registrations{}
	}
	out := make(Registrations, len(r))
	for kind, byName := range r {
		m := make(map[string][]Callback, len(byName))
		for name, cbs := range byName {
			m[name] = append([]Callback(nil), cbs...)
		}
		out[kind] = m
	}
	return out
}

// Merge folds src into r without replacing anything already registered:
// colliding callback lists are concatenated with existing entries first,
// and src is never mutated or aliased.
func (r Registrations) Merge(src Registrations) {
	for kind, byName := range src {
		dst, ok := r[kind]
		if !ok {
			dst = make(map[string][]Callback, len(byName))
			r[kind] = dst
		}
		for name, cbs := range byName {
			dst[name] = append(dst[name], cbs...)
		}
	}
}

// TransformerOptions is the working copy of the primary's wrapper and
// callback registrations that hooks patch during registration.
type TransformerOptions struct {
	Wrappers  Registrations
	Callbacks Registrations
}

// LoadOptions is the merged configuration handed to the loader: the
// primary's registrations combined with everything hooks contributed.
type LoadOptions struct {
	Wrappers  Registrations
	Callbacks Registrations
}

// Options is the request-scoped options context threaded through
// preparation. One Options value serves exactly one computation request;
// reuse across requests would leak hook state between them.
type Options struct {
	Transformer     TransformerOptions
	ToLoad          LoadOptions
	RegisteredHooks *Group
	// PrepareWrappers is the ordered interceptor list wrapped around
	// PrepareSampling. The first wrapper is outermost.
	PrepareWrappers []PrepareWrapper
}

// PrepareFunc is the signature of the core preparation step.
type PrepareFunc func(ctx context.Context, primary Primary, shape Shape, set Set, opts *Options) (EngineModel, Set, []Resource, error)

// PrepareWrapper wraps the preparation step. It receives the next layer and
// returns a replacement; a wrapper may run code before and after next, or
// skip it entirely.
type PrepareWrapper func(next PrepareFunc) PrepareFunc

// chainPrepare composes wrappers around core so wrappers[0] runs outermost:
// entry order follows the list, return order is the reverse.
func chainPrepare(core PrepareFunc, wrappers []PrepareWrapper) PrepareFunc {
	fn := core
	for i := len(wrappers) - 1; i >= 0; i-- {
		if wrappers[i] == nil {
			continue
		}
		fn = wrappers[i](fn)
	}
	return fn
}
