package prep

// RegisterHooks applies every hook implied by set to the primary's
// configuration and returns the merged load options. The primary's own
// wrapper and callback registrations are deep-copied into opts before any
// hook patches them, so the originals survive the request untouched.
func RegisterHooks(primary Primary, set Set, opts *Options) (LoadOptions, error) {
	if primary == nil {
		return LoadOptions{}, errMalformed("", "nil primary resource")
	}
	if opts == nil {
		return LoadOptions{}, errMalformed("", "nil options")
	}
	hooks, err := CollectHooks(set)
	if err != nil {
		return LoadOptions{}, err
	}

	opts.Transformer.Wrappers = primary.Wrappers().Clone()
	opts.Transformer.Callbacks = primary.Callbacks().Clone()

	registered := NewGroup()
	target := NewTargetKey(WeightTargetModel)
	for _, kind := range []Kind{KindTransformerOptions, KindAdditionalModels} {
		for _, h := range hooks.ByKind(kind) {
			applier, ok := h.(PatchApplier)
			if !ok {
				return LoadOptions{}, errMalformed("", kind.String()+" hook cannot apply patches")
			}
			if err := applier.ApplyPatches(primary, opts, target, registered); err != nil {
				return LoadOptions{}, err
			}
		}
	}
	// Weight-patch hooks are the primary's business; hand over the whole
	// group and the in-progress registry.
	if err := primary.RegisterHookPatches(hooks, target, opts, registered); err != nil {
		return LoadOptions{}, err
	}
	if registered.Len() > 0 {
		opts.RegisteredHooks = registered
	}

	if opts.ToLoad.Wrappers == nil {
		opts.ToLoad.Wrappers = Registrations{}
	}
	if opts.ToLoad.Callbacks == nil {
		opts.ToLoad.Callbacks = Registrations{}
	}
	opts.ToLoad.Wrappers.Merge(opts.Transformer.Wrappers)
	opts.ToLoad.Callbacks.Merge(opts.Transformer.Callbacks)
	return opts.ToLoad, nil
}
