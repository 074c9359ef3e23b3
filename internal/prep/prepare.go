package prep

import "context"

// DeviceManager admits resources onto the compute device under a shared
// memory budget. The manager is the authority on admission and eviction;
// concurrent Load calls may be serialized or rejected by it.
type DeviceManager interface {
	// Load makes every listed resource resident with at least minimum bytes
	// of execution headroom available, preferring required. On failure no
	// listed resource is newly retained. The request must already be
	// identity-deduplicated.
	Load(ctx context.Context, resources []Resource, required, minimum uint64) error
}

// PrepareSampling readies one computation: it collects the auxiliary
// resources implied by set, estimates memory, and issues a single load
// request for the primary plus all auxiliaries. It returns the resolved
// engine model, the conditioning set, and the auxiliary resources the
// caller must hand to CleanupModels when the computation finishes.
//
// Interceptors in opts.PrepareWrappers wrap the whole step, outermost first.
func PrepareSampling(ctx context.Context, dev DeviceManager, primary Primary, output Shape, set Set, opts *Options) (EngineModel, Set, []Resource, error) {
	if opts == nil {
		opts = &Options{}
	}
	core := func(ctx context.Context, primary Primary, output Shape, set Set, opts *Options) (EngineModel, Set, []Resource, error) {
		return prepareSampling(ctx, dev, primary, output, set, opts)
	}
	fn := chainPrepare(core, opts.PrepareWrappers)
	return fn(ctx, primary, output, set, opts)
}

func prepareSampling(ctx context.Context, dev DeviceManager, primary Primary, output Shape, set Set, opts *Options) (EngineModel, Set, []Resource, error) {
	if primary == nil {
		return nil, nil, nil, errMalformed("", "nil primary resource")
	}
	models, hint, err := CollectAdditionalModels(set, primary.ModelDType())
	if err != nil {
		return nil, nil, nil, err
	}
	models = append(models, modelsFromRegisteredHooks(opts)...)
	models = append(models, primary.NestedModels()...)
	required, minimum := EstimateMemory(primary, output, set)

	load := dedupResources(append([]Resource{primary}, models...))
	if err := dev.Load(ctx, load, required+hint, minimum+hint); err != nil {
		return nil, nil, nil, err
	}
	return primary.Model(), set, models, nil
}
