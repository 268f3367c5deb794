package assignment

// Engine bundles the assignment core: source resolution, live views,
// lifecycle orchestration and exclusion management, all backed by one remote
// store and sharing one per-party operation guard.
type Engine struct {
	Resolver     *Resolver
	Views        *Views
	Orchestrator *Orchestrator
	Exclusions   *ExclusionManager
}

// NewEngine wires the core against a remote store.
func NewEngine(store Store) *Engine {
	views := NewViews()
	guard := newOperationGuard()
	return &Engine{
		Resolver:     NewResolver(store),
		Views:        views,
		Orchestrator: NewOrchestrator(store, views, guard),
		Exclusions:   NewExclusionManager(store, guard),
	}
}
