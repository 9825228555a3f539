package accrual

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/warp/leave-engine/calendar"
)

// =============================================================================
// POLICY REGISTRY
// =============================================================================

// Registry dispatches policy-type strings to Calculators. It is an explicit
// value owned by the composition root and injected into the calculators -
// not ambient global state.
//
// Registration must complete before concurrent lookups begin: the RWMutex
// makes interleaved access safe, but the intended discipline is
// single-writer-then-many-readers at startup.
type Registry struct {
	mu          sync.RWMutex
	calculators map[string]Calculator
	log         zerolog.Logger
}

// NewRegistry returns a registry with the DEFAULT policy pre-registered.
func NewRegistry(log zerolog.Logger) *Registry {
	r := &Registry{
		calculators: make(map[string]Calculator),
		log:         log,
	}
	r.Register(DefaultPolicy, DefaultAccruedDays)
	return r
}

// Register inserts or overwrites a named policy calculator.
func (r *Registry) Register(name string, fn Calculator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calculators[name] = fn
}

// Lookup returns the calculator for a policy type, if registered.
func (r *Registry) Lookup(name string) (Calculator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.calculators[name]
	return fn, ok
}

// Types returns the registered policy type names, in no particular order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.calculators))
	for name := range r.calculators {
		out = append(out, name)
	}
	return out
}

// AccruedDays resolves cfg.Type and computes the accrued days. An unknown
// type logs a warning and transparently substitutes the DEFAULT policy.
func (r *Registry) AccruedDays(hire, asOf calendar.Date, cfg Config) int {
	fn, ok := r.Lookup(cfg.Type)
	if !ok {
		r.log.Warn().
			Str("policy_type", cfg.Type).
			Msg("unknown accrual policy type, falling back to DEFAULT")
		fn, _ = r.Lookup(DefaultPolicy)
	}
	return fn(hire, asOf)
}
