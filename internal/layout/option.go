package layout

// Opt is an explicit decline-to-default value for policy overrides: a policy
// method returning None defers to the per-sender sizing defaults, and the
// fallback is type-checked instead of implied by a nil check.
type Opt[T any] struct {
	value T
	ok    bool
}

// Some wraps a concrete override.
func Some[T any](v T) Opt[T] { return Opt[T]{value: v, ok: true} }

// None declines to override.
func None[T any]() Opt[T] { return Opt[T]{} }

// Get returns the value and whether one was provided.
func (o Opt[T]) Get() (T, bool) { return o.value, o.ok }

// Or returns the value, or def when the policy declined.
func (o Opt[T]) Or(def T) T {
	if o.ok {
		return o.value
	}
	return def
}
