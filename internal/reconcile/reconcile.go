// Package reconcile classifies the difference between two ordered entry
// snapshots into the minimal update plan the presentation layer must apply:
// a structural change (membership differs, position-aware animation), a
// selective refresh (same membership, content edits in place) or nothing.
package reconcile

import "threadview/internal/thread"

// Kind classifies an update plan.
type Kind int

const (
	// NoOp means the snapshots are identical in membership and content.
	NoOp Kind = iota

	// Refresh means membership is unchanged but at least one entry's content
	// fingerprint differs; only those entries are touched, in place.
	Refresh

	// Structural means entries were added or removed (the typing indicator
	// included); the full new ordering must be applied.
	Structural
)

func (k Kind) String() string {
	switch k {
	case NoOp:
		return "no-op"
	case Refresh:
		return "refresh"
	case Structural:
		return "structural"
	}
	return "unknown"
}

// Plan is the computed update. Entries always carries the new ordering so the
// caller can install it regardless of classification. For Refresh plans,
// RefreshIndices lists the changed positions within Entries and RefreshIDs
// the matching identities, both in order.
type Plan struct {
	Kind           Kind
	Entries        []thread.Entry
	RefreshIndices []int
	RefreshIDs     []string
}

// Diff compares the previous ordered snapshot against the fresh one. It is a
// pure function: no side effects until the caller applies the plan.
func Diff(prev, next []thread.Entry) Plan {
	plan := Plan{Entries: next}

	prevFPs := make(map[string]uint64, len(prev))
	for _, e := range prev {
		prevFPs[e.ID()] = e.Fingerprint()
	}

	if len(prev) != len(next) {
		plan.Kind = Structural
		return plan
	}

	// Same length: structural iff the identity sets differ.
	for _, e := range next {
		if _, ok := prevFPs[e.ID()]; !ok {
			plan.Kind = Structural
			return plan
		}
	}

	for i, e := range next {
		if prevFPs[e.ID()] != e.Fingerprint() {
			plan.RefreshIndices = append(plan.RefreshIndices, i)
			plan.RefreshIDs = append(plan.RefreshIDs, e.ID())
		}
	}
	if len(plan.RefreshIndices) > 0 {
		plan.Kind = Refresh
	}
	return plan
}
