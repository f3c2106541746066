package layout

import (
	"errors"
	"fmt"

	"threadview/internal/logging"
	"threadview/internal/thread"
)

var (
	// ErrNoSource means the engine was constructed without a message source.
	ErrNoSource = errors.New("layout: no message source bound")

	// ErrUnsupportedKind means no calculator serves the entry's message kind.
	ErrUnsupportedKind = errors.New("layout: unsupported message kind")

	// ErrIndexOutOfRange means the requested entry index is not held.
	ErrIndexOutOfRange = errors.New("layout: entry index out of range")
)

const defaultCacheSize = 512

// Engine owns the ordered entry list and serves per-index geometry, caching
// computed attributes keyed by message identity and validated by content
// fingerprint. Single logical thread: all calls happen between reconciliation
// passes, never during one.
type Engine struct {
	src    thread.Source
	policy Policy
	sizing Sizing

	env   *Env
	table Table

	entries []thread.Entry
	cache   *attrCache
	log     *logging.Logger
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithPolicy installs the layout policy collaborator. Defaults to NopPolicy.
func WithPolicy(p Policy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithSizing installs the per-sender sizing defaults.
func WithSizing(s Sizing) Option {
	return func(e *Engine) { e.sizing = s }
}

// WithCacheSize bounds the attribute cache.
func WithCacheSize(n int) Option {
	return func(e *Engine) { e.cache = newAttrCache(n) }
}

// WithLogger installs a logger. Defaults to a no-op logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New constructs an engine over the given source and available content width.
// A nil source is a configuration error: geometry computed without one would
// be meaningless.
func New(src thread.Source, width int, opts ...Option) (*Engine, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	e := &Engine{
		src:    src,
		policy: NopPolicy{},
		sizing: DefaultSizing(),
		cache:  newAttrCache(defaultCacheSize),
		log:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.env = &Env{
		Sizing:   e.sizing,
		Policy:   e.policy,
		Measurer: NewTextMeasurer(),
		IsMine:   src.IsMine,
		Width:    width,
	}
	e.table = NewTable(e.env)
	return e, nil
}

// SetWidth updates the available content width. All cached geometry is stale
// after a width change.
func (e *Engine) SetWidth(w int) {
	if e.env.Width == w {
		return
	}
	e.env.Width = w
	e.InvalidateAll()
}

// Width returns the current available content width.
func (e *Engine) Width() int { return e.env.Width }

// SetSizing replaces the per-sender style defaults (e.g. after a style file
// reload) and drops all cached geometry.
func (e *Engine) SetSizing(s Sizing) {
	e.sizing = s
	e.env.Sizing = s
	e.InvalidateAll()
}

// SetEntries replaces the held entry ordering. Called once per applied
// reconciliation pass.
func (e *Engine) SetEntries(entries []thread.Entry) {
	e.entries = entries
}

// Entries returns the held ordering.
func (e *Engine) Entries() []thread.Entry { return e.entries }

// Len is the number of held entries.
func (e *Engine) Len() int { return len(e.entries) }

// AttributesAt computes (or serves from cache) the layout attributes for the
// entry at index i.
func (e *Engine) AttributesAt(i int) (Attributes, error) {
	if i < 0 || i >= len(e.entries) {
		return Attributes{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(e.entries))
	}
	entry := e.entries[i]

	calc, ok := e.table.For(entry)
	if !ok {
		kind := thread.Kind(-1)
		if entry.Message != nil {
			kind = entry.Message.Kind
		}
		return Attributes{}, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}

	id := entry.ID()
	fp := entry.Fingerprint()
	if attrs, ok := e.cache.get(id, fp); ok {
		return attrs, nil
	}

	pos := thread.Position{Section: 0, Item: i}
	attrs := calc.Attributes(entry, pos)
	e.cache.put(id, fp, attrs)
	return attrs, nil
}

// CellSizeAt returns the full cell size for the entry at index i.
func (e *Engine) CellSizeAt(i int) (Size, error) {
	attrs, err := e.AttributesAt(i)
	if err != nil {
		return Size{}, err
	}
	return attrs.CellSize, nil
}

// Invalidate drops the cached attributes for one message identity.
func (e *Engine) Invalidate(id string) {
	e.cache.invalidate(id)
	e.log.Debug().Str("id", id).Msg("layout cache entry invalidated")
}

// InvalidateAll empties the attribute cache. The next lookup for every entry
// misses. Wire external signals (style reload, memory pressure) here.
func (e *Engine) InvalidateAll() {
	e.cache.invalidateAll()
	e.log.Debug().Msg("layout cache invalidated")
}

// CacheLen reports how many attribute records are currently cached.
func (e *Engine) CacheLen() int { return e.cache.len() }
