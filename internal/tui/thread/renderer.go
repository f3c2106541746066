package thread

import (
	"github.com/charmbracelet/bubbles/v2/viewport"
)

// Renderer manages offsets, scroll anchoring and viewport content assembly on
// top of a SegmentCache. Cells are width-constrained by the layout engine, so
// no soft-wrap pass is needed here.
type Renderer struct {
	cache *SegmentCache
}

// NewRenderer creates a renderer over the given cache.
func NewRenderer(cache *SegmentCache) *Renderer {
	return &Renderer{cache: cache}
}

// Render assembles the viewport content after the dirty blocks have been
// re-rendered. Returns the viewport view and whether the caller should stick
// to the bottom.
func (r *Renderer) Render(vp *viewport.Model, wasAtBottom bool, ensureVisibleIdx int) (string, bool) {
	layoutChanged := false
	if r.cache.IsLayoutDirty() {
		r.cache.Rebuild()
		layoutChanged = true
	}

	vpHeight := vp.Height()
	if vpHeight < 1 {
		vpHeight = 1
	}
	visibilityChanged := r.cache.UpdateVisibility(vp.YOffset(), vpHeight, ensureVisibleIdx)

	if layoutChanged || visibilityChanged {
		vp.SetContent(r.cache.Content())
	}

	handledEnsure := false
	if ensureVisibleIdx >= 0 {
		if top, h := r.cache.BlockPosition(ensureVisibleIdx); top >= 0 {
			if h < 1 {
				h = 1
			}
			cur := vp.YOffset()
			if top < cur {
				vp.SetYOffset(top)
			} else if top+h > cur+vpHeight {
				vp.SetYOffset(top + h - vpHeight)
			}
			handledEnsure = true
		}
	}

	scrollToBottom := !handledEnsure && wasAtBottom && (layoutChanged || visibilityChanged)
	r.cache.ClearLayoutDirty()
	return vp.View(), scrollToBottom
}
