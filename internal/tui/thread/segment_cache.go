package thread

import (
	"strings"
)

const (
	blockSeparator    = "\n\n"
	blockSpacingLines = 1
)

// cellBlock stores the rendered output for a single entry cell.
type cellBlock struct {
	content     string
	height      int
	placeholder string
}

// segmentLayout stores the aggregated offsets for all blocks.
type segmentLayout struct {
	heights      []int
	blockOffsets []int
	segments     []string
	visible      []bool
	totalHeight  int
	content      string
	contentWidth int
}

// SegmentCache keeps rendered entry cells and the assembled viewport content,
// re-rendering only what a reconciliation plan marks dirty and substituting
// newline placeholders for blocks scrolled far out of view.
type SegmentCache struct {
	blocks      []cellBlock
	layout      segmentLayout
	dirtyAll    bool
	dirtyItems  map[int]struct{}
	layoutDirty bool
}

// NewSegmentCache creates an empty cache with everything marked dirty.
func NewSegmentCache() *SegmentCache {
	return &SegmentCache{
		dirtyItems:  make(map[int]struct{}),
		dirtyAll:    true,
		layoutDirty: true,
	}
}

// MarkDirtyAll forces a full re-render on the next pass.
func (sc *SegmentCache) MarkDirtyAll() {
	sc.dirtyAll = true
	sc.layoutDirty = true
	for k := range sc.dirtyItems {
		delete(sc.dirtyItems, k)
	}
}

// MarkDirty marks one entry index for re-render.
func (sc *SegmentCache) MarkDirty(idx, itemCount int) {
	if idx < 0 || idx >= itemCount {
		return
	}
	if sc.dirtyAll {
		return
	}
	sc.dirtyItems[idx] = struct{}{}
	sc.layoutDirty = true
}

// syncLen resizes the block slice to the entry count.
func (sc *SegmentCache) syncLen(itemCount int) {
	if len(sc.blocks) < itemCount {
		delta := itemCount - len(sc.blocks)
		sc.blocks = append(sc.blocks, make([]cellBlock, delta)...)
		sc.layoutDirty = true
	} else if len(sc.blocks) > itemCount {
		sc.blocks = sc.blocks[:itemCount]
		sc.layoutDirty = true
	}
}

// renderFunc produces the cell content and height for one entry index.
type renderFunc func(idx int) (content string, height int)

// ProcessDirty re-renders all dirty blocks through render.
func (sc *SegmentCache) ProcessDirty(itemCount int, render renderFunc) {
	sc.syncLen(itemCount)

	renderOne := func(idx int) cellBlock {
		content, height := render(idx)
		return cellBlock{
			content:     content,
			height:      height,
			placeholder: placeholderString(height),
		}
	}

	if sc.dirtyAll {
		for i := 0; i < itemCount; i++ {
			sc.blocks[i] = renderOne(i)
		}
		sc.dirtyAll = false
		for k := range sc.dirtyItems {
			delete(sc.dirtyItems, k)
		}
		return
	}

	for idx := range sc.dirtyItems {
		if idx < 0 || idx >= len(sc.blocks) {
			continue
		}
		sc.blocks[idx] = renderOne(idx)
		delete(sc.dirtyItems, idx)
	}
}

// placeholderString reserves a block's height without its content so offsets
// stay stable while the block is culled.
func placeholderString(height int) string {
	if height <= 1 {
		return ""
	}
	return strings.Repeat("\n", height-1)
}

// Rebuild recomputes block offsets and resets all segments to placeholders.
func (sc *SegmentCache) Rebuild() {
	n := len(sc.blocks)
	l := segmentLayout{
		heights:      make([]int, n),
		blockOffsets: make([]int, n),
		segments:     make([]string, n),
		visible:      make([]bool, n),
	}

	total := 0
	for i, b := range sc.blocks {
		l.heights[i] = b.height
		l.blockOffsets[i] = total
		total += b.height
		if i < n-1 {
			total += blockSpacingLines
		}
		l.segments[i] = b.placeholder
	}
	l.totalHeight = total
	l.content = joinSegments(l.segments)
	sc.layout = l
}

// UpdateVisibility swaps real content in for blocks near the scroll window
// and placeholders back for blocks far outside it. Returns whether the
// assembled content changed.
func (sc *SegmentCache) UpdateVisibility(viewTop, vpHeight, ensureVisibleIdx int) bool {
	l := &sc.layout
	if len(l.heights) == 0 {
		return false
	}

	if vpHeight < 1 {
		vpHeight = 1
	}
	if viewTop < 0 {
		viewTop = 0
	}
	maxOffset := l.totalHeight - vpHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if viewTop > maxOffset {
		viewTop = maxOffset
	}

	viewBottom := viewTop + vpHeight
	if viewBottom > l.totalHeight {
		viewBottom = l.totalHeight
	}

	buffer := vpHeight / 2
	if buffer < 4 {
		buffer = 4
	}
	startLine := viewTop - buffer
	if startLine < 0 {
		startLine = 0
	}
	endLine := viewBottom + buffer
	if endLine > l.totalHeight {
		endLine = l.totalHeight
	}

	changed := false
	for i := range l.heights {
		blockTop := l.blockOffsets[i]
		blockBottom := blockTop + l.heights[i]
		shouldBeVisible := blockBottom >= startLine && blockTop <= endLine
		if ensureVisibleIdx >= 0 && i == ensureVisibleIdx {
			shouldBeVisible = true
		}

		b := sc.blocks[i]
		want := b.placeholder
		if shouldBeVisible {
			want = b.content
		}
		if l.visible[i] != shouldBeVisible {
			l.visible[i] = shouldBeVisible
		}
		if l.segments[i] != want {
			l.segments[i] = want
			changed = true
		}
	}

	if changed {
		l.content = joinSegments(l.segments)
	}
	return changed
}

// BlockPosition returns the content offset and height of an entry's block,
// or (-1, -1) if the index is not held.
func (sc *SegmentCache) BlockPosition(idx int) (offset, height int) {
	l := sc.layout
	if idx < 0 || idx >= len(l.heights) {
		return -1, -1
	}
	return l.blockOffsets[idx], l.heights[idx]
}

// Content returns the assembled viewport content.
func (sc *SegmentCache) Content() string { return sc.layout.content }

// TotalHeight returns the stacked content height in lines.
func (sc *SegmentCache) TotalHeight() int { return sc.layout.totalHeight }

// Len returns the number of cached blocks.
func (sc *SegmentCache) Len() int { return len(sc.blocks) }

// IsLayoutDirty reports whether offsets need rebuilding.
func (sc *SegmentCache) IsLayoutDirty() bool { return sc.layoutDirty }

// ClearLayoutDirty marks the layout as clean.
func (sc *SegmentCache) ClearLayoutDirty() { sc.layoutDirty = false }

// joinSegments joins block segments with the standard block separator.
func joinSegments(segments []string) string {
	switch len(segments) {
	case 0:
		return ""
	case 1:
		return segments[0]
	}
	var builder strings.Builder
	for i, seg := range segments {
		if i > 0 {
			builder.WriteString(blockSeparator)
		}
		builder.WriteString(seg)
	}
	return builder.String()
}
