package thread

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRender yields numbered blocks of the given heights and counts calls.
func fixedRender(heights []int, calls *[]int) renderFunc {
	return func(idx int) (string, int) {
		if calls != nil {
			*calls = append(*calls, idx)
		}
		h := heights[idx]
		lines := make([]string, h)
		for i := range lines {
			lines[i] = fmt.Sprintf("block %d line %d", idx, i)
		}
		return strings.Join(lines, "\n"), h
	}
}

func TestSegmentCacheInitialRenderTouchesEverything(t *testing.T) {
	sc := NewSegmentCache()
	heights := []int{2, 3, 1}

	var calls []int
	sc.ProcessDirty(len(heights), fixedRender(heights, &calls))
	assert.Equal(t, []int{0, 1, 2}, calls)
	assert.Equal(t, 3, sc.Len())
}

func TestSegmentCacheOffsetsAndTotalHeight(t *testing.T) {
	sc := NewSegmentCache()
	heights := []int{2, 3, 1}

	sc.ProcessDirty(len(heights), fixedRender(heights, nil))
	sc.Rebuild()

	// Blocks stack with one spacing line between them.
	off, h := sc.BlockPosition(0)
	assert.Equal(t, 0, off)
	assert.Equal(t, 2, h)

	off, h = sc.BlockPosition(1)
	assert.Equal(t, 3, off)
	assert.Equal(t, 3, h)

	off, h = sc.BlockPosition(2)
	assert.Equal(t, 7, off)
	assert.Equal(t, 1, h)

	assert.Equal(t, 8, sc.TotalHeight())

	off, h = sc.BlockPosition(5)
	assert.Equal(t, -1, off)
	assert.Equal(t, -1, h)
}

func TestSegmentCacheSelectiveDirty(t *testing.T) {
	sc := NewSegmentCache()
	heights := []int{1, 1, 1}

	sc.ProcessDirty(len(heights), fixedRender(heights, nil))

	var calls []int
	sc.MarkDirty(1, len(heights))
	sc.ProcessDirty(len(heights), fixedRender(heights, &calls))
	assert.Equal(t, []int{1}, calls, "only the marked block re-renders")

	calls = nil
	sc.ProcessDirty(len(heights), fixedRender(heights, &calls))
	assert.Empty(t, calls, "nothing dirty, nothing rendered")
}

func TestSegmentCacheMarkDirtyAllWins(t *testing.T) {
	sc := NewSegmentCache()
	heights := []int{1, 1}
	sc.ProcessDirty(len(heights), fixedRender(heights, nil))

	sc.MarkDirtyAll()
	sc.MarkDirty(0, len(heights))

	var calls []int
	sc.ProcessDirty(len(heights), fixedRender(heights, &calls))
	assert.Equal(t, []int{0, 1}, calls)
}

func TestSegmentCacheMarkDirtyIgnoresOutOfRange(t *testing.T) {
	sc := NewSegmentCache()
	heights := []int{1}
	sc.ProcessDirty(len(heights), fixedRender(heights, nil))

	sc.MarkDirty(-1, 1)
	sc.MarkDirty(5, 1)

	var calls []int
	sc.ProcessDirty(len(heights), fixedRender(heights, &calls))
	assert.Empty(t, calls)
}

func TestSegmentCacheShrinkAndGrow(t *testing.T) {
	sc := NewSegmentCache()
	sc.ProcessDirty(3, fixedRender([]int{1, 1, 1}, nil))
	require.Equal(t, 3, sc.Len())

	sc.MarkDirtyAll()
	sc.ProcessDirty(2, fixedRender([]int{1, 1}, nil))
	assert.Equal(t, 2, sc.Len())

	sc.MarkDirtyAll()
	sc.ProcessDirty(4, fixedRender([]int{1, 1, 1, 1}, nil))
	assert.Equal(t, 4, sc.Len())
}

func TestSegmentCacheVisibilityCulling(t *testing.T) {
	sc := NewSegmentCache()
	// 30 blocks of 4 lines each: tall enough that distant blocks cull.
	heights := make([]int, 30)
	for i := range heights {
		heights[i] = 4
	}
	sc.ProcessDirty(len(heights), fixedRender(heights, nil))
	sc.Rebuild()

	changed := sc.UpdateVisibility(0, 10, -1)
	require.True(t, changed)
	content := sc.Content()
	assert.Contains(t, content, "block 0 line 0")
	assert.NotContains(t, content, "block 29 line 0", "far blocks stay placeholders")

	// Placeholders preserve every block's height.
	lines := strings.Count(content, "\n") + 1
	assert.Equal(t, sc.TotalHeight(), lines)

	// Scrolling to the bottom swaps the far content in.
	changed = sc.UpdateVisibility(sc.TotalHeight()-10, 10, -1)
	require.True(t, changed)
	content = sc.Content()
	assert.Contains(t, content, "block 29 line 0")
	assert.NotContains(t, content, "block 0 line 0")
}

func TestSegmentCacheEnsureVisibleOverridesCulling(t *testing.T) {
	sc := NewSegmentCache()
	heights := make([]int, 30)
	for i := range heights {
		heights[i] = 4
	}
	sc.ProcessDirty(len(heights), fixedRender(heights, nil))
	sc.Rebuild()

	sc.UpdateVisibility(0, 10, 29)
	assert.Contains(t, sc.Content(), "block 29 line 0")
}

func TestSegmentCacheUnchangedVisibilityReportsFalse(t *testing.T) {
	sc := NewSegmentCache()
	heights := []int{2, 2}
	sc.ProcessDirty(len(heights), fixedRender(heights, nil))
	sc.Rebuild()

	require.True(t, sc.UpdateVisibility(0, 10, -1))
	assert.False(t, sc.UpdateVisibility(0, 10, -1))
}

func TestSegmentCacheLayoutDirtyLifecycle(t *testing.T) {
	sc := NewSegmentCache()
	assert.True(t, sc.IsLayoutDirty())

	sc.ProcessDirty(2, fixedRender([]int{1, 1}, nil))
	sc.Rebuild()
	sc.ClearLayoutDirty()
	assert.False(t, sc.IsLayoutDirty())

	sc.MarkDirty(0, 2)
	assert.True(t, sc.IsLayoutDirty())
}

func TestPlaceholderString(t *testing.T) {
	assert.Equal(t, "", placeholderString(0))
	assert.Equal(t, "", placeholderString(1))
	assert.Equal(t, "\n\n", placeholderString(3))
}
