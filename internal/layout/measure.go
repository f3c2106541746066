package layout

import (
	"github.com/charmbracelet/x/ansi"
)

// TextMeasurer measures styled text within a maximum cell width. Styling is
// ANSI escapes; width accounting is escape- and grapheme-aware. The line
// buffer is reused across calls so steady-state measurement does not
// reallocate per message.
type TextMeasurer struct {
	lines []string
}

// NewTextMeasurer returns a measurer with a warm line buffer.
func NewTextMeasurer() *TextMeasurer {
	return &TextMeasurer{lines: make([]string, 0, 32)}
}

// Measure word-wraps text into maxWidth columns and returns the bounding box
// in cells. Degenerate input (empty text or non-positive width) measures
// 0x0 rather than reserving an empty line, so an attachment-only message
// never keeps dead caption space.
func (tm *TextMeasurer) Measure(text string, maxWidth int) Size {
	if text == "" || maxWidth <= 0 {
		return Size{}
	}

	wrapped := ansi.Wrap(text, maxWidth, "")
	tm.lines = tm.lines[:0]
	start := 0
	for i := 0; i <= len(wrapped); i++ {
		if i == len(wrapped) || wrapped[i] == '\n' {
			tm.lines = append(tm.lines, wrapped[start:i])
			start = i + 1
		}
	}

	var widest int
	for _, line := range tm.lines {
		if w := ansi.StringWidth(line); w > widest {
			widest = w
		}
	}
	return Size{Width: widest, Height: len(tm.lines)}
}

// MeasureLines measures pre-split lines without wrapping, truncating widths
// to maxWidth. Used for fixed-format content such as contact cards.
func (tm *TextMeasurer) MeasureLines(lines []string, maxWidth int) Size {
	if maxWidth <= 0 || len(lines) == 0 {
		return Size{}
	}
	var widest int
	for _, line := range lines {
		w := ansi.StringWidth(line)
		if w > maxWidth {
			w = maxWidth
		}
		if w > widest {
			widest = w
		}
	}
	return Size{Width: widest, Height: len(lines)}
}
