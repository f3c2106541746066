package layout

import (
	"time"

	"github.com/rivo/uniseg"

	"threadview/internal/thread"
	"threadview/internal/timeutil"
)

const (
	// thumbMaxWidth caps media boxes so a panoramic photo doesn't swallow the
	// whole bubble column.
	thumbMaxWidth = 24

	// cellAspect compensates for terminal cells being roughly twice as tall
	// as wide when scaling pixel media into rows.
	cellAspect = 2

	emojiCellWidth = 2
	emojiSpacing   = 1

	typingDotCount = 3
)

// Table maps message kinds to their calculators plus the typing-indicator
// calculator. Kinds absent from the table are unsupported.
type Table struct {
	byKind map[thread.Kind]Calculator
	typing Calculator
}

// NewTable builds the full calculator family over one shared Env.
func NewTable(env *Env) Table {
	bubble := func(f containerFunc) Calculator {
		return &bubbleCalculator{env: env, container: f}
	}
	return Table{
		byKind: map[thread.Kind]Calculator{
			thread.KindText:           bubble(textContainer),
			thread.KindAttributedText: bubble(textContainer),
			thread.KindEmoji:          bubble(emojiContainer),
			thread.KindPhoto:          bubble(mediaContainer),
			thread.KindVideo:          bubble(mediaContainer),
			thread.KindAudio:          bubble(audioContainer),
			thread.KindLocation:       bubble(locationContainer),
			thread.KindContact:        bubble(contactContainer),
			thread.KindLinkPreview:    bubble(linkPreviewContainer),
			thread.KindCustom:         bubble(textContainer),
			thread.KindSystem:         &systemCalculator{env: env},
		},
		typing: &typingCalculator{env: env},
	}
}

// For selects the calculator serving an entry. The second return is false for
// a message kind with no calculator.
func (t Table) For(e thread.Entry) (Calculator, bool) {
	if e.Typing {
		return t.typing, t.typing != nil
	}
	if e.Message == nil {
		return nil, false
	}
	c, ok := t.byKind[e.Message.Kind]
	return c, ok
}

// textContainer sizes plain, attributed and custom text bodies. Empty text
// collapses to a zero container so attachment-only messages reserve nothing.
func textContainer(env *Env, m thread.Message, maxWidth int) Size {
	text := m.Text
	if m.Kind == thread.KindCustom {
		text = m.Payload
	}
	if text == "" {
		return Size{}
	}
	cfg := env.Sizing.For(env.IsMine(m))
	inner := maxWidth - cfg.TextInsets.Horizontal()
	s := env.Measurer.Measure(text, inner)
	if s.Height == 0 {
		return Size{}
	}
	return Size{
		Width:  s.Width + cfg.TextInsets.Horizontal(),
		Height: s.Height + cfg.TextInsets.Vertical(),
	}
}

// emojiContainer renders emoji runs enlarged, one double-width cell per
// grapheme with spacing, and no bubble insets.
func emojiContainer(env *Env, m thread.Message, maxWidth int) Size {
	n := uniseg.GraphemeClusterCount(m.Text)
	if n == 0 {
		return Size{}
	}
	w := n*emojiCellWidth + (n-1)*emojiSpacing
	if maxWidth > 0 && w > maxWidth {
		w = maxWidth
	}
	return Size{Width: w, Height: 1}
}

// mediaContainer sizes photo/video thumbnails from source pixel dimensions,
// plus a caption line block when present.
func mediaContainer(env *Env, m thread.Message, maxWidth int) Size {
	if m.Media == nil {
		return Size{}
	}
	w := thumbWidth(*m.Media, maxWidth)
	h := thumbnailHeight(*m.Media, maxWidth)
	if m.Media.Caption != "" {
		caption := env.Measurer.Measure(m.Media.Caption, maxWidth)
		if caption.Width > w {
			w = caption.Width
		}
		h += caption.Height
	}
	return Size{Width: w, Height: h}
}

func thumbWidth(media thread.Media, maxWidth int) int {
	w := thumbMaxWidth
	if media.Width > 0 && media.Width < w {
		w = media.Width
	}
	if w > maxWidth {
		w = maxWidth
	}
	if w < 0 {
		w = 0
	}
	return w
}

// thumbnailHeight is the default attachment-height answer when the policy
// declines: scale the pixel aspect into rows, compensating for cell shape.
func thumbnailHeight(media thread.Media, maxWidth int) int {
	w := thumbWidth(media, maxWidth)
	if w == 0 {
		return 0
	}
	if media.Width <= 0 || media.Height <= 0 {
		return 0
	}
	h := (media.Height*w + media.Width*cellAspect - 1) / (media.Width * cellAspect)
	if h < 1 {
		h = 1
	}
	return h
}

// audioContainer reserves a play glyph, a duration bar and the duration text.
func audioContainer(env *Env, m thread.Message, maxWidth int) Size {
	if maxWidth <= 0 {
		return Size{}
	}
	cfg := env.Sizing.For(env.IsMine(m))
	label := timeutil.AudioDuration(m.AudioDuration)
	// "▶ " + bar + space + label
	w := 2 + audioBarWidth(m.AudioDuration) + 1 + len(label)
	if w > maxWidth {
		w = maxWidth
	}
	return Size{
		Width:  w + cfg.TextInsets.Horizontal(),
		Height: 1 + cfg.TextInsets.Vertical(),
	}
}

func audioBarWidth(d time.Duration) int {
	secs := int(d / time.Second)
	w := secs / 5
	if w < 4 {
		w = 4
	}
	if w > 12 {
		w = 12
	}
	return w
}

// locationContainer is a fixed-aspect map box plus the place name line.
func locationContainer(env *Env, m thread.Message, maxWidth int) Size {
	if maxWidth <= 0 {
		return Size{}
	}
	w := thumbMaxWidth
	if w > maxWidth {
		w = maxWidth
	}
	h := w / (cellAspect * 2)
	if h < 3 {
		h = 3
	}
	if m.PlaceName != "" {
		name := env.Measurer.Measure(m.PlaceName, maxWidth)
		if name.Width > w {
			w = name.Width
		}
		h += name.Height
	}
	return Size{Width: w, Height: h}
}

// contactContainer stacks the contact name and phone lines.
func contactContainer(env *Env, m thread.Message, maxWidth int) Size {
	cfg := env.Sizing.For(env.IsMine(m))
	inner := maxWidth - cfg.TextInsets.Horizontal()
	s := env.Measurer.MeasureLines([]string{m.ContactName, m.ContactPhone}, inner)
	if s.Height == 0 {
		return Size{}
	}
	return Size{
		Width:  s.Width + cfg.TextInsets.Horizontal(),
		Height: s.Height + cfg.TextInsets.Vertical(),
	}
}

// linkPreviewContainer stacks title, summary and the URL line.
func linkPreviewContainer(env *Env, m thread.Message, maxWidth int) Size {
	cfg := env.Sizing.For(env.IsMine(m))
	inner := maxWidth - cfg.TextInsets.Horizontal()
	if inner <= 0 {
		return Size{}
	}

	var w, h int
	for _, part := range []string{m.LinkTitle, m.LinkSummary, m.LinkURL} {
		if part == "" {
			continue
		}
		s := env.Measurer.Measure(part, inner)
		if s.Width > w {
			w = s.Width
		}
		h += s.Height
	}
	if h == 0 {
		return Size{}
	}
	return Size{
		Width:  w + cfg.TextInsets.Horizontal(),
		Height: h + cfg.TextInsets.Vertical(),
	}
}

// systemCalculator lays out non-interactive system captions: a single
// centered label spanning the content width, with no avatar, accessory or
// caption labels.
type systemCalculator struct {
	env *Env
}

func (c *systemCalculator) Attributes(e thread.Entry, pos thread.Position) Attributes {
	if e.Message == nil {
		return Attributes{}
	}
	m := *e.Message
	env := c.env

	var a Attributes
	a.ContainerPadding = Insets{Top: 0, Bottom: 0}
	a.TopCaptionAlignment = Alignment{Align: AlignCenter}
	a.ContainerSize = clampSize(env.Measurer.Measure(m.Text, env.Width), env.Width)
	a.CellSize = Size{Width: env.Width, Height: a.ContainerSize.Height}
	return a
}

func (c *systemCalculator) CellSize(e thread.Entry, pos thread.Position) Size {
	return c.Attributes(e, pos).CellSize
}

// typingCalculator sizes the transient typing-indicator bubble using the
// incoming-sender defaults. There is no message, so the policy is never
// consulted.
type typingCalculator struct {
	env *Env
}

func (c *typingCalculator) Attributes(e thread.Entry, pos thread.Position) Attributes {
	env := c.env
	cfg := env.Sizing.Incoming

	var a Attributes
	a.AvatarSize = cfg.AvatarSize
	a.AvatarAnchor = cfg.AvatarAnchor.Resolved(false)
	a.AvatarEdgePadding = cfg.AvatarEdgePadding
	a.ContainerPadding = cfg.ContainerPadding

	maxW := containerMaxWidth(env.Width, a)
	dots := typingDotCount*2 - 1 + cfg.TextInsets.Horizontal()
	a.ContainerSize = clampSize(Size{Width: dots, Height: 1 + cfg.TextInsets.Vertical()}, maxW)
	a.CellSize = Size{Width: env.Width, Height: composeHeight(a)}
	return a
}

func (c *typingCalculator) CellSize(e thread.Entry, pos thread.Position) Size {
	return c.Attributes(e, pos).CellSize
}
