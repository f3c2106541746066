package layout

import (
	"threadview/internal/thread"
)

// Calculator turns one (entry, position) pair into layout attributes and an
// overall cell size. Implementations must be idempotent: the same entry under
// the same configuration always yields identical results.
type Calculator interface {
	Attributes(e thread.Entry, pos thread.Position) Attributes
	CellSize(e thread.Entry, pos thread.Position) Size
}

// Env bundles the collaborators every calculator shares: the per-sender
// sizing defaults, the override policy, the text measurer, sender direction
// resolution and the available content width.
type Env struct {
	Sizing   Sizing
	Policy   Policy
	Measurer *TextMeasurer
	IsMine   func(thread.Message) bool
	Width    int
}

// containerFunc sizes the message container for one kind within maxWidth.
type containerFunc func(env *Env, m thread.Message, maxWidth int) Size

// bubbleCalculator is the generic avatar/label/accessory/attachment
// composition shared by every bubble-rendered kind. Kind specialization is
// the container func alone; everything else is common.
type bubbleCalculator struct {
	env       *Env
	container containerFunc
}

func (c *bubbleCalculator) Attributes(e thread.Entry, pos thread.Position) Attributes {
	if e.Message == nil {
		return Attributes{}
	}
	m := *e.Message
	env := c.env
	mine := env.IsMine(m)
	cfg := env.Sizing.For(mine)

	var a Attributes
	a.AvatarSize = env.Policy.AvatarSize(m, pos).Or(cfg.AvatarSize)
	a.AvatarAnchor = env.Policy.AvatarAnchor(m, pos).Or(cfg.AvatarAnchor).Resolved(mine)
	a.AvatarEdgePadding = cfg.AvatarEdgePadding
	a.ContainerPadding = cfg.ContainerPadding
	a.AccessorySize = env.Policy.AccessorySize(m, pos).Or(cfg.AccessorySize)
	a.AccessoryPadding = cfg.AccessoryPadding
	a.AccessoryAnchor = env.Policy.AccessoryAnchor(m, pos).Or(cfg.AccessoryAnchor).Resolved(mine)

	maxW := containerMaxWidth(env.Width, a)
	captionW := env.Width

	a.TopCaptionSize = labelSize(captionW, env.Policy.TopCaptionHeight(m, pos, maxW))
	a.TopLabelSize = labelSize(captionW, env.Policy.TopLabelHeight(m, pos, maxW))
	a.BottomLabelSize = labelSize(captionW, env.Policy.BottomLabelHeight(m, pos, maxW))
	a.BottomCaptionSize = labelSize(captionW, env.Policy.BottomCaptionHeight(m, pos, maxW))

	a.TopCaptionAlignment = env.Policy.TopCaptionAlignment(m, pos).Or(cfg.TopCaptionAlignment)
	a.BottomCaptionAlignment = env.Policy.BottomCaptionAlignment(m, pos).Or(cfg.BottomCaptionAlignment)
	a.TopLabelAlignment = cfg.TopLabelAlignment
	a.BottomLabelAlignment = cfg.BottomLabelAlignment

	a.ContainerSize = clampSize(c.container(env, m, maxW), maxW)
	a.TimestampSize = timestampSize(m)

	if m.Attachment != nil {
		a.AttachmentPadding = cfg.AttachmentPadding
		attH := env.Policy.AttachmentHeight(m, pos, maxW).
			Or(thumbnailHeight(*m.Attachment, maxW))
		if attH < 0 {
			attH = 0
		}
		a.AttachmentSize = Size{Width: maxW, Height: attH}
		if attH > 0 {
			// An attachment fills the container edge to edge even when the
			// text alone would be narrower.
			a.ContainerSize.Width = maxW
			a.ContainerSize.Height += attH + a.AttachmentPadding.Vertical()
		}
	}

	a.CellSize = Size{Width: env.Width, Height: composeHeight(a)}
	return a
}

func (c *bubbleCalculator) CellSize(e thread.Entry, pos thread.Position) Size {
	return c.Attributes(e, pos).CellSize
}

// containerMaxWidth is what remains of the available width after the avatar,
// accessory and their paddings take their share. Never negative.
func containerMaxWidth(available int, a Attributes) int {
	w := available -
		a.AvatarSize.Width -
		a.ContainerPadding.Horizontal() -
		a.AccessorySize.Width -
		a.AccessoryPadding.Horizontal() -
		a.AvatarEdgePadding
	if w < 0 {
		w = 0
	}
	return w
}

func labelSize(width, height int) Size {
	if height <= 0 {
		return Size{}
	}
	return Size{Width: width, Height: height}
}

func clampSize(s Size, maxWidth int) Size {
	if s.Width > maxWidth {
		s.Width = maxWidth
	}
	if s.Width < 0 {
		s.Width = 0
	}
	if s.Height < 0 {
		s.Height = 0
	}
	return s
}

// composeHeight implements the five-way anchor policy. The "message*" anchors
// pin the avatar beside the bubble, so the captions on the far side of the
// pin are guaranteed full height outside the max; the "cell*" anchors (and
// MessageCenter) let every caption participate in the max against the avatar.
// The accessory height is a floor in all cases.
func composeHeight(a Attributes) int {
	avatar := a.AvatarSize.Height
	var h int
	switch a.AvatarAnchor.Vertical {
	case MessageCenter, CellTop, CellBottom:
		h = maxInt(avatar, a.stackHeight())
	case MessageBottom:
		upper := a.TopCaptionSize.Height + a.TopLabelSize.Height +
			a.ContainerSize.Height + a.ContainerPadding.Vertical()
		h = maxInt(avatar, upper) + a.BottomLabelSize.Height + a.BottomCaptionSize.Height
	case MessageTop:
		lower := a.BottomCaptionSize.Height + a.BottomLabelSize.Height +
			a.ContainerSize.Height + a.ContainerPadding.Vertical()
		h = maxInt(avatar, lower) + a.TopLabelSize.Height + a.TopCaptionSize.Height
	case MessageLabelTop:
		rest := a.TopLabelSize.Height + a.ContainerSize.Height +
			a.ContainerPadding.Vertical() + a.BottomLabelSize.Height +
			a.BottomCaptionSize.Height
		h = a.TopCaptionSize.Height + maxInt(avatar, rest)
	default:
		h = maxInt(avatar, a.stackHeight())
	}
	return maxInt(h, a.AccessorySize.Height)
}

func timestampSize(m thread.Message) Size {
	if m.SentAt.IsZero() {
		return Size{}
	}
	// "15:04" plus a status glyph column.
	w := 5
	if m.Status != thread.StatusNone {
		w += 2
	}
	return Size{Width: w, Height: 1}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
