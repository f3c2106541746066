package layout

// Size is a rectangle measured in terminal cells.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Insets are per-edge paddings in cells.
type Insets struct {
	Top      int `yaml:"top"`
	Leading  int `yaml:"leading"`
	Bottom   int `yaml:"bottom"`
	Trailing int `yaml:"trailing"`
}

// Horizontal is the sum of the leading and trailing insets.
func (i Insets) Horizontal() int { return i.Leading + i.Trailing }

// Vertical is the sum of the top and bottom insets.
func (i Insets) Vertical() int { return i.Top + i.Bottom }

// VerticalAnchor pins the avatar (or accessory) vertically. The "message*"
// anchors pin it beside the message bubble itself; the "cell*" anchors pin it
// to the whole cell. Height composition differs between the two groups.
type VerticalAnchor int

const (
	MessageCenter VerticalAnchor = iota
	MessageTop
	MessageBottom
	MessageLabelTop
	CellTop
	CellBottom
)

func (v VerticalAnchor) String() string {
	switch v {
	case MessageCenter:
		return "message-center"
	case MessageTop:
		return "message-top"
	case MessageBottom:
		return "message-bottom"
	case MessageLabelTop:
		return "message-label-top"
	case CellTop:
		return "cell-top"
	case CellBottom:
		return "cell-bottom"
	}
	return "unknown"
}

// HorizontalAnchor pins the avatar or accessory horizontally. Natural resolves
// to Leading for other-sender messages and Trailing for own messages.
type HorizontalAnchor int

const (
	Natural HorizontalAnchor = iota
	Leading
	Trailing
)

func (h HorizontalAnchor) String() string {
	switch h {
	case Natural:
		return "natural"
	case Leading:
		return "leading"
	case Trailing:
		return "trailing"
	}
	return "unknown"
}

// Anchor combines a vertical and horizontal placement rule.
type Anchor struct {
	Vertical   VerticalAnchor   `yaml:"vertical"`
	Horizontal HorizontalAnchor `yaml:"horizontal"`
}

// Resolved replaces a Natural horizontal anchor once sender direction is
// known. Attributes never carry an unresolved Natural value.
func (a Anchor) Resolved(mine bool) Anchor {
	if a.Horizontal != Natural {
		return a
	}
	if mine {
		a.Horizontal = Trailing
	} else {
		a.Horizontal = Leading
	}
	return a
}

// TextAlign is the horizontal alignment of caption label text.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// Alignment positions a caption label: text alignment plus an inset.
type Alignment struct {
	Align TextAlign `yaml:"align"`
	Inset Insets    `yaml:"inset"`
}
