package layout

// SenderSizing holds the style defaults for one message direction. A policy
// override, when present, wins over every field here.
type SenderSizing struct {
	AvatarSize        Size   `yaml:"avatar_size"`
	AvatarAnchor      Anchor `yaml:"avatar_anchor"`
	AvatarEdgePadding int    `yaml:"avatar_edge_padding"`

	ContainerPadding Insets `yaml:"container_padding"`
	TextInsets       Insets `yaml:"text_insets"`

	TopCaptionAlignment    Alignment `yaml:"top_caption_alignment"`
	TopLabelAlignment      Alignment `yaml:"top_label_alignment"`
	BottomLabelAlignment   Alignment `yaml:"bottom_label_alignment"`
	BottomCaptionAlignment Alignment `yaml:"bottom_caption_alignment"`

	AccessorySize    Size   `yaml:"accessory_size"`
	AccessoryPadding Insets `yaml:"accessory_padding"`
	AccessoryAnchor  Anchor `yaml:"accessory_anchor"`

	AttachmentPadding Insets `yaml:"attachment_padding"`
}

// Sizing is the full per-direction style configuration, supplied once at
// engine construction and read-only during layout.
type Sizing struct {
	Incoming SenderSizing `yaml:"incoming"`
	Outgoing SenderSizing `yaml:"outgoing"`
}

// For returns the sizing defaults for the given direction.
func (s Sizing) For(mine bool) SenderSizing {
	if mine {
		return s.Outgoing
	}
	return s.Incoming
}

// DefaultSizing mirrors a conventional chat layout: incoming bubbles carry a
// leading avatar, outgoing bubbles carry a trailing status accessory.
func DefaultSizing() Sizing {
	incoming := SenderSizing{
		AvatarSize:        Size{Width: 3, Height: 2},
		AvatarAnchor:      Anchor{Vertical: CellBottom, Horizontal: Natural},
		AvatarEdgePadding: 1,
		ContainerPadding:  Insets{Leading: 1, Trailing: 1},
		TextInsets:        Insets{Leading: 1, Trailing: 1},
		TopCaptionAlignment: Alignment{
			Align: AlignLeft,
			Inset: Insets{Leading: 4},
		},
		BottomCaptionAlignment: Alignment{
			Align: AlignLeft,
			Inset: Insets{Leading: 4},
		},
		TopLabelAlignment:    Alignment{Align: AlignLeft},
		BottomLabelAlignment: Alignment{Align: AlignLeft},
		AccessoryAnchor:      Anchor{Vertical: MessageCenter, Horizontal: Natural},
		AttachmentPadding:    Insets{Bottom: 1},
	}
	outgoing := SenderSizing{
		AvatarAnchor:      Anchor{Vertical: CellBottom, Horizontal: Natural},
		AvatarEdgePadding: 1,
		ContainerPadding:  Insets{Leading: 1, Trailing: 1},
		TextInsets:        Insets{Leading: 1, Trailing: 1},
		TopCaptionAlignment: Alignment{
			Align: AlignRight,
			Inset: Insets{Trailing: 4},
		},
		BottomCaptionAlignment: Alignment{
			Align: AlignRight,
			Inset: Insets{Trailing: 4},
		},
		TopLabelAlignment:    Alignment{Align: AlignRight},
		BottomLabelAlignment: Alignment{Align: AlignRight},
		AccessorySize:        Size{Width: 1, Height: 1},
		AccessoryPadding:     Insets{Leading: 1},
		AccessoryAnchor:      Anchor{Vertical: MessageBottom, Horizontal: Natural},
		AttachmentPadding:    Insets{Bottom: 1},
	}
	return Sizing{Incoming: incoming, Outgoing: outgoing}
}
