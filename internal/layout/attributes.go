package layout

// Attributes is the computed geometry for one entry: every quantity the
// presentation layer needs to place the avatar, bubble, caption labels,
// accessory and attachment of a single cell. Mutable while a calculator
// assembles it, treated as immutable afterwards; the engine caches copies.
type Attributes struct {
	AvatarSize        Size
	AvatarAnchor      Anchor
	AvatarEdgePadding int

	ContainerSize    Size
	ContainerPadding Insets

	// Cell-level captions (sender name above, timestamp/status below).
	TopCaptionSize      Size
	TopCaptionAlignment Alignment

	BottomCaptionSize      Size
	BottomCaptionAlignment Alignment

	// Message-level labels, adjacent to the bubble.
	TopLabelSize      Size
	TopLabelAlignment Alignment

	BottomLabelSize      Size
	BottomLabelAlignment Alignment

	TimestampSize Size

	AccessorySize    Size
	AccessoryPadding Insets
	AccessoryAnchor  Anchor

	AttachmentSize    Size
	AttachmentPadding Insets

	CellSize Size
}

// stackHeight is the full caption+label+container stack, used by the anchors
// that max the entire stack against the avatar.
func (a Attributes) stackHeight() int {
	return a.TopCaptionSize.Height +
		a.TopLabelSize.Height +
		a.ContainerSize.Height +
		a.ContainerPadding.Vertical() +
		a.BottomLabelSize.Height +
		a.BottomCaptionSize.Height
}
