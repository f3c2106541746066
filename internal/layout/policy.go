package layout

import "threadview/internal/thread"

// Policy is the external layout collaborator. Every method except the four
// label heights may decline by returning None, in which case the per-sender
// sizing defaults apply. Label heights are mandatory: only the policy knows
// what caption content a cell carries, so it must always answer.
type Policy interface {
	AvatarSize(m thread.Message, pos thread.Position) Opt[Size]
	AvatarAnchor(m thread.Message, pos thread.Position) Opt[Anchor]

	TopCaptionHeight(m thread.Message, pos thread.Position, maxWidth int) int
	TopLabelHeight(m thread.Message, pos thread.Position, maxWidth int) int
	BottomLabelHeight(m thread.Message, pos thread.Position, maxWidth int) int
	BottomCaptionHeight(m thread.Message, pos thread.Position, maxWidth int) int

	TopCaptionAlignment(m thread.Message, pos thread.Position) Opt[Alignment]
	BottomCaptionAlignment(m thread.Message, pos thread.Position) Opt[Alignment]

	AccessorySize(m thread.Message, pos thread.Position) Opt[Size]
	AccessoryAnchor(m thread.Message, pos thread.Position) Opt[Anchor]

	// AttachmentHeight may decline while attachment content is still loading;
	// the cell is then laid out without reserved attachment space and
	// recomputed once the collaborator has content.
	AttachmentHeight(m thread.Message, pos thread.Position, maxWidth int) Opt[int]
}

// NopPolicy declines every override and reports zero-height labels. It is the
// baseline for threads without captions.
type NopPolicy struct{}

func (NopPolicy) AvatarSize(thread.Message, thread.Position) Opt[Size]     { return None[Size]() }
func (NopPolicy) AvatarAnchor(thread.Message, thread.Position) Opt[Anchor] { return None[Anchor]() }

func (NopPolicy) TopCaptionHeight(thread.Message, thread.Position, int) int    { return 0 }
func (NopPolicy) TopLabelHeight(thread.Message, thread.Position, int) int      { return 0 }
func (NopPolicy) BottomLabelHeight(thread.Message, thread.Position, int) int   { return 0 }
func (NopPolicy) BottomCaptionHeight(thread.Message, thread.Position, int) int { return 0 }

func (NopPolicy) TopCaptionAlignment(thread.Message, thread.Position) Opt[Alignment] {
	return None[Alignment]()
}

func (NopPolicy) BottomCaptionAlignment(thread.Message, thread.Position) Opt[Alignment] {
	return None[Alignment]()
}

func (NopPolicy) AccessorySize(thread.Message, thread.Position) Opt[Size] { return None[Size]() }

func (NopPolicy) AccessoryAnchor(thread.Message, thread.Position) Opt[Anchor] {
	return None[Anchor]()
}

func (NopPolicy) AttachmentHeight(thread.Message, thread.Position, int) Opt[int] {
	return None[int]()
}
