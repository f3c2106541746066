package layout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"threadview/internal/thread"
)

// stubPolicy answers fixed label heights and optional overrides.
type stubPolicy struct {
	NopPolicy
	topCaption    int
	topLabel      int
	bottomLabel   int
	bottomCaption int

	avatarSize      Opt[Size]
	avatarAnchor    Opt[Anchor]
	accessorySize   Opt[Size]
	accessoryAnchor Opt[Anchor]
	attachment      Opt[int]
}

func (p stubPolicy) TopCaptionHeight(thread.Message, thread.Position, int) int { return p.topCaption }
func (p stubPolicy) TopLabelHeight(thread.Message, thread.Position, int) int   { return p.topLabel }
func (p stubPolicy) BottomLabelHeight(thread.Message, thread.Position, int) int {
	return p.bottomLabel
}
func (p stubPolicy) BottomCaptionHeight(thread.Message, thread.Position, int) int {
	return p.bottomCaption
}
func (p stubPolicy) AvatarSize(thread.Message, thread.Position) Opt[Size]     { return p.avatarSize }
func (p stubPolicy) AvatarAnchor(thread.Message, thread.Position) Opt[Anchor] { return p.avatarAnchor }
func (p stubPolicy) AccessorySize(thread.Message, thread.Position) Opt[Size]  { return p.accessorySize }
func (p stubPolicy) AccessoryAnchor(thread.Message, thread.Position) Opt[Anchor] {
	return p.accessoryAnchor
}
func (p stubPolicy) AttachmentHeight(thread.Message, thread.Position, int) Opt[int] {
	return p.attachment
}

// zeroSizing has no padding anywhere so height formulas are exact.
func zeroSizing() Sizing {
	return Sizing{
		Incoming: SenderSizing{AvatarAnchor: Anchor{Vertical: CellBottom}},
		Outgoing: SenderSizing{AvatarAnchor: Anchor{Vertical: CellBottom}},
	}
}

func testEnv(width int, sizing Sizing, policy Policy) *Env {
	return &Env{
		Sizing:   sizing,
		Policy:   policy,
		Measurer: NewTextMeasurer(),
		IsMine:   func(m thread.Message) bool { return m.SenderID == "me" },
		Width:    width,
	}
}

func fixedContainer(s Size) containerFunc {
	return func(*Env, thread.Message, int) Size { return s }
}

func incomingText(text string) thread.Entry {
	return thread.MessageEntry(thread.Message{
		ID: "m1", SenderID: "ada", Kind: thread.KindText, Text: text,
	})
}

func TestCellBottomNoCaptionsNoAccessory(t *testing.T) {
	// Available width 300, avatar 30x30 anchored cell-bottom, container
	// 120x40, no captions, no accessory: height is max(30, 40).
	sizing := zeroSizing()
	sizing.Incoming.AvatarSize = Size{Width: 30, Height: 30}
	calc := &bubbleCalculator{
		env:       testEnv(300, sizing, NopPolicy{}),
		container: fixedContainer(Size{Width: 120, Height: 40}),
	}

	a := calc.Attributes(incomingText("x"), thread.Position{})
	assert.Equal(t, Size{Width: 300, Height: 40}, a.CellSize)
	assert.Equal(t, Size{Width: 120, Height: 40}, a.ContainerSize)
}

func TestAccessoryHeightFloor(t *testing.T) {
	sizing := zeroSizing()
	sizing.Incoming.AvatarSize = Size{Width: 30, Height: 30}
	calc := &bubbleCalculator{
		env: testEnv(300, sizing, stubPolicy{
			accessorySize: Some(Size{Width: 0, Height: 60}),
		}),
		container: fixedContainer(Size{Width: 120, Height: 40}),
	}

	a := calc.Attributes(incomingText("x"), thread.Position{})
	assert.Equal(t, 60, a.CellSize.Height)
}

func TestHeightCompositionPerAnchor(t *testing.T) {
	// topCaption 2, topLabel 1, container 4, bottomLabel 3, bottomCaption 5,
	// vertical container padding 2, avatar height varies per case.
	const (
		topCap = 2
		topLbl = 1
		cont   = 4
		botLbl = 3
		botCap = 5
		padV   = 2
	)
	stack := topCap + topLbl + cont + padV + botLbl + botCap // 17

	tests := []struct {
		name   string
		anchor VerticalAnchor
		avatar int
		want   int
	}{
		{"messageCenter small avatar", MessageCenter, 10, stack},
		{"messageCenter tall avatar", MessageCenter, 40, 40},
		{"cellTop", CellTop, 40, 40},
		{"cellBottom", CellBottom, 10, stack},
		// max(avatar, topCap+topLbl+cont+padV) + botLbl + botCap
		{"messageBottom small avatar", MessageBottom, 5, (topCap + topLbl + cont + padV) + botLbl + botCap},
		{"messageBottom tall avatar", MessageBottom, 20, 20 + botLbl + botCap},
		// max(avatar, botCap+botLbl+cont+padV) + topLbl + topCap
		{"messageTop small avatar", MessageTop, 5, (botCap + botLbl + cont + padV) + topLbl + topCap},
		{"messageTop tall avatar", MessageTop, 20, 20 + topLbl + topCap},
		// topCap + max(avatar, topLbl+cont+padV+botLbl+botCap)
		{"messageLabelTop small avatar", MessageLabelTop, 5, topCap + (topLbl + cont + padV + botLbl + botCap)},
		{"messageLabelTop tall avatar", MessageLabelTop, 30, topCap + 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sizing := zeroSizing()
			sizing.Incoming.AvatarSize = Size{Width: 2, Height: tt.avatar}
			sizing.Incoming.AvatarAnchor = Anchor{Vertical: tt.anchor}
			sizing.Incoming.ContainerPadding = Insets{Top: 1, Bottom: 1}

			calc := &bubbleCalculator{
				env: testEnv(100, sizing, stubPolicy{
					topCaption:    topCap,
					topLabel:      topLbl,
					bottomLabel:   botLbl,
					bottomCaption: botCap,
				}),
				container: fixedContainer(Size{Width: 10, Height: cont}),
			}

			a := calc.Attributes(incomingText("x"), thread.Position{})
			assert.Equal(t, tt.want, a.CellSize.Height)
		})
	}
}

func TestContainerMaxWidthDeduction(t *testing.T) {
	sizing := zeroSizing()
	sizing.Incoming.AvatarSize = Size{Width: 4, Height: 2}
	sizing.Incoming.AvatarEdgePadding = 1
	sizing.Incoming.ContainerPadding = Insets{Leading: 2, Trailing: 2}
	sizing.Incoming.AccessorySize = Size{Width: 3, Height: 1}
	sizing.Incoming.AccessoryPadding = Insets{Leading: 1, Trailing: 1}

	var seenMax int
	calc := &bubbleCalculator{
		env: testEnv(40, sizing, NopPolicy{}),
		container: func(env *Env, m thread.Message, maxWidth int) Size {
			seenMax = maxWidth
			return Size{Width: maxWidth, Height: 1}
		},
	}

	calc.Attributes(incomingText("x"), thread.Position{})
	// 40 - 4 (avatar) - 4 (container pad) - 3 (accessory) - 2 (accessory pad) - 1 (edge)
	assert.Equal(t, 26, seenMax)
}

func TestDegenerateWidthNeverNegative(t *testing.T) {
	sizing := zeroSizing()
	sizing.Incoming.AvatarSize = Size{Width: 50, Height: 2}

	var seenMax int
	calc := &bubbleCalculator{
		env: testEnv(10, sizing, NopPolicy{}),
		container: func(env *Env, m thread.Message, maxWidth int) Size {
			seenMax = maxWidth
			return Size{}
		},
	}

	a := calc.Attributes(incomingText("some text"), thread.Position{})
	assert.Equal(t, 0, seenMax)
	assert.GreaterOrEqual(t, a.CellSize.Height, 0)
	assert.Equal(t, 10, a.CellSize.Width)
}

func TestAttachmentForcesFullWidth(t *testing.T) {
	sizing := zeroSizing()
	sizing.Incoming.AttachmentPadding = Insets{Bottom: 1}

	entry := thread.MessageEntry(thread.Message{
		ID: "m1", SenderID: "ada", Kind: thread.KindText, Text: "hi",
		Attachment: &thread.Media{URL: "a.jpg", Width: 100, Height: 100},
	})

	calc := &bubbleCalculator{
		env: testEnv(50, sizing, stubPolicy{
			attachment: Some(6),
		}),
		container: fixedContainer(Size{Width: 4, Height: 1}),
	}

	a := calc.Attributes(entry, thread.Position{})
	// Text alone was 4 wide; the attachment stretches the container.
	assert.Equal(t, 50, a.ContainerSize.Width)
	assert.Equal(t, 1+6+1, a.ContainerSize.Height)
	assert.Equal(t, Size{Width: 50, Height: 6}, a.AttachmentSize)
}

func TestAttachmentPolicyDeclinedFallsBackToThumbnail(t *testing.T) {
	entry := thread.MessageEntry(thread.Message{
		ID: "m1", SenderID: "ada", Kind: thread.KindText, Text: "",
		Attachment: &thread.Media{URL: "a.jpg", Width: 1600, Height: 900},
	})

	calc := &bubbleCalculator{
		env:       testEnv(60, zeroSizing(), NopPolicy{}),
		container: fixedContainer(Size{}),
	}

	a := calc.Attributes(entry, thread.Position{})
	want := thumbnailHeight(thread.Media{Width: 1600, Height: 900}, 60)
	require.Positive(t, want)
	assert.Equal(t, want, a.AttachmentSize.Height)
	// Empty text reserves nothing beyond the attachment block.
	assert.Equal(t, want, a.ContainerSize.Height)
}

func TestNaturalAnchorResolution(t *testing.T) {
	sizing := zeroSizing()
	sizing.Incoming.AvatarAnchor = Anchor{Vertical: CellBottom, Horizontal: Natural}
	sizing.Outgoing.AvatarAnchor = Anchor{Vertical: CellBottom, Horizontal: Natural}
	env := testEnv(80, sizing, NopPolicy{})
	calc := &bubbleCalculator{env: env, container: fixedContainer(Size{Width: 4, Height: 1})}

	theirs := calc.Attributes(incomingText("x"), thread.Position{})
	assert.Equal(t, Leading, theirs.AvatarAnchor.Horizontal)

	mine := calc.Attributes(thread.MessageEntry(thread.Message{
		ID: "m2", SenderID: "me", Kind: thread.KindText, Text: "x",
	}), thread.Position{})
	assert.Equal(t, Trailing, mine.AvatarAnchor.Horizontal)
}

func TestAttributesIdempotent(t *testing.T) {
	env := testEnv(80, DefaultSizing(), stubPolicy{topCaption: 1, bottomCaption: 1})
	table := NewTable(env)

	entries := []thread.Entry{
		incomingText("hello there, this wraps at some point in the bubble"),
		thread.MessageEntry(thread.Message{ID: "e", SenderID: "me", Kind: thread.KindEmoji, Text: "😀😀"}),
		thread.MessageEntry(thread.Message{ID: "p", SenderID: "ada", Kind: thread.KindPhoto,
			Media: &thread.Media{URL: "p.jpg", Width: 800, Height: 600, Caption: "c"}}),
		thread.MessageEntry(thread.Message{ID: "s", SenderID: "system", Kind: thread.KindSystem, Text: "Today"}),
		thread.TypingEntry(),
	}

	for _, e := range entries {
		calc, ok := table.For(e)
		require.True(t, ok)
		first := calc.Attributes(e, thread.Position{})
		second := calc.Attributes(e, thread.Position{})
		assert.Equal(t, first, second, "entry %s", e.ID())
	}
}

func TestNonNegativity(t *testing.T) {
	messages := []thread.Message{
		{ID: "a", SenderID: "ada", Kind: thread.KindText, Text: ""},
		{ID: "b", SenderID: "me", Kind: thread.KindText, Text: "hi"},
		{ID: "c", SenderID: "ada", Kind: thread.KindEmoji, Text: ""},
		{ID: "d", SenderID: "ada", Kind: thread.KindPhoto},
		{ID: "e", SenderID: "ada", Kind: thread.KindAudio, AudioDuration: -5 * time.Second},
		{ID: "f", SenderID: "ada", Kind: thread.KindLocation},
		{ID: "g", SenderID: "ada", Kind: thread.KindContact},
		{ID: "h", SenderID: "ada", Kind: thread.KindLinkPreview},
		{ID: "i", SenderID: "ada", Kind: thread.KindSystem, Text: "x"},
	}

	for _, width := range []int{0, 1, 10, 80} {
		env := testEnv(width, DefaultSizing(), NopPolicy{})
		table := NewTable(env)
		for _, m := range messages {
			e := thread.MessageEntry(m)
			calc, ok := table.For(e)
			require.True(t, ok, "kind %s", m.Kind)
			a := calc.Attributes(e, thread.Position{})

			for name, v := range map[string]int{
				"cell width":        a.CellSize.Width,
				"cell height":       a.CellSize.Height,
				"container width":   a.ContainerSize.Width,
				"container height":  a.ContainerSize.Height,
				"avatar width":      a.AvatarSize.Width,
				"avatar height":     a.AvatarSize.Height,
				"attachment height": a.AttachmentSize.Height,
				"accessory height":  a.AccessorySize.Height,
			} {
				assert.GreaterOrEqual(t, v, 0, "%s for kind %s at width %d", name, m.Kind, width)
			}
			assert.LessOrEqual(t, a.ContainerSize.Width, maxInt(width, 0),
				"container exceeds available width for kind %s", m.Kind)
		}
	}
}

func TestEmojiContainer(t *testing.T) {
	env := testEnv(80, zeroSizing(), NopPolicy{})

	got := emojiContainer(env, thread.Message{Text: "😀😀"}, 40)
	assert.Equal(t, Size{Width: 5, Height: 1}, got) // 2 cells each plus spacing

	assert.Equal(t, Size{}, emojiContainer(env, thread.Message{Text: ""}, 40))

	clamped := emojiContainer(env, thread.Message{Text: "😀😀😀😀"}, 6)
	assert.Equal(t, 6, clamped.Width)
}

func TestSystemCalculatorCentersCaption(t *testing.T) {
	env := testEnv(40, DefaultSizing(), NopPolicy{})
	calc := &systemCalculator{env: env}

	e := thread.MessageEntry(thread.Message{ID: "s", SenderID: "system", Kind: thread.KindSystem, Text: "Today"})
	a := calc.Attributes(e, thread.Position{})

	assert.Equal(t, Size{Width: 40, Height: 1}, a.CellSize)
	assert.Equal(t, AlignCenter, a.TopCaptionAlignment.Align)
	assert.Equal(t, Size{}, a.AvatarSize)
	assert.Equal(t, Size{}, a.AccessorySize)
}

func TestUnknownKindHasNoCalculator(t *testing.T) {
	table := NewTable(testEnv(40, DefaultSizing(), NopPolicy{}))
	e := thread.MessageEntry(thread.Message{ID: "x", Kind: thread.Kind(99)})
	_, ok := table.For(e)
	assert.False(t, ok)
}

func TestOptFallback(t *testing.T) {
	assert.Equal(t, 5, None[int]().Or(5))
	assert.Equal(t, 7, Some(7).Or(5))

	v, ok := Some("a").Get()
	assert.True(t, ok)
	assert.Equal(t, "a", v)
	_, ok = None[string]().Get()
	assert.False(t, ok)
}
