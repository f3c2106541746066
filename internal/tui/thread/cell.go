package thread

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"threadview/config"
	"threadview/internal/layout"
	"threadview/internal/thread"
	"threadview/internal/timeutil"
)

// Styles holds the lipgloss styles the thread component renders with.
type Styles struct {
	IncomingBubble lipgloss.Style
	OutgoingBubble lipgloss.Style
	Caption        lipgloss.Style
	System         lipgloss.Style
	Avatar         lipgloss.Style
	Accessory      lipgloss.Style
}

// NewStyles builds the component styles from the loaded configuration.
func NewStyles(cfg config.Styles) Styles {
	return Styles{
		IncomingBubble: lipgloss.NewStyle().
			Background(lipgloss.Color(cfg.IncomingBubbleColor)),
		OutgoingBubble: lipgloss.NewStyle().
			Background(lipgloss.Color(cfg.OutgoingBubbleColor)),
		Caption: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.CaptionColor)),
		System: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.CaptionColor)).Italic(true),
		Avatar: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.CaptionColor)).Bold(true),
		Accessory: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.CaptionColor)),
	}
}

// cellRenderer draws one entry from its computed attributes. The engine is
// the geometry authority: whatever the renderer produces is padded or
// truncated to the attribute cell height so scroll offsets stay exact.
type cellRenderer struct {
	styles Styles
	isMine func(thread.Message) bool

	// typingFrame advances the typing-indicator animation.
	typingFrame int
}

func (r *cellRenderer) render(e thread.Entry, a layout.Attributes) string {
	var body string
	switch {
	case e.Typing:
		body = r.renderTyping(a)
	case e.Message == nil:
		body = ""
	case e.Message.Kind == thread.KindSystem:
		body = r.renderSystem(*e.Message, a)
	default:
		body = r.renderBubbleCell(*e.Message, a)
	}
	return fitHeight(body, a.CellSize.Height)
}

func (r *cellRenderer) renderSystem(m thread.Message, a layout.Attributes) string {
	label := r.styles.System.Render(m.Text)
	return lipgloss.PlaceHorizontal(a.CellSize.Width, lipgloss.Center, label)
}

func (r *cellRenderer) renderTyping(a layout.Attributes) string {
	frames := []string{"·    ", "· ·  ", "· · ·"}
	dots := frames[r.typingFrame%len(frames)]
	bubble := r.styles.IncomingBubble.Render(" " + dots + " ")
	avatar := r.styles.Avatar.Render("…")
	return lipgloss.JoinHorizontal(lipgloss.Bottom, avatar, " ", bubble)
}

func (r *cellRenderer) renderBubbleCell(m thread.Message, a layout.Attributes) string {
	mine := r.isMine(m)

	var rows []string
	if a.TopCaptionSize.Height > 0 {
		rows = append(rows, r.caption(senderCaption(m), a.TopCaptionSize, a.TopCaptionAlignment))
	}
	if a.TopLabelSize.Height > 0 {
		rows = append(rows, r.caption("", a.TopLabelSize, a.TopLabelAlignment))
	}

	rows = append(rows, r.bubbleRow(m, a, mine))

	if a.BottomLabelSize.Height > 0 {
		rows = append(rows, r.caption("", a.BottomLabelSize, a.BottomLabelAlignment))
	}
	if a.BottomCaptionSize.Height > 0 {
		rows = append(rows, r.caption(timeCaption(m), a.BottomCaptionSize, a.BottomCaptionAlignment))
	}

	return strings.Join(rows, "\n")
}

// bubbleRow lays the avatar, bubble and accessory side by side honoring the
// resolved horizontal anchors.
func (r *cellRenderer) bubbleRow(m thread.Message, a layout.Attributes, mine bool) string {
	bubbleStyle := r.styles.IncomingBubble
	if mine {
		bubbleStyle = r.styles.OutgoingBubble
	}

	content := bubbleContent(m, a)
	bubble := bubbleStyle.
		Width(maxInt(a.ContainerSize.Width, 1)).
		Render(content)

	var avatar string
	if a.AvatarSize.Width > 0 {
		avatar = r.styles.Avatar.Render(avatarGlyph(m, a.AvatarSize))
	}
	var accessory string
	if a.AccessorySize.Width > 0 {
		accessory = r.styles.Accessory.Render(statusGlyph(m.Status))
	}

	pad := strings.Repeat(" ", maxInt(a.AvatarEdgePadding, 0))

	var parts []string
	if a.AvatarAnchor.Horizontal == layout.Leading && avatar != "" {
		parts = append(parts, avatar, pad)
	}
	if a.AccessoryAnchor.Horizontal == layout.Leading && accessory != "" {
		parts = append(parts, accessory, " ")
	}
	parts = append(parts, bubble)
	if a.AccessoryAnchor.Horizontal == layout.Trailing && accessory != "" {
		parts = append(parts, " ", accessory)
	}
	if a.AvatarAnchor.Horizontal == layout.Trailing && avatar != "" {
		parts = append(parts, pad, avatar)
	}

	row := lipgloss.JoinHorizontal(anchorAlign(a.AvatarAnchor.Vertical), parts...)
	side := lipgloss.Left
	if mine {
		side = lipgloss.Right
	}
	return lipgloss.PlaceHorizontal(a.CellSize.Width, side, row)
}

func (r *cellRenderer) caption(text string, size layout.Size, align layout.Alignment) string {
	pos := lipgloss.Left
	switch align.Align {
	case layout.AlignCenter:
		pos = lipgloss.Center
	case layout.AlignRight:
		pos = lipgloss.Right
	}
	label := r.styles.Caption.Render(text)
	inner := size.Width - align.Inset.Horizontal()
	if inner < 0 {
		inner = 0
	}
	placed := lipgloss.PlaceHorizontal(inner, pos, label)
	lead := strings.Repeat(" ", maxInt(align.Inset.Leading, 0))
	return fitHeight(lead+placed, size.Height)
}

// bubbleContent is the inside of the message container: attachment block
// first, then the kind body.
func bubbleContent(m thread.Message, a layout.Attributes) string {
	var blocks []string
	if a.AttachmentSize.Height > 0 && m.Attachment != nil {
		blocks = append(blocks, mediaBlock(*m.Attachment, a.AttachmentSize))
	}
	if body := kindBody(m); body != "" {
		blocks = append(blocks, body)
	}
	return strings.Join(blocks, "\n")
}

func kindBody(m thread.Message) string {
	switch m.Kind {
	case thread.KindText, thread.KindAttributedText, thread.KindEmoji:
		return m.Text
	case thread.KindCustom:
		return m.Payload
	case thread.KindPhoto, thread.KindVideo:
		if m.Media == nil {
			return ""
		}
		block := mediaBlock(*m.Media, layout.Size{})
		if m.Media.Caption != "" {
			block += "\n" + m.Media.Caption
		}
		return block
	case thread.KindAudio:
		return "▶ ▁▂▃▄▅ " + timeutil.AudioDuration(m.AudioDuration)
	case thread.KindLocation:
		if m.PlaceName != "" {
			return "⌖ " + m.PlaceName
		}
		return "⌖ location"
	case thread.KindContact:
		return m.ContactName + "\n" + m.ContactPhone
	case thread.KindLinkPreview:
		parts := make([]string, 0, 3)
		for _, p := range []string{m.LinkTitle, m.LinkSummary, m.LinkURL} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		return strings.Join(parts, "\n")
	}
	return m.Text
}

func mediaBlock(media thread.Media, size layout.Size) string {
	w := size.Width
	h := size.Height
	if w <= 0 {
		w = 12
	}
	if h <= 0 {
		h = 3
	}
	row := strings.Repeat("░", w)
	rows := make([]string, h)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

func avatarGlyph(m thread.Message, size layout.Size) string {
	initial := "?"
	if m.SenderID != "" {
		initial = strings.ToUpper(m.SenderID[:1])
	}
	cell := "(" + initial + ")"
	rows := make([]string, maxInt(size.Height, 1))
	for i := range rows {
		if i == len(rows)-1 {
			rows[i] = cell
		} else {
			rows[i] = strings.Repeat(" ", lipgloss.Width(cell))
		}
	}
	return strings.Join(rows, "\n")
}

func statusGlyph(s thread.Status) string {
	switch s {
	case thread.StatusSending:
		return "◌"
	case thread.StatusSent:
		return "✓"
	case thread.StatusDelivered:
		return "✓✓"
	case thread.StatusRead:
		return "✓✓"
	case thread.StatusFailed:
		return "!"
	}
	return " "
}

func senderCaption(m thread.Message) string {
	return m.SenderID
}

func timeCaption(m thread.Message) string {
	if m.SentAt.IsZero() {
		return ""
	}
	ts := timeutil.Clock(m.SentAt)
	if g := statusGlyph(m.Status); strings.TrimSpace(g) != "" && m.Status != thread.StatusNone {
		ts += " " + g
	}
	return ts
}

// anchorAlign maps the avatar's vertical anchor to a join alignment.
func anchorAlign(v layout.VerticalAnchor) lipgloss.Position {
	switch v {
	case layout.MessageTop, layout.CellTop, layout.MessageLabelTop:
		return lipgloss.Top
	case layout.MessageCenter:
		return lipgloss.Center
	}
	return lipgloss.Bottom
}

// fitHeight pads or truncates a block to exactly h lines.
func fitHeight(s string, h int) string {
	if h <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
