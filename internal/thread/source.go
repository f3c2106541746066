package thread

// Position addresses one message within the source's sectioned ordering.
type Position struct {
	Section int
	Item    int
}

// Source supplies the ordered message collection and sender resolution.
// Implementations must be consistent within one reconciliation pass: no
// mutation between the first and last call of a pass.
type Source interface {
	SectionCount() int
	ItemCount(section int) int
	MessageAt(pos Position) (Message, bool)
	IsMine(m Message) bool
}

// Entries flattens the source into the ordered entry list, appending the
// typing indicator when requested. This is the snapshot the reconciler
// compares across passes.
func Entries(src Source, typing bool) []Entry {
	if src == nil {
		return nil
	}
	var out []Entry
	for s := 0; s < src.SectionCount(); s++ {
		for i := 0; i < src.ItemCount(s); i++ {
			m, ok := src.MessageAt(Position{Section: s, Item: i})
			if !ok {
				continue
			}
			out = append(out, MessageEntry(m))
		}
	}
	if typing {
		out = append(out, TypingEntry())
	}
	return out
}

// SliceSource adapts a flat message slice to Source, with a fixed local
// sender ID for direction resolution. Used by tests and the demo app.
type SliceSource struct {
	Messages []Message
	SelfID   string
}

func (s *SliceSource) SectionCount() int { return 1 }

func (s *SliceSource) ItemCount(section int) int {
	if section != 0 {
		return 0
	}
	return len(s.Messages)
}

func (s *SliceSource) MessageAt(pos Position) (Message, bool) {
	if pos.Section != 0 || pos.Item < 0 || pos.Item >= len(s.Messages) {
		return Message{}, false
	}
	return s.Messages[pos.Item], true
}

func (s *SliceSource) IsMine(m Message) bool {
	return m.SenderID == s.SelfID
}
