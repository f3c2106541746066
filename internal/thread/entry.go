package thread

// TypingIndicatorID is the sentinel identity of the typing-indicator entry.
// Its presence or absence alone is a structural change.
const TypingIndicatorID = "typing-indicator"

// typingFingerprint is fixed: the indicator has no content to edit.
const typingFingerprint uint64 = 0x747970696e672121

// Entry is one renderable unit in the ordered thread: a message or the typing
// indicator. Entries are produced fresh on every source query and only
// survive one reconciliation cycle as the "previous" snapshot.
type Entry struct {
	Message *Message
	Typing  bool
}

// MessageEntry wraps a message as a renderable entry.
func MessageEntry(m Message) Entry {
	return Entry{Message: &m}
}

// TypingEntry returns the typing-indicator entry.
func TypingEntry() Entry {
	return Entry{Typing: true}
}

// ID is the diff identity of the entry.
func (e Entry) ID() string {
	if e.Typing {
		return TypingIndicatorID
	}
	if e.Message == nil {
		return ""
	}
	return e.Message.ID
}

// Fingerprint is the content identity of the entry, used to detect in-place
// edits independent of ID.
func (e Entry) Fingerprint() uint64 {
	if e.Typing {
		return typingFingerprint
	}
	if e.Message == nil {
		return 0
	}
	return Fingerprint(*e.Message)
}
