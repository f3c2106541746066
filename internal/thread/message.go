package thread

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"math"
	"time"
)

// Kind identifies the renderable variant of a message. The set is closed:
// layout dispatches through a calculator table keyed by Kind, and a kind
// without a calculator is a configuration error.
type Kind int

const (
	KindText Kind = iota
	KindAttributedText
	KindEmoji
	KindPhoto
	KindVideo
	KindAudio
	KindLocation
	KindContact
	KindLinkPreview
	KindCustom
	KindSystem
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindAttributedText:
		return "attributed-text"
	case KindEmoji:
		return "emoji"
	case KindPhoto:
		return "photo"
	case KindVideo:
		return "video"
	case KindAudio:
		return "audio"
	case KindLocation:
		return "location"
	case KindContact:
		return "contact"
	case KindLinkPreview:
		return "link-preview"
	case KindCustom:
		return "custom"
	case KindSystem:
		return "system"
	}
	return "unknown"
}

// Status is the delivery state of an outgoing message. It is part of the
// message content: a status edit changes the fingerprint but not the identity,
// which is what drives selective refresh instead of a structural update.
type Status int

const (
	StatusNone Status = iota
	StatusSending
	StatusSent
	StatusDelivered
	StatusRead
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSending:
		return "sending"
	case StatusSent:
		return "sent"
	case StatusDelivered:
		return "delivered"
	case StatusRead:
		return "read"
	case StatusFailed:
		return "failed"
	}
	return ""
}

// Media describes photo/video content: either the main container content of a
// KindPhoto/KindVideo message or an inline attachment on a text-like message.
// Dimensions are source pixels; layout scales them into terminal cells.
type Media struct {
	URL     string
	Width   int
	Height  int
	Caption string
}

// Message is an immutable chat message. Identity is ID; edits are represented
// as replacement messages sharing the same ID, detected via Fingerprint.
type Message struct {
	ID       string
	SenderID string
	Kind     Kind
	SentAt   time.Time
	Status   Status

	// Text is the body for text-like kinds, the emoji run for KindEmoji and
	// the caption text for KindSystem. AttributedText bodies may carry ANSI
	// styling inline; width measurement is escape-aware.
	Text string

	// Media is set for KindPhoto/KindVideo.
	Media *Media

	// Attachment is an optional inline thumbnail rendered inside the bubble
	// alongside the text, independent of Kind.
	Attachment *Media

	// Kind-specific payloads.
	AudioDuration time.Duration // KindAudio
	Latitude      float64       // KindLocation
	Longitude     float64       // KindLocation
	PlaceName     string        // KindLocation
	ContactName   string        // KindContact
	ContactPhone  string        // KindContact
	LinkURL       string        // KindLinkPreview
	LinkTitle     string        // KindLinkPreview
	LinkSummary   string        // KindLinkPreview
	Payload       string        // KindCustom
}

// Fingerprint hashes the full message content, ID included, so that two
// messages with the same ID but different content compare unequal. Pure
// function: identical values always hash identically.
func Fingerprint(m Message) uint64 {
	h := fnv.New64a()
	writeString(h, m.ID)
	writeString(h, m.SenderID)
	writeInt(h, int64(m.Kind))
	writeInt(h, m.SentAt.UnixNano())
	writeInt(h, int64(m.Status))
	writeString(h, m.Text)
	writeMedia(h, m.Media)
	writeMedia(h, m.Attachment)
	writeInt(h, int64(m.AudioDuration))
	writeInt(h, int64(math.Float64bits(m.Latitude)))
	writeInt(h, int64(math.Float64bits(m.Longitude)))
	writeString(h, m.PlaceName)
	writeString(h, m.ContactName)
	writeString(h, m.ContactPhone)
	writeString(h, m.LinkURL)
	writeString(h, m.LinkTitle)
	writeString(h, m.LinkSummary)
	writeString(h, m.Payload)
	return h.Sum64()
}

func writeString(h hash.Hash64, s string) {
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(s)))
	h.Write(n[:])
	h.Write([]byte(s))
}

func writeInt(h hash.Hash64, v int64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	h.Write(buf[:])
}

func writeMedia(h hash.Hash64, m *Media) {
	if m == nil {
		writeInt(h, -1)
		return
	}
	writeString(h, m.URL)
	writeInt(h, int64(m.Width))
	writeInt(h, int64(m.Height))
	writeString(h, m.Caption)
}
