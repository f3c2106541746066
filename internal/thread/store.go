package thread

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"threadview/pkg/db"
	"threadview/pkg/migration"
)

// Store persists messages in a local SQLite database. It backs the demo
// message source; the layout engine itself never touches it and rebuilds all
// in-memory state from a Source on cold start.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the message database at path and
// applies any pending schema migrations.
func OpenStore(path string) (*Store, error) {
	conn, err := db.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := migration.Run(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate store: %w", err)
	}
	return &Store{db: conn}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// body holds the kind-specific message fields serialized as JSON alongside
// the indexed columns.
type body struct {
	Text          string        `json:"text,omitempty"`
	Media         *Media        `json:"media,omitempty"`
	Attachment    *Media        `json:"attachment,omitempty"`
	AudioDuration time.Duration `json:"audio_duration,omitempty"`
	Latitude      float64       `json:"lat,omitempty"`
	Longitude     float64       `json:"lon,omitempty"`
	PlaceName     string        `json:"place_name,omitempty"`
	ContactName   string        `json:"contact_name,omitempty"`
	ContactPhone  string        `json:"contact_phone,omitempty"`
	LinkURL       string        `json:"link_url,omitempty"`
	LinkTitle     string        `json:"link_title,omitempty"`
	LinkSummary   string        `json:"link_summary,omitempty"`
	Payload       string        `json:"payload,omitempty"`
}

const putQuery = `INSERT INTO messages(id, sender_id, kind, sent_at, status, body, seq)
 VALUES(?, ?, ?, ?, ?, ?, COALESCE((SELECT seq FROM messages WHERE id = ?), (SELECT COALESCE(MAX(seq), 0) + 1 FROM messages)))
 ON CONFLICT(id) DO UPDATE SET sender_id = excluded.sender_id,
	kind = excluded.kind, sent_at = excluded.sent_at,
	status = excluded.status, body = excluded.body`

func encodeBody(m Message) (string, error) {
	b, err := json.Marshal(body{
		Text:          m.Text,
		Media:         m.Media,
		Attachment:    m.Attachment,
		AudioDuration: m.AudioDuration,
		Latitude:      m.Latitude,
		Longitude:     m.Longitude,
		PlaceName:     m.PlaceName,
		ContactName:   m.ContactName,
		ContactPhone:  m.ContactPhone,
		LinkURL:       m.LinkURL,
		LinkTitle:     m.LinkTitle,
		LinkSummary:   m.LinkSummary,
		Payload:       m.Payload,
	})
	if err != nil {
		return "", fmt.Errorf("encode message body: %w", err)
	}
	return string(b), nil
}

// Put inserts or replaces a message. Replacing an existing ID models an
// in-place edit (same identity, new content).
func (s *Store) Put(ctx context.Context, m Message) error {
	encoded, err := encodeBody(m)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, putQuery,
		m.ID, m.SenderID, int(m.Kind), m.SentAt.UnixNano(), int(m.Status), encoded, m.ID)
	return err
}

// PutAll writes a batch of messages in one transaction.
func (s *Store) PutAll(ctx context.Context, msgs []Message) error {
	return db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, m := range msgs {
			encoded, err := encodeBody(m)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, putQuery,
				m.ID, m.SenderID, int(m.Kind), m.SentAt.UnixNano(), int(m.Status), encoded, m.ID); err != nil {
				return fmt.Errorf("put message %s: %w", m.ID, err)
			}
		}
		return nil
	})
}

// Delete removes a message by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	return err
}

// List returns all messages in insertion order.
func (s *Store) List(ctx context.Context) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, sender_id, kind, sent_at, status, body FROM messages ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var (
			m       Message
			kind    int
			sentAt  int64
			status  int
			rawBody string
		)
		if err := rows.Scan(&m.ID, &m.SenderID, &kind, &sentAt, &status, &rawBody); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		var b body
		if err := json.Unmarshal([]byte(rawBody), &b); err != nil {
			return nil, fmt.Errorf("decode message body %s: %w", m.ID, err)
		}
		m.Kind = Kind(kind)
		m.SentAt = time.Unix(0, sentAt)
		m.Status = Status(status)
		m.Text = b.Text
		m.Media = b.Media
		m.Attachment = b.Attachment
		m.AudioDuration = b.AudioDuration
		m.Latitude = b.Latitude
		m.Longitude = b.Longitude
		m.PlaceName = b.PlaceName
		m.ContactName = b.ContactName
		m.ContactPhone = b.ContactPhone
		m.LinkURL = b.LinkURL
		m.LinkTitle = b.LinkTitle
		m.LinkSummary = b.LinkSummary
		m.Payload = b.Payload
		out = append(out, m)
	}
	return out, rows.Err()
}

// Count returns the number of stored messages.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`).Scan(&n)
	return n, err
}
