// Package reviews provides a client for the arXiv Paper Reviews HTTP API.
package reviews

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Paper is a paper record as returned by the API.
// Comments is only populated by the detail endpoint.
type Paper struct {
	PaperKey           string    `json:"paper_key"`
	Title              string    `json:"title"`
	Categories         string    `json:"categories"`
	Authors            string    `json:"authors"`
	Abstract           string    `json:"abstract"`
	FirstSubmittedDate string    `json:"first_submitted_date"`
	FirstAnnouncedDate string    `json:"first_announced_date"`
	Interest           *string   `json:"interest,omitempty"`
	Comments           []Comment `json:"comments,omitempty"`
}

// Comment is a short review attached to a paper.
type Comment struct {
	ID         CommentID `json:"id"`
	SourceName string    `json:"source_name"`
	Content    string    `json:"content"`
	CreatedAt  string    `json:"created_at"`
}

// NewComment is the request body for posting a comment.
type NewComment struct {
	Content    string `json:"content"`
	AuthorName string `json:"author_name"`
}

// CommentID holds a server-assigned comment identifier. The API may send it
// as a JSON string or a JSON number; the raw JSON text is kept so the id is
// written back exactly as it was received.
type CommentID struct {
	raw json.RawMessage
}

// NewCommentID returns a string identifier.
func NewCommentID(s string) CommentID {
	raw, _ := json.Marshal(s)
	return CommentID{raw: raw}
}

// UnmarshalJSON accepts both string and numeric identifiers.
func (id *CommentID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = CommentID{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	} else {
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("comment id must be a string or number: %w", err)
		}
	}
	id.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON writes the identifier in the JSON kind it arrived in.
// A zero CommentID encodes as null.
func (id CommentID) MarshalJSON() ([]byte, error) {
	if len(id.raw) == 0 {
		return []byte("null"), nil
	}
	return id.raw, nil
}

// String returns the identifier as text, without JSON quoting.
func (id CommentID) String() string {
	if len(id.raw) == 0 {
		return ""
	}
	if id.raw[0] == '"' {
		var s string
		if err := json.Unmarshal(id.raw, &s); err == nil {
			return s
		}
	}
	return string(id.raw)
}

// IsZero reports whether no identifier was received.
func (id CommentID) IsZero() bool {
	return len(id.raw) == 0
}
