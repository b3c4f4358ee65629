package resumes

import (
	"encoding/json"
	"time"
)

// Profile is the structured résumé text. A document is either not parsed
// or parsed with content; there is no third state.
type Profile struct {
	parsed  bool
	content string
}

// NotParsed is the profile of a document that has not been structured yet.
func NotParsed() Profile { return Profile{} }

// Parsed wraps normalized profile text.
func Parsed(content string) Profile { return Profile{parsed: true, content: content} }

func (p Profile) IsParsed() bool { return p.parsed }

// Content returns the profile text and whether the document is parsed.
func (p Profile) Content() (string, bool) { return p.content, p.parsed }

// Document represents an uploaded résumé owned by a user.
type Document struct {
	ID         string
	UserID     string
	FileName   string
	FileURL    string
	StorageKey string
	MimeType   string
	SizeBytes  int64
	Profile    Profile
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type documentJSON struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	FileName      string    `json:"fileName"`
	FileURL       string    `json:"fileUrl"`
	MimeType      string    `json:"mimeType"`
	SizeBytes     int64     `json:"sizeBytes"`
	Parsed        bool      `json:"parsed"`
	ParsedContent *string   `json:"parsedContent,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// MarshalJSON renders parsedContent only for parsed documents.
func (d Document) MarshalJSON() ([]byte, error) {
	out := documentJSON{
		ID:        d.ID,
		UserID:    d.UserID,
		FileName:  d.FileName,
		FileURL:   d.FileURL,
		MimeType:  d.MimeType,
		SizeBytes: d.SizeBytes,
		Parsed:    d.Profile.IsParsed(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if content, ok := d.Profile.Content(); ok {
		out.ParsedContent = &content
	}
	return json.Marshal(out)
}
