package queue

import (
	"encoding/json"
	"time"
)

// TypeParseDocument asks a worker to re-run extraction and normalization.
const TypeParseDocument = "parse_document"

// Message is the payload sent to downstream queue consumers.
type Message struct {
	Type       string `json:"type"`
	DocumentID string `json:"documentId"`
	UserID     string `json:"userId"`
	RequestID  string `json:"requestId,omitempty"`
	EnqueuedAt string `json:"enqueuedAt"`
	Version    int    `json:"version"`
}

// NewParseDocument builds a parse_document message stamped with now.
func NewParseDocument(documentID, userID, requestID string, now time.Time) Message {
	return Message{
		Type:       TypeParseDocument,
		DocumentID: documentID,
		UserID:     userID,
		RequestID:  requestID,
		EnqueuedAt: now.UTC().Format(time.RFC3339),
		Version:    1,
	}
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeMessage parses a JSON payload into a Message.
func DecodeMessage(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}
