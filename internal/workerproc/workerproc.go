// Package workerproc decodes queued parse jobs and runs them against the
// résumé service. It is shared by the polling worker and the Lambda handler.
package workerproc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"hireprompt-backend/internal/queue"
	"hireprompt-backend/internal/resumes"
	"hireprompt-backend/internal/shared/apperr"
)

// MessageMeta captures details useful for logging and diagnostics.
type MessageMeta struct {
	BodyLen int
	BodySHA string
}

// ComputeMeta returns the body length and SHA-256 hash.
func ComputeMeta(body string) MessageMeta {
	if body == "" {
		return MessageMeta{BodyLen: 0, BodySHA: ""}
	}
	sum := sha256.Sum256([]byte(body))
	return MessageMeta{BodyLen: len(body), BodySHA: hex.EncodeToString(sum[:])}
}

// ErrEmptyBody indicates an empty queue payload.
type ErrEmptyBody struct {
	Meta MessageMeta
}

func (e ErrEmptyBody) Error() string { return "empty message body" }

// ErrDecode indicates a JSON decode failure.
type ErrDecode struct {
	Meta MessageMeta
	Err  error
}

func (e ErrDecode) Error() string {
	if e.Err == nil {
		return "decode message"
	}
	return "decode message: " + e.Err.Error()
}

func (e ErrDecode) Unwrap() error { return e.Err }

// ErrInvalidMessage indicates a well-formed payload this worker cannot run.
type ErrInvalidMessage struct {
	Meta      MessageMeta
	RequestID string
	Reason    string
}

func (e ErrInvalidMessage) Error() string { return "invalid message: " + e.Reason }

// ErrProcess indicates processing failed after successful parsing.
type ErrProcess struct {
	DocumentID string
	RequestID  string
	Err        error
}

func (e ErrProcess) Error() string {
	if e.Err == nil {
		return "process document"
	}
	return "process document: " + e.Err.Error()
}

func (e ErrProcess) Unwrap() error { return e.Err }

// Reparser re-runs extraction and normalization for a stored document.
type Reparser interface {
	Reparse(ctx context.Context, userID, id string) (resumes.Document, error)
}

// ParseMessage validates and decodes the queue payload.
func ParseMessage(body string) (queue.Message, MessageMeta, error) {
	meta := ComputeMeta(body)
	if strings.TrimSpace(body) == "" {
		return queue.Message{}, meta, ErrEmptyBody{Meta: meta}
	}

	msg, err := queue.DecodeMessage([]byte(body))
	if err != nil {
		return queue.Message{}, meta, ErrDecode{Meta: meta, Err: err}
	}
	switch {
	case msg.Type != queue.TypeParseDocument:
		return msg, meta, ErrInvalidMessage{Meta: meta, RequestID: msg.RequestID, Reason: "unknown type " + msg.Type}
	case strings.TrimSpace(msg.DocumentID) == "":
		return msg, meta, ErrInvalidMessage{Meta: meta, RequestID: msg.RequestID, Reason: "missing document id"}
	case strings.TrimSpace(msg.UserID) == "":
		return msg, meta, ErrInvalidMessage{Meta: meta, RequestID: msg.RequestID, Reason: "missing user id"}
	}
	return msg, meta, nil
}

// HandleMessage parses, validates, and processes a message payload.
func HandleMessage(ctx context.Context, svc Reparser, body string) (queue.Message, error) {
	if svc == nil {
		return queue.Message{}, errors.New("resume service not configured")
	}
	msg, _, err := ParseMessage(body)
	if err != nil {
		return msg, err
	}
	if _, err := svc.Reparse(ctx, msg.UserID, msg.DocumentID); err != nil {
		return msg, ErrProcess{DocumentID: msg.DocumentID, RequestID: msg.RequestID, Err: err}
	}
	return msg, nil
}

// IsPermanent reports whether redelivering the message cannot succeed.
// Such messages should be deleted rather than left for redrive.
func IsPermanent(err error) bool {
	if err == nil {
		return false
	}
	var (
		empty   ErrEmptyBody
		decode  ErrDecode
		invalid ErrInvalidMessage
	)
	if errors.As(err, &empty) || errors.As(err, &decode) || errors.As(err, &invalid) {
		return true
	}
	var proc ErrProcess
	if !errors.As(err, &proc) {
		return false
	}
	switch apperr.KindOf(proc.Err) {
	case apperr.KindNotFound, apperr.KindValidation, apperr.KindExtraction:
		return true
	default:
		return false
	}
}
