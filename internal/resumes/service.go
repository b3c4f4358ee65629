package resumes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hireprompt-backend/internal/extract"
	"hireprompt-backend/internal/queue"
	"hireprompt-backend/internal/shared/apperr"
	"hireprompt-backend/internal/shared/metrics"
	"hireprompt-backend/internal/shared/storage/object"
	"hireprompt-backend/internal/shared/telemetry"
	"hireprompt-backend/internal/shared/util"
	"hireprompt-backend/internal/users"
)

// UserLookup resolves the owner of an upload.
type UserLookup interface {
	Get(ctx context.Context, userID string) (users.User, error)
}

// ProfileNormalizer structures extracted text.
type ProfileNormalizer interface {
	NormalizeProfile(ctx context.Context, rawText string) (string, error)
}

// Service contains business logic for résumé documents.
type Service struct {
	Store      object.ObjectStore
	Repo       Repo
	Users      UserLookup
	Extractor  extract.Extractor
	Normalizer ProfileNormalizer
	// Queue, when set, receives parse jobs instead of parsing inline on reparse.
	Queue    queue.Client
	MaxBytes int64
	Now      func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *Service) maxBytes() int64 {
	if s.MaxBytes > 0 {
		return s.MaxBytes
	}
	return extract.DefaultMaxBytes
}

// Upload stores the file, records the document and tries to parse it.
// Parse failures leave the document NotParsed; the upload still succeeds.
func (s *Service) Upload(ctx context.Context, userID, fileName, mimeType string, data []byte) (Document, error) {
	fileName = strings.TrimSpace(fileName)
	switch {
	case fileName == "" || len(data) == 0:
		return Document{}, apperr.Validation("file is required", nil)
	case int64(len(data)) > s.maxBytes():
		return Document{}, apperr.Validation(fmt.Sprintf("file exceeds %d MB limit", s.maxBytes()>>20), nil)
	case !extract.IsPDF(mimeType, fileName):
		return Document{}, apperr.Validation("Only PDF files are supported", nil)
	}
	if _, err := util.SanitizeFileName(fileName); err != nil {
		return Document{}, apperr.Validation("invalid file name", nil)
	}
	if _, err := s.Users.Get(ctx, userID); err != nil {
		return Document{}, err
	}

	obj, err := s.Store.Save(ctx, userID, fileName, "application/pdf", data)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindStorage {
			return Document{}, err
		}
		return Document{}, apperr.Wrap(apperr.KindStorage, "failed to store file", err)
	}

	now := s.now()
	doc := Document{
		ID:         uuid.NewString(),
		UserID:     userID,
		FileName:   fileName,
		FileURL:    obj.URL,
		StorageKey: obj.Key,
		MimeType:   "application/pdf",
		SizeBytes:  obj.Size,
		Profile:    NotParsed(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, apperr.Wrap(apperr.KindStorage, "failed to record document", err)
	}
	telemetry.Info("resume.uploaded", map[string]any{
		"resume_id":  doc.ID,
		"user_id":    userID,
		"size_bytes": doc.SizeBytes,
		"local":      object.IsLocalURL(doc.FileURL),
	})

	profile, err := s.parse(ctx, doc, func(ctx context.Context) (string, error) {
		return s.Extractor.ExtractText(ctx, data, doc.MimeType, doc.FileName)
	})
	if err != nil {
		return doc, nil
	}
	updated, err := s.applyProfile(ctx, doc, profile)
	if err != nil {
		telemetry.Error("resume.profile_update_failed", map[string]any{
			"resume_id": doc.ID,
			"error":     err,
		})
		return doc, nil
	}
	return updated, nil
}

// List returns the user's documents newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Document, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Get returns an owned document.
func (s *Service) Get(ctx context.Context, userID, id string) (Document, error) {
	if strings.TrimSpace(id) == "" {
		return Document{}, apperr.Validation("resume id is required", nil)
	}
	return s.Repo.GetByID(ctx, userID, id)
}

// Reparse reads the stored blob back and re-runs extraction and
// normalization. The record is untouched unless both succeed.
func (s *Service) Reparse(ctx context.Context, userID, id string) (Document, error) {
	doc, err := s.Get(ctx, userID, id)
	if err != nil {
		return Document{}, err
	}
	profile, err := s.parse(ctx, doc, func(ctx context.Context) (string, error) {
		return extract.FromStore(ctx, s.Extractor, s.Store, doc.StorageKey, doc.MimeType, doc.FileName)
	})
	if err != nil {
		return Document{}, err
	}
	updated, err := s.applyProfile(ctx, doc, profile)
	if err != nil {
		return Document{}, apperr.Wrap(apperr.KindStorage, "failed to save profile", err)
	}
	return updated, nil
}

// RequestReparse enqueues a parse job when a queue is configured and
// otherwise reparses inline. queued reports which path ran.
func (s *Service) RequestReparse(ctx context.Context, userID, id, requestID string) (doc Document, queued bool, err error) {
	if s.Queue == nil {
		doc, err = s.Reparse(ctx, userID, id)
		return doc, false, err
	}
	doc, err = s.Get(ctx, userID, id)
	if err != nil {
		return Document{}, false, err
	}
	if err := s.Queue.Send(ctx, queue.NewParseDocument(doc.ID, userID, requestID, s.now())); err != nil {
		return Document{}, false, apperr.Wrap(apperr.KindUpstream, "failed to enqueue parse job", err)
	}
	telemetry.Info("resume.parse_enqueued", map[string]any{"resume_id": doc.ID, "request_id": requestID})
	return doc, true, nil
}

func (s *Service) parse(ctx context.Context, doc Document, extractText func(context.Context) (string, error)) (string, error) {
	fields := map[string]any{"resume_id": doc.ID, "user_id": doc.UserID}

	text, err := extractText(ctx)
	if err != nil {
		metrics.IncParse("extraction_failed")
		fields["error"] = err
		telemetry.Warn("resume.extraction_failed", fields)
		return "", err
	}
	profile, err := s.Normalizer.NormalizeProfile(ctx, text)
	if err != nil {
		metrics.IncParse("normalization_failed")
		fields["error"] = err
		telemetry.Warn("resume.normalization_failed", fields)
		return "", err
	}
	metrics.IncParse("parsed")
	return profile, nil
}

func (s *Service) applyProfile(ctx context.Context, doc Document, content string) (Document, error) {
	at := s.now()
	if err := s.Repo.UpdateProfile(ctx, doc.UserID, doc.ID, Parsed(content), at); err != nil {
		return Document{}, err
	}
	doc.Profile = Parsed(content)
	doc.UpdatedAt = at
	return doc, nil
}
