package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"hireprompt-backend/internal/shared/apperr"
	"hireprompt-backend/internal/shared/storage/object"
)

const (
	mimePDF = "application/pdf"

	// DefaultMaxBytes bounds accepted documents at 10 MiB.
	DefaultMaxBytes int64 = 10 << 20
)

var (
	ErrUnsupportedType = errors.New("unsupported document type")
	ErrTooLarge        = errors.New("document exceeds size limit")
	ErrNoText          = errors.New("no text could be extracted")
)

// Extractor turns an uploaded document into plain text.
type Extractor interface {
	ExtractText(ctx context.Context, data []byte, mimeType, fileName string) (string, error)
}

// PDFExtractor extracts page-ordered text from PDF documents through a
// scratch file that never outlives the call.
type PDFExtractor struct {
	MaxBytes int64
	TempDir  string
}

// New returns a PDF extractor bounded by maxBytes (DefaultMaxBytes when <= 0).
func New(maxBytes int64) *PDFExtractor {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &PDFExtractor{MaxBytes: maxBytes}
}

// ExtractText joins text fragments with a space within a page and pages with
// a newline. Every failure carries the extraction_error kind.
func (e *PDFExtractor) ExtractText(ctx context.Context, data []byte, mimeType, fileName string) (text string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !IsPDF(mimeType, fileName) {
		return "", apperr.Wrap(apperr.KindExtraction, "unsupported document type", fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType))
	}
	if len(data) == 0 {
		return "", apperr.Wrap(apperr.KindExtraction, "document is empty", ErrNoText)
	}
	if e.MaxBytes > 0 && int64(len(data)) > e.MaxBytes {
		return "", apperr.Wrap(apperr.KindExtraction, "document is too large", ErrTooLarge)
	}

	tmp, err := os.CreateTemp(e.TempDir, "extract-*.pdf")
	if err != nil {
		return "", apperr.Wrap(apperr.KindExtraction, "failed to stage document", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", apperr.Wrap(apperr.KindExtraction, "failed to stage document", err)
	}
	if err := tmp.Close(); err != nil {
		return "", apperr.Wrap(apperr.KindExtraction, "failed to stage document", err)
	}

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = apperr.Wrap(apperr.KindExtraction, "failed to read document", fmt.Errorf("pdf parser panic: %v", r))
		}
	}()

	text, err = readPDF(ctx, tmpPath)
	if err != nil {
		return "", apperr.Wrap(apperr.KindExtraction, "failed to read document", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", apperr.Wrap(apperr.KindExtraction, "document contains no extractable text", ErrNoText)
	}
	return text, nil
}

func readPDF(ctx context.Context, path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	total := r.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		var fragments []string
		for _, row := range rows {
			for _, word := range row.Content {
				if word.S == "" {
					continue
				}
				fragments = append(fragments, word.S)
			}
		}
		pages = append(pages, strings.Join(fragments, " "))
	}
	return strings.Join(pages, "\n"), nil
}

// IsPDF reports whether a declared type or file extension names a PDF.
func IsPDF(mimeType, fileName string) bool {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if clean == mimePDF {
		return true
	}
	if clean != "" && clean != "application/octet-stream" {
		return false
	}
	return strings.EqualFold(filepath.Ext(fileName), ".pdf")
}

// FromStore reads a stored document back and extracts its text.
func FromStore(ctx context.Context, ex Extractor, store object.ObjectStore, key, mimeType, fileName string) (string, error) {
	body, err := store.Open(ctx, key)
	if err != nil {
		return "", apperr.Wrap(apperr.KindStorage, "failed to read stored document", fmt.Errorf("open key=%s: %w", key, err))
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", apperr.Wrap(apperr.KindStorage, "failed to read stored document", fmt.Errorf("read key=%s: %w", key, err))
	}
	return ex.ExtractText(ctx, raw, mimeType, fileName)
}
