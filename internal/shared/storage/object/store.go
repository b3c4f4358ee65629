package object

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"hireprompt-backend/internal/shared/util"
)

// LocalScheme marks objects that live on the local filesystem store.
const LocalScheme = "local://"

// Object describes a stored blob.
type Object struct {
	Key      string
	URL      string
	Size     int64
	MimeType string
}

// ObjectStore defines the contract for saving and retrieving binary objects.
type ObjectStore interface {
	Save(ctx context.Context, userID, fileName, contentType string, data []byte) (Object, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// NewKey builds a user-namespaced key with a random prefix so repeated
// uploads of the same file name never collide.
func NewKey(userID, fileName string) (string, error) {
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	return path.Join(util.HashUserKey(userID), randomID()+"_"+name), nil
}

// SniffContentType returns contentType, or a type detected from data when empty.
func SniffContentType(contentType string, data []byte) string {
	if ct := strings.TrimSpace(contentType); ct != "" {
		return ct
	}
	n := len(data)
	if n > 512 {
		n = 512
	}
	return http.DetectContentType(data[:n])
}

// IsLocalURL reports whether url points into the local store.
func IsLocalURL(url string) bool {
	return strings.HasPrefix(url, LocalScheme)
}

func randomID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
