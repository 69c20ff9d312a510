package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// MediaKind classifies an upload by its filename extension.
type MediaKind int

const (
	KindRejected MediaKind = iota
	KindImage
	KindVideo
)

var (
	imageExtensions = map[string]bool{"jpg": true, "jpeg": true, "png": true, "gif": true, "webp": true}
	videoExtensions = map[string]bool{"mp4": true, "mp3": true, "webm": true}
)

// Classify returns the media kind for a filename. Extensions are folded to
// lowercase before the check; a filename without an extension is rejected.
func Classify(filename string) MediaKind {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return KindRejected
	}
	ext := strings.ToLower(filename[idx+1:])
	switch {
	case imageExtensions[ext]:
		return KindImage
	case videoExtensions[ext]:
		return KindVideo
	default:
		return KindRejected
	}
}

type Storage struct {
	rootPath string
}

func New(rootPath string) (*Storage, error) {
	// Clean to prevent path traversal like "media/../"
	p := filepath.Clean(rootPath)

	if err := os.MkdirAll(p, 0755); err != nil {
		return nil, fmt.Errorf("failed to create root storage directory %s: %w", p, err)
	}

	return &Storage{rootPath: p}, nil
}

func (s *Storage) RootPath() string {
	return s.rootPath
}

// Save streams an upload to disk under a collision-resistant name.
// Returns the relative storage path and whether anything was stored:
// a filename with an unsupported extension is not an error, it is simply
// not stored and the caller proceeds without an attachment.
// On a mid-write failure a partial file may remain on disk; the caller must
// not reference it.
func (s *Storage) Save(originalFilename string, data io.Reader) (string, bool, error) {
	if Classify(originalFilename) == KindRejected {
		return "", false, nil
	}

	filename := uuid.NewString() + "-" + sanitizeFilename(originalFilename)
	fullPath := filepath.Join(s.rootPath, filename)

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", false, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, data); err != nil {
		return "", false, fmt.Errorf("failed to copy file data: %w", err)
	}

	return filename, true, nil
}

// Read opens a stored file for retrieval.
func (s *Storage) Read(filePath string) (io.ReadCloser, error) {
	fullPath := filepath.Join(s.rootPath, filepath.Clean(filePath))

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("attachment not found: %w", err)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// sanitizeFilename strips path separators and control characters so client
// input can never escape the media root.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		if r == '/' || r == '\\' || unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
