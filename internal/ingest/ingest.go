// Package ingest decodes multipart post submissions part by part, streaming
// any attachment straight to media storage so the request body is never
// materialized in memory.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/wirechan-dev/wirechan/internal/logger"
)

// ErrPayloadTooLarge is returned when the request body exceeds the size limit.
var ErrPayloadTooLarge = errors.New("payload too large")

// Submission holds the decoded fields of a post submission.
type Submission struct {
	Title    string
	Message  string
	ParentId int64
	FilePath string // empty when no valid attachment was supplied
}

// MediaStorage persists a validated attachment stream.
type MediaStorage interface {
	Save(originalFilename string, data io.Reader) (path string, stored bool, err error)
}

type Ingestor struct {
	media    MediaStorage
	maxBytes int64
}

func New(media MediaStorage, maxBytes int64) *Ingestor {
	return &Ingestor{media: media, maxBytes: maxBytes}
}

// Ingest reads the multipart request body field by field. Recognized fields
// are title, message, parent_id and file; anything else is read to completion
// and discarded to keep the stream consistent. A file part with an
// unsupported extension is dropped without failing the submission. The
// aggregate body size is capped; exceeding it aborts with ErrPayloadTooLarge.
func (i *Ingestor) Ingest(w http.ResponseWriter, r *http.Request) (*Submission, error) {
	// MaxBytesReader stops reading at the limit, bounding resource usage
	// no matter what Content-Length claims.
	r.Body = http.MaxBytesReader(w, r.Body, i.maxBytes)

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("failed to open multipart reader: %w", err)
	}

	sub := &Submission{}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapReadError(err)
		}

		switch part.FormName() {
		case "title":
			value, err := readField(part)
			if err != nil {
				return nil, err
			}
			sub.Title = value
		case "message":
			value, err := readField(part)
			if err != nil {
				return nil, err
			}
			sub.Message = value
		case "parent_id":
			value, err := readField(part)
			if err != nil {
				return nil, err
			}
			// malformed parent_id falls back to a root post
			parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
			if err != nil {
				parsed = 0
			}
			sub.ParentId = parsed
		case "file":
			if part.FileName() == "" || sub.FilePath != "" {
				if err := drain(part); err != nil {
					return nil, err
				}
				continue
			}
			path, stored, err := i.media.Save(part.FileName(), part)
			if err != nil {
				return nil, wrapReadError(err)
			}
			if stored {
				sub.FilePath = path
			} else {
				logger.Log.Debug("attachment rejected by extension", "filename", part.FileName())
				if err := drain(part); err != nil {
					return nil, err
				}
			}
		default:
			if err := drain(part); err != nil {
				return nil, err
			}
		}
	}

	return sub, nil
}

func readField(part io.Reader) (string, error) {
	data, err := io.ReadAll(part)
	if err != nil {
		return "", wrapReadError(err)
	}
	return string(data), nil
}

func drain(part io.Reader) error {
	if _, err := io.Copy(io.Discard, part); err != nil {
		return wrapReadError(err)
	}
	return nil
}

func wrapReadError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return fmt.Errorf("%w: request body exceeds %d bytes", ErrPayloadTooLarge, maxBytesErr.Limit)
	}
	return fmt.Errorf("failed to read multipart stream: %w", err)
}
