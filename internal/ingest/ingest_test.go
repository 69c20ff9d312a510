package ingest

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockMediaStorage struct {
	saveFunc func(originalFilename string, data io.Reader) (string, bool, error)

	saveCalled   bool
	savedName    string
	receivedData []byte
}

func (m *MockMediaStorage) Save(originalFilename string, data io.Reader) (string, bool, error) {
	m.saveCalled = true
	m.savedName = originalFilename
	m.receivedData, _ = io.ReadAll(data)

	if m.saveFunc != nil {
		return m.saveFunc(originalFilename, data)
	}
	return "stored-" + originalFilename, true, nil
}

// --- Helpers ---

type formFile struct {
	field, name, content string
}

func buildMultipart(t *testing.T, fields map[string]string, files ...formFile) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func ingestBody(t *testing.T, media MediaStorage, maxBytes int64, body *bytes.Buffer, contentType string) (*Submission, error) {
	t.Helper()
	r := httptest.NewRequest("POST", "/b", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	return New(media, maxBytes).Ingest(w, r)
}

// --- Tests ---

func TestIngest(t *testing.T) {
	t.Run("full submission with accepted file", func(t *testing.T) {
		media := &MockMediaStorage{}
		body, ct := buildMultipart(t,
			map[string]string{"title": "hello", "message": "first post", "parent_id": "0"},
			formFile{"file", "cat.png", "pngbytes"},
		)

		sub, err := ingestBody(t, media, 1<<20, body, ct)

		require.NoError(t, err)
		assert.Equal(t, "hello", sub.Title)
		assert.Equal(t, "first post", sub.Message)
		assert.Equal(t, int64(0), sub.ParentId)
		assert.Equal(t, "stored-cat.png", sub.FilePath)
		assert.Equal(t, "cat.png", media.savedName)
		assert.Equal(t, []byte("pngbytes"), media.receivedData)
	})

	t.Run("rejected extension proceeds without attachment", func(t *testing.T) {
		media := &MockMediaStorage{
			saveFunc: func(string, io.Reader) (string, bool, error) { return "", false, nil },
		}
		body, ct := buildMultipart(t,
			map[string]string{"title": "t", "message": "m"},
			formFile{"file", "virus.exe", "MZ"},
		)

		sub, err := ingestBody(t, media, 1<<20, body, ct)

		require.NoError(t, err)
		assert.Empty(t, sub.FilePath)
	})

	t.Run("file part without filename is skipped", func(t *testing.T) {
		media := &MockMediaStorage{}
		body, ct := buildMultipart(t, map[string]string{"title": "t", "message": "m", "file": ""})

		sub, err := ingestBody(t, media, 1<<20, body, ct)

		require.NoError(t, err)
		assert.False(t, media.saveCalled)
		assert.Empty(t, sub.FilePath)
	})

	t.Run("malformed parent_id falls back to root", func(t *testing.T) {
		body, ct := buildMultipart(t, map[string]string{"title": "t", "message": "m", "parent_id": "banana"})

		sub, err := ingestBody(t, &MockMediaStorage{}, 1<<20, body, ct)

		require.NoError(t, err)
		assert.Equal(t, int64(0), sub.ParentId)
	})

	t.Run("parent_id is trimmed before parsing", func(t *testing.T) {
		body, ct := buildMultipart(t, map[string]string{"title": "t", "message": "m", "parent_id": " 42 \n"})

		sub, err := ingestBody(t, &MockMediaStorage{}, 1<<20, body, ct)

		require.NoError(t, err)
		assert.Equal(t, int64(42), sub.ParentId)
	})

	t.Run("unrecognized fields are discarded", func(t *testing.T) {
		body, ct := buildMultipart(t, map[string]string{"title": "t", "message": "m", "csrf_token": "zzz"})

		sub, err := ingestBody(t, &MockMediaStorage{}, 1<<20, body, ct)

		require.NoError(t, err)
		assert.Equal(t, "t", sub.Title)
		assert.Equal(t, "m", sub.Message)
	})

	t.Run("oversized body aborts with ErrPayloadTooLarge before storing", func(t *testing.T) {
		media := &MockMediaStorage{
			saveFunc: func(string, io.Reader) (string, bool, error) { return "x", true, nil },
		}
		body, ct := buildMultipart(t,
			map[string]string{"title": "t", "message": strings.Repeat("a", 4096)},
			formFile{"file", "big.png", strings.Repeat("b", 4096)},
		)

		_, err := ingestBody(t, media, 512, body, ct)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrPayloadTooLarge)
	})

	t.Run("non-multipart body fails", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/b", strings.NewReader("title=t"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		_, err := New(&MockMediaStorage{}, 1<<20).Ingest(httptest.NewRecorder(), r)

		assert.Error(t, err)
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		media := &MockMediaStorage{
			saveFunc: func(string, io.Reader) (string, bool, error) { return "", false, assert.AnError },
		}
		body, ct := buildMultipart(t,
			map[string]string{"title": "t", "message": "m"},
			formFile{"file", "cat.png", "data"},
		)

		_, err := ingestBody(t, media, 1<<20, body, ct)
		assert.Error(t, err)
	})
}
