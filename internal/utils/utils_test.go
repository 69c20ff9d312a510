package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wirechan-dev/wirechan/internal/errors"
)

func TestSanitizeBoardName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"path traversal stripped", "../../etc", "etc"},
		{"hyphen stripped underscore kept", "my_board-1", "my_board1"},
		{"plain name untouched", "tech", "tech"},
		{"unicode stripped", "доска", ""},
		{"empty stays empty", "", ""},
		{"mixed case kept", "Tech_2", "Tech_2"},
		{"spaces and dots stripped", "a b.c", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeBoardName(tt.input))
		})
	}
}

func TestNewPublicId(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewPublicId()
		assert.Len(t, id, PublicIdLength)
		for _, r := range id {
			assert.True(t, ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9'),
				"unexpected rune %q in public id", r)
		}
		seen[id] = true
	}
	// 100 draws from 62^5 should not all collide
	assert.Greater(t, len(seen), 1)
}

func TestWriteErrorAndStatusCode(t *testing.T) {
	t.Run("typed error keeps its status", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteErrorAndStatusCode(w, &errors.ErrorWithStatusCode{Message: "Title and message are mandatory.", StatusCode: 400})
		assert.Equal(t, 400, w.Code)
		assert.Contains(t, w.Body.String(), "mandatory")
	})

	t.Run("unknown error maps to 500", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteErrorAndStatusCode(w, assert.AnError)
		assert.Equal(t, 500, w.Code)
	})
}
