package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wirechan-dev/wirechan/internal/domain"
	"github.com/wirechan-dev/wirechan/internal/ingest"
	"github.com/wirechan-dev/wirechan/internal/logger"
	"github.com/wirechan-dev/wirechan/internal/utils"
)

// CreatePost accepts a multipart submission and creates a root post or a
// reply. On success the client is redirected to the board feed (root) or the
// thread view (reply).
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	board := mux.Vars(r)["board"]

	sub, err := h.ingestor.Ingest(w, r)
	if err != nil {
		if errors.Is(err, ingest.ErrPayloadTooLarge) {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		logger.Log.Error("ingestion failed", "board", board, "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	_, err = h.thread.Create(domain.PostCreationData{
		Board:    board,
		ParentId: sub.ParentId,
		Title:    sub.Title,
		Message:  sub.Message,
		FilePath: sub.FilePath,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	board = utils.SanitizeBoardName(board)
	if sub.ParentId == domain.NoParent {
		http.Redirect(w, r, "/"+board, http.StatusSeeOther)
	} else {
		http.Redirect(w, r, fmt.Sprintf("/%s/post/%d", board, sub.ParentId), http.StatusSeeOther)
	}
}
