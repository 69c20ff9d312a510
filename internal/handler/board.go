package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wirechan-dev/wirechan/internal/logger"
	"github.com/wirechan-dev/wirechan/internal/utils"
)

// GetFeed renders one page of a board's root posts ordered by recent
// activity, with pagination links when applicable.
func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	board := mux.Vars(r)["board"]

	page := int64(1)
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if parsed, err := parseIntParam(pageStr, "page"); err == nil && parsed > 0 {
			page = parsed
		}
	}

	feed, err := h.thread.Feed(r.Context(), board, int(page))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	body, err := h.renderer.Render("board.html", map[string]string{
		"POSTS":      feedPostsHTML(feed),
		"PAGINATION": paginationHTML(feed),
		"BOARD_NAME": "/" + feed.Board,
	})
	if err != nil {
		logger.Log.Error("failed to render feed", "board", feed.Board, "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeHTML(w, body)
}
