package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wirechan-dev/wirechan/internal/logger"
	"github.com/wirechan-dev/wirechan/internal/utils"
)

// GetThread renders the full ordered thread addressed by post id. An unknown
// board or id renders an empty thread page rather than failing.
func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	board := vars["board"]

	id, err := parseIntParam(vars["id"], "post ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := h.thread.Thread(board, id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	body, err := h.renderer.Render("thread.html", map[string]string{
		"PARENT_ID":  strconv.FormatInt(view.Id, 10),
		"POSTS":      threadPostsHTML(view),
		"BOARD_NAME": "/" + view.Board,
	})
	if err != nil {
		logger.Log.Error("failed to render thread", "board", view.Board, "id", id, "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeHTML(w, body)
}
