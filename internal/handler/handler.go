package handler

import (
	"net/http"

	"github.com/wirechan-dev/wirechan/internal/config"
	"github.com/wirechan-dev/wirechan/internal/ingest"
	"github.com/wirechan-dev/wirechan/internal/logger"
	"github.com/wirechan-dev/wirechan/internal/service"
)

// Ingestor decodes a multipart submission, streaming any attachment to media
// storage along the way.
type Ingestor interface {
	Ingest(w http.ResponseWriter, r *http.Request) (*ingest.Submission, error)
}

// Renderer is the external templating collaborator: literal placeholder
// substitution, no escaping.
type Renderer interface {
	Render(name string, context map[string]string) (string, error)
}

type HealthChecker interface {
	Ping() error
}

type Handler struct {
	thread   service.ThreadService
	ingestor Ingestor
	renderer Renderer
	health   HealthChecker
	cfg      *config.Config
}

func New(thread service.ThreadService, ingestor Ingestor, renderer Renderer, health HealthChecker, cfg *config.Config) *Handler {
	return &Handler{thread, ingestor, renderer, health, cfg}
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	body, err := h.renderer.Render("index.html", nil)
	if err != nil {
		logger.Log.Error("failed to render index", "err", err)
		http.Error(w, "index.html not found", http.StatusNotFound)
		return
	}
	writeHTML(w, body)
}

func writeHTML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(body))
}
