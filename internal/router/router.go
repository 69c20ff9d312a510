package router

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wirechan-dev/wirechan/internal/middleware/metrics"
	"github.com/wirechan-dev/wirechan/internal/setup"
)

// New creates and configures a mux router with all the routes.
// Board routes come last: "/{board}" matches any single path segment, so
// fixed paths must be registered before it.
func New(deps *setup.Dependencies) *mux.Router {
	r := mux.NewRouter()

	// gzip for all responses
	r.Use(handlers.CompressHandler)
	r.Use(metrics.Middleware)

	h := deps.Handler

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/healthz", h.Health).Methods("GET")
	r.HandleFunc("/readyz", h.Ready).Methods("GET")

	// Attachments are served by reference path straight off the media root.
	r.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(deps.Media.RootPath()))))

	r.HandleFunc("/", h.Index).Methods("GET")
	r.HandleFunc("/{board}", h.GetFeed).Methods("GET")
	r.HandleFunc("/{board}", h.CreatePost).Methods("POST")
	r.HandleFunc("/{board}/post/{id}", h.GetThread).Methods("GET")

	return r
}
