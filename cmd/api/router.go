package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"booksapi/internal/book"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func newRouter(handler *book.HTTPHandler, db pinger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Welcome to Books API",
			"status":  "running",
		})
	})

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	mux.HandleFunc("GET /books", handler.List)
	mux.HandleFunc("POST /books", handler.Create)
	mux.HandleFunc("GET /books/{id}", handler.Get)
	mux.HandleFunc("PUT /books/{id}", handler.Update)
	mux.HandleFunc("DELETE /books/{id}", handler.Delete)

	return mux
}
