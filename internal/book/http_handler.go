package book

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"booksapi/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// List handles GET /books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.GetAll(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpx.JSONSuccess(w, books, map[string]any{"count": len(books)})
}

// Get handles GET /books/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	book, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpx.JSONSuccess(w, book, nil)
}

// Create handles POST /books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := h.parseBody(w, r)
	if !ok {
		return
	}

	book, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpx.JSONSuccessCreated(w, book)
}

// Update handles PUT /books/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	in, ok := h.parseBody(w, r)
	if !ok {
		return
	}

	book, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpx.JSONSuccess(w, book, nil)
}

// Delete handles DELETE /books/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

func (h *HTTPHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input",
			[]httpx.ErrorDetail{{Field: "id", Message: "id must be an integer"}})
		return 0, false
	}
	return id, true
}

func (h *HTTPHandler) parseBody(w http.ResponseWriter, r *http.Request) (Input, bool) {
	in, err := DecodeInput(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Request body is not valid JSON", nil)
		return Input{}, false
	}
	if details := ValidateInput(&in); len(details) > 0 {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input", details)
		return Input{}, false
	}
	return in, true
}

// writeError maps typed service failures to response envelopes. Messages are
// composed here; lower layers only carry the offending id or isbn.
func (h *HTTPHandler) writeError(w http.ResponseWriter, err error) {
	var (
		notFound NotFoundError
		dup      DuplicateISBNError
		conflict ISBNConflictError
	)
	switch {
	case errors.As(err, &notFound):
		httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND",
			fmt.Sprintf("Book with id %d not found", notFound.ID), nil)
	case errors.As(err, &dup):
		httpx.JSONError(w, http.StatusConflict, "CONFLICT",
			fmt.Sprintf("Book with ISBN %s already exists", dup.ISBN), nil)
	case errors.As(err, &conflict):
		httpx.JSONError(w, http.StatusConflict, "CONFLICT",
			fmt.Sprintf("Another book with ISBN %s already exists", conflict.ISBN), nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
