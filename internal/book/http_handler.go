package book

import (
	"encoding/json"
	"errors"
	"net/http"

	"libraryapi/internal/httpx"

	"github.com/julienschmidt/httprouter"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Register attaches the book routes to the router.
func (h *HTTPHandler) Register(router *httprouter.Router) {
	router.HandlerFunc(http.MethodPost, "/api/books", h.Create)
	router.HandlerFunc(http.MethodGet, "/api/books", h.List)
	router.HandlerFunc(http.MethodGet, "/api/books/:id", h.GetByID)
	router.HandlerFunc(http.MethodPut, "/api/books/:id", h.Update)
	router.HandlerFunc(http.MethodDelete, "/api/books/:id", h.Delete)
}

type CreateRequest struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	ISBN   string `json:"isbn" validate:"required"`
}

// UpdateRequest carries the mutable fields of a book. The ISBN is
// immutable after creation; any isbn field in the payload is ignored.
type UpdateRequest struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
}

// Create handles POST /api/books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONErrors(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if messages := httpx.ValidateStruct(req); messages != nil {
		httpx.JSONErrorList(w, http.StatusBadRequest, messages)
		return
	}

	created, err := h.service.Create(r.Context(), Book{
		Title:  req.Title,
		Author: req.Author,
		ISBN:   req.ISBN,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateISBN) {
			httpx.JSONErrors(w, http.StatusBadRequest, err.Error())
			return
		}
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.JSONSuccessCreated(w, created)
}

// GetByID handles GET /api/books/:id
func (h *HTTPHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ReadIDParam(r)
	if err != nil {
		httpx.JSONErrors(w, http.StatusNotFound, "book not found")
		return
	}

	found, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONErrors(w, http.StatusNotFound, "book not found")
			return
		}
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.JSONSuccess(w, found, nil)
}

// Update handles PUT /api/books/:id
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ReadIDParam(r)
	if err != nil {
		httpx.JSONErrors(w, http.StatusNotFound, "book not found")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONErrors(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if messages := httpx.ValidateStruct(req); messages != nil {
		httpx.JSONErrorList(w, http.StatusBadRequest, messages)
		return
	}

	found, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONErrors(w, http.StatusNotFound, "book not found")
			return
		}
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}

	found.Title = req.Title
	found.Author = req.Author

	updated, err := h.service.Update(r.Context(), found)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.JSONErrors(w, http.StatusNotFound, "book not found")
		case errors.Is(err, ErrMissingID):
			httpx.JSONErrors(w, http.StatusBadRequest, err.Error())
		default:
			httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	httpx.JSONSuccess(w, updated, nil)
}

// Delete handles DELETE /api/books/:id
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ReadIDParam(r)
	if err != nil {
		httpx.JSONErrors(w, http.StatusNotFound, "book not found")
		return
	}

	found, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONErrors(w, http.StatusNotFound, "book not found")
			return
		}
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := h.service.Delete(r.Context(), found); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.JSONErrors(w, http.StatusNotFound, "book not found")
		case errors.Is(err, ErrMissingID):
			httpx.JSONErrors(w, http.StatusBadRequest, err.Error())
		default:
			httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	httpx.JSONSuccessNoContent(w)
}

// List handles GET /api/books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := Filter{
		Title:  query.Get("title"),
		Author: query.Get("author"),
		ISBN:   query.Get("isbn"),
	}
	page, pageSize, limit, offset := httpx.ReadPaging(query)

	books, total, err := h.service.Find(r.Context(), filter, limit, offset)
	if err != nil {
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if books == nil {
		books = []Book{}
	}

	httpx.JSONSuccess(w, books, httpx.PagingMeta(page, pageSize, total))
}
