package loan

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"libraryapi/internal/book"
	"libraryapi/internal/httpx"

	"github.com/julienschmidt/httprouter"
)

// BookGetter resolves books for loan creation and per-book listings.
// *book.Service satisfies it.
type BookGetter interface {
	GetByID(ctx context.Context, id int64) (book.Book, error)
	GetByISBN(ctx context.Context, isbn string) (book.Book, error)
}

type HTTPHandler struct {
	service *Service
	books   BookGetter
}

func NewHTTPHandler(service *Service, books BookGetter) *HTTPHandler {
	return &HTTPHandler{service: service, books: books}
}

// Register attaches the loan routes to the router. The per-book listing
// lives under /api/books because it is addressed by book id.
func (h *HTTPHandler) Register(router *httprouter.Router) {
	router.HandlerFunc(http.MethodPost, "/api/loans", h.Create)
	router.HandlerFunc(http.MethodGet, "/api/loans", h.List)
	router.HandlerFunc(http.MethodPatch, "/api/loans/:id", h.Return)
	router.HandlerFunc(http.MethodGet, "/api/books/:id/loans", h.ListByBook)
}

type CreateRequest struct {
	ISBN          string `json:"isbn" validate:"required"`
	Customer      string `json:"customer" validate:"required"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
}

type ReturnRequest struct {
	Returned *bool `json:"returned" validate:"required"`
}

// Create handles POST /api/loans
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

	b, err := h.books.GetByISBN(r.Context(), req.ISBN)
	if err != nil {
		if errors.Is(err, book.ErrNotFound) {
			httpx.JSONErrors(w, http.StatusBadRequest, "Book not found for passed isbn.")
			return
		}
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}

	created, err := h.service.Create(r.Context(), Loan{
		Customer:      req.Customer,
		CustomerEmail: req.CustomerEmail,
		BookID:        b.ID,
		Book:          b,
	})
	if err != nil {
		if errors.Is(err, ErrBookAlreadyLoaned) {
			httpx.JSONErrors(w, http.StatusBadRequest, err.Error())
			return
		}
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.JSONSuccessCreated(w, created)
}

// Return handles PATCH /api/loans/:id
func (h *HTTPHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ReadIDParam(r)
	if err != nil {
		httpx.JSONErrors(w, http.StatusNotFound, "loan not found")
		return
	}

	var req ReturnRequest
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
			httpx.JSONErrors(w, http.StatusNotFound, "loan not found")
			return
		}
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}

	found.Returned = req.Returned

	updated, err := h.service.Update(r.Context(), found)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONErrors(w, http.StatusNotFound, "loan not found")
			return
		}
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.JSONSuccess(w, updated, nil)
}

// List handles GET /api/loans
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := Filter{
		ISBN:     query.Get("isbn"),
		Customer: query.Get("customer"),
	}
	page, pageSize, limit, offset := httpx.ReadPaging(query)

	loans, total, err := h.service.Find(r.Context(), filter, limit, offset)
	if err != nil {
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if loans == nil {
		loans = []Loan{}
	}

	httpx.JSONSuccess(w, loans, httpx.PagingMeta(page, pageSize, total))
}

// ListByBook handles GET /api/books/:id/loans
func (h *HTTPHandler) ListByBook(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ReadIDParam(r)
	if err != nil {
		httpx.JSONErrors(w, http.StatusNotFound, "book not found")
		return
	}

	if _, err := h.books.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, book.ErrNotFound) {
			httpx.JSONErrors(w, http.StatusNotFound, "book not found")
			return
		}
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}

	page, pageSize, limit, offset := httpx.ReadPaging(r.URL.Query())

	loans, total, err := h.service.ListByBook(r.Context(), id, limit, offset)
	if err != nil {
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if loans == nil {
		loans = []Loan{}
	}

	httpx.JSONSuccess(w, loans, httpx.PagingMeta(page, pageSize, total))
}
