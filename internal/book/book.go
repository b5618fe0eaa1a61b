package book

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// ErrDuplicateISBN is returned when creating a book whose ISBN is already
// registered. The message is part of the API contract.
var ErrDuplicateISBN = errors.New("Isbn já cadastrado.")

// ErrMissingID is returned when updating or deleting a book without an identity.
var ErrMissingID = errors.New("book id is required")

// Book represents a book entity.
type Book struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	ISBN      string    `json:"isbn"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter holds the optional fields of a filtered book search. Empty fields
// are ignored; the rest must all match as case-insensitive substrings.
type Filter struct {
	Title  string
	Author string
	ISBN   string
}
