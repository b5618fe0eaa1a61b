package loan

import (
	"errors"
	"time"

	"libraryapi/internal/book"
)

// ErrNotFound is returned when a loan is not found.
var ErrNotFound = errors.New("loan not found")

// ErrBookAlreadyLoaned is returned when creating a loan for a book that
// already has an active loan. The message is part of the API contract.
var ErrBookAlreadyLoaned = errors.New("Book already loaned.")

// Loan represents a book loan. Returned is tri-state: nil and false both
// mean the loan is still active.
type Loan struct {
	ID            int64     `json:"id"`
	Customer      string    `json:"customer"`
	CustomerEmail string    `json:"customer_email"`
	BookID        int64     `json:"-"`
	Book          book.Book `json:"book"`
	LoanDate      time.Time `json:"loan_date"`
	Returned      *bool     `json:"returned"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Active reports whether the loan has not been returned.
func (l Loan) Active() bool {
	return l.Returned == nil || !*l.Returned
}

// Filter holds the optional fields of a filtered loan search. A loan
// matches when its book ISBN contains the ISBN value OR its customer
// contains the customer value, case-insensitively.
type Filter struct {
	ISBN     string
	Customer string
}
