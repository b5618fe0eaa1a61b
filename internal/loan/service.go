package loan

import (
	"context"
	"time"
)

// Service provides loan-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new loan service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create persists a new loan after checking that the book has no active
// loan. The loan date defaults to today. The partial unique index on
// active loans catches racing creates that pass the check concurrently.
func (s *Service) Create(ctx context.Context, l Loan) (Loan, error) {
	if l.LoanDate.IsZero() {
		l.LoanDate = time.Now()
	}

	active, err := s.repo.ExistsActiveByBook(ctx, l.BookID)
	if err != nil {
		return Loan{}, err
	}
	if active {
		return Loan{}, ErrBookAlreadyLoaned
	}
	if err := s.repo.Create(ctx, &l); err != nil {
		return Loan{}, err
	}
	return l, nil
}

// GetByID returns a loan by its id.
func (s *Service) GetByID(ctx context.Context, id int64) (Loan, error) {
	return s.repo.GetByID(ctx, id)
}

// Update persists the loan record as given. Its one caller uses it to
// flip the returned flag.
func (s *Service) Update(ctx context.Context, l Loan) (Loan, error) {
	if err := s.repo.Update(ctx, &l); err != nil {
		return Loan{}, err
	}
	return l, nil
}

// Find returns a page of loans whose book ISBN or customer matches the
// filter, plus the total count.
func (s *Service) Find(ctx context.Context, f Filter, limit, offset int) ([]Loan, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

// ListByBook returns a page of a book's loans.
func (s *Service) ListByBook(ctx context.Context, bookID int64, limit, offset int) ([]Loan, int, error) {
	return s.repo.ListByBook(ctx, bookID, limit, offset)
}

// Overdue returns every active loan whose loan date is on or before the
// threshold.
func (s *Service) Overdue(ctx context.Context, threshold time.Time) ([]Loan, error) {
	return s.repo.ListOverdue(ctx, threshold)
}
