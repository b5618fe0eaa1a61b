package book

import (
	"context"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create persists a new book after checking that its ISBN is not already
// registered. The repository's unique index catches racing creates that
// pass the check concurrently.
func (s *Service) Create(ctx context.Context, b Book) (Book, error) {
	exists, err := s.repo.ExistsByISBN(ctx, b.ISBN)
	if err != nil {
		return Book{}, err
	}
	if exists {
		return Book{}, ErrDuplicateISBN
	}
	if err := s.repo.Create(ctx, &b); err != nil {
		return Book{}, err
	}
	return b, nil
}

// GetByID returns a book by its id.
func (s *Service) GetByID(ctx context.Context, id int64) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByISBN returns a book by its ISBN. Loan creation uses this to resolve
// an ISBN to a book reference.
func (s *Service) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	return s.repo.GetByISBN(ctx, isbn)
}

// Update persists the book's title and author. The ISBN is immutable after
// creation and is never written here.
func (s *Service) Update(ctx context.Context, b Book) (Book, error) {
	if b.ID == 0 {
		return Book{}, ErrMissingID
	}
	if err := s.repo.Update(ctx, &b); err != nil {
		return Book{}, err
	}
	return b, nil
}

// Delete removes a book. Books with loans are not guarded here; the
// foreign key on loans rejects the delete at the storage level.
func (s *Service) Delete(ctx context.Context, b Book) error {
	if b.ID == 0 {
		return ErrMissingID
	}
	return s.repo.Delete(ctx, b.ID)
}

// Find returns a page of books matching the filter, plus the total count.
func (s *Service) Find(ctx context.Context, f Filter, limit, offset int) ([]Book, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}
