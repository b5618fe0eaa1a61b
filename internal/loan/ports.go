package loan

import (
	"context"
	"time"
)

// Repository defines the contract for loan data storage.
type Repository interface {
	ExistsActiveByBook(ctx context.Context, bookID int64) (bool, error)
	GetByID(ctx context.Context, id int64) (Loan, error)
	Create(ctx context.Context, l *Loan) error
	Update(ctx context.Context, l *Loan) error
	List(ctx context.Context, f Filter, limit, offset int) ([]Loan, int, error)
	ListByBook(ctx context.Context, bookID int64, limit, offset int) ([]Loan, int, error)
	ListOverdue(ctx context.Context, before time.Time) ([]Loan, error)
}
