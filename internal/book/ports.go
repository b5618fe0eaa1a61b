package book

import (
	"context"
)

// Repository defines the contract for book data storage.
type Repository interface {
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)
	GetByID(ctx context.Context, id int64) (Book, error)
	GetByISBN(ctx context.Context, isbn string) (Book, error)
	Create(ctx context.Context, b *Book) error
	Update(ctx context.Context, b *Book) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f Filter, limit, offset int) ([]Book, int, error)
}
