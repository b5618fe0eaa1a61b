package book

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

var dialect = goqu.Dialect("postgres")

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM books WHERE isbn = $1)`

	var exists bool
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query, isbn).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	const query = `
		SELECT id, title, author, isbn, created_at, updated_at
		FROM books
		WHERE id = $1`

	return r.getOne(ctx, query, id)
}

func (r *PostgresRepo) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	const query = `
		SELECT id, title, author, isbn, created_at, updated_at
		FROM books
		WHERE isbn = $1`

	return r.getOne(ctx, query, isbn)
}

func (r *PostgresRepo) getOne(ctx context.Context, query string, arg any) (Book, error) {
	var b Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, arg).Scan(
		&b.ID, &b.Title, &b.Author, &b.ISBN, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	const query = `
		INSERT INTO books (title, author, isbn)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, b.Title, b.Author, b.ISBN).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			// A concurrent create won the race past the existence check.
			return ErrDuplicateISBN
		}
		return err
	}
	return nil
}

func (r *PostgresRepo) Update(ctx context.Context, b *Book) error {
	const query = `
		UPDATE books
		SET title = $1, author = $2, updated_at = now()
		WHERE id = $3
		RETURNING isbn, created_at, updated_at`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, b.Title, b.Author, b.ID).
		Scan(&b.ISBN, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM books WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List runs the filtered paging query. Each non-empty filter field becomes
// a case-insensitive substring predicate; all predicates must hold.
func (r *PostgresRepo) List(ctx context.Context, f Filter, limit, offset int) ([]Book, int, error) {
	base := dialect.From("books")
	if conds := filterConds(f); len(conds) > 0 {
		base = base.Where(conds...)
	}

	countSQL, countArgs, err := base.Select(goqu.COUNT(goqu.Star())).Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, err
	}

	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL, dataArgs, err := base.
		Select("id", "title", "author", "isbn", "created_at", "updated_at").
		Order(goqu.I("id").Asc()).
		Limit(uint(limit)).
		Offset(uint(offset)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, 0, err
	}

	timeoutCtx2, cancel2 := r.withTimeout(ctx)
	defer cancel2()
	rows, err := r.db.Query(timeoutCtx2, dataSQL, dataArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

func filterConds(f Filter) []goqu.Expression {
	var conds []goqu.Expression
	if f.Title != "" {
		conds = append(conds, goqu.I("title").ILike("%"+f.Title+"%"))
	}
	if f.Author != "" {
		conds = append(conds, goqu.I("author").ILike("%"+f.Author+"%"))
	}
	if f.ISBN != "" {
		conds = append(conds, goqu.I("isbn").ILike("%"+f.ISBN+"%"))
	}
	return conds
}
