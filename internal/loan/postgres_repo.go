package loan

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

const loanColumns = `
	l.id, l.customer, l.customer_email, l.book_id, l.loan_date, l.returned,
	l.created_at, l.updated_at,
	b.id, b.title, b.author, b.isbn, b.created_at, b.updated_at`

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

func (r *PostgresRepo) ExistsActiveByBook(ctx context.Context, bookID int64) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM loans
			WHERE book_id = $1 AND returned IS DISTINCT FROM TRUE
		)`

	var exists bool
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query, bookID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans l
		JOIN books b ON b.id = l.book_id
		WHERE l.id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	l, err := scanLoan(r.db.QueryRow(timeoutCtx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Loan{}, ErrNotFound
		}
		return Loan{}, err
	}
	return l, nil
}

func (r *PostgresRepo) Create(ctx context.Context, l *Loan) error {
	const query = `
		INSERT INTO loans (customer, customer_email, book_id, loan_date, returned)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query,
		l.Customer, l.CustomerEmail, l.BookID, l.LoanDate, l.Returned,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			// A concurrent create won the race past the active-loan check.
			return ErrBookAlreadyLoaned
		}
		return err
	}
	return nil
}

func (r *PostgresRepo) Update(ctx context.Context, l *Loan) error {
	const query = `
		UPDATE loans
		SET customer = $1, customer_email = $2, returned = $3, updated_at = now()
		WHERE id = $4
		RETURNING updated_at`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query,
		l.Customer, l.CustomerEmail, l.Returned, l.ID,
	).Scan(&l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// List runs the OR-filtered paging query: a loan matches when its book
// ISBN or its customer contains the respective filter value. This is
// deliberately looser than the book filter's AND semantics.
func (r *PostgresRepo) List(ctx context.Context, f Filter, limit, offset int) ([]Loan, int, error) {
	return r.page(ctx, filterQuery(f), limit, offset)
}

func joinBooks() *goqu.SelectDataset {
	return dialect.From(goqu.T("loans").As("l")).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("l.book_id"))))
}

func filterQuery(f Filter) *goqu.SelectDataset {
	base := joinBooks()

	var conds []goqu.Expression
	if f.ISBN != "" {
		conds = append(conds, goqu.I("b.isbn").ILike("%"+f.ISBN+"%"))
	}
	if f.Customer != "" {
		conds = append(conds, goqu.I("l.customer").ILike("%"+f.Customer+"%"))
	}
	if len(conds) > 0 {
		base = base.Where(goqu.Or(conds...))
	}
	return base
}

func (r *PostgresRepo) ListByBook(ctx context.Context, bookID int64, limit, offset int) ([]Loan, int, error) {
	return r.page(ctx, joinBooks().Where(goqu.I("l.book_id").Eq(bookID)), limit, offset)
}

func (r *PostgresRepo) page(ctx context.Context, base *goqu.SelectDataset, limit, offset int) ([]Loan, int, error) {
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
		Select(
			goqu.I("l.id"), goqu.I("l.customer"), goqu.I("l.customer_email"),
			goqu.I("l.book_id"), goqu.I("l.loan_date"), goqu.I("l.returned"),
			goqu.I("l.created_at"), goqu.I("l.updated_at"),
			goqu.I("b.id"), goqu.I("b.title"), goqu.I("b.author"), goqu.I("b.isbn"),
			goqu.I("b.created_at"), goqu.I("b.updated_at"),
		).
		Order(goqu.I("l.id").Asc()).
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

	var out []Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, l)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepo) ListOverdue(ctx context.Context, before time.Time) ([]Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans l
		JOIN books b ON b.id = l.book_id
		WHERE l.loan_date <= $1 AND l.returned IS DISTINCT FROM TRUE
		ORDER BY l.loan_date`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func scanLoan(row pgx.Row) (Loan, error) {
	var l Loan
	err := row.Scan(
		&l.ID, &l.Customer, &l.CustomerEmail, &l.BookID, &l.LoanDate, &l.Returned,
		&l.CreatedAt, &l.UpdatedAt,
		&l.Book.ID, &l.Book.Title, &l.Book.Author, &l.Book.ISBN,
		&l.Book.CreatedAt, &l.Book.UpdatedAt,
	)
	return l, err
}
