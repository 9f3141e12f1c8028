package book

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

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

const bookColumns = `id, title, author, publication_year, genre, isbn, description, created_at, updated_at`

func scanBook(row pgx.Row) (Book, error) {
	var b Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.PublicationYear, &b.Genre,
		&b.ISBN, &b.Description, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

// EnsureSchema creates the books table and its unique isbn index if they do
// not exist yet. The unique index is the authoritative guard for the
// uniqueness invariant; the service's pre-checks alone are check-then-act.
func (r *PostgresRepo) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS books (
			id               BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			title            VARCHAR(200) NOT NULL,
			author           VARCHAR(100) NOT NULL,
			publication_year INT NOT NULL,
			genre            VARCHAR(50) NOT NULL,
			isbn             VARCHAR(13),
			description      VARCHAR(1000),
			created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
			CONSTRAINT books_isbn_key UNIQUE (isbn)
		)`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, ddl)
	return err
}

func (r *PostgresRepo) List(ctx context.Context) ([]Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books ORDER BY id`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Book{}, ErrNoRow
	}
	return b, err
}

func (r *PostgresRepo) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE isbn = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, isbn))
	if errors.Is(err, pgx.ErrNoRows) {
		return Book{}, ErrNoRow
	}
	return b, err
}

func (r *PostgresRepo) Insert(ctx context.Context, in Input) (Book, error) {
	const query = `
		INSERT INTO books (title, author, publication_year, genre, isbn, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING ` + bookColumns

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query,
		in.Title, in.Author, in.PublicationYear, in.Genre, in.ISBN, in.Description,
	))
	if isUniqueViolation(err) {
		return Book{}, ErrDuplicateKey
	}
	return b, err
}

func (r *PostgresRepo) Update(ctx context.Context, id int64, in Input) (Book, error) {
	const query = `
		UPDATE books
		SET title = $1, author = $2, publication_year = $3, genre = $4,
		    isbn = $5, description = $6, updated_at = now()
		WHERE id = $7
		RETURNING ` + bookColumns

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query,
		in.Title, in.Author, in.PublicationYear, in.Genre, in.ISBN, in.Description, id,
	))
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return Book{}, ErrNoRow
	case isUniqueViolation(err):
		return Book{}, ErrDuplicateKey
	}
	return b, err
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) (bool, error) {
	const query = `DELETE FROM books WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
