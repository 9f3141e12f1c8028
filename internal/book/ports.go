package book

import (
	"context"
	"errors"
)

// ErrNoRow is returned by the repository when no book matches the lookup.
var ErrNoRow = errors.New("book: no matching row")

// ErrDuplicateKey is returned by the repository when a write violates the
// unique index on isbn. The service translates it into the same conflict
// errors as the pre-insert check, so a racing duplicate is still rejected.
var ErrDuplicateKey = errors.New("book: duplicate key")

// Input carries the caller-supplied fields of a book, minus the ID and
// timestamps the store assigns. ISBN and Description are nil when omitted;
// ISBN is expected to be normalized before the service sees it.
type Input struct {
	Title           string  `json:"title" validate:"required,min=1,max=200"`
	Author          string  `json:"author" validate:"required,min=1,max=100"`
	PublicationYear int     `json:"publication_year" validate:"required,gte=1000,lte=2100"`
	Genre           string  `json:"genre" validate:"required,min=1,max=50"`
	ISBN            *string `json:"isbn"`
	Description     *string `json:"description" validate:"omitempty,max=1000"`
}

// Repository defines the contract for book storage.
type Repository interface {
	// List returns all books ordered by id.
	List(ctx context.Context) ([]Book, error)
	// GetByID returns the book with the given id, or ErrNoRow.
	GetByID(ctx context.Context, id int64) (Book, error)
	// GetByISBN returns the book holding the given normalized isbn, or
	// ErrNoRow. Only ever called with a non-empty isbn.
	GetByISBN(ctx context.Context, isbn string) (Book, error)
	// Insert persists a new book, assigning id and both timestamps.
	Insert(ctx context.Context, in Input) (Book, error)
	// Update replaces all caller-supplied fields of the book with the given
	// id and refreshes updated_at. Returns ErrNoRow when the id is absent.
	Update(ctx context.Context, id int64, in Input) (Book, error)
	// Delete removes the book with the given id. The bool reports whether
	// a row was actually removed.
	Delete(ctx context.Context, id int64) (bool, error)
}
