package book

import (
	"fmt"
	"time"
)

// Book represents a book record.
type Book struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	PublicationYear int       `json:"publication_year"`
	Genre           string    `json:"genre"`
	ISBN            *string   `json:"isbn"`
	Description     *string   `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NotFoundError reports that no book exists with the given ID.
type NotFoundError struct {
	ID int64
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("book with id %d not found", e.ID)
}

// DuplicateISBNError reports a create whose ISBN is already in use.
type DuplicateISBNError struct {
	ISBN string
}

func (e DuplicateISBNError) Error() string {
	return fmt.Sprintf("book with ISBN %s already exists", e.ISBN)
}

// ISBNConflictError reports an update that would collide with another
// book's ISBN.
type ISBNConflictError struct {
	ISBN string
}

func (e ISBNConflictError) Error() string {
	return fmt.Sprintf("another book with ISBN %s already exists", e.ISBN)
}
