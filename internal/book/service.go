package book

import (
	"context"
	"errors"
)

// Service enforces the existence and uniqueness rules on top of a
// Repository. Field-shape validation happens at the HTTP boundary before
// any input reaches this layer.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetAll returns every book.
func (s *Service) GetAll(ctx context.Context) ([]Book, error) {
	return s.repo.List(ctx)
}

// GetByID returns the book with the given id.
func (s *Service) GetByID(ctx context.Context, id int64) (Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNoRow) {
		return Book{}, NotFoundError{ID: id}
	}
	return b, err
}

// Create stores a new book. When an ISBN is supplied it must not already be
// in use; books without an ISBN never conflict.
func (s *Service) Create(ctx context.Context, in Input) (Book, error) {
	if in.ISBN != nil {
		_, err := s.repo.GetByISBN(ctx, *in.ISBN)
		switch {
		case err == nil:
			return Book{}, DuplicateISBNError{ISBN: *in.ISBN}
		case !errors.Is(err, ErrNoRow):
			return Book{}, err
		}
	}

	b, err := s.repo.Insert(ctx, in)
	if errors.Is(err, ErrDuplicateKey) && in.ISBN != nil {
		// Lost a race to a concurrent create; the unique index caught it.
		return Book{}, DuplicateISBNError{ISBN: *in.ISBN}
	}
	return b, err
}

// Update replaces the book with the given id. The supplied ISBN may match
// the book's own current value, but not another book's.
func (s *Service) Update(ctx context.Context, id int64, in Input) (Book, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, ErrNoRow) {
			return Book{}, NotFoundError{ID: id}
		}
		return Book{}, err
	}

	if in.ISBN != nil {
		holder, err := s.repo.GetByISBN(ctx, *in.ISBN)
		switch {
		case err == nil && holder.ID != id:
			return Book{}, ISBNConflictError{ISBN: *in.ISBN}
		case err != nil && !errors.Is(err, ErrNoRow):
			return Book{}, err
		}
	}

	b, err := s.repo.Update(ctx, id, in)
	switch {
	case errors.Is(err, ErrNoRow):
		// Deleted between the existence check and the write.
		return Book{}, NotFoundError{ID: id}
	case errors.Is(err, ErrDuplicateKey) && in.ISBN != nil:
		return Book{}, ISBNConflictError{ISBN: *in.ISBN}
	}
	return b, err
}

// Delete removes the book with the given id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return NotFoundError{ID: id}
	}
	return nil
}
