package book_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"booksapi/internal/book"
	"booksapi/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T) (*book.HTTPHandler, *book.MockRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	repo := book.NewMockRepository(ctrl)
	return book.NewHTTPHandler(book.NewService(repo)), repo
}

func TestHTTPHandler_List(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler, repo := newHandler(t)
		repo.EXPECT().List(gomock.Any()).Return([]book.Book{testutil.TestBook}, nil)

		w := httptest.NewRecorder()
		handler.List(w, testutil.NewRequest(http.MethodGet, "/books", nil))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, true, resp.Body["success"])
		data, ok := resp.Body["data"].([]interface{})
		require.True(t, ok)
		assert.Len(t, data, 1)
	})

	t.Run("storage error", func(t *testing.T) {
		handler, repo := newHandler(t)
		repo.EXPECT().List(gomock.Any()).Return(nil, assert.AnError)

		w := httptest.NewRecorder()
		handler.List(w, testutil.NewRequest(http.MethodGet, "/books", nil))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.Equal(t, false, resp.Body["success"])
	})
}

func TestHTTPHandler_Get(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler, repo := newHandler(t)
		repo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(testutil.TestBook, nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/books/1", nil)
		r.SetPathValue("id", "1")
		handler.Get(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)
		data := resp.Body["data"].(map[string]interface{})
		assert.Equal(t, "1984", data["title"])
		assert.Equal(t, "9780451524935", data["isbn"])
	})

	t.Run("not found", func(t *testing.T) {
		handler, repo := newHandler(t)
		repo.EXPECT().GetByID(gomock.Any(), int64(999)).Return(book.Book{}, book.ErrNoRow)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/books/999", nil)
		r.SetPathValue("id", "999")
		handler.Get(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusNotFound, resp.Code)
		errBody := resp.Body["error"].(map[string]interface{})
		assert.Equal(t, "NOT_FOUND", errBody["code"])
		assert.Contains(t, errBody["message"], "999")
	})

	t.Run("non-integer id", func(t *testing.T) {
		handler, _ := newHandler(t)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/books/abc", nil)
		r.SetPathValue("id", "abc")
		handler.Get(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})
}

func TestHTTPHandler_Create(t *testing.T) {
	body := map[string]any{
		"title":            "1984",
		"author":           "George Orwell",
		"publication_year": 1949,
		"genre":            "Dystopian Fiction",
		"isbn":             "978-0-451-52493-5",
	}

	t.Run("created with normalized isbn", func(t *testing.T) {
		handler, repo := newHandler(t)
		repo.EXPECT().GetByISBN(gomock.Any(), "9780451524935").Return(book.Book{}, book.ErrNoRow)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in book.Input) (book.Book, error) {
				assert.Equal(t, "9780451524935", *in.ISBN)
				return testutil.TestBook, nil
			})

		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewRequest(http.MethodPost, "/books", body))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusCreated, resp.Code)
		assert.Equal(t, true, resp.Body["success"])
	})

	t.Run("duplicate isbn", func(t *testing.T) {
		handler, repo := newHandler(t)
		repo.EXPECT().GetByISBN(gomock.Any(), "9780451524935").Return(testutil.TestBook, nil)

		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewRequest(http.MethodPost, "/books", body))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusConflict, resp.Code)
		errBody := resp.Body["error"].(map[string]interface{})
		assert.Equal(t, "CONFLICT", errBody["code"])
		assert.Contains(t, errBody["message"], "9780451524935")
	})

	t.Run("validation error", func(t *testing.T) {
		handler, _ := newHandler(t)
		invalid := map[string]any{
			"title":            "",
			"author":           "Test",
			"publication_year": 5000,
			"genre":            "Test",
		}

		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewRequest(http.MethodPost, "/books", invalid))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		errBody := resp.Body["error"].(map[string]interface{})
		assert.Equal(t, "VALIDATION_ERROR", errBody["code"])
		assert.NotEmpty(t, errBody["details"])
	})

	t.Run("malformed json", func(t *testing.T) {
		handler, _ := newHandler(t)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader("{not json"))
		handler.Create(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestHTTPHandler_Update(t *testing.T) {
	body := map[string]any{
		"title":            "Nineteen Eighty-Four",
		"author":           "George Orwell",
		"publication_year": 1949,
		"genre":            "Dystopian Fiction",
		"isbn":             "9780451524935",
	}

	t.Run("success", func(t *testing.T) {
		handler, repo := newHandler(t)
		updated := testutil.TestBook
		updated.Title = "Nineteen Eighty-Four"
		repo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(testutil.TestBook, nil)
		repo.EXPECT().GetByISBN(gomock.Any(), "9780451524935").Return(testutil.TestBook, nil)
		repo.EXPECT().Update(gomock.Any(), int64(1), gomock.Any()).Return(updated, nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/books/1", body)
		r.SetPathValue("id", "1")
		handler.Update(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)
		data := resp.Body["data"].(map[string]interface{})
		assert.Equal(t, "Nineteen Eighty-Four", data["title"])
	})

	t.Run("not found", func(t *testing.T) {
		handler, repo := newHandler(t)
		repo.EXPECT().GetByID(gomock.Any(), int64(999)).Return(book.Book{}, book.ErrNoRow)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/books/999", body)
		r.SetPathValue("id", "999")
		handler.Update(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("isbn conflict", func(t *testing.T) {
		handler, repo := newHandler(t)
		other := testutil.TestBook
		other.ID = 2
		repo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(testutil.TestBook, nil)
		repo.EXPECT().GetByISBN(gomock.Any(), "9780451524935").Return(other, nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/books/1", body)
		r.SetPathValue("id", "1")
		handler.Update(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusConflict, resp.Code)
	})
}

func TestHTTPHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler, repo := newHandler(t)
		repo.EXPECT().Delete(gomock.Any(), int64(1)).Return(true, nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodDelete, "/books/1", nil)
		r.SetPathValue("id", "1")
		handler.Delete(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusNoContent, resp.Code)
		assert.Empty(t, resp.Body)
	})

	t.Run("not found", func(t *testing.T) {
		handler, repo := newHandler(t)
		repo.EXPECT().Delete(gomock.Any(), int64(999)).Return(false, nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodDelete, "/books/999", nil)
		r.SetPathValue("id", "999")
		handler.Delete(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}
