package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"booksapi/internal/book"
)

// StrPtr returns a pointer to s, for optional string fields.
func StrPtr(s string) *string {
	return &s
}

// TestBook is a sample book for tests.
var TestBook = book.Book{
	ID:              1,
	Title:           "1984",
	Author:          "George Orwell",
	PublicationYear: 1949,
	Genre:           "Dystopian Fiction",
	ISBN:            StrPtr("9780451524935"),
	Description:     StrPtr("A dystopian social science fiction novel and cautionary tale"),
	CreatedAt:       time.Now(),
	UpdatedAt:       time.Now(),
}

// TestInput mirrors TestBook's caller-supplied fields.
var TestInput = book.Input{
	Title:           "1984",
	Author:          "George Orwell",
	PublicationYear: 1949,
	Genre:           "Dystopian Fiction",
	ISBN:            StrPtr("9780451524935"),
	Description:     StrPtr("A dystopian social science fiction novel and cautionary tale"),
}

// NewRequest creates an HTTP request with an optional JSON body.
func NewRequest(method, path string, body interface{}) *http.Request {
	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	bodyBytes, _ := json.Marshal(body)
	r := httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// RecordResponse is a decoded HTTP response for assertions.
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// RecordHTTPResponse decodes the recorded response body as JSON.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}
