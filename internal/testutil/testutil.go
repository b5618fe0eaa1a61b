package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"libraryapi/internal/book"
	"libraryapi/internal/loan"
)

// TestBook is a canned book for tests.
var TestBook = book.Book{
	ID:        1,
	Title:     "As Aventuras",
	Author:    "Fulano",
	ISBN:      "123",
	CreatedAt: time.Now(),
	UpdatedAt: time.Now(),
}

// TestLoan is a canned active loan of TestBook.
var TestLoan = loan.Loan{
	ID:            1,
	Customer:      "Fulano",
	CustomerEmail: "customer@email.com",
	BookID:        TestBook.ID,
	Book:          TestBook,
	LoanDate:      time.Now(),
	CreatedAt:     time.Now(),
	UpdatedAt:     time.Now(),
}

// NewRequest creates a new HTTP request for testing.
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// RecordResponse holds the decoded HTTP response for assertions.
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// RecordHTTPResponse records the HTTP response.
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
