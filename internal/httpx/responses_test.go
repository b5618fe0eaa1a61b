package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONErrors_CarriesErrorList(t *testing.T) {
	w := httptest.NewRecorder()

	JSONErrors(w, http.StatusBadRequest, "Isbn já cadastrado.")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, []string{"Isbn já cadastrado."}, resp.Errors)
}

func TestJSONSuccess_Envelope(t *testing.T) {
	w := httptest.NewRecorder()

	JSONSuccess(w, map[string]int{"id": 1}, map[string]int{"total": 1})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.NotNil(t, resp["data"])
	assert.NotNil(t, resp["meta"])
}

func TestReadPaging(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		page, pageSize, limit, offset := ReadPaging(url.Values{})

		assert.Equal(t, 1, page)
		assert.Equal(t, 20, pageSize)
		assert.Equal(t, 20, limit)
		assert.Equal(t, 0, offset)
	})

	t.Run("offset follows page", func(t *testing.T) {
		qs := url.Values{"page": {"3"}, "page_size": {"10"}}
		page, pageSize, limit, offset := ReadPaging(qs)

		assert.Equal(t, 3, page)
		assert.Equal(t, 10, pageSize)
		assert.Equal(t, 10, limit)
		assert.Equal(t, 20, offset)
	})

	t.Run("oversized page_size falls back", func(t *testing.T) {
		qs := url.Values{"page_size": {"5000"}}
		_, pageSize, _, _ := ReadPaging(qs)

		assert.Equal(t, 20, pageSize)
	})
}

func TestPagingMeta_CeilingDivision(t *testing.T) {
	meta := PagingMeta(1, 20, 41)

	assert.Equal(t, 3, meta["total_pages"])
}
