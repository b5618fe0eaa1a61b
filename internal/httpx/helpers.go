package httpx

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/julienschmidt/httprouter"
)

// ReadIDParam extracts and validates the ":id" URL parameter added by
// httprouter. Returns an error if the value is missing, non-numeric, or
// less than 1.
func ReadIDParam(r *http.Request) (int64, error) {
	params := httprouter.ParamsFromContext(r.Context())
	id, err := strconv.ParseInt(params.ByName("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id parameter")
	}
	return id, nil
}

// ReadPaging reads page/page_size query parameters with the usual bounds
// and converts them to a limit/offset pair.
func ReadPaging(qs url.Values) (page, pageSize, limit, offset int) {
	page, _ = strconv.Atoi(qs.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(qs.Get("page_size"))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize, pageSize, (page - 1) * pageSize
}

// PagingMeta builds the response meta block for a paged listing.
func PagingMeta(page, pageSize, total int) map[string]any {
	return map[string]any{
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": (total + pageSize - 1) / pageSize,
	}
}
