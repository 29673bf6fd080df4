package http

import (
	"net/http"
	"strconv"

	"roomhub/pkg/config"
	apperrors "roomhub/pkg/errors"
)

// ExtractPage reads the 1-indexed pageNo/pageSize query parameters. Pagination
// across the service is 1-indexed; pageNo below 1 is a caller error, while
// pageSize is silently clamped to the configured maximum.
func ExtractPage(r *http.Request) (int, int, error) {
	query := r.URL.Query()

	pageNo := 1
	if s := query.Get("pageNo"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid pageNo parameter: " + s)
		}
		pageNo = v
	}
	if pageNo < 1 {
		return 0, 0, apperrors.InvalidInput("pageNo must be at least 1")
	}

	pageSize := config.DefaultPageSize
	if s := query.Get("pageSize"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid pageSize parameter: " + s)
		}
		pageSize = v
	}
	pageSize = config.NormalizePageSize(pageSize)

	return pageNo, pageSize, nil
}
