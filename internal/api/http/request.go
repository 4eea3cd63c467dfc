package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"frontdesk-backend/internal/domain"
)

var validate = validator.New()

const dateLayout = "2006-01-02"

// decodeJSON parses and validates a request body into dst. dst must be a
// pointer to a struct carrying `validate` tags.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.NewError(domain.CodeValidationFailed, "invalid request body: %v", err)
	}
	if err := validate.Struct(dst); err != nil {
		return domain.NewError(domain.CodeValidationFailed, "%v", err)
	}
	return nil
}

// parseDate accepts calendar dates; the engine works at date granularity.
func parseDate(value, name string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, domain.NewError(domain.CodeValidationFailed,
			"%s must be a date in %s form", name, dateLayout)
	}
	return t, nil
}

func parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewError(domain.CodeValidationFailed, "invalid id %q", value)
	}
	return id, nil
}

// parsePaging defaults to page 1, size 20, capped at 100.
func parsePaging(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = int32(n)
		}
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			pageSize = int32(n)
		}
	}
	return page, pageSize
}
