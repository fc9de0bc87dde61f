package api

import (
	"errors"
	"net/http"

	"stockledger.GO/service/stock"
)

// ErrorStatus maps engine error kinds to HTTP status codes.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, stock.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, stock.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, stock.ErrDuplicateCode),
		errors.Is(err, stock.ErrConflict),
		errors.Is(err, stock.ErrInsufficientStock):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
