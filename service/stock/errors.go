package stock

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Error kinds surfaced by the engine. Everything except ErrStorage is a
// non-retryable caller error; ErrStorage means the transaction rolled
// back with no partial state and the call is safe to retry.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNotFound          = errors.New("item not found")
	ErrDuplicateCode     = errors.New("item code already in use")
	ErrConflict          = errors.New("item has ledger history")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrStorage           = errors.New("storage failure")
)

// domainErr reports whether err is one of the caller-facing kinds, as
// opposed to a driver/transaction failure.
func domainErr(err error) bool {
	return errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDuplicateCode) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrInsufficientStock)
}

// classify passes domain errors through and wraps everything else as ErrStorage.
func classify(err error) error {
	if err == nil || domainErr(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}

// isDuplicate detects a unique-constraint violation from either driver.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint")
}
