package repository

import (
	"errors"
	"fmt"
)

// Sentinel kinds for ledger errors.
var (
	ErrNotFound          = errors.New("event not found")
	ErrInvalidPointValue = errors.New("point value outside permitted set")
	ErrInvalidResponse   = errors.New("invalid response state")
	ErrEmptyUserID       = errors.New("empty user id")
	ErrStorage           = errors.New("storage failure")
)

// storageErr tags a backend failure with ErrStorage while keeping the
// underlying error reachable through errors.Is/As.
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
