package apperrors

import "errors"

var (
	ErrTableNotFound     = errors.New("table not found")
	ErrEmptySearchPhrase = errors.New("search phrase is empty")
	ErrNegativeBudget    = errors.New("table budget must not be negative")
)
