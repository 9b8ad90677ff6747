package search

import "errors"

var (
	// ErrEmptyQuery rejects an AND-mode request with no field queries.
	ErrEmptyQuery = errors.New("no search fields provided")

	// ErrNoColumns rejects an OR-mode request with no columns.
	ErrNoColumns = errors.New("no search columns provided")

	// ErrNoQuery rejects a blank query string.
	ErrNoQuery = errors.New("query cannot be empty")
)
