package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrMissingProductID indicates a catalog payload arrived without a
	// stable product identifier. Identifier synthesis is a catalog problem,
	// not something the stores paper over.
	ErrMissingProductID = errors.New("missing product id")
)
