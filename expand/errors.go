package expand

import "errors"

var (
	// ErrEmptyKeyword indicates that an empty keyword was given.
	ErrEmptyKeyword = errors.New("empty keyword")

	// ErrNodeNotFound indicates that the node to expand does not exist.
	ErrNodeNotFound = errors.New("node not found")
)
