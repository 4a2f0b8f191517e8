package document

import "fmt"

var (
	// ErrNotFound is returned when a document for the given tenant / id pair
	// does not exist in the underlying store.
	ErrNotFound = fmt.Errorf("document not found")
)
