package voyagekit

import "errors"

// ErrNotFound is returned when a detail lookup resolves to no record, which
// the backend signals as null data or an empty array.
var ErrNotFound = errors.New("voyagekit: record not found")
