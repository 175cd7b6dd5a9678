package store

import "errors"

// ErrNotFound is returned when a row does not exist or sits outside the
// caller's scope. The two cases are intentionally indistinguishable so a
// caller cannot probe for other tenants' rows.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a reorder batch references any row outside
// the caller's scope; the whole batch is rejected with no partial effect.
var ErrConflict = errors.New("reorder batch rejected")
