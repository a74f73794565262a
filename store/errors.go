package store

import "errors"

// ErrNotFound is returned when a referenced row does not resolve under the
// caller's ownership. A row owned by someone else and a row that does not
// exist are deliberately indistinguishable.
var ErrNotFound = errors.New("not found")
