package models

import "errors"

// ErrValidation indicates malformed or out-of-range input; the caller must
// fix the request before retrying.
var ErrValidation = errors.New("validation failed")

// ErrNotFound covers both a missing record and one owned by somebody else,
// so existence is never leaked to non-owners.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates the operation clashes with current state, such as a
// duplicate active supply or a repeated finish transition.
var ErrConflict = errors.New("conflict")
