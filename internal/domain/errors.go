package domain

import "errors"

// ErrNotFound is returned by repositories when the requested row does not exist
// or is not owned by the caller.
var ErrNotFound = errors.New("not found")
