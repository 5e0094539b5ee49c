package model

import "errors"

// ErrDuplicate is wrapped by repository inserts that hit an existing key.
var ErrDuplicate = errors.New("duplicate key")

// ErrReferenced is wrapped by repository deletes blocked by a foreign key.
var ErrReferenced = errors.New("still referenced")
