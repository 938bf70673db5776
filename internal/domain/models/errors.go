package models

import "errors"

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation indicates the caller's input violates a domain rule.
var ErrValidation = errors.New("validation failed")
