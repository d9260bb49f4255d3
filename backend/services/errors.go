package services

import "errors"

var (
	// ErrUnauthorized means the caller does not own the target plan.
	ErrUnauthorized = errors.New("not the plan owner")
	// ErrNotFound means the referenced plan or user does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrEmptyComment rejects blank comment bodies.
	ErrEmptyComment = errors.New("comment cannot be empty")
)
