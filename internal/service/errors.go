package service

import "errors"

// Callers tell these apart with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrBusy       = errors.New("request already in progress")
	ErrUpstream   = errors.New("generation service failure")
	ErrValidation = errors.New("validation error")
)
