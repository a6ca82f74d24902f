package util

import "errors"

var (
	ErrMissingFields    = errors.New("missing required fields")
	ErrQuestionNotFound = errors.New("question not found")
)
