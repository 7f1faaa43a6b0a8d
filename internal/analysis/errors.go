package analysis

import "errors"

var (
	ErrEmptyRequest = errors.New("prompt or at least one file is required")
	ErrTooManyFiles = errors.New("too many files attached")
	ErrFileTooLarge = errors.New("file exceeds the size limit")
	ErrInvalidFile  = errors.New("invalid file")
)
