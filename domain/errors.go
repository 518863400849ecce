package domain

import "errors"

var (
	ErrInvalidQuery      = errors.New("invalid query")
	ErrInvalidModelID    = errors.New("invalid model id")
	ErrModelNotFound     = errors.New("model not found")
	ErrExportFailed      = errors.New("export failed")
	ErrOracleUnavailable = errors.New("oracle unavailable")
)
