package workspace

import "errors"

var (
	ErrInvalidCommand         = errors.New("invalid command")
	ErrMissingOrInvalidPath   = errors.New("missing or invalid path")
	ErrPathNotExists          = errors.New("path does not exist")
	ErrPathNotDirectory       = errors.New("path is not a directory")
	ErrAlreadyInitialized     = errors.New("workspace already initialized")
	ErrNotInitialized         = errors.New("workspace not initialized")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrNotImplemented         = errors.New("not implemented")
)
