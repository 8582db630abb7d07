package interfaces

import "errors"

// Errors returned by repositories when a conditional write is rejected.
var (
	ErrAlreadyExists  = errors.New("record already exists")
	ErrStatusConflict = errors.New("montage status changed concurrently")
)
