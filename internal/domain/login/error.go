package login

import "errors"

var (
	ErrInvalidLimit = errors.New("limit must be between 0 and 100")
	ErrInvalidPage  = errors.New("page must be greater than or equal to 1")
	ErrDecrypt      = errors.New("failed to decrypt login field")
	ErrInvalidEvent = errors.New("login event is missing required fields")
)
