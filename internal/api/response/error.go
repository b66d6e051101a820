package response

import "net/http"

// Error is an API failure that carries its HTTP status.
type Error struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Extras  string `json:"extras"`
}

func (e Error) Error() string {
	return e.Extras
}

func NewError(code int, message string) Error {
	return Error{
		Success: false,
		Code:    code,
		Extras:  message,
	}
}

// ErrNotFound is the Error for unknown routes.
var ErrNotFound = NewError(http.StatusNotFound, "route not found")
