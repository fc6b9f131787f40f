package handler

import (
	"io"
)

// ErrorHandlingMiddleware sends any error returned by next to the terminal.
func ErrorHandlingMiddleware(next HandlerFunc) func(io.Writer, *Request) {
	return func(w io.Writer, r *Request) {
		if err := next(w, r); err != nil {
			err.Send(w)
		}
	}
}
