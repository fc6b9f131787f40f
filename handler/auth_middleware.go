package handler

import (
	"io"

	"go-atm-engine/common"
)

// SessionChecker reports whether a user is logged in at the terminal.
type SessionChecker interface {
	IsAuthenticated() bool
}

// AuthMiddleware rejects commands until the session is authenticated.
func AuthMiddleware(session SessionChecker, next HandlerFunc) HandlerFunc {
	return func(w io.Writer, r *Request) *common.AppError {
		if !session.IsAuthenticated() {
			return common.NewAppError(common.CodeUnauthorized, "Please login first.", nil)
		}
		return next(w, r)
	}
}
