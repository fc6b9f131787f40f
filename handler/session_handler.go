package handler

import (
	"errors"
	"fmt"
	"io"

	"go-atm-engine/common"
	"go-atm-engine/model"
	"go-atm-engine/service"
)

// Authenticator is the part of service.AuthService the terminal logs in with.
type Authenticator interface {
	Authenticate(pin string) (model.AuthResult, error)
	AuthenticateHolder(holderID, pin string) (model.AuthResult, error)
	Logout()
}

type SessionHandler struct {
	auth Authenticator
	// holderRequired makes login ask for the card holder id before the PIN.
	holderRequired bool
}

func NewSessionHandler(auth Authenticator, holderRequired bool) *SessionHandler {
	return &SessionHandler{auth: auth, holderRequired: holderRequired}
}

// Login handles `login <pin>` and `login <holder-id> <pin>`.
func (h *SessionHandler) Login(w io.Writer, r *Request) *common.AppError {
	var err error
	switch {
	case len(r.Args) == 2:
		_, err = h.auth.AuthenticateHolder(r.Arg(0), r.Arg(1))
	case len(r.Args) == 1 && !h.holderRequired:
		_, err = h.auth.Authenticate(r.Arg(0))
	case h.holderRequired:
		return common.NewAppError(common.CodeInvalidInput, "Usage: login <user-id> <pin>", nil)
	default:
		return common.NewAppError(common.CodeInvalidInput, "Usage: login <pin>", nil)
	}

	if err != nil {
		if errors.Is(err, service.ErrIncorrectCredential) {
			if h.holderRequired {
				return common.NewAppError(common.CodeUnauthorized, "Invalid User ID or PIN. Please try again.", err)
			}
			return common.NewAppError(common.CodeUnauthorized, "Incorrect PIN. Try again.", err)
		}
		return common.NewAppError(common.CodeInternal, "Could not log in", err)
	}

	fmt.Fprintln(w, "Welcome!")
	return nil
}

func (h *SessionHandler) Logout(w io.Writer, r *Request) *common.AppError {
	h.auth.Logout()
	fmt.Fprintln(w, "Logged out. Please take your card.")
	return nil
}
