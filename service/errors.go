package service

import "errors"

var (
	ErrNotAuthenticated    = errors.New("session is not authenticated")
	ErrIncorrectCredential = errors.New("incorrect credential")
	ErrMalformedCredential = errors.New("malformed credential")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrInvalidRecipient    = errors.New("invalid recipient")
)
