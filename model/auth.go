package model

// AuthResult is the outcome of a credential check. Reason is nil when OK.
type AuthResult struct {
	OK     bool
	Reason error
}
