package service

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// a caller cannot tell which factor failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAlreadyLoggedOut means the presented token is already on the
	// blacklist; a second logout is a conflict, not a no-op.
	ErrAlreadyLoggedOut = errors.New("token already revoked")

	// ErrTokenIssue is a signing/configuration fault. The account state is
	// fine; the client may retry.
	ErrTokenIssue = errors.New("could not issue token")
)

// ValidationErrors maps a field name to its violation messages. All checks
// for a request run to completion so the client sees every problem at once.
type ValidationErrors map[string][]string

func (v ValidationErrors) Error() string { return "validation failed" }

func (v ValidationErrors) Add(field, msg string) {
	v[field] = append(v[field], msg)
}
