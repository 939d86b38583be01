package auth

import (
	"github.com/cockroachdb/errors"
)

// Kind classifies an AuthError.
type Kind string

const (
	KindCredentialsSignin Kind = "CredentialsSignin"
	KindInvalidSession    Kind = "InvalidSession"
	KindSessionExpired    Kind = "SessionExpired"
	KindSessionRevoked    Kind = "SessionRevoked"
)

const (
	MsgInvalidCredentials = "Invalid credentials."
	MsgSomethingWrong     = "Something went wrong."
)

// AuthError is a failure the sign-in flow knows how to report to the user.
type AuthError struct {
	Kind Kind
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return string(e.Kind)
}

func (e *AuthError) Unwrap() error { return e.Err }

func newAuthError(kind Kind, err error) error {
	return &AuthError{Kind: kind, Err: err}
}

// IsAuthError reports whether err carries an AuthError of any kind.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// IsKind reports whether err is an AuthError of the given kind.
func IsKind(err error, kind Kind) bool {
	var authErr *AuthError
	return errors.As(err, &authErr) && authErr.Kind == kind
}

// LoginMessage turns a sign-in error into the message shown on the login form.
// Errors that are not AuthErrors are returned unchanged for the caller to handle.
func LoginMessage(err error) (string, error) {
	if err == nil {
		return "", nil
	}
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		return "", err
	}
	if authErr.Kind == KindCredentialsSignin {
		return MsgInvalidCredentials, nil
	}
	return MsgSomethingWrong, nil
}
