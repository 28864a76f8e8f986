package auth

import (
	"errors"
	"fmt"
)

// ErrorType names the sign-in failure.
type ErrorType string

const (
	// CredentialsSignin means the credentials were rejected.
	CredentialsSignin ErrorType = "CredentialsSignin"
	// CallbackRouteError means the credentials check itself failed.
	CallbackRouteError ErrorType = "CallbackRouteError"
)

const (
	MsgInvalidCredentials = "Invalid credentials"
	MsgSomethingWrong     = "Something went wrong"
)

// Error is an authentication failure.
type Error struct {
	Type ErrorType
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth %s: %v", e.Type, e.Err)
	}

	return "auth " + string(e.Type)
}

func (e *Error) Unwrap() error { return e.Err }

// Message turns a sign-in error into the text shown on the login form.
// Errors that are not authentication failures are returned unchanged.
func Message(err error) (string, error) {
	if err == nil {
		return "", nil
	}

	var ae *Error
	if !errors.As(err, &ae) {
		return "", err
	}

	if ae.Type == CredentialsSignin {
		return MsgInvalidCredentials, nil
	}

	return MsgSomethingWrong, nil
}
