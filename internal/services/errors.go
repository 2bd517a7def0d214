package services

import "errors"

// ErrInvalidCredentials is returned for both an unknown email and a
// wrong password, deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken is returned when registering an email that already has
// an account.
var ErrEmailTaken = errors.New("user already exists")

// ErrNotTaskOwner is returned when a company acts on a submission to a
// task it did not post.
var ErrNotTaskOwner = errors.New("not authorized for this task")

// ValidationError reports malformed input, detected before any
// persistence write is attempted. The message names the first violated
// rule and is safe to show to the client.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationErr(msg string) error {
	return &ValidationError{Msg: msg}
}
