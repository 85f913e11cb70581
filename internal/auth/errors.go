package auth

import (
	"errors"
	"fmt"
)

// Category is the small set of user-facing failure classes sign-in and
// sign-up errors collapse into.
type Category string

const (
	CategoryInvalidCredentials Category = "invalid_credentials"
	CategoryEmailInUse         Category = "email_in_use"
	CategoryWeakPassword       Category = "weak_password"
	CategoryCancelled          Category = "cancelled"
	CategoryUnknown            Category = "unknown"
)

// Error is an authentication failure mapped to a user-facing category
type Error struct {
	Category Category
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth error (%s): %s: %v", e.Category, e.Message, e.Err)
	}
	return fmt.Sprintf("auth error (%s): %s", e.Category, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// FromProviderCode maps an identity-provider error code to a categorized
// error with a presentable message.
func FromProviderCode(code string, err error) *Error {
	switch code {
	case "auth/invalid-credential", "auth/invalid-email", "auth/user-not-found", "auth/wrong-password":
		return &Error{Category: CategoryInvalidCredentials, Message: "Invalid email or password", Err: err}
	case "auth/email-already-in-use":
		return &Error{Category: CategoryEmailInUse, Message: "This email is already in use", Err: err}
	case "auth/weak-password":
		return &Error{Category: CategoryWeakPassword, Message: "Password is too weak", Err: err}
	case "auth/popup-closed-by-user", "auth/cancelled-popup-request":
		return &Error{Category: CategoryCancelled, Message: "Sign-in cancelled", Err: err}
	}
	return &Error{Category: CategoryUnknown, Message: "Authentication failed", Err: err}
}

// IsCancelled reports whether the error represents a deliberate user
// cancellation. Callers swallow these instead of surfacing them.
func IsCancelled(err error) bool {
	var authErr *Error
	return errors.As(err, &authErr) && authErr.Category == CategoryCancelled
}
