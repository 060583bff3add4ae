package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind identifies a class of failure independent of its wording.
type Kind string

const (
	KindInvalidBody          Kind = "InvalidBody"
	KindInvalidName          Kind = "InvalidName"
	KindInvalidPassword      Kind = "InvalidPassword"
	KindUserAlreadyExists    Kind = "UserAlreadyExists"
	KindUserNotFound         Kind = "UserNotFound"
	KindInvalidCredentials   Kind = "InvalidCredentials"
	KindMissingToken         Kind = "MissingToken"
	KindInvalidToken         Kind = "InvalidToken"
	KindMissingFields        Kind = "MissingFields"
	KindInvalidType          Kind = "InvalidType"
	KindInvalidCategory      Kind = "InvalidCategory"
	KindInvalidAmount        Kind = "InvalidAmount"
	KindInvalidDate          Kind = "InvalidDate"
	KindInvalidDescription   Kind = "InvalidDescription"
	KindDuplicateTransaction Kind = "DuplicateTransaction"
	KindMissingID            Kind = "MissingId"
	KindNotFound             Kind = "NotFound"
	KindForbidden            Kind = "Forbidden"
	KindInternal             Kind = "Internal"
)

// Error is the uniform failure shape written to clients as
// {status, message, extraDetails}.
type Error struct {
	Kind         Kind
	Status       int
	Message      string
	ExtraDetails string
	Err          error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so callers can compare against
// the package sentinels even when a cause has been attached.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Wrap returns a copy of e carrying err as its cause.
func (e *Error) Wrap(err error) *Error {
	cp := *e
	cp.Err = err
	return &cp
}

func newError(kind Kind, status int, message, details string) *Error {
	return &Error{Kind: kind, Status: status, Message: message, ExtraDetails: details}
}

var (
	ErrInvalidBody = newError(KindInvalidBody, fiber.StatusBadRequest,
		"Invalid request body!", "The request body must be valid JSON.")

	ErrInvalidName = newError(KindInvalidName, fiber.StatusBadRequest,
		"Invalid name!", "Name at least 3 characters.")
	ErrInvalidPassword = newError(KindInvalidPassword, fiber.StatusBadRequest,
		"Invalid password",
		"Password must be at least 8 characters long.\n - At least one uppercase letter (A-Z)\n - At least one lowercase letter (a-z)\n - At least one number (0-9)\n - At least one special character (e.g., @, $, !, %, *, ?, &)")
	ErrUserAlreadyExists = newError(KindUserAlreadyExists, fiber.StatusConflict,
		"User already exists.", "It looks like you're already registered. Please Login to your account.")
	ErrUserNotFound = newError(KindUserNotFound, fiber.StatusConflict,
		"User not found.", "User not found. If you don't have an account, please SignUp first.")
	ErrInvalidCredentials = newError(KindInvalidCredentials, fiber.StatusUnauthorized,
		"Invalid username or password", "Invalid username or password. Please try again.")

	ErrMissingToken = newError(KindMissingToken, fiber.StatusUnauthorized,
		"Invalid User", "User unauthenticated or already logged out!")
	ErrInvalidToken = newError(KindInvalidToken, fiber.StatusUnauthorized,
		"Token doesn't match", "Invalid User!")

	ErrMissingFields = newError(KindMissingFields, fiber.StatusBadRequest,
		"Missing input field!", "Please fill all the input fields.")
	ErrInvalidType = newError(KindInvalidType, fiber.StatusBadRequest,
		"Invalid type!", "Please enter a valid transaction type (income/expense).")
	ErrInvalidCategory = newError(KindInvalidCategory, fiber.StatusBadRequest,
		"Invalid category!", "Category must be at least 3 characters long.")
	ErrInvalidAmount = newError(KindInvalidAmount, fiber.StatusBadRequest,
		"Invalid amount!", "Please enter a valid amount value.")
	ErrInvalidDate = newError(KindInvalidDate, fiber.StatusBadRequest,
		"Invalid date!", "Please provide a valid date in DD/MM/YYYY format.")
	ErrInvalidDescription = newError(KindInvalidDescription, fiber.StatusBadRequest,
		"Invalid description!", "Description must be in between 3 and 100 characters long.")
	ErrDuplicateTransaction = newError(KindDuplicateTransaction, fiber.StatusBadRequest,
		"Transaction duplicate found!", "Your transaction already exists. Please update your transaction details if you want.")

	ErrMissingID = newError(KindMissingID, fiber.StatusBadRequest,
		"Invalid transaction.", "Transaction ID must be provided.")
	ErrNotFound = newError(KindNotFound, fiber.StatusNotFound,
		"Transaction not found!", "There is no transaction present with the specified ID.")
	ErrForbidden = newError(KindForbidden, fiber.StatusForbidden,
		"Access denied!", "You do not have permission to access this transaction.")

	ErrInternal = newError(KindInternal, fiber.StatusInternalServerError,
		"Internal server error", "Something went wrong. Please try again later.")
)

// Internal wraps an unexpected failure (store, hashing, signing) as a 500.
func Internal(err error) *Error {
	return ErrInternal.Wrap(err)
}

// From converts any error into an *Error. Errors that are not already
// *Error become Internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
