package pkgerror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned by stores when a record does not exist.
	ErrNotFound = errors.New("resource not found")
)

// Type classifies errors into high-level buckets.
type Type int

const (
	TypeServer     Type = iota // Failures of the service or its dependencies.
	TypeBusiness               // Domain rule outcomes such as not found or conflict.
	TypeValidation             // Rejected request input.
)

func (t Type) String() string {
	switch t {
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	case TypeBusiness:
		return "ERROR_TYPE_BUSINESS"
	case TypeServer:
		return "ERROR_TYPE_SERVER"
	default:
		return "ERROR_TYPE_UNKNOWN"
	}
}

// Code is a stable identifier returned to clients and mapped to an HTTP status.
type Code int

const (
	CodeInternal      Code = iota // Internal or unspecified error.
	CodeInvalidInput              // Request input failed validation.
	CodeInvalidFormat             // Request input could not be parsed.
	CodeNotFound                  // Requested record does not exist.
	CodeConflict                  // Uniqueness constraint violated.
	CodeUnavailable               // A dependency such as storage could not serve the call.
)

//nolint:gochecknoglobals // static table
var codes = map[Code]struct {
	name   string
	status int
}{
	CodeInternal:      {"ERROR_CODE_INTERNAL", http.StatusInternalServerError},
	CodeInvalidInput:  {"ERROR_CODE_INVALID_INPUT", http.StatusUnprocessableEntity},
	CodeInvalidFormat: {"ERROR_CODE_INVALID_FORMAT", http.StatusBadRequest},
	CodeNotFound:      {"ERROR_CODE_NOT_FOUND", http.StatusNotFound},
	CodeConflict:      {"ERROR_CODE_CONFLICT", http.StatusConflict},
	CodeUnavailable:   {"ERROR_CODE_UNAVAILABLE", http.StatusServiceUnavailable},
}

func (c Code) String() string {
	if info, ok := codes[c]; ok {
		return info.name
	}
	return codes[CodeInternal].name
}

// StatusCode returns the HTTP status for the code; unknown codes are 500.
func (c Code) StatusCode() int {
	if info, ok := codes[c]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// Error is a structured error used across the application.
//
// It can wrap an underlying error while also carrying a user-facing message,
// a high-level type, and a stable error code.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
}

// Error returns the underlying error text, falling back to the message.
func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	if e.msg != "" {
		return e.msg
	}

	switch e.errType {
	case TypeValidation:
		return "validation failed"
	case TypeBusiness:
		return "business rule violated"
	default:
		return "internal error"
	}
}

// String returns a verbose representation for logs.
func (e *Error) String() string {
	return fmt.Sprintf("type=%s code=%s msg=%q err=%v", e.errType, e.code, e.msg, e.err)
}

// Msg returns the user-facing message.
func (e *Error) Msg() string {
	return e.msg
}

func (e *Error) Type() Type {
	return e.errType
}

func (e *Error) Code() Code {
	return e.code
}

func (e *Error) Unwrap() error {
	return e.err
}

// StatusCode maps the error code to an HTTP status code.
func (e *Error) StatusCode() int {
	return e.code.StatusCode()
}

// IsCode reports whether err is (or wraps) an *Error carrying the given code.
func IsCode(err error, code Code) bool {
	var perr *Error
	if !errors.As(err, &perr) {
		return false
	}
	return perr.code == code
}

func new(err error, msg string, et Type, code Code) error {
	return &Error{err: err, msg: msg, errType: et, code: code}
}

// NewServer hides err behind a generic message.
func NewServer(err error) error {
	return new(err, "Internal server error", TypeServer, CodeInternal)
}

// NewBusiness reports a domain outcome such as not found or conflict.
func NewBusiness(msg string, code Code) error {
	return new(nil, msg, TypeBusiness, code)
}

// NewUnavailable reports a dependency that could not serve the request (503).
func NewUnavailable(err error, msg string) error {
	return new(err, msg, TypeServer, CodeUnavailable)
}

// NewGeneration reports a generation that gave up, with a client-facing message (500).
func NewGeneration(err error, msg string) error {
	return new(err, msg, TypeServer, CodeInternal)
}

// NewInvalidInput wraps the validation problems of a request (422).
func NewInvalidInput(err error) error {
	return new(err, "validation error", TypeValidation, CodeInvalidInput)
}

// NewInvalidFormat wraps request values that could not be parsed (400).
func NewInvalidFormat(err error) error {
	return new(err, "invalid request format", TypeValidation, CodeInvalidFormat)
}
