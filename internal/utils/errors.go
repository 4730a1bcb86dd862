package utils

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeUnauthorized    Code = "UNAUTHORIZED"
	CodeNotFound        Code = "NOT_FOUND"
	CodeUnavailable     Code = "UNAVAILABLE"
	CodeTimeout         Code = "TIMEOUT"
	CodeRateLimited     Code = "RATE_LIMITED"
	CodeInternal        Code = "INTERNAL"
)

var codeStatus = map[Code]int{
	CodeInvalidArgument: http.StatusBadRequest,
	CodeUnauthorized:    http.StatusUnauthorized,
	CodeNotFound:        http.StatusNotFound,
	CodeUnavailable:     http.StatusServiceUnavailable,
	CodeTimeout:         http.StatusGatewayTimeout,
	CodeRateLimited:     http.StatusTooManyRequests,
	CodeInternal:        http.StatusInternalServerError,
}

// ErrNotFound is returned by repositories when a lookup matches nothing.
var ErrNotFound = errors.New("not found")

// AppError carries a client-safe Message and Code; Err stays server-side.
type AppError struct {
	Code    Code
	Op      string // e.g. "RecommendationService.Recommend"
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}
	parts := make([]string, 0, 3)
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	if len(parts) == 0 || (len(parts) == 1 && e.Op != "") {
		if e.Op != "" {
			return e.Op + ": error"
		}
		return "error"
	}
	return strings.Join(parts, ": ")
}

func (e *AppError) Unwrap() error { return e.Err }

func E(code Code, op, msg string, err error) error {
	return &AppError{Code: code, Op: op, Message: msg, Err: err}
}

// FromContext wraps a context error as TIMEOUT when the deadline passed and
// INTERNAL when the caller went away.
func FromContext(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return E(CodeTimeout, op, "request timed out", err)
	}
	return E(CodeInternal, op, "request cancelled", err)
}

// CodeOf returns the code of the first AppError in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	if errors.Is(err, ErrNotFound) {
		return CodeNotFound
	}
	return CodeInternal
}

func IsCode(err error, code Code) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Code == code
}

func HTTPStatus(err error) int {
	if s, ok := codeStatus[CodeOf(err)]; ok {
		return s
	}
	return http.StatusInternalServerError
}
