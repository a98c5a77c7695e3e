package errordata

import (
  "errors"
  "fmt"
  "net/http"
)

// Kind classifies an application error so handlers can pick the right
// HTTP status without string-matching messages.
type Kind int

const (
  Internal Kind = iota
  Unauthorized
  Forbidden
  NotFound
  QuotaExceeded
  UpstreamFailure
  ValidationError
)

type Error struct {
  Kind    Kind
  Message string
  Err     error
}

func (e *Error) Error() string {
  if e.Err != nil {
    return fmt.Sprintf("%s: %v", e.Message, e.Err)
  }
  return e.Message
}

func (e *Error) Unwrap() error {
  return e.Err
}

func New(kind Kind, message string) *Error {
  return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
  return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf reports the kind of err, or Internal for anything untyped.
func KindOf(err error) Kind {
  var e *Error
  if errors.As(err, &e) {
    return e.Kind
  }
  return Internal
}

// MessageOf returns the caller-safe message of err. Untyped errors get a
// generic message so internals never leak to clients.
func MessageOf(err error) string {
  var e *Error
  if errors.As(err, &e) {
    return e.Message
  }
  return "internal server error"
}

func HTTPStatus(err error) int {
  switch KindOf(err) {
  case Unauthorized:
    return http.StatusUnauthorized
  case Forbidden:
    return http.StatusForbidden
  case NotFound:
    return http.StatusNotFound
  case QuotaExceeded:
    return http.StatusTooManyRequests
  case UpstreamFailure:
    return http.StatusBadGateway
  case ValidationError:
    return http.StatusBadRequest
  default:
    return http.StatusInternalServerError
  }
}
