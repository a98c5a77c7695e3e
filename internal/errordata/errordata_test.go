package errordata

import (
  "errors"
  "fmt"
  "net/http"
  "testing"

  "github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
  cases := []struct {
    kind Kind
    want int
  }{
    {Unauthorized, http.StatusUnauthorized},
    {Forbidden, http.StatusForbidden},
    {NotFound, http.StatusNotFound},
    {QuotaExceeded, http.StatusTooManyRequests},
    {UpstreamFailure, http.StatusBadGateway},
    {ValidationError, http.StatusBadRequest},
    {Internal, http.StatusInternalServerError},
  }
  for _, tc := range cases {
    assert.Equal(t, tc.want, HTTPStatus(New(tc.kind, "boom")))
  }
}

func TestUntypedErrorIsInternal(t *testing.T) {
  err := errors.New("pq: connection refused")
  assert.Equal(t, Internal, KindOf(err))
  assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
  assert.Equal(t, "internal server error", MessageOf(err))
}

func TestWrappedErrorKeepsKind(t *testing.T) {
  cause := errors.New("dial tcp: timeout")
  typed := Wrap(UpstreamFailure, "failed to reach the analysis engine", cause)
  wrapped := fmt.Errorf("send message: %w", typed)

  assert.Equal(t, UpstreamFailure, KindOf(wrapped))
  assert.Equal(t, "failed to reach the analysis engine", MessageOf(wrapped))
  assert.ErrorIs(t, wrapped, cause)
}

func TestErrorString(t *testing.T) {
  assert.Equal(t, "not found", New(NotFound, "not found").Error())
  assert.Equal(t, "upstream: boom", Wrap(UpstreamFailure, "upstream", errors.New("boom")).Error())
}
