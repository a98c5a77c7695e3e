package requestdata

import (
  "context"

  "github.com/google/uuid"
)

type key struct{}

var requestDataKey key

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
  return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
  val := ctx.Value(requestDataKey)
  if rd, ok := val.(*RequestData); ok {
    return rd
  }
  return nil
}

// RequestData is the authenticated identity the auth gate resolved for
// this request. It never carries the password hash.
type RequestData struct {
  TokenString string
  TokenID     string
  UserID      uuid.UUID
  Email       string
  Role        string
  Status      string
  Locale      string
}
