package services

import (
  "context"
  "fmt"
  "time"

  "github.com/redis/go-redis/v9"

  "github.com/ranker-ai/ranker-backend/internal/logger"
)

// RevocationService is the logout denylist: a revoked token ID stays
// listed until the token itself would have expired anyway.
type RevocationService interface {
  Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
  IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type revocationService struct {
  log    *logger.Logger
  client *redis.Client
}

func NewRevocationService(log *logger.Logger, address, password string) (RevocationService, error) {
  serviceLog := log.With("service", "RevocationService")
  rdb := redis.NewClient(&redis.Options{
    Addr:     address,
    Password: password,
    DB:       0,
  })
  ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
  defer cancel()
  if err := rdb.Ping(ctx).Err(); err != nil {
    return nil, fmt.Errorf("redis ping failed: %w", err)
  }
  return &revocationService{log: serviceLog, client: rdb}, nil
}

func revocationKey(tokenID string) string {
  return "ranker:revoked:" + tokenID
}

func (rs *revocationService) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
  if ttl <= 0 {
    // Token already expired; nothing left to deny.
    return nil
  }
  if err := rs.client.Set(ctx, revocationKey(tokenID), "1", ttl).Err(); err != nil {
    rs.log.Warn("failed to write revocation entry", "error", err)
    return err
  }
  return nil
}

func (rs *revocationService) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
  n, err := rs.client.Exists(ctx, revocationKey(tokenID)).Result()
  if err != nil {
    rs.log.Warn("failed to check revocation entry", "error", err)
    return false, err
  }
  return n > 0, nil
}
