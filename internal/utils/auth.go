package utils

import (
  "golang.org/x/crypto/bcrypt"

  "github.com/ranker-ai/ranker-backend/internal/errordata"
  "github.com/ranker-ai/ranker-backend/internal/logger"
)

// bcryptCost matches the cost the seeded admin hash was produced with.
const bcryptCost = 12

func HashPassword(log *logger.Logger, password string) (string, error) {
  hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
  if err != nil {
    if log != nil {
      log.Warn("Failed to hash password", "error", err)
    }
    return "", errordata.Wrap(errordata.Internal, "failed to hash password", err)
  }
  return string(hashed), nil
}

func CheckPassword(hash, password string) bool {
  return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func ValidateLoginInput(log *logger.Logger, email, password string) error {
  if email == "" {
    if log != nil {
      log.Warn("Email is an empty string, Cannot proceed.")
    }
    return errordata.New(errordata.ValidationError, "email is required")
  }
  if password == "" {
    if log != nil {
      log.Warn("Password is an empty string, Cannot proceed.")
    }
    return errordata.New(errordata.ValidationError, "password is required")
  }
  return nil
}
