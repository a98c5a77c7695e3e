package services

import (
  "context"
  "fmt"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/ranker-ai/ranker-backend/internal/errordata"
  "github.com/ranker-ai/ranker-backend/internal/logger"
  "github.com/ranker-ai/ranker-backend/internal/normalization"
  "github.com/ranker-ai/ranker-backend/internal/repos"
  "github.com/ranker-ai/ranker-backend/internal/requestdata"
  "github.com/ranker-ai/ranker-backend/internal/types"
  "github.com/ranker-ai/ranker-backend/internal/utils"
)

type JWTClaims struct {
  jwt.RegisteredClaims
  Role string `json:"role,omitempty"`
}

type AuthService interface {
  Login(ctx context.Context, email, password string) (string, *types.User, error)
  Logout(ctx context.Context) error

  // SetContextFromToken resolves a session token to an authenticated
  // identity and stores it in the returned context. The auth gate for
  // every protected route.
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)

  GetSessionTTL() time.Duration
}

type authService struct {
  db           *gorm.DB
  log          *logger.Logger
  userRepo     repos.UserRepo
  auditLogRepo repos.AuditLogRepo
  revocation   RevocationService
  jwtSecretKey string
  sessionTTL   time.Duration
}

func NewAuthService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  auditLogRepo repos.AuditLogRepo,
  revocation RevocationService,
  jwtSecretKey string,
  sessionTTL time.Duration,
) AuthService {
  serviceLog := log.With("service", "AuthService")
  return &authService{
    db:           db,
    log:          serviceLog,
    userRepo:     userRepo,
    auditLogRepo: auditLogRepo,
    revocation:   revocation,
    jwtSecretKey: jwtSecretKey,
    sessionTTL:   sessionTTL,
  }
}

func (as *authService) Login(ctx context.Context, userEmail, userPassword string) (string, *types.User, error) {
  email := normalization.ParseEmail(userEmail)
  password := normalization.ParseInputString(userPassword)

  if vErr := utils.ValidateLoginInput(as.log, email, password); vErr != nil {
    return "", nil, vErr
  }

  user, err := as.userRepo.GetByEmail(ctx, nil, email)
  if err != nil {
    as.log.Warn("Failed to retrieve user by email, Cannot proceed. Returning error.", "error", err)
    return "", nil, fmt.Errorf("error retrieving user by email: %w", err)
  }
  if user == nil {
    as.log.Warn("Login attempt for unknown email", "email", email)
    return "", nil, errordata.New(errordata.Unauthorized, "invalid credentials")
  }
  if !utils.CheckPassword(user.Password, password) {
    as.log.Warn("Login attempt with wrong password", "email", email)
    return "", nil, errordata.New(errordata.Unauthorized, "invalid credentials")
  }
  if user.Status != types.StatusActive {
    as.log.Warn("Login attempt for non-active user", "email", email, "status", user.Status)
    return "", nil, errordata.New(errordata.Forbidden, "account is suspended")
  }

  token, err := as.generateSessionToken(user)
  if err != nil {
    as.log.Warn("Failed to generate session token, Cannot proceed. Returning error.", "error", err)
    return "", nil, fmt.Errorf("failed to generate session token: %w", err)
  }

  entry := &types.AuditLog{
    UserID:  &user.ID,
    Action:  types.AuditActionLogin,
    Details: datatypes.JSON([]byte(fmt.Sprintf(`{"email":%q}`, user.Email))),
  }
  if _, aErr := as.auditLogRepo.Create(ctx, nil, entry); aErr != nil {
    // Auditing must not block a valid login.
    as.log.Warn("Failed to write login audit entry", "error", aErr)
  }

  return token, user, nil
}

func (as *authService) Logout(ctx context.Context) error {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    as.log.Warn("No Request Data found in context, Cannot proceed.")
    return errordata.New(errordata.Unauthorized, "not authenticated")
  }
  if as.revocation == nil {
    as.log.Warn("Revocation service unavailable; logout clears the cookie only")
    return nil
  }
  claims, err := as.parseClaims(rd.TokenString)
  if err != nil {
    as.log.Warn("Failed to re-parse session token on logout", "error", err)
    return nil
  }
  ttl := time.Until(claims.ExpiresAt.Time)
  if rErr := as.revocation.Revoke(ctx, rd.TokenID, ttl); rErr != nil {
    as.log.Warn("Failed to revoke session token; it will expire naturally", "error", rErr)
  }
  return nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  claims, err := as.parseClaims(tokenString)
  if err != nil {
    return ctx, errordata.Wrap(errordata.Unauthorized, "invalid or expired session", err)
  }

  if as.revocation != nil {
    revoked, rErr := as.revocation.IsRevoked(ctx, claims.ID)
    if rErr != nil {
      // Redis being down must not lock everyone out; the token still
      // carries a valid signature and expiry.
      as.log.Warn("Failed to check token revocation", "error", rErr)
    } else if revoked {
      return ctx, errordata.New(errordata.Unauthorized, "session has been revoked")
    }
  }

  userID, err := uuid.Parse(claims.Subject)
  if err != nil {
    return ctx, errordata.Wrap(errordata.Unauthorized, "invalid user ID in session", err)
  }
  user, err := as.userRepo.GetByID(ctx, nil, userID)
  if err != nil {
    as.log.Warn("Failed to load user for session, Cannot proceed. Returning error.", "error", err)
    return ctx, fmt.Errorf("failed to load user for session: %w", err)
  }
  if user == nil {
    return ctx, errordata.New(errordata.Unauthorized, "session references an unknown user")
  }
  if user.Status != types.StatusActive {
    return ctx, errordata.New(errordata.Forbidden, "account is suspended")
  }

  rd := &requestdata.RequestData{
    TokenString: tokenString,
    TokenID:     claims.ID,
    UserID:      user.ID,
    Email:       user.Email,
    Role:        user.Role,
    Status:      user.Status,
    Locale:      user.Locale,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetSessionTTL() time.Duration {
  return as.sessionTTL
}

func (as *authService) generateSessionToken(user *types.User) (string, error) {
  claims := JWTClaims{
    RegisteredClaims: jwt.RegisteredClaims{
      Subject:   user.ID.String(),
      ID:        uuid.New().String(),
      ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.sessionTTL)),
      IssuedAt:  jwt.NewNumericDate(time.Now()),
    },
    Role: user.Role,
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) parseClaims(tokenString string) (*JWTClaims, error) {
  parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
    if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
    }
    return []byte(as.jwtSecretKey), nil
  })
  if err != nil {
    return nil, err
  }
  claims, ok := parsedToken.Claims.(*JWTClaims)
  if !ok || !parsedToken.Valid {
    return nil, fmt.Errorf("invalid or expired JWT token")
  }
  return claims, nil
}
