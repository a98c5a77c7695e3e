package services

import (
  "context"
  "testing"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"

  "github.com/ranker-ai/ranker-backend/internal/errordata"
  "github.com/ranker-ai/ranker-backend/internal/logger"
  "github.com/ranker-ai/ranker-backend/internal/types"
  "github.com/ranker-ai/ranker-backend/internal/utils"
)

func newMeFixture(t *testing.T) (MeService, *fakeUserRepo, *types.User) {
  t.Helper()
  users := newFakeUserRepo()
  user := seedUser(t, users, "host@example.com", "Senha123!", types.RoleUser, types.StatusActive)
  svc := NewMeService(nil, logger.NewNop(), users)
  return svc, users, user
}

func TestGetMe(t *testing.T) {
  svc, _, user := newMeFixture(t)

  me, err := svc.GetMe(ctxWithUser(user.ID, user.Role))
  require.NoError(t, err)
  assert.Equal(t, user.ID, me.ID)
  assert.Equal(t, "host@example.com", me.Email)
}

func TestGetMeUnauthenticated(t *testing.T) {
  svc, _, _ := newMeFixture(t)

  _, err := svc.GetMe(context.Background())
  require.Error(t, err)
  assert.Equal(t, errordata.Unauthorized, errordata.KindOf(err))
}

func TestUpdateLocale(t *testing.T) {
  svc, _, user := newMeFixture(t)

  updated, err := svc.UpdateLocale(ctxWithUser(user.ID, user.Role), " en-US ")
  require.NoError(t, err)
  assert.Equal(t, "en-US", updated.Locale)
}

func TestUpdateLocaleEmpty(t *testing.T) {
  svc, _, user := newMeFixture(t)

  _, err := svc.UpdateLocale(ctxWithUser(user.ID, user.Role), "   ")
  require.Error(t, err)
  assert.Equal(t, errordata.ValidationError, errordata.KindOf(err))
}

func TestUpdatePassword(t *testing.T) {
  svc, users, user := newMeFixture(t)
  ctx := ctxWithUser(user.ID, user.Role)

  err := svc.UpdatePassword(ctx, "Senha123!", "NovaSenha456!")
  require.NoError(t, err)

  stored, err := users.GetByID(ctx, nil, user.ID)
  require.NoError(t, err)
  assert.True(t, utils.CheckPassword(stored.Password, "NovaSenha456!"))
  assert.False(t, utils.CheckPassword(stored.Password, "Senha123!"))
}

func TestUpdatePasswordWrongCurrent(t *testing.T) {
  svc, users, user := newMeFixture(t)
  ctx := ctxWithUser(user.ID, user.Role)

  err := svc.UpdatePassword(ctx, "errada", "NovaSenha456!")
  require.Error(t, err)
  assert.Equal(t, errordata.Forbidden, errordata.KindOf(err))

  stored, err := users.GetByID(ctx, nil, user.ID)
  require.NoError(t, err)
  assert.True(t, utils.CheckPassword(stored.Password, "Senha123!"))
}
