package services

import (
  "context"
  "fmt"
  "sort"
  "sync"
  "time"

  "github.com/google/uuid"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"

  "github.com/ranker-ai/ranker-backend/internal/requestdata"
  "github.com/ranker-ai/ranker-backend/internal/types"
)

// openTestDB gives services a real *gorm.DB for their Transaction
// blocks; the fakes below ignore the tx handle.
func openTestDB() *gorm.DB {
  db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
  if err != nil {
    panic(err)
  }
  return db
}

func ctxWithUser(userID uuid.UUID, role string) context.Context {
  return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
    UserID: userID,
    Email:  "host@example.com",
    Role:   role,
    Status: types.StatusActive,
    Locale: "pt-BR",
  })
}

type fakeUserRepo struct {
  mu    sync.Mutex
  users map[uuid.UUID]*types.User
}

func newFakeUserRepo() *fakeUserRepo {
  return &fakeUserRepo{users: make(map[uuid.UUID]*types.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  for _, u := range users {
    if u.ID == uuid.Nil {
      u.ID = uuid.New()
    }
    u.CreatedAt = time.Now()
    cp := *u
    f.users[u.ID] = &cp
  }
  return users, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  if u, ok := f.users[userID]; ok {
    cp := *u
    return &cp, nil
  }
  return nil, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  for _, u := range f.users {
    if u.Email == email {
      cp := *u
      return &cp, nil
    }
  }
  return nil, nil
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
  u, _ := f.GetByEmail(ctx, tx, email)
  return u != nil, nil
}

func (f *fakeUserRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.User, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  var out []*types.User
  for _, u := range f.users {
    cp := *u
    out = append(out, &cp)
  }
  sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
  return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  if _, ok := f.users[user.ID]; !ok {
    return nil, fmt.Errorf("user %s not found", user.ID)
  }
  cp := *user
  f.users[user.ID] = &cp
  return user, nil
}

type fakeConversationRepo struct {
  mu    sync.Mutex
  convs map[uuid.UUID]*types.Conversation
  clock int64
}

func newFakeConversationRepo() *fakeConversationRepo {
  return &fakeConversationRepo{convs: make(map[uuid.UUID]*types.Conversation)}
}

func (f *fakeConversationRepo) tick() time.Time {
  f.clock++
  return time.Unix(0, f.clock*int64(time.Millisecond))
}

func (f *fakeConversationRepo) Create(ctx context.Context, tx *gorm.DB, conv *types.Conversation) (*types.Conversation, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  if conv.ID == uuid.Nil {
    conv.ID = uuid.New()
  }
  now := f.tick()
  conv.CreatedAt = now
  conv.UpdatedAt = now
  cp := *conv
  f.convs[conv.ID] = &cp
  return conv, nil
}

func (f *fakeConversationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Conversation, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  if c, ok := f.convs[id]; ok {
    cp := *c
    return &cp, nil
  }
  return nil, nil
}

func (f *fakeConversationRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Conversation, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  var out []*types.Conversation
  for _, c := range f.convs {
    if c.UserID == userID {
      cp := *c
      out = append(out, &cp)
    }
  }
  sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
  return out, nil
}

func (f *fakeConversationRepo) TouchUpdatedAt(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
  f.mu.Lock()
  defer f.mu.Unlock()
  c, ok := f.convs[id]
  if !ok {
    return fmt.Errorf("conversation %s not found", id)
  }
  c.UpdatedAt = f.tick()
  return nil
}

type fakeMessageRepo struct {
  mu    sync.Mutex
  msgs  []*types.Message
  clock int64
}

func newFakeMessageRepo() *fakeMessageRepo {
  return &fakeMessageRepo{}
}

func (f *fakeMessageRepo) CreateMessages(ctx context.Context, tx *gorm.DB, msgs []*types.Message) ([]*types.Message, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  for _, m := range msgs {
    if m.ID == uuid.Nil {
      m.ID = uuid.New()
    }
    f.clock++
    m.CreatedAt = time.Unix(0, f.clock*int64(time.Millisecond))
    cp := *m
    f.msgs = append(f.msgs, &cp)
  }
  return msgs, nil
}

func (f *fakeMessageRepo) GetByConversationID(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) ([]*types.Message, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  var out []*types.Message
  for _, m := range f.msgs {
    if m.ConversationID == conversationID {
      cp := *m
      out = append(out, &cp)
    }
  }
  sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
  return out, nil
}

type fakeDailyUsageRepo struct {
  mu   sync.Mutex
  rows map[string]*types.DailyUsage
}

func newFakeDailyUsageRepo() *fakeDailyUsageRepo {
  return &fakeDailyUsageRepo{rows: make(map[string]*types.DailyUsage)}
}

func usageKey(userID uuid.UUID, day time.Time) string {
  return userID.String() + "|" + types.StartOfDay(day).Format("2006-01-02")
}

func (f *fakeDailyUsageRepo) GetOrCreateForDay(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day time.Time) (*types.DailyUsage, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  key := usageKey(userID, day)
  if row, ok := f.rows[key]; ok {
    cp := *row
    return &cp, nil
  }
  row := &types.DailyUsage{
    ID:     uuid.New(),
    UserID: userID,
    Day:    types.StartOfDay(day),
  }
  f.rows[key] = row
  cp := *row
  return &cp, nil
}

func (f *fakeDailyUsageRepo) IncrementCount(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
  f.mu.Lock()
  defer f.mu.Unlock()
  for _, row := range f.rows {
    if row.ID == id {
      row.MessagesCount++
      return nil
    }
  }
  return fmt.Errorf("daily usage row %s not found", id)
}

func (f *fakeDailyUsageRepo) countFor(userID uuid.UUID, day time.Time) int {
  f.mu.Lock()
  defer f.mu.Unlock()
  if row, ok := f.rows[usageKey(userID, day)]; ok {
    return row.MessagesCount
  }
  return 0
}

type fakeAuditLogRepo struct {
  mu      sync.Mutex
  entries []*types.AuditLog
}

func newFakeAuditLogRepo() *fakeAuditLogRepo {
  return &fakeAuditLogRepo{}
}

func (f *fakeAuditLogRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.AuditLog) (*types.AuditLog, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  if entry.ID == uuid.Nil {
    entry.ID = uuid.New()
  }
  entry.CreatedAt = time.Now()
  cp := *entry
  f.entries = append(f.entries, &cp)
  return entry, nil
}

func (f *fakeAuditLogRepo) GetLatest(ctx context.Context, tx *gorm.DB, limit int) ([]*types.AuditLog, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  out := make([]*types.AuditLog, 0, len(f.entries))
  for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
    cp := *f.entries[i]
    out = append(out, &cp)
  }
  return out, nil
}

type fakeGenerationService struct {
  mu    sync.Mutex
  reply string
  err   error
  calls int
}

func (f *fakeGenerationService) Generate(ctx context.Context, prompt string) (string, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  f.calls++
  if f.err != nil {
    return "", f.err
  }
  return f.reply, nil
}

func (f *fakeGenerationService) callCount() int {
  f.mu.Lock()
  defer f.mu.Unlock()
  return f.calls
}

type fakeRevocationService struct {
  mu      sync.Mutex
  revoked map[string]bool
}

func newFakeRevocationService() *fakeRevocationService {
  return &fakeRevocationService{revoked: make(map[string]bool)}
}

func (f *fakeRevocationService) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
  f.mu.Lock()
  defer f.mu.Unlock()
  f.revoked[tokenID] = true
  return nil
}

func (f *fakeRevocationService) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  return f.revoked[tokenID], nil
}

type fakeEmailService struct {
  mu   sync.Mutex
  sent []string
}

func (f *fakeEmailService) SendWelcomeEmail(ctx context.Context, toEmail, plainPassword string) error {
  f.mu.Lock()
  defer f.mu.Unlock()
  f.sent = append(f.sent, toEmail)
  return nil
}
