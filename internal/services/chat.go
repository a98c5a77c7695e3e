package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/ranker-ai/ranker-backend/internal/errordata"
  "github.com/ranker-ai/ranker-backend/internal/logger"
  "github.com/ranker-ai/ranker-backend/internal/normalization"
  "github.com/ranker-ai/ranker-backend/internal/repos"
  "github.com/ranker-ai/ranker-backend/internal/requestdata"
  "github.com/ranker-ai/ranker-backend/internal/types"
)

type ChatService interface {
  // SendMessage runs one chat turn: ownership check, quota check,
  // persist the user message, call the generation service, then persist
  // the reply, refresh the conversation and count the reply against
  // today's quota. The quota is only consumed by successful turns.
  SendMessage(ctx context.Context, conversationID uuid.UUID, content string) (*types.Message, error)
}

type chatService struct {
  db                *gorm.DB
  log               *logger.Logger
  conversationRepo  repos.ConversationRepo
  messageRepo       repos.MessageRepo
  dailyUsageRepo    repos.DailyUsageRepo
  generation        GenerationService
  maxMessagesPerDay int
}

func NewChatService(
  db *gorm.DB,
  log *logger.Logger,
  conversationRepo repos.ConversationRepo,
  messageRepo repos.MessageRepo,
  dailyUsageRepo repos.DailyUsageRepo,
  generation GenerationService,
  maxMessagesPerDay int,
) ChatService {
  serviceLog := log.With("service", "ChatService")
  return &chatService{
    db:                db,
    log:               serviceLog,
    conversationRepo:  conversationRepo,
    messageRepo:       messageRepo,
    dailyUsageRepo:    dailyUsageRepo,
    generation:        generation,
    maxMessagesPerDay: maxMessagesPerDay,
  }
}

func (chs *chatService) SendMessage(ctx context.Context, conversationID uuid.UUID, content string) (*types.Message, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    chs.log.Warn("No Request Data found in context, Cannot proceed.")
    return nil, errordata.New(errordata.Unauthorized, "not authenticated")
  }

  content = normalization.ParseInputString(content)
  if content == "" {
    return nil, errordata.New(errordata.ValidationError, "message is required")
  }

  //1) Ownership
  conv, err := chs.conversationRepo.GetByID(ctx, nil, conversationID)
  if err != nil {
    chs.log.Warn("Failed to load conversation, Cannot proceed. Returning error.", "error", err)
    return nil, fmt.Errorf("failed to load conversation: %w", err)
  }
  if conv == nil {
    return nil, errordata.New(errordata.NotFound, "conversation not found")
  }
  if conv.UserID != rd.UserID {
    chs.log.Warn("Cross-user chat attempt denied", "conversationID", conversationID, "ownerID", conv.UserID, "requesterID", rd.UserID)
    return nil, errordata.New(errordata.Forbidden, "conversation belongs to another user")
  }

  //2) Quota. Checked before any generation call; the check and the
  //   later increment are not one atomic reservation (soft cap).
  usage, err := chs.dailyUsageRepo.GetOrCreateForDay(ctx, nil, rd.UserID, time.Now())
  if err != nil {
    chs.log.Warn("Failed to load daily usage, Cannot proceed. Returning error.", "error", err)
    return nil, fmt.Errorf("failed to load daily usage: %w", err)
  }
  if usage.MessagesCount >= chs.maxMessagesPerDay {
    chs.log.Info("Daily message quota reached", "userID", rd.UserID, "count", usage.MessagesCount, "cap", chs.maxMessagesPerDay)
    return nil, errordata.New(errordata.QuotaExceeded, "daily message limit reached")
  }

  //3) Persist the user message. Kept even when generation fails below,
  //   so an incomplete exchange stays observable.
  userMsg := &types.Message{
    ID:             uuid.New(),
    ConversationID: conv.ID,
    Role:           types.MessageRoleUser,
    Content:        content,
  }
  if _, err := chs.messageRepo.CreateMessages(ctx, nil, []*types.Message{userMsg}); err != nil {
    chs.log.Warn("Failed to persist user message, Cannot proceed. Returning error.", "error", err)
    return nil, fmt.Errorf("failed to persist user message: %w", err)
  }

  //4) Generation call. No retries; the failure is surfaced as-is.
  aiText, err := chs.generation.Generate(ctx, content)
  if err != nil {
    chs.log.Warn("Generation call failed; leaving exchange incomplete", "error", err, "conversationID", conv.ID)
    return nil, errordata.Wrap(errordata.UpstreamFailure, "failed to reach the analysis engine", err)
  }

  //5) Reply, conversation touch and quota increment land together.
  assistantMsg := &types.Message{
    ID:             uuid.New(),
    ConversationID: conv.ID,
    Role:           types.MessageRoleAssistant,
    Content:        aiText,
  }
  err = chs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, err := chs.messageRepo.CreateMessages(ctx, tx, []*types.Message{assistantMsg}); err != nil {
      return fmt.Errorf("failed to persist assistant message: %w", err)
    }
    if err := chs.conversationRepo.TouchUpdatedAt(ctx, tx, conv.ID); err != nil {
      return fmt.Errorf("failed to refresh conversation: %w", err)
    }
    if err := chs.dailyUsageRepo.IncrementCount(ctx, tx, usage.ID); err != nil {
      return fmt.Errorf("failed to increment daily usage: %w", err)
    }
    return nil
  })
  if err != nil {
    chs.log.Warn("Failed to finalize chat turn, Cannot proceed. Returning error.", "error", err)
    return nil, err
  }

  return assistantMsg, nil
}
