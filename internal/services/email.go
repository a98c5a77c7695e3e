package services

import (
  "context"
  "fmt"
  "os"

  "github.com/sendgrid/sendgrid-go"
  "github.com/sendgrid/sendgrid-go/helpers/mail"

  "github.com/ranker-ai/ranker-backend/internal/logger"
)

type EmailService interface {
  SendWelcomeEmail(ctx context.Context, toEmail, plainPassword string) error
}

type emailService struct {
  log       *logger.Logger
  client    *sendgrid.Client
  fromEmail string
}

func NewEmailService(log *logger.Logger) (EmailService, error) {
  serviceLog := log.With("service", "EmailService")
  apiKey := os.Getenv("SENDGRID_API_KEY")
  if apiKey == "" {
    return nil, fmt.Errorf("missing SENDGRID_API_KEY environment variable")
  }
  fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
  if fromEmail == "" {
    serviceLog.Warn("SENDGRID_FROM_EMAIL not set; using fallback no-reply@ranker.ai")
    fromEmail = "no-reply@ranker.ai"
  }
  return &emailService{
    log:       serviceLog,
    client:    sendgrid.NewSendClient(apiKey),
    fromEmail: fromEmail,
  }, nil
}

func (es *emailService) SendWelcomeEmail(ctx context.Context, toEmail, plainPassword string) error {
  from := mail.NewEmail("Ranker AI", es.fromEmail)
  to := mail.NewEmail("", toEmail)
  subject := "Bem-vindo ao Ranker AI"
  // The temporary password travels only in the text part; the HTML part
  // never carries it.
  plainText := fmt.Sprintf("Sua conta no Ranker AI foi criada.\n\nLogin: %s\nSenha temporária: %s\n\nAltere sua senha no primeiro acesso.", toEmail, plainPassword)
  htmlContent := fmt.Sprintf("<p>Sua conta no Ranker AI foi criada.</p><p>Login: <b>%s</b></p><p>Sua senha temporária está na versão em texto deste e-mail. Altere-a no primeiro acesso.</p>", toEmail)
  message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
  response, err := es.client.SendWithContext(ctx, message)
  if err != nil {
    es.log.Warn("Sendgrid email send failed", "error", err)
    return err
  }
  es.log.Info("Welcome email sent", "to", toEmail, "statusCode", response.StatusCode)
  return nil
}
