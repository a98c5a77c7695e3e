package services

import (
  "bytes"
  "context"
  "encoding/json"
  "fmt"
  "io"
  "net/http"
  "os"
  "time"

  "github.com/ranker-ai/ranker-backend/internal/logger"
)

// GenerationService is the external text-generation collaborator: given
// the host's listing text it produces the diagnosis. Opaque, slow, and
// allowed to fail; callers never retry.
type GenerationService interface {
  Generate(ctx context.Context, prompt string) (string, error)
}

// systemInstruction is the fixed consultant persona every generation
// call is issued with.
const systemInstruction = `Você é o Airbnb Ranker AI, um consultor sênior de SEO e conversão para o Airbnb.
Sua missão é analisar links de anúncios ou descrições e fornecer um diagnóstico estratégico.
Siga rigorosamente esta estrutura:
1. Resumo Executivo: Visão geral da saúde do anúncio.
2. P0 (Críticos): Erros que estão matando o ranking ou a conversão (fotos ruins, falta de descrição, preços errados).
3. P1 (Importantes): Melhorias que trarão ganho real de posição no ranking em 30 dias.
4. P2 (Marginais): Detalhes que tornam o anúncio perfeito (copywriting, tags extras).
Mantenha um tom profissional, direto e acionável.`

type geminiService struct {
  log     *logger.Logger
  client  *http.Client
  baseURL string
  model   string
  apiKey  string
}

type geminiPart struct {
  Text string `json:"text"`
}

type geminiContent struct {
  Parts []geminiPart `json:"parts"`
  Role  string       `json:"role,omitempty"`
}

type geminiRequest struct {
  Contents          []geminiContent `json:"contents"`
  SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
}

type geminiCandidate struct {
  Content *geminiContent `json:"content"`
}

type geminiResponse struct {
  Candidates []geminiCandidate `json:"candidates"`
}

func NewGeminiService(log *logger.Logger) (GenerationService, error) {
  serviceLog := log.With("service", "GeminiService")
  apiKey := os.Getenv("GEMINI_API_KEY")
  if apiKey == "" {
    return nil, fmt.Errorf("missing GEMINI_API_KEY environment variable")
  }
  baseURL := os.Getenv("GEMINI_API_URL")
  if baseURL == "" {
    baseURL = "https://generativelanguage.googleapis.com/v1beta"
  }
  model := os.Getenv("GEMINI_MODEL")
  if model == "" {
    model = "gemini-3-pro-preview"
  }
  httpClient := &http.Client{
    Timeout: 60 * time.Second,
  }
  return &geminiService{
    log:     serviceLog,
    client:  httpClient,
    baseURL: baseURL,
    model:   model,
    apiKey:  apiKey,
  }, nil
}

func (gs *geminiService) Generate(ctx context.Context, prompt string) (string, error) {
  payload := geminiRequest{
    Contents: []geminiContent{
      {Parts: []geminiPart{{Text: prompt}}, Role: "user"},
    },
    SystemInstruction: &geminiContent{
      Parts: []geminiPart{{Text: systemInstruction}},
    },
  }
  body, err := json.Marshal(payload)
  if err != nil {
    return "", err
  }

  reqURL := fmt.Sprintf("%s/models/%s:generateContent", gs.baseURL, gs.model)
  req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewBuffer(body))
  if err != nil {
    gs.log.Warn("failed to build generation request", "error", err)
    return "", err
  }
  req.Header.Set("Content-Type", "application/json")
  req.Header.Set("x-goog-api-key", gs.apiKey)

  resp, err := gs.client.Do(req)
  if err != nil {
    gs.log.Warn("failed to call generation API", "error", err)
    return "", err
  }
  defer resp.Body.Close()

  respBytes, err := io.ReadAll(resp.Body)
  if err != nil {
    gs.log.Warn("failed to read generation response body", "error", err)
    return "", err
  }
  if resp.StatusCode < 200 || resp.StatusCode > 299 {
    gs.log.Warn("generation API responded with non-2xx", "statusCode", resp.StatusCode, "body", string(respBytes))
    return "", fmt.Errorf("generation API HTTP %d: %s", resp.StatusCode, string(respBytes))
  }

  var out geminiResponse
  if err := json.Unmarshal(respBytes, &out); err != nil {
    gs.log.Warn("failed to decode generation response", "error", err)
    return "", err
  }
  if len(out.Candidates) == 0 || out.Candidates[0].Content == nil || len(out.Candidates[0].Content.Parts) == 0 {
    return "", fmt.Errorf("generation API returned no candidates")
  }
  text := out.Candidates[0].Content.Parts[0].Text
  if text == "" {
    text = "Desculpe, não consegui processar a análise deste anúncio no momento."
  }
  return text, nil
}
