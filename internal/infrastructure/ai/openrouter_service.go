package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/adoptease-api/internal/application/ports"
)

// Verificar en tiempo de compilación que OpenRouterService implementa ChatService.
var _ ports.ChatService = (*OpenRouterService)(nil)

const (
	DefaultOpenRouterURL   = "https://openrouter.ai/api/v1/chat/completions"
	DefaultOpenRouterModel = "openai/gpt-3.5-turbo"
	openRouterTitle        = "AdoptEase"
)

// OpenRouterConfig parámetros del adaptador.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	URL     string
	Referer string // se envía como HTTP-Referer; OpenRouter lo usa para atribuir el tráfico
	Timeout time.Duration
}

// OpenRouterService adaptador de ChatService sobre la API REST de OpenRouter (formato OpenAI).
type OpenRouterService struct {
	cfg        OpenRouterConfig
	httpClient *http.Client
}

// NewOpenRouterService construye el adaptador. Si APIKey está vacío las llamadas
// devuelven un error descriptivo en lugar de llamar a la API.
func NewOpenRouterService(cfg OpenRouterConfig) *OpenRouterService {
	if cfg.URL == "" {
		cfg.URL = DefaultOpenRouterURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOpenRouterModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &OpenRouterService{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Code    any    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete envía el prompt de sistema y el mensaje del usuario; devuelve el contenido
// de la primera opción. Cualquier respuesta distinta de 200 es un error.
func (s *OpenRouterService) Complete(ctx context.Context, message string) (string, error) {
	if s.cfg.APIKey == "" {
		return "", fmt.Errorf("AI: OPENROUTER_API_KEY no configurado")
	}

	body, err := json.Marshal(chatRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: ports.SystemPrompt},
			{Role: "user", Content: message},
		},
	})
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	req.Header.Set("X-Title", openRouterTitle)
	if s.cfg.Referer != "" {
		req.Header.Set("HTTP-Referer", s.cfg.Referer)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp chatResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI: OpenRouter HTTP %d: %s", resp.StatusCode, errResp.Error.Message)
		}
		return "", fmt.Errorf("AI: OpenRouter HTTP %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.Unmarshal(rawBody, &out); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta OpenRouter: %w", err)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("AI: OpenRouter devolvió respuesta vacía")
	}
	return out.Choices[0].Message.Content, nil
}
