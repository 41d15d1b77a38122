package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/jhoicas/adoptease-api/internal/application/ports"
)

// Verificar en tiempo de compilación que GeminiService implementa ChatService.
var _ ports.ChatService = (*GeminiService)(nil)

const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiService adaptador de ChatService sobre el SDK google.golang.org/genai.
type GeminiService struct {
	client *genai.Client
	model  string
}

// NewGeminiService crea el cliente del SDK. Con apiKey vacío no se crea cliente
// y Complete devuelve error.
func NewGeminiService(ctx context.Context, apiKey, model string) (*GeminiService, error) {
	if model == "" {
		model = DefaultGeminiModel
	}
	s := &GeminiService{model: model}
	if apiKey == "" {
		return s, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("AI: crear cliente Gemini: %w", err)
	}
	s.client = client
	return s, nil
}

// Complete envía el mensaje con el prompt de sistema como SystemInstruction.
func (s *GeminiService) Complete(ctx context.Context, message string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("AI: GEMINI_API_KEY no configurado")
	}
	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(message), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(ports.SystemPrompt, genai.RoleUser),
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: Gemini: %w", err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}
	return text, nil
}
