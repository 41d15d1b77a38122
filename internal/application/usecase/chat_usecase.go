package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/adoptease-api/internal/application/dto"
	"github.com/jhoicas/adoptease-api/internal/application/ports"
	"github.com/jhoicas/adoptease-api/internal/domain"
)

// ChatUseCase reenvía el mensaje del usuario al proveedor de chat configurado.
type ChatUseCase struct {
	chat    ports.ChatService
	timeout time.Duration
}

// NewChatUseCase construye el caso de uso; timeout <= 0 usa 30 s.
func NewChatUseCase(chat ports.ChatService, timeout time.Duration) *ChatUseCase {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ChatUseCase{chat: chat, timeout: timeout}
}

// Reply valida el mensaje y devuelve el texto del proveedor sin modificar.
func (uc *ChatUseCase) Reply(ctx context.Context, in dto.ChatRequest) (*dto.ChatResponse, error) {
	if strings.TrimSpace(in.Message) == "" {
		verr := &domain.ValidationError{}
		verr.Add("message", "message es obligatorio")
		return nil, verr
	}
	if uc.chat == nil {
		return nil, fmt.Errorf("chat: proveedor no configurado")
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	text, err := uc.chat.Complete(ctx, in.Message)
	if err != nil {
		return nil, fmt.Errorf("chat: %w", err)
	}
	return &dto.ChatResponse{Response: text}, nil
}
