package ports

import "context"

// SystemPrompt instrucción fija que acompaña cada mensaje enviado al proveedor de chat.
const SystemPrompt = "You are a helpful AI assistant on a pet adoption website (AdoptEase). " +
	"You help users with questions about dogs, adoption process, and pet care. " +
	"Be friendly, informative, and concise."

// ChatService puerto de salida hacia el proveedor de completado (OpenRouter, Gemini, mock).
// El contexto debe llevar un timeout para no bloquear el handler.
type ChatService interface {
	// Complete envía el mensaje del usuario con SystemPrompt y devuelve el texto de respuesta.
	Complete(ctx context.Context, message string) (string, error)
}
