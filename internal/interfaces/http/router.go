package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/adoptease-api/internal/application/auth"
	"github.com/jhoicas/adoptease-api/internal/application/usecase"
	"github.com/jhoicas/adoptease-api/internal/domain/entity"
	"github.com/jhoicas/adoptease-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC *auth.AuthUseCase
	UserUC *usecase.UserUseCase
	DogUC  *usecase.DogUseCase
	ChatUC *usecase.ChatUseCase
	Store  repository.Store
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", HealthHandler(deps.Store))

	authn := AuthMiddleware(deps.AuthUC)
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/login", authHandler.Login)
	api.Post("/register", authHandler.Register)
	api.Get("/verify-token", authHandler.VerifyToken)

	userHandler := NewUserHandler(deps.UserUC)
	dogHandler := NewDogHandler(deps.DogUC)

	// Admin
	admin := api.Group("/admin", authn, RequireRole(entity.RoleAdmin))
	admin.Get("/users", userHandler.List)
	admin.Delete("/users/:id", userHandler.Delete)
	admin.Get("/dogs", dogHandler.ListAdmin)
	admin.Post("/dogs", dogHandler.Create)
	admin.Put("/dogs/:id", dogHandler.AdminUpdate)
	admin.Delete("/dogs/:id", dogHandler.Delete)

	// Expert: el admin también puede consultar, solo el experto edita
	expert := api.Group("/expert", authn)
	expert.Get("/dogs", RequireRole(entity.RoleExpert, entity.RoleAdmin), dogHandler.ListExpert)
	expert.Put("/dogs/:id", RequireRole(entity.RoleExpert), dogHandler.ExpertUpdate)

	// Customer: cualquier usuario autenticado
	api.Get("/customer/dogs", authn, dogHandler.ListCustomer)

	chatHandler := NewChatHandler(deps.ChatUC)
	app.Post("/chat", authn, chatHandler.Chat)
}
