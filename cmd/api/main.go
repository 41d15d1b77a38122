package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/swaggo/swag"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/adoptease-api/docs"
	"github.com/jhoicas/adoptease-api/internal/application/auth"
	"github.com/jhoicas/adoptease-api/internal/application/ports"
	dbsync "github.com/jhoicas/adoptease-api/internal/application/sync"
	"github.com/jhoicas/adoptease-api/internal/application/usecase"
	infraai "github.com/jhoicas/adoptease-api/internal/infrastructure/ai"
	"github.com/jhoicas/adoptease-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/adoptease-api/internal/interfaces/http"
	"github.com/jhoicas/adoptease-api/pkg/config"
	"github.com/jhoicas/adoptease-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	primary, secondary, err := openStores(ctx, cfg.DB, log, storage.Open)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenes")
	}
	defer primary.Close()
	if secondary != nil {
		defer secondary.Close()
	}

	authUC := auth.NewAuthUseCase(primary.Users(), auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
	})
	created, err := authUC.EnsureAdmin(ctx, auth.AdminAccount{
		Email:    cfg.Admin.Email,
		Name:     cfg.Admin.Name,
		Password: cfg.Admin.Password,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear cuenta admin")
	}
	if created {
		log.Info().Str("email", cfg.Admin.Email).Msg("cuenta admin creada")
	}

	engine, err := dbsync.NewEngine(primary, secondary, dbsync.Options{
		Policy:         cfg.Sync.Policy,
		ResetSecondary: cfg.Sync.ResetSecondary,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("motor de sincronización")
	}
	if secondary != nil && cfg.Sync.OnStartup {
		// un fallo de sincronización no impide arrancar la API
		if _, err := engine.Sync(ctx); err != nil {
			log.Error().Err(err).Msg("sincronización inicial")
		}
	}

	limits, err := usecase.DogLimitsFromConfig(cfg.DogLimits)
	if err != nil {
		log.Fatal().Err(err).Msg("límites de perros")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 40,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	// el front-end puede servirse desde otro origen durante el desarrollo
	app.Use(cors.New())
	app.Use(httpRouter.RequestLogger(log.Child("http")))

	mountDocs(app, log)

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC: authUC,
		UserUC: usecase.NewUserUseCase(primary.Users()),
		DogUC:  usecase.NewDogUseCase(primary.Dogs(), limits),
		ChatUC: usecase.NewChatUseCase(newChatService(ctx, cfg, log), cfg.Chat.Timeout),
		Store:  primary,
	})

	if cfg.App.StaticDir != "" {
		app.Static("/", cfg.App.StaticDir, fiber.Static{Index: "index.html"})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Listen(cfg.HTTP.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})
	if secondary != nil && cfg.Sync.Interval > 0 {
		watcher := dbsync.NewWatcher(engine, cfg.Sync.Interval, cfg.Sync.RetryBackoff, log)
		if cfg.Sync.OnStartup {
			watcher.DelayFirst()
		}
		g.Go(func() error {
			return watcher.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("servidor finalizado con error")
	}
	log.Info().Msg("aplicación detenida")
}

// mountDocs sirve Swagger UI en /docs. Sin docs/swagger.json en disco se expone
// al menos la especificación embebida en /docs/doc.json.
func mountDocs(app *fiber.App, log *logger.Logger) {
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    docs.SwaggerInfo.Title,
		}))
		return
	}
	log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado; solo se sirve /docs/doc.json")
	app.Get("/docs/doc.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return fiber.ErrNotFound
		}
		c.Type("json")
		return c.SendString(doc)
	})
}

func newChatService(ctx context.Context, cfg *config.Config, log *logger.Logger) ports.ChatService {
	switch cfg.Chat.Provider {
	case "gemini":
		svc, err := infraai.NewGeminiService(ctx, cfg.Chat.GeminiAPIKey, cfg.Chat.GeminiModel)
		if err != nil {
			log.Error().Err(err).Msg("cliente Gemini; /chat responderá 500")
			return nil
		}
		return svc
	default:
		return infraai.NewOpenRouterService(infraai.OpenRouterConfig{
			APIKey:  cfg.Chat.OpenRouterAPIKey,
			Model:   cfg.Chat.OpenRouterModel,
			URL:     cfg.Chat.OpenRouterURL,
			Referer: "http://" + cfg.HTTP.Addr() + "/",
			Timeout: cfg.Chat.Timeout,
		})
	}
}
