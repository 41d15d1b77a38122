package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Admin     AdminConfig
	Chat      ChatConfig
	Sync      SyncConfig
	DogLimits DogLimitsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env       string // development, staging, production
	Name      string
	LogLevel  string
	StaticDir string // carpeta del front-end; vacío = no se sirven estáticos
}

// DBConfig URLs de los dos almacenes.
// PrimaryURL recibe todo el tráfico de la API; SecondaryURL solo lo toca el motor de sincronización.
type DBConfig struct {
	PrimaryURL   string // postgres://, mysql://, sqlite://ruta.db o ruta.db
	SecondaryURL string // opcional: vacío desactiva la sincronización
}

// HasSecondary indica si hay almacén secundario configurado.
func (c DBConfig) HasSecondary() bool {
	return strings.TrimSpace(c.SecondaryURL) != ""
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret string
	Issuer string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AdminConfig datos de la cuenta admin garantizada al arrancar.
type AdminConfig struct {
	Email    string
	Name     string
	Password string
}

// ChatConfig proveedor del asistente de chat.
type ChatConfig struct {
	Provider         string // openrouter | gemini
	OpenRouterAPIKey string
	OpenRouterModel  string
	OpenRouterURL    string
	GeminiAPIKey     string
	GeminiModel      string
	Timeout          time.Duration
}

// SyncConfig parámetros del motor de sincronización.
type SyncConfig struct {
	Policy         string // mirror | merge
	OnStartup      bool
	Interval       time.Duration // 0 = solo una pasada al arrancar
	RetryBackoff   time.Duration
	ResetSecondary bool
}

// DogLimitsConfig rangos permitidos para edad, altura y peso.
// Profile elige un preset ("extended" o "standard"); los campos no nulos lo sobrescriben.
type DogLimitsConfig struct {
	Profile   string
	AgeMin    *int
	AgeMax    *int
	HeightMin *float64
	HeightMax *float64
	WeightMin *float64
	WeightMax *float64
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DATABASE_URL, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración a partir de una instancia de Viper ya cargada.
func FromViper(v *viper.Viper) (*Config, error) {
	port := getInt(v, "HTTP_PORT", 0)
	if port == 0 {
		// PORT lo inyectan la mayoría de PaaS
		port = getInt(v, "PORT", 5000)
	}

	cfg := &Config{
		App: AppConfig{
			Env:       getString(v, "APP_ENV", "development"),
			Name:      getString(v, "APP_NAME", "adoptease"),
			LogLevel:  getString(v, "LOG_LEVEL", "info"),
			StaticDir: getString(v, "STATIC_DIR", ""),
		},
		DB: DBConfig{
			PrimaryURL:   getString(v, "DATABASE_URL", "sqlite://adoptease.db"),
			SecondaryURL: getString(v, "SECONDARY_DATABASE_URL", ""),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", getString(v, "SECRET_KEY", "")),
			Issuer: getString(v, "JWT_ISSUER", "adoptease"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: port,
		},
		Admin: AdminConfig{
			Email:    getString(v, "ADMIN_EMAIL", "admin@adoptease.local"),
			Name:     getString(v, "ADMIN_NAME", "Administrador"),
			Password: getString(v, "ADMIN_PASSWORD", ""),
		},
		Chat: ChatConfig{
			Provider:         strings.ToLower(getString(v, "CHAT_PROVIDER", "openrouter")),
			OpenRouterAPIKey: getString(v, "OPENROUTER_API_KEY", ""),
			OpenRouterModel:  getString(v, "OPENROUTER_MODEL", "openai/gpt-3.5-turbo"),
			OpenRouterURL:    getString(v, "OPENROUTER_URL", "https://openrouter.ai/api/v1/chat/completions"),
			GeminiAPIKey:     getString(v, "GEMINI_API_KEY", ""),
			GeminiModel:      getString(v, "GEMINI_MODEL", "gemini-2.0-flash"),
			Timeout:          getDuration(v, "CHAT_TIMEOUT", 30*time.Second),
		},
		Sync: SyncConfig{
			Policy:         strings.ToLower(getString(v, "SYNC_POLICY", "mirror")),
			OnStartup:      getBool(v, "SYNC_ON_STARTUP", true),
			Interval:       getDuration(v, "SYNC_INTERVAL", 0),
			RetryBackoff:   getDuration(v, "SYNC_RETRY_BACKOFF", time.Minute),
			ResetSecondary: getBool(v, "SYNC_RESET_SECONDARY", false),
		},
		DogLimits: DogLimitsConfig{
			Profile:   strings.ToLower(getString(v, "DOG_LIMITS_PROFILE", "extended")),
			AgeMin:    getOptionalInt(v, "DOG_AGE_MIN"),
			AgeMax:    getOptionalInt(v, "DOG_AGE_MAX"),
			HeightMin: getOptionalFloat(v, "DOG_HEIGHT_MIN"),
			HeightMax: getOptionalFloat(v, "DOG_HEIGHT_MAX"),
			WeightMin: getOptionalFloat(v, "DOG_WEIGHT_MIN"),
			WeightMax: getOptionalFloat(v, "DOG_WEIGHT_MAX"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		if c.App.Env != "development" {
			return fmt.Errorf("config: JWT_SECRET es obligatorio fuera de development")
		}
		c.JWT.Secret = "default_secret_key_for_development_only"
	}
	if c.Admin.Password == "" {
		if c.App.Env != "development" {
			return fmt.Errorf("config: ADMIN_PASSWORD es obligatorio fuera de development")
		}
		c.Admin.Password = "admin123"
	}
	switch c.Sync.Policy {
	case "mirror", "merge":
	default:
		return fmt.Errorf("config: SYNC_POLICY desconocida %q (mirror|merge)", c.Sync.Policy)
	}
	switch c.Chat.Provider {
	case "openrouter", "gemini":
	default:
		return fmt.Errorf("config: CHAT_PROVIDER desconocido %q (openrouter|gemini)", c.Chat.Provider)
	}
	switch c.DogLimits.Profile {
	case "extended", "standard":
	default:
		return fmt.Errorf("config: DOG_LIMITS_PROFILE desconocido %q (extended|standard)", c.DogLimits.Profile)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}

// getDuration acepta "30s", "5m" o un número entero de segundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}

func getOptionalInt(v *viper.Viper, key string) *int {
	if !v.IsSet(key) {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return nil
	}
	return &n
}

func getOptionalFloat(v *viper.Viper, key string) *float64 {
	if !v.IsSet(key) {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
	if err != nil {
		return nil
	}
	return &f
}
