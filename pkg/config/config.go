package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Modos de autenticación soportados por el servicio de usuarios.
const (
	AuthModeStore = "store" // credenciales contra la tabla usuarios
	AuthModeDev   = "dev"   // un único par correo/contraseña configurado
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente .env).
type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	Auth     AuthConfig
	Negocios NegociosConfig
	Redis    RedisConfig
	Events   EventsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración del par de tokens.
type JWTConfig struct {
	Secret         string
	Issuer         string
	AccessMinutes  int
	RefreshMinutes int
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

// AuthConfig selecciona el proveedor de identidad del login.
type AuthConfig struct {
	Mode        string // store | dev
	DevCorreo   string
	DevPassword string
	DevUserID   int64
}

// NegociosConfig parámetros del servicio de negocios.
type NegociosConfig struct {
	// OwnerFallbackID propietario asignado cuando ni el payload ni el token traen uno.
	OwnerFallbackID int64
}

// RedisConfig conexión a Redis (stream de eventos).
type RedisConfig struct {
	URL      string // vacío = eventos deshabilitados
	Password string
}

// EventsConfig nombres del stream y del grupo consumidor.
type EventsConfig struct {
	Stream   string
	Group    string
	Consumer string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde .env).
// Las env vars del proceso tienen prioridad sobre el archivo.
func Load() (*Config, error) {
	_ = godotenv.Load() // ignoramos error si no existe .env

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	var errInt error
	entero := func(key string) int {
		n, err := getInt(v, key)
		if err != nil && errInt == nil {
			errInt = err
		}
		return n
	}

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			Name:     v.GetString("APP_NAME"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			DatabaseURL: v.GetString("DATABASE_URL"),
			Host:        v.GetString("DB_HOST"),
			Port:        entero("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			Secret:         v.GetString("JWT_SECRET"),
			Issuer:         v.GetString("JWT_ISSUER"),
			AccessMinutes:  entero("JWT_ACCESS_MINUTES"),
			RefreshMinutes: entero("JWT_REFRESH_MINUTES"),
		},
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: entero("HTTP_PORT"),
		},
		Auth: AuthConfig{
			Mode:        strings.ToLower(v.GetString("AUTH_MODE")),
			DevCorreo:   v.GetString("AUTH_DEV_CORREO"),
			DevPassword: v.GetString("AUTH_DEV_PASSWORD"),
			DevUserID:   int64(entero("AUTH_DEV_USER_ID")),
		},
		Negocios: NegociosConfig{
			OwnerFallbackID: int64(entero("NEGOCIOS_OWNER_FALLBACK_ID")),
		},
		Redis: RedisConfig{
			URL:      v.GetString("REDIS_URL"),
			Password: v.GetString("REDIS_PASSWORD"),
		},
		Events: EventsConfig{
			Stream:   v.GetString("EVENTS_STREAM"),
			Group:    v.GetString("EVENTS_GROUP"),
			Consumer: v.GetString("EVENTS_CONSUMER"),
		},
	}

	if errInt != nil {
		return nil, errInt
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Auth.Mode {
	case AuthModeStore, AuthModeDev:
	default:
		return fmt.Errorf("AUTH_MODE inválido %q (store|dev)", c.Auth.Mode)
	}
	if c.JWT.AccessMinutes <= 0 || c.JWT.RefreshMinutes <= 0 {
		return fmt.Errorf("JWT_ACCESS_MINUTES y JWT_REFRESH_MINUTES deben ser positivos")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "acaclick")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "acaclick")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "acaclick")
	v.SetDefault("JWT_ACCESS_MINUTES", 60)
	v.SetDefault("JWT_REFRESH_MINUTES", 1440)

	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)

	v.SetDefault("AUTH_MODE", AuthModeStore)
	v.SetDefault("AUTH_DEV_CORREO", "admin@acaclick.com")
	v.SetDefault("AUTH_DEV_PASSWORD", "admin123")
	v.SetDefault("AUTH_DEV_USER_ID", 1)

	v.SetDefault("NEGOCIOS_OWNER_FALLBACK_ID", 1)

	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_PASSWORD", "")

	v.SetDefault("EVENTS_STREAM", "usuarios.creados")
	v.SetDefault("EVENTS_GROUP", "ms_notificaciones")
	v.SetDefault("EVENTS_CONSUMER", "notificaciones-1")
}

// getInt tolera valores string en env ("8080") además de enteros nativos.
// Un string vacío vale 0; uno no numérico es error.
func getInt(v *viper.Viper, key string) (int, error) {
	switch val := v.Get(key).(type) {
	case string:
		val = strings.TrimSpace(val)
		if val == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			return 0, fmt.Errorf("%s debe ser entero, recibido %q: %w", key, val, err)
		}
		return n, nil
	default:
		return v.GetInt(key), nil
	}
}
