// config реализует конфигурацию listings-service: загрузка из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	Ops      OpsConfig     `yaml:"ops"`
	DB       DBConfig      `yaml:"db"`
	Identity IdentityConfig `yaml:"identity"`
	S3       S3Config      `yaml:"s3"`
	Auth     AuthConfig    `yaml:"auth"`
	Images   ImagesConfig  `yaml:"images"`
	Cleanup  CleanupConfig `yaml:"cleanup"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// HTTPConfig — сетевые настройки публичного API.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50080"`
}

// OpsConfig — служебный HTTP (health/metrics).
type OpsConfig struct {
	Host string `yaml:"host" env:"OPS_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"OPS_PORT" env-default:"50090"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// Addr возвращает адрес в формате host:port.
func (o OpsConfig) Addr() string {
	return net.JoinHostPort(o.Host, o.Port)
}

// DBConfig — настройки подключения к MongoDB (коллекции listings/image_cleanup).
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
}

// IdentityConfig — read-only подключение к БД identity-провайдера
// (счётчики пользователей для панели администратора).
type IdentityConfig struct {
	URL string `yaml:"url" env:"IDENTITY_DATABASE_URL" env-required:"true"`
}

// S3Config — настройки блоб-хранилища изображений (MinIO/S3).
type S3Config struct {
	Endpoint     string `yaml:"endpoint"        env:"S3_ENDPOINT" env-required:"true"`
	RootUser     string `yaml:"root_user"       env:"S3_ROOT_USER" env-required:"true"`
	RootPassword string `yaml:"root_password"   env:"S3_ROOT_PASSWORD" env-required:"true"`
	Bucket       string `yaml:"bucket"          env:"S3_BUCKET" env-default:"listing-images"`
	// PublicBaseURL — внешний базовый URL (CDN) для собранных ссылок на объекты.
	// Пустое значение — ссылки строятся от endpoint.
	PublicBaseURL string `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL"`
}

// AuthConfig — параметры проверки токенов identity-провайдера.
// Сервис только валидирует и читает claims; выпуск токенов — вне его зоны.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	Issuer    string `yaml:"issuer"     env:"JWT_ISSUER" env-default:"skr-identity"`
}

// ImagesConfig — ограничения на загружаемые изображения.
type ImagesConfig struct {
	MaxSizeBytes        int64    `yaml:"max_size_bytes"        env:"IMAGE_MAX_SIZE_BYTES" env-default:"5242880"`
	AllowedContentTypes []string `yaml:"allowed_content_types" env:"IMAGE_ALLOWED_CONTENT_TYPES" env-default:"image/jpeg,image/png,image/webp"`
}

// CleanupConfig — параметры джанитора осиротевших изображений.
type CleanupConfig struct {
	Interval  time.Duration `yaml:"interval"   env:"CLEANUP_INTERVAL" env-default:"5m"`
	BatchSize int64         `yaml:"batch_size" env:"CLEANUP_BATCH_SIZE" env-default:"50"`
}

// TimeoutConfig — сервисные таймауты (общий дедлайн обработки запроса).
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"15s"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// После чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	// чтение файла + overlay ENV.
	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}

		if err := c.validate(); err != nil {
			return nil, err
		}

		return c, nil
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}

		if err := c.validate(); err != nil {
			return nil, err
		}

		return c, nil
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		if err := cfg.validate(); err != nil {
			return nil, err
		}

		return &cfg, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}

	if c.Identity.URL == "" {
		return fmt.Errorf("identity.url is required")
	}

	if c.S3.Endpoint == "" {
		return fmt.Errorf("s3.endpoint is required")
	}

	if c.S3.Bucket == "" {
		return fmt.Errorf("s3.bucket is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}

	if c.Images.MaxSizeBytes <= 0 {
		return fmt.Errorf("images.max_size_bytes must be > 0")
	}

	if len(c.Images.AllowedContentTypes) == 0 {
		return fmt.Errorf("images.allowed_content_types must not be empty")
	}

	if c.Cleanup.Interval < time.Second {
		return fmt.Errorf("cleanup.interval must be at least 1s")
	}

	if c.Cleanup.BatchSize <= 0 {
		return fmt.Errorf("cleanup.batch_size must be > 0")
	}

	if c.Timeouts.Service <= 0 {
		return fmt.Errorf("timeouts.service must be > 0")
	}

	return nil
}
