package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"

	ProgressBackendNone  = "none"
	ProgressBackendYAML  = "yaml"
	ProgressBackendMySQL = "mysql"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Lessons  LessonsConfig  `mapstructure:"lessons"`
	Sessions SessionsConfig `mapstructure:"sessions"`
	Progress ProgressConfig `mapstructure:"progress"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port              int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS              CORSConfig `mapstructure:"cors"`
	SessionTTLMinutes int        `mapstructure:"session_ttl_minutes" validate:"min=1"`
	TemplateFile      string     `mapstructure:"template_file" validate:"omitempty,file"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LessonsConfig struct {
	DictionaryFile string `mapstructure:"dictionary_file" validate:"required"`
	Directory      string `mapstructure:"directory" validate:"required"`
	ExportTemplate string `mapstructure:"export_template" validate:"omitempty,file"`
	ExportDir      string `mapstructure:"export_directory" validate:"required"`
}

type SessionsConfig struct {
	Backend string      `mapstructure:"backend" validate:"oneof=memory redis"`
	Redis   RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db" validate:"min=0"`
	PoolSize  int    `mapstructure:"pool_size" validate:"min=0"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type ProgressConfig struct {
	Backend   string `mapstructure:"backend" validate:"oneof=none yaml mysql"`
	Directory string `mapstructure:"directory"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/palabra")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 5000)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:5000"})
	v.SetDefault("server.session_ttl_minutes", 24*60)
	// Template is optional - if not specified, the embedded page is used
	v.SetDefault("server.template_file", "")
	v.SetDefault("lessons.dictionary_file", "dict_es_en.xml")
	v.SetDefault("lessons.directory", "lessons")
	v.SetDefault("lessons.export_template", "")
	v.SetDefault("lessons.export_directory", filepath.Join("outputs", "lessons"))
	v.SetDefault("sessions.backend", SessionBackendMemory)
	v.SetDefault("sessions.redis.addr", "localhost:6379")
	v.SetDefault("sessions.redis.key_prefix", "palabra:session:")
	v.SetDefault("progress.backend", ProgressBackendYAML)
	v.SetDefault("progress.directory", "progress")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "palabra")
	v.SetDefault("database.username", "user")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Secrets are bound to environment variables only
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("sessions.redis.password", "REDIS_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind REDIS_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}
	if cfg.Progress.Backend == ProgressBackendYAML && cfg.Progress.Directory == "" {
		return nil, fmt.Errorf("invalid configuration: progress.directory is required for the yaml backend")
	}
	if cfg.Sessions.Backend == SessionBackendRedis && cfg.Sessions.Redis.Addr == "" {
		return nil, fmt.Errorf("invalid configuration: sessions.redis.addr is required for the redis backend")
	}

	return &cfg, nil
}
