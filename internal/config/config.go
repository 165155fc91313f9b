package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultJWTSecret is the placeholder the service falls back to when no
// secret is configured. Tolerated for local development, unsafe anywhere
// else; LoadConfig warns loudly when it ends up in use.
const DefaultJWTSecret = "your-secret-key"

type AuthConfig struct {
	JWTSecret        string `yaml:"jwt_secret"`
	TokenTTLHours    int    `yaml:"token_ttl_hours"`
	MaxLoginAttempts int    `yaml:"max_login_attempts"`
	LockoutMinutes   int    `yaml:"lockout_minutes"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
	DryRun   bool   `yaml:"dry_run"`
}

type FilesConfig struct {
	RootDir string `yaml:"root_dir"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN          string `yaml:"url"`
		MaxOpenConns int    `yaml:"max_open_conns"`
	} `yaml:"database"`
	Auth  AuthConfig `yaml:"auth"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	Telegram TelegramConfig `yaml:"telegram"`
	Files    FilesConfig    `yaml:"files"`
}

func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

func (a AuthConfig) LockoutDuration() time.Duration {
	return time.Duration(a.LockoutMinutes) * time.Minute
}

func LoadConfig() *Config {
	return LoadConfigFromFile("config/config.yaml")
}

func LoadConfigFromFile(path string) *Config {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	f, err := os.Open(path)
	if err != nil {
		panic("Failed to open " + path + ": " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse " + path + ": " + err.Error())
	}

	// env overrides for secrets, so they stay out of the yaml file
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}

	applyDefaults(&cfg)

	if cfg.Auth.JWTSecret == DefaultJWTSecret {
		log.Printf("[config] WARNING: using default JWT secret, set auth.jwt_secret or JWT_SECRET")
	}
	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 20
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = DefaultJWTSecret
	}
	if cfg.Auth.TokenTTLHours == 0 {
		cfg.Auth.TokenTTLHours = 24
	}
	if cfg.Auth.MaxLoginAttempts == 0 {
		cfg.Auth.MaxLoginAttempts = 5
	}
	if cfg.Auth.LockoutMinutes == 0 {
		cfg.Auth.LockoutMinutes = 30
	}
	if cfg.Files.RootDir == "" {
		cfg.Files.RootDir = "./files"
	}
}
