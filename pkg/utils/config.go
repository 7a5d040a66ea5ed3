package utils

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Email    EmailConfig
	OTP      OTPConfig
	Worker   WorkerConfig
}

// Run modes
const (
	ModeAPI    = "api"
	ModeWorker = "worker"
	ModeAll    = "all"
)

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
	Mode    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	CacheDB  int // user list cache + OTP codes
	BrokerDB int // pub/sub bus + task queue
}

type JWTConfig struct {
	Secret        string
	AccessMinutes int
	RefreshHours  int
}

func (c JWTConfig) AccessTTL() time.Duration {
	return time.Duration(c.AccessMinutes) * time.Minute
}

func (c JWTConfig) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshHours) * time.Hour
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type OTPConfig struct {
	TTLSeconds int
	Length     int
	Issuer     string
}

func (c OTPConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

type WorkerConfig struct {
	Queue            string
	Concurrency      int
	ResultTTLMinutes int
}

func (c WorkerConfig) ResultTTL() time.Duration {
	return time.Duration(c.ResultTTLMinutes) * time.Minute
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "ecommerce-demo")
	viper.SetDefault("PORT", "8000")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("APP_MODE", ModeAll)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("REDIS_ADDR", "127.0.0.1:6379")
	viper.SetDefault("REDIS_CACHE_DB", 1)
	viper.SetDefault("REDIS_BROKER_DB", 2)
	viper.SetDefault("JWT_ACCESS_MINUTES", 60)
	viper.SetDefault("JWT_REFRESH_HOURS", 24)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("OTP_TTL_SECONDS", 60)
	viper.SetDefault("OTP_LENGTH", 6)
	viper.SetDefault("OTP_ISSUER", "ecommerce-demo")
	viper.SetDefault("WORKER_QUEUE", "default")
	viper.SetDefault("WORKER_CONCURRENCY", 4)
	viper.SetDefault("WORKER_RESULT_TTL_MINUTES", 1440)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
			Mode:    viper.GetString("APP_MODE"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASS"),
			CacheDB:  viper.GetInt("REDIS_CACHE_DB"),
			BrokerDB: viper.GetInt("REDIS_BROKER_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessMinutes: viper.GetInt("JWT_ACCESS_MINUTES"),
			RefreshHours:  viper.GetInt("JWT_REFRESH_HOURS"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		OTP: OTPConfig{
			TTLSeconds: viper.GetInt("OTP_TTL_SECONDS"),
			Length:     viper.GetInt("OTP_LENGTH"),
			Issuer:     viper.GetString("OTP_ISSUER"),
		},
		Worker: WorkerConfig{
			Queue:            viper.GetString("WORKER_QUEUE"),
			Concurrency:      viper.GetInt("WORKER_CONCURRENCY"),
			ResultTTLMinutes: viper.GetInt("WORKER_RESULT_TTL_MINUTES"),
		},
	}

	return config, nil
}
