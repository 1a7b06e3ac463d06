package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Backend   BackendConfig
	Redis     RedisConfig
	Email     EmailConfig
	History   HistoryConfig
	Admin     AdminConfig
	Directory DirectoryConfig
	Session   SessionConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled reports whether a redis cache has been configured at all.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type EmailConfig struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
}

type HistoryConfig struct {
	DBPath string
}

type AdminConfig struct {
	APIKey string
}

type DirectoryConfig struct {
	CacheTTL time.Duration
}

type SessionConfig struct {
	ResetDelay time.Duration
	TTL        time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// A missing .env file is fine; environment variables alone are enough.
	_ = viper.ReadInConfig()

	backendTimeout, err := time.ParseDuration(viper.GetString("BACKEND_TIMEOUT"))
	if err != nil {
		backendTimeout = 15 * time.Second
	}

	cacheTTL, err := time.ParseDuration(viper.GetString("DIRECTORY_CACHE_TTL"))
	if err != nil {
		cacheTTL = 30 * time.Second
	}

	resetDelay, err := time.ParseDuration(viper.GetString("SESSION_RESET_DELAY"))
	if err != nil {
		resetDelay = 300 * time.Millisecond
	}

	sessionTTL, err := time.ParseDuration(viper.GetString("SESSION_TTL"))
	if err != nil {
		sessionTTL = 30 * time.Minute
	}

	baseURL := viper.GetString("BACKEND_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5001"
	}

	port := viper.GetString("APP_PORT")
	if port == "" {
		port = "8080"
	}

	historyPath := viper.GetString("HISTORY_DB_PATH")
	if historyPath == "" {
		historyPath = "medlyst_bookings.db"
	}

	config := &Config{
		App: AppConfig{
			Port: port,
			Env:  viper.GetString("APP_ENV"),
		},
		Backend: BackendConfig{
			BaseURL: baseURL,
			Timeout: backendTimeout,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Email: EmailConfig{
			ServiceID:  viper.GetString("EMAILJS_SERVICE_ID"),
			TemplateID: viper.GetString("EMAILJS_TEMPLATE_ID"),
			PublicKey:  viper.GetString("EMAILJS_PUBLIC_KEY"),
		},
		History: HistoryConfig{
			DBPath: historyPath,
		},
		Admin: AdminConfig{
			APIKey: viper.GetString("ADMIN_API_KEY"),
		},
		Directory: DirectoryConfig{
			CacheTTL: cacheTTL,
		},
		Session: SessionConfig{
			ResetDelay: resetDelay,
			TTL:        sessionTTL,
		},
	}

	return config, nil
}
