package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Booking BookingConfig `mapstructure:"booking"`
	Session SessionConfig `mapstructure:"session"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Server  ServerConfig  `mapstructure:"server"`
	JWT     JWTConfig     `mapstructure:"jwt"`
	Jobs    JobsConfig    `mapstructure:"jobs"`
	Log     LogConfig     `mapstructure:"log"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	// Remote loads the shop list from the API instead of the built-in catalog.
	Remote bool `mapstructure:"remote"`
}

type BookingConfig struct {
	MaxReservations int           `mapstructure:"max_reservations"`
	FetchDelay      time.Duration `mapstructure:"fetch_delay"`
	SeedSamples     bool          `mapstructure:"seed_samples"`
}

type SessionConfig struct {
	Driver  string        `mapstructure:"driver"` // file, redis or memory
	Path    string        `mapstructure:"path"`
	Profile string        `mapstructure:"profile"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	AllowOrigins []string      `mapstructure:"allow_origins"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type JobsConfig struct {
	ConfirmSchedule string        `mapstructure:"confirm_schedule"`
	ConfirmAfter    time.Duration `mapstructure:"confirm_after"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:5000/api/v1/")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.remote", false)

	v.SetDefault("booking.max_reservations", 3)
	v.SetDefault("booking.fetch_delay", 800*time.Millisecond)
	v.SetDefault("booking.seed_samples", false)

	v.SetDefault("session.driver", "file")
	v.SetDefault("session.path", "")
	v.SetDefault("session.profile", "default")
	v.SetDefault("session.ttl", time.Duration(0))

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("server.port", "5000")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.allow_origins", []string{"*"})

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", time.Hour)

	v.SetDefault("jobs.confirm_schedule", "@every 1m")
	v.SetDefault("jobs.confirm_after", 2*time.Minute)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads .env, then config/config.yaml if present, then the environment.
// API_BASE_URL overrides api.base_url and so on.
func Load(paths ...string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, using environment")
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"./config", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		logrus.Debug("config file not found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// ValidateServer checks the keys cmd/mockapi cannot run without.
func (c *Config) ValidateServer() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret (JWT_SECRET) not set")
	}
	if c.Server.Port == "" {
		return errors.New("server.port (SERVER_PORT) not set")
	}
	if c.Jobs.ConfirmAfter < 0 {
		return errors.New("jobs.confirm_after must not be negative")
	}
	return nil
}

// ValidateClient checks the keys cmd/booker cannot run without.
func (c *Config) ValidateClient() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url (API_BASE_URL) not set")
	}
	if c.Booking.MaxReservations <= 0 {
		return fmt.Errorf("booking.max_reservations must be positive, got %d", c.Booking.MaxReservations)
	}
	switch c.Session.Driver {
	case "file", "redis", "memory":
	default:
		return fmt.Errorf("session.driver %q is not one of file, redis, memory", c.Session.Driver)
	}
	return nil
}
