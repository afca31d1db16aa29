package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyAddr      = errors.New("server address is not specified")
	ErrBadQueueSize   = errors.New("archive queue size must be positive")
	ErrBadSweepPeriod = errors.New("registry sweep period must be positive")
	ErrBadSquareSize  = errors.New("render square size must be positive")
)

type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"CHECKERS_ADDR"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"CHECKERS_SHUTDOWN_TIMEOUT"`
}

// LobbyConfig keeps presence in memory unless a Redis URL is given.
type LobbyConfig struct {
	RedisURL string `yaml:"redis_url" env:"CHECKERS_REDIS_URL"`
}

type ArchiveConfig struct {
	DSN       string `yaml:"dsn" env:"CHECKERS_ARCHIVE_DSN"`
	QueueSize int    `yaml:"queue_size" env:"CHECKERS_ARCHIVE_QUEUE_SIZE"`
}

type RegistryConfig struct {
	SweepPeriod time.Duration `yaml:"sweep_period" env:"CHECKERS_SWEEP_PERIOD"`
	EndedTTL    time.Duration `yaml:"ended_ttl" env:"CHECKERS_ENDED_TTL"`
	Layout      string        `yaml:"layout" env:"CHECKERS_LAYOUT"`
}

type RenderConfig struct {
	Square int `yaml:"square" env:"CHECKERS_RENDER_SQUARE"`
}

type LogConfig struct {
	Development bool `yaml:"development" env:"CHECKERS_LOG_DEVELOPMENT"`
}

type config struct {
	Server   ServerConfig   `yaml:"server"`
	Lobby    LobbyConfig    `yaml:"lobby"`
	Archive  ArchiveConfig  `yaml:"archive"`
	Registry RegistryConfig `yaml:"registry"`
	Render   RenderConfig   `yaml:"render"`
	Log      LogConfig      `yaml:"log"`
}

func defaults() config {
	return config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Archive: ArchiveConfig{
			DSN:       ":memory:",
			QueueSize: 64,
		},
		Registry: RegistryConfig{
			SweepPeriod: time.Minute,
			EndedTTL:    10 * time.Minute,
		},
		Render: RenderConfig{Square: 48},
	}
}

// New reads the yaml file at cfgPath on top of the defaults and then applies
// environment overrides.
func New(cfgPath string) (config, error) {
	file, err := os.Open(cfgPath)
	if err != nil {
		return config{}, err
	}
	defer func() {
		_ = file.Close()
	}()
	cfg := defaults()
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return config{}, errors.WithMessage(err, "decode config")
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return config{}, errors.WithMessage(err, "read env")
	}
	if err := cfg.validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func (c config) validate() error {
	switch {
	case c.Server.Addr == "":
		return ErrEmptyAddr
	case c.Archive.QueueSize <= 0:
		return ErrBadQueueSize
	case c.Registry.SweepPeriod <= 0:
		return ErrBadSweepPeriod
	case c.Render.Square <= 0:
		return ErrBadSquareSize
	}
	return nil
}
