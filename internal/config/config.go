package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrUnknownBackend is returned when progress.backend names no known backend.
var ErrUnknownBackend = errors.New("unknown progress backend")

// Progress backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds application configuration loaded from files, environment
// variables and command-line flags.
type Config struct {
	Env      string   `mapstructure:"env"`      // local, dev, production
	Data     Data     `mapstructure:"data"`     // question set
	DB       DB       `mapstructure:"db"`       // SQLite store
	Progress Progress `mapstructure:"progress"` // progress persistence
	Redis    Redis    `mapstructure:"redis"`    // redis backend
	Server   Server   `mapstructure:"server"`   // HTTP API
	Log      Log      `mapstructure:"log"`      // zap output
}

// Data locates the question set.
type Data struct {
	Path string `mapstructure:"path"` // .json or .js data file
}

// DB configures the SQLite store.
type DB struct {
	Path string `mapstructure:"path"` // empty means the XDG default
}

// Progress selects where the answered-choice mapping lives.
type Progress struct {
	Backend   string `mapstructure:"backend"`   // sqlite, redis or memory
	Namespace string `mapstructure:"namespace"` // storage key of the mapping
}

// Redis configures the redis progress backend.
type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Server configures `saaquiz serve`.
type Server struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Log configures the zap logger.
type Log struct {
	File  string `mapstructure:"file"`  // empty means stderr
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// IsProduction reports whether production logging should be used.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.Progress.Backend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Progress.Backend)
	}
	if c.Progress.Backend == BackendRedis && c.Redis.Addr == "" {
		return errors.New("progress backend redis requires redis.addr")
	}
	return nil
}

// Options controls where Load looks.
type Options struct {
	// File is an explicit config file. When set it must exist.
	File string

	// EnvFile is a dotenv file loaded before reading the environment.
	// Missing files are ignored. Defaults to ".env".
	EnvFile string

	// Flags are bound to matching keys so that flags win over
	// environment variables and files.
	Flags map[string]*pflag.Flag
}

// Load reads configuration from config files, environment variables and flags.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// Existing environment variables take precedence over the dotenv file.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading %s: %w", envFile, err)
	}

	v := viper.New()
	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	setDefaults(v)

	v.SetEnvPrefix("SAAQUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, flag := range opts.Flags {
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// AutomaticEnv yields a single comma-separated string for slices.
	if len(cfg.Server.AllowedOrigins) == 1 && strings.Contains(cfg.Server.AllowedOrigins[0], ",") {
		cfg.Server.AllowedOrigins = splitList(cfg.Server.AllowedOrigins[0])
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("data.path", "qa.json")
	v.SetDefault("db.path", "")
	v.SetDefault("progress.backend", BackendSQLite)
	v.SetDefault("progress.namespace", "saa_solved")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// configDir returns $XDG_CONFIG_HOME/saaquiz or ~/.config/saaquiz.
func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "saaquiz"), nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
