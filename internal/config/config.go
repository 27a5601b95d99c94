package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Database struct {
		Driver string
		Path   string
		DSN    string
	}
	Auth struct {
		Algorithm          string
		AccessSecret       string
		RefreshSecret      string
		AccessTTLMinutes   int
		RefreshTTLMinutes  int
		CookieSecure       bool
		LoginRatePerSecond float64
		LoginBurst         int
	}
	CORS struct {
		AllowedOrigins []string
	}
	Log struct {
		Level  string
		Format string
	}
	Bootstrap struct {
		AdminUsername string
		AdminPassword string
		AdminEmail    string
	}
}

// Load reads configuration from environment variables and an optional config
// file. An empty path looks for config.{yaml,json,toml} in the working
// directory. Variables from .env fill in whatever the environment lacks.
func Load(path string) (Config, error) {
	_ = godotenv.Load() // optional file

	v := viper.New()
	v.SetEnvPrefix("ITEMHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8000")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "data/itemhub.db")
	v.SetDefault("database.dsn", "")
	v.SetDefault("auth.algorithm", "HS256")
	v.SetDefault("auth.accesssecret", "")
	v.SetDefault("auth.refreshsecret", "")
	v.SetDefault("auth.accessttlminutes", 30)
	v.SetDefault("auth.refreshttlminutes", 10080)
	v.SetDefault("auth.cookiesecure", false)
	v.SetDefault("auth.loginratepersecond", 1.0)
	v.SetDefault("auth.loginburst", 5)
	v.SetDefault("cors.allowedorigins", []string{"http://127.0.0.1:8000", "http://localhost:8000"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("bootstrap.adminusername", "")
	v.SetDefault("bootstrap.adminpassword", "")
	v.SetDefault("bootstrap.adminemail", "")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		_ = v.ReadInConfig() // optional file
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate reports the first setting that would keep the server from
// starting.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite":
		if strings.TrimSpace(c.Database.Path) == "" {
			return errors.New("database path is required for sqlite")
		}
	case "postgres":
		if strings.TrimSpace(c.Database.DSN) == "" {
			return errors.New("database dsn is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if strings.TrimSpace(c.Auth.AccessSecret) == "" || strings.TrimSpace(c.Auth.RefreshSecret) == "" {
		return errors.New("auth access and refresh secrets are required")
	}
	if c.Auth.AccessSecret == c.Auth.RefreshSecret {
		return errors.New("auth access and refresh secrets must differ")
	}
	if c.Auth.AccessTTLMinutes <= 0 || c.Auth.RefreshTTLMinutes <= 0 {
		return errors.New("auth token ttls must be positive")
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q", c.Log.Format)
	}
	return nil
}

func (c Config) AccessTTL() time.Duration {
	return time.Duration(c.Auth.AccessTTLMinutes) * time.Minute
}

func (c Config) RefreshTTL() time.Duration {
	return time.Duration(c.Auth.RefreshTTLMinutes) * time.Minute
}
