package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/spf13/viper"
)

const envVarsPrefix = "/bizdirectory/prod/"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	AWS       AWSConfig       `mapstructure:"aws"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Jobs      JobsConfig      `mapstructure:"jobs"`
	Log       LogConfig       `mapstructure:"log"`
	MachineID int64           `mapstructure:"machine_id"`
}

type ServerConfig struct {
	Port      string `mapstructure:"port"`
	BodyLimit string `mapstructure:"body_limit"`
}

type DatabaseConfig struct {
	Driver     string `mapstructure:"driver"`
	DSN        string `mapstructure:"dsn"`
	SQLitePath string `mapstructure:"sqlite_path"`
	LogQueries bool   `mapstructure:"log_queries"`
}

// RedisConfig is optional. An empty address disables the shared limiter
// and the server falls back to an in-process one.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AWSConfig struct {
	Region          string `mapstructure:"region"`
	S3Bucket        string `mapstructure:"s3_bucket"`
	SESSender       string `mapstructure:"ses_sender"`
	GatewayEndpoint string `mapstructure:"gateway_endpoint"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type RateLimitConfig struct {
	Limit  int           `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

type JobsConfig struct {
	ReconcileInterval time.Duration `mapstructure:"reconcile_interval"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load exports the environment for the current stage and parses it.
// Production reads AWS SSM Parameter Store, everything else reads .env.
func Load(ctx context.Context) (*Config, error) {
	if os.Getenv("GO_ENV") == "production" {
		if err := LoadProdEnv(ctx, envVarsPrefix, os.Getenv("AWS_REGION")); err != nil {
			return nil, err
		}
	} else if err := godotenv.Load(); err != nil {
		log.Warnf("no .env file loaded: %v", err)
	}
	return Parse()
}

// Parse builds the config from defaults, an optional config.yaml and the
// environment, in increasing priority. Env keys are the upper-cased paths
// with dots replaced by underscores, e.g. DATABASE_DRIVER.
func Parse() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "7070")
	v.SetDefault("server.body_limit", "15M")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.sqlite_path", "database.db")
	v.SetDefault("database.log_queries", false)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("aws.region", "us-east-2")
	v.SetDefault("aws.s3_bucket", "")
	v.SetDefault("aws.ses_sender", "")
	v.SetDefault("aws.gateway_endpoint", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("ratelimit.limit", 10)
	v.SetDefault("ratelimit.window", time.Minute)
	v.SetDefault("jobs.reconcile_interval", time.Hour)
	v.SetDefault("log.level", "info")
	v.SetDefault("machine_id", 1)
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}

	switch c.Database.Driver {
	case "sqlite":
	case "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}

	if c.RateLimit.Limit <= 0 || c.RateLimit.Window <= 0 {
		return fmt.Errorf("ratelimit.limit and ratelimit.window must be positive")
	}

	// Snowflake nodes are 10 bits wide
	if c.MachineID < 0 || c.MachineID > 1023 {
		return fmt.Errorf("machine_id must be within [0, 1023], got %d", c.MachineID)
	}
	return nil
}

// GommonLevel maps the configured level onto the gommon logger.
func (l LogConfig) GommonLevel() log.Lvl {
	switch strings.ToLower(l.Level) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
