package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	AppPort   string `yaml:"app_port"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // json|console

	DBDriver     string `yaml:"db_driver"`
	DBLogLevel   string `yaml:"db_log_level"`
	MySQLHost    string `yaml:"mysql_host"`
	MySQLPort    string `yaml:"mysql_port"`
	MySQLDB      string `yaml:"mysql_db"`
	MySQLUser    string `yaml:"mysql_user"`
	MySQLPass    string `yaml:"mysql_pass"`
	PostgresDSN  string `yaml:"postgres_dsn"`
	SQLitePath   string `yaml:"sqlite_path"`
	AutoMigrate  bool   `yaml:"auto_migrate"`
	RedisAddr    string `yaml:"redis_addr"`
	RedisDB      int    `yaml:"redis_db"`
	RedisPass    string `yaml:"redis_pass"`
	IdempTTLSecs int    `yaml:"idempotency_ttl_seconds"`

	JWTSecret      string `yaml:"jwt_secret"`
	JWTIssuer      string `yaml:"jwt_issuer"`
	SessionTTLMins int    `yaml:"session_ttl_minutes"`

	// Optional neo4j mirror of the lending network; disabled when empty.
	GraphURI      string `yaml:"graph_uri"`
	GraphDatabase string `yaml:"graph_database"`
	GraphUser     string `yaml:"graph_user"`
	GraphPass     string `yaml:"graph_pass"`

	// 0 disables the background default sweeper.
	DefaultSweepMins int `yaml:"default_sweep_minutes"`
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getenvBool(k string, d bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return d
}

func defaults() *Config {
	return &Config{
		AppPort:   "8080",
		LogLevel:  "info",
		LogFormat: "json",

		DBDriver:   DriverMySQL,
		DBLogLevel: "warn",
		MySQLHost:  "mysql",
		MySQLPort:  "3306",
		MySQLDB:    "prizzys",
		MySQLUser:  "prizzys",
		MySQLPass:  "prizzys",
		SQLitePath: "prizzys.db",

		RedisAddr:    "redis:6379",
		IdempTTLSecs: 300,

		JWTIssuer:      "prizzys-backend",
		SessionTTLMins: 24 * 60,
	}
}

// Load starts from defaults, overlays the YAML file named by CONFIG_FILE (if
// any), then applies environment variables, which always win.
func Load() (*Config, error) {
	c := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	c.applyEnv()
	return c, nil
}

func (c *Config) applyEnv() {
	c.AppPort = getenv("APP_PORT", c.AppPort)
	c.LogLevel = getenv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getenv("LOG_FORMAT", c.LogFormat)

	c.DBDriver = strings.ToLower(getenv("DB_DRIVER", c.DBDriver))
	c.DBLogLevel = getenv("DB_LOG_LEVEL", c.DBLogLevel)
	c.MySQLHost = getenv("MYSQL_HOST", c.MySQLHost)
	c.MySQLPort = getenv("MYSQL_PORT", c.MySQLPort)
	c.MySQLDB = getenv("MYSQL_DB", c.MySQLDB)
	c.MySQLUser = getenv("MYSQL_USER", c.MySQLUser)
	c.MySQLPass = getenv("MYSQL_PASS", c.MySQLPass)
	c.PostgresDSN = getenv("POSTGRES_DSN", c.PostgresDSN)
	c.SQLitePath = getenv("SQLITE_PATH", c.SQLitePath)
	c.AutoMigrate = getenvBool("AUTO_MIGRATE", c.AutoMigrate)

	c.RedisAddr = getenv("REDIS_ADDR", c.RedisAddr)
	c.RedisDB = getenvInt("REDIS_DB", c.RedisDB)
	c.RedisPass = getenv("REDIS_PASS", c.RedisPass)
	c.IdempTTLSecs = getenvInt("IDEMPOTENCY_TTL_SECONDS", c.IdempTTLSecs)

	c.JWTSecret = getenv("JWT_SECRET", c.JWTSecret)
	c.JWTIssuer = getenv("JWT_ISSUER", c.JWTIssuer)
	c.SessionTTLMins = getenvInt("SESSION_TTL_MINUTES", c.SessionTTLMins)

	c.GraphURI = getenv("GRAPH_URI", c.GraphURI)
	c.GraphDatabase = getenv("GRAPH_DATABASE", c.GraphDatabase)
	c.GraphUser = getenv("GRAPH_USER", c.GraphUser)
	c.GraphPass = getenv("GRAPH_PASS", c.GraphPass)

	c.DefaultSweepMins = getenvInt("DEFAULT_SWEEP_MINUTES", c.DefaultSweepMins)
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("missing POSTGRES_DSN")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 bytes")
	}
	if c.SessionTTLMins <= 0 {
		return errors.New("SESSION_TTL_MINUTES must be positive")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case DriverPostgres:
		return c.PostgresDSN
	case DriverSQLite:
		return c.SQLitePath
	}
	return c.MySQLDSN()
}

func (c *Config) SessionTTL() time.Duration { return time.Duration(c.SessionTTLMins) * time.Minute }

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

func (c *Config) DefaultSweepInterval() time.Duration {
	return time.Duration(c.DefaultSweepMins) * time.Minute
}

func (c *Config) GraphEnabled() bool { return c.GraphURI != "" }
