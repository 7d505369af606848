package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"

	DriverNone   = "none"
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

type Config struct {
	AppPort   string
	LogLevel  string
	LogFormat string

	SessionStore   string
	SessionTTLSecs int
	BusyTTLSecs    int

	RedisAddr string
	RedisDB   int

	DBDriver   string
	SQLitePath string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string
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

// LoadDotenv seeds the environment from the given files, ".env" when none
// are named. Variables already set win. Missing files are not an error.
func LoadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func Load() *Config {
	return &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "json"),

		SessionStore:   strings.ToLower(getenv("SESSION_STORE", StoreMemory)),
		SessionTTLSecs: getenvInt("SESSION_TTL_SECONDS", 3600),
		BusyTTLSecs:    getenvInt("BUSY_LOCK_TTL_SECONDS", 60),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:   getenvInt("REDIS_DB", 0),

		DBDriver:   strings.ToLower(getenv("DB_DRIVER", DriverNone)),
		SQLitePath: getenv("SQLITE_PATH", filepath.Join("data", "exports.db")),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "pfloan"),
		MySQLUser: getenv("MYSQL_USER", "pfloan"),
		MySQLPass: getenv("MYSQL_PASS", "pfloan"),
	}
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.SessionTTLSecs <= 0 {
		return fmt.Errorf("invalid SESSION_TTL_SECONDS %d", c.SessionTTLSecs)
	}
	if c.BusyTTLSecs <= 0 {
		return fmt.Errorf("invalid BUSY_LOCK_TTL_SECONDS %d", c.BusyTTLSecs)
	}
	switch c.SessionStore {
	case StoreMemory:
	case StoreRedis:
		if c.RedisAddr == "" {
			return errors.New("SESSION_STORE=redis needs REDIS_ADDR")
		}
	default:
		return fmt.Errorf("invalid SESSION_STORE %q (memory|redis)", c.SessionStore)
	}
	switch c.DBDriver {
	case DriverNone:
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("DB_DRIVER=sqlite needs SQLITE_PATH")
		}
	case DriverMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	default:
		return fmt.Errorf("invalid DB_DRIVER %q (none|sqlite|mysql)", c.DBDriver)
	}
	return nil
}

// LedgerDSN is the data source for the configured ledger driver, empty when
// the ledger is off.
func (c *Config) LedgerDSN() string {
	switch c.DBDriver {
	case DriverSQLite:
		return c.SQLitePath
	case DriverMySQL:
		return c.MySQLDSN()
	default:
		return ""
	}
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
