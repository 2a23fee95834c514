// Package config reads process settings from the environment, after an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

type Database struct {
	Driver string
	// URL is a full DSN. When empty the postgres DSN is built from the DB_* parts.
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	// TiDBCA is the CA bundle used when a mysql DSN asks for tls=tidb.
	TiDBCA string
}

type Config struct {
	Port           string
	DevMode        bool
	JWTSecret      string
	AdminAPIKey    string
	CloudinaryURL  string
	SnapPointsFile string
	AllowedOrigins []string
	Database       Database
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg := FromEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a Config from getenv without validating it.
func FromEnv(getenv func(string) string) *Config {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}
	devMode := isTrue(getenv("DEV_MODE"))

	db := Database{
		Driver:   strings.ToLower(get("DB_DRIVER", "")),
		URL:      get("DATABASE_URL", ""),
		Host:     get("DB_HOST", "localhost"),
		Port:     get("DB_PORT", "5432"),
		User:     get("DB_USER", ""),
		Password: getenv("DB_PASSWORD"),
		Name:     get("DB_NAME", ""),
		SSLMode:  get("DB_SSLMODE", "disable"),
		TiDBCA:   get("TIDB_CA", "/etc/ssl/certs/ca-certificates.crt"),
	}
	if db.URL == "" {
		db.URL = get("MYSQL_DSN", "")
		if db.URL != "" && db.Driver == "" {
			db.Driver = DriverMySQL
		}
	}
	if db.Driver == "" {
		db.Driver = DriverPostgres
		if devMode && db.URL == "" && db.Name == "" {
			db.Driver = DriverSQLite
			db.URL = "file:charm-studio.db?cache=shared"
		}
	}

	var origins []string
	for _, o := range strings.Split(get("ALLOWED_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return &Config{
		Port:           get("PORT", "8080"),
		DevMode:        devMode,
		JWTSecret:      getenv("JWT_SECRET"),
		AdminAPIKey:    getenv("ADMIN_API_KEY"),
		CloudinaryURL:  get("CLOUDINARY_URL", ""),
		SnapPointsFile: get("SNAP_POINTS_FILE", ""),
		AllowedOrigins: origins,
		Database:       db,
	}
}

// Validate reports every missing or inconsistent setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must be set"))
	}
	if c.AdminAPIKey == "" && !c.DevMode {
		errs = append(errs, errors.New("ADMIN_API_KEY must be set (or DEV_MODE=true)"))
	}
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.URL == "" && c.Database.Name == "" {
			errs = append(errs, errors.New("DATABASE_URL or DB_NAME must be set"))
		}
	case DriverMySQL, DriverSQLite:
		if c.Database.URL == "" {
			errs = append(errs, fmt.Errorf("%s driver needs DATABASE_URL", c.Database.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DB_DRIVER %q", c.Database.Driver))
	}
	return errors.Join(errs...)
}

// DSN returns the connection string for the configured driver.
func (d Database) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

func isTrue(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "1" || v == "true" || v == "yes"
}
