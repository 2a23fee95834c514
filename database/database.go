// Package database opens the gorm connection for the configured driver.
package database

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/junaidrashid-git/charm-studio-api/config"
)

// Open connects to the database described by cfg.
func Open(cfg config.Database, log *zap.Logger, verbose bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN())
	case config.DriverMySQL:
		dsn := cfg.DSN()
		if strings.Contains(dsn, "tls=tidb") {
			if err := RegisterTiDBTLS(cfg.TiDBCA, log); err != nil {
				return nil, err
			}
		}
		dialector = mysql.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}

	level := logger.Warn
	if verbose {
		level = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(level)})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Driver, err)
	}
	return db, nil
}

// RegisterTiDBTLS registers the "tidb" TLS config for mysql DSNs. An
// unreadable CA bundle falls back to skipping verification, with a warning.
func RegisterTiDBTLS(caPath string, log *zap.Logger) error {
	pool := x509.NewCertPool()
	b, err := os.ReadFile(caPath)
	switch {
	case err != nil:
		log.Warn("could not read CA file, falling back to InsecureSkipVerify", zap.String("path", caPath), zap.Error(err))
		return mysqldriver.RegisterTLSConfig("tidb", &tls.Config{InsecureSkipVerify: true})
	case !pool.AppendCertsFromPEM(b):
		log.Warn("could not parse CA file, falling back to InsecureSkipVerify", zap.String("path", caPath))
		return mysqldriver.RegisterTLSConfig("tidb", &tls.Config{InsecureSkipVerify: true})
	}
	return mysqldriver.RegisterTLSConfig("tidb", &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12})
}
