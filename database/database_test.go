package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/junaidrashid-git/charm-studio-api/config"
	"github.com/junaidrashid-git/charm-studio-api/models"
)

func TestOpenSQLite(t *testing.T) {
	db, err := Open(config.Database{Driver: config.DriverSQLite, URL: "file:opentest?mode=memory&cache=shared"}, zap.NewNop(), false)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	require.NoError(t, models.Migrate(db))
	require.NoError(t, models.Seed(db))
	var n int64
	require.NoError(t, db.Model(&models.Bracelet{}).Count(&n).Error)
	assert.EqualValues(t, 3, n)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(config.Database{Driver: "oracle"}, zap.NewNop(), false)
	assert.ErrorContains(t, err, "unknown database driver")
}

func TestRegisterTiDBTLSFallsBack(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	log := zap.New(core)

	require.NoError(t, RegisterTiDBTLS(filepath.Join(t.TempDir(), "missing.pem"), log))
	assert.Equal(t, 1, logs.FilterMessage("could not read CA file, falling back to InsecureSkipVerify").Len())

	junk := filepath.Join(t.TempDir(), "junk.pem")
	require.NoError(t, os.WriteFile(junk, []byte("not a cert"), 0o600))
	require.NoError(t, RegisterTiDBTLS(junk, log))
	assert.Equal(t, 1, logs.FilterMessage("could not parse CA file, falling back to InsecureSkipVerify").Len())
}
