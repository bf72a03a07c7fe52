package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rollerweb/roller/internal/infrastructure/database"
	"github.com/rollerweb/roller/internal/infrastructure/persistence/models"
	"github.com/rollerweb/roller/internal/shared/config"
	"github.com/rollerweb/roller/internal/shared/constants"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := database.Open(&config.DatabaseConfig{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "roller.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}

func assertAllTables(t *testing.T, conn *gorm.DB, exist bool) {
	t.Helper()
	for _, m := range models.All() {
		assert.Equal(t, exist, conn.Migrator().HasTable(m), "%T", m)
	}
}

func TestGooseStrategyUpAndDown(t *testing.T) {
	conn := openSQLite(t)

	strategy, err := NewGooseStrategy("sqlite", "")
	require.NoError(t, err)
	require.NoError(t, NewManagerWithStrategy(strategy).Migrate(conn))
	assertAllTables(t, conn, true)

	version, err := strategy.GetVersion(conn)
	require.NoError(t, err)
	assert.EqualValues(t, 1, version)

	// a second run is a no-op
	require.NoError(t, strategy.Migrate(conn))

	require.NoError(t, strategy.MigrateDown(conn, 1))
	assertAllTables(t, conn, false)
}

func TestGooseScriptsMatchModels(t *testing.T) {
	conn := openSQLite(t)
	strategy, err := NewGooseStrategy("sqlite", "")
	require.NoError(t, err)
	require.NoError(t, strategy.Migrate(conn))

	// AutoMigrate over the scripted schema must find nothing to add.
	for _, m := range models.All() {
		stmt := &gorm.Statement{DB: conn}
		require.NoError(t, stmt.Parse(m))
		for _, field := range stmt.Schema.Fields {
			if field.DBName == "" {
				continue
			}
			assert.True(t, conn.Migrator().HasColumn(m, field.DBName), "%s.%s", stmt.Schema.Table, field.DBName)
		}
	}
}

func TestScriptsExistForBothDialects(t *testing.T) {
	for _, driver := range []string{"mysql", "sqlite"} {
		names, err := Scripts(driver)
		require.NoError(t, err)
		assert.NotEmpty(t, names, driver)
	}
	_, err := Scripts("postgres")
	assert.Error(t, err)
}

func TestNewManagerPicksStrategy(t *testing.T) {
	m, err := NewManager(constants.EnvDevelopment, "sqlite")
	require.NoError(t, err)
	assert.Equal(t, "gorm_auto_migrate", m.GetStrategy().GetName())

	m, err = NewManager(constants.EnvProduction, "mysql")
	require.NoError(t, err)
	assert.Equal(t, "goose", m.GetStrategy().GetName())

	_, err = NewManager(constants.EnvProduction, "oracle")
	assert.Error(t, err)
}

func TestGormAutoMigrateStrategy(t *testing.T) {
	conn := openSQLite(t)
	require.NoError(t, NewGormAutoMigrateStrategy().Migrate(conn))
	assertAllTables(t, conn, true)
}

func TestGooseCreateWritesScript(t *testing.T) {
	dir := t.TempDir()
	strategy, err := NewGooseStrategy("sqlite", dir)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sqlite3"), 0o755))
	require.NoError(t, strategy.Create("add_entry_summary"))

	matches, err := filepath.Glob(filepath.Join(dir, "sqlite3", "*_add_entry_summary.sql"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
