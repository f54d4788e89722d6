package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-reservations/config"
	"github.com/yeremiapane/restaurant-reservations/models"
)

func TestOpenMigrateSeed(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", DBDSN: filepath.Join(t.TempDir(), "seed.db"), LogLevel: "info"}
	db, err := Open(cfg)
	require.NoError(t, err)
	defer Close(db)
	require.NoError(t, Migrate(db))

	ctx := context.Background()
	require.NoError(t, SeedAdmin(ctx, db, "admin@example.com", "admin-password"))
	require.NoError(t, SeedAdmin(ctx, db, "admin@example.com", "admin-password"))
	require.NoError(t, SeedAdmin(ctx, db, "", ""))

	var admins []models.User
	require.NoError(t, db.Where("role = ?", models.RoleAdmin).Find(&admins).Error)
	assert.Len(t, admins, 1)

	added, err := SeedTables(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, len(DemoTables), added)

	added, err = SeedTables(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, added)
}

func TestOpenEnforcesForeignKeys(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", DBDSN: filepath.Join(t.TempDir(), "fk.db"), LogLevel: "info"}
	db, err := Open(cfg)
	require.NoError(t, err)
	defer Close(db)
	require.NoError(t, Migrate(db))

	var enabled int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)

	orphan := &models.Reservation{DateTime: time.Date(2030, 1, 8, 19, 0, 0, 0, time.UTC), PartySize: 2, TableNumber: 99, CustomerID: 99}
	assert.Error(t, db.Create(orphan).Error)
}

func TestWithForeignKeys(t *testing.T) {
	assert.Equal(t, "app.db?_foreign_keys=on", withForeignKeys("app.db"))
	assert.Equal(t, "file:app.db?cache=shared&_foreign_keys=on", withForeignKeys("file:app.db?cache=shared"))
	assert.Equal(t, "app.db?_fk=1", withForeignKeys("app.db?_fk=1"))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}
