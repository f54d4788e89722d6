package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-reservations/apperrors"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/repository"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

// SeedAdmin creates the first admin account once. Empty credentials skip it.
func SeedAdmin(ctx context.Context, db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		utils.InfoLogger.Warn("Skipping admin seed: ADMIN_EMAIL or ADMIN_PASSWORD not set")
		return nil
	}
	store := repository.NewStore(db)
	if _, err := store.Users.GetByEmail(ctx, email); err == nil {
		utils.InfoLogger.Infof("Admin already exists: %s", email)
		return nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	_, err := services.NewAuthService(store).CreateUser(ctx, "Administrator", email, password, models.RoleAdmin)
	return err
}

// DemoTables is the floor plan installed by SeedTables.
var DemoTables = []models.Table{
	{Number: 1, Capacity: 2, Location: "Window", Active: true},
	{Number: 2, Capacity: 2, Location: "Window", Active: true},
	{Number: 3, Capacity: 4, Location: "Main hall", Active: true},
	{Number: 4, Capacity: 4, Location: "Main hall", Active: true},
	{Number: 5, Capacity: 4, Location: "Terrace", Active: true},
	{Number: 6, Capacity: 6, Location: "Terrace", Active: true},
	{Number: 7, Capacity: 8, Location: "Private room", Active: true},
}

// SeedTables inserts the demo tables that are missing and returns how many
// were added.
func SeedTables(ctx context.Context, db *gorm.DB) (int, error) {
	store := repository.NewStore(db)
	added := 0
	for _, t := range DemoTables {
		t := t
		exists, err := store.Tables.Exists(ctx, t.Number)
		if err != nil {
			return added, err
		}
		if exists {
			continue
		}
		if err := store.Tables.Create(ctx, &t); err != nil {
			return added, err
		}
		added++
	}
	utils.InfoLogger.Infof("Seeded %d tables", added)
	return added, nil
}
