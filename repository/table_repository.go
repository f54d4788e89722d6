package repository

import (
	"context"
	"fmt"

	"github.com/yeremiapane/restaurant-reservations/apperrors"
	"github.com/yeremiapane/restaurant-reservations/models"
	"gorm.io/gorm"
)

type TableRepository struct {
	db *gorm.DB
}

func (r *TableRepository) Get(ctx context.Context, number uint) (*models.Table, error) {
	var table models.Table
	if err := r.db.WithContext(ctx).First(&table, "number = ?", number).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("table %d not found", number)
		}
		return nil, fmt.Errorf("get table %d: %w", number, err)
	}
	return &table, nil
}

// GetForUpdate reads the table and holds a row lock until the surrounding
// transaction ends. Reservations for one table serialize on this lock.
func (r *TableRepository) GetForUpdate(ctx context.Context, number uint) (*models.Table, error) {
	var table models.Table
	if err := forUpdate(r.db.WithContext(ctx)).First(&table, "number = ?", number).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("table %d not found", number)
		}
		return nil, fmt.Errorf("lock table %d: %w", number, err)
	}
	return &table, nil
}

func (r *TableRepository) Exists(ctx context.Context, number uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Table{}).Where("number = ?", number).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count tables: %w", err)
	}
	return count > 0, nil
}

func (r *TableRepository) List(ctx context.Context, activeOnly bool) ([]models.Table, error) {
	q := r.db.WithContext(ctx).Order("number ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var tables []models.Table
	if err := q.Find(&tables).Error; err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

func (r *TableRepository) ListByCapacity(ctx context.Context, capacity int) ([]models.Table, error) {
	var tables []models.Table
	err := r.db.WithContext(ctx).
		Where("capacity = ? AND active = ?", capacity, true).
		Order("number ASC").
		Find(&tables).Error
	if err != nil {
		return nil, fmt.Errorf("list tables by capacity: %w", err)
	}
	return tables, nil
}

func (r *TableRepository) Create(ctx context.Context, table *models.Table) error {
	if err := r.db.WithContext(ctx).Create(table).Error; err != nil {
		if isDuplicate(err) {
			return duplicate("a table with number %d already exists", table.Number)
		}
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

// Update writes table under oldNumber. When the number changes the
// reservations follow it.
func (r *TableRepository) Update(ctx context.Context, oldNumber uint, table *models.Table) error {
	db := r.db.WithContext(ctx)
	res := db.Model(&models.Table{}).Where("number = ?", oldNumber).Updates(map[string]interface{}{
		"number":   table.Number,
		"capacity": table.Capacity,
		"location": table.Location,
		"active":   table.Active,
	})
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return duplicate("a table with number %d already exists", table.Number)
		}
		return fmt.Errorf("update table %d: %w", oldNumber, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("table %d not found", oldNumber)
	}
	if table.Number != oldNumber {
		err := db.Model(&models.Reservation{}).
			Where("table_number = ?", oldNumber).
			Update("table_number", table.Number).Error
		if err != nil {
			return fmt.Errorf("move reservations to table %d: %w", table.Number, err)
		}
	}
	return nil
}

func (r *TableRepository) Delete(ctx context.Context, number uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Table{}, "number = ?", number)
	if res.Error != nil {
		if isForeignKey(res.Error) {
			return apperrors.New(apperrors.KindHasActiveReservations, "table %d still has reservation history", number)
		}
		return fmt.Errorf("delete table %d: %w", number, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("table %d not found", number)
	}
	return nil
}
