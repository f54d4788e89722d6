package repository

import (
	"context"
	"fmt"

	"github.com/yeremiapane/restaurant-reservations/apperrors"
	"github.com/yeremiapane/restaurant-reservations/models"
	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *gorm.DB
}

func (r *CustomerRepository) Get(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("customer %d not found", id)
		}
		return nil, fmt.Errorf("get customer %d: %w", id, err)
	}
	return &customer, nil
}

func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&customer).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("customer with email %s not found", email)
		}
		return nil, fmt.Errorf("get customer by email: %w", err)
	}
	return &customer, nil
}

func (r *CustomerRepository) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Customer{}).
		Where("email = ? AND id <> ?", email, exceptID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count customers: %w", err)
	}
	return count > 0, nil
}

func (r *CustomerRepository) List(ctx context.Context, activeOnly bool) ([]models.Customer, error) {
	q := r.db.WithContext(ctx).Order("name ASC").Order("surname ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var customers []models.Customer
	if err := q.Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// Search matches active customers whose name or surname contains term.
func (r *CustomerRepository) Search(ctx context.Context, term string) ([]models.Customer, error) {
	like := "%" + term + "%"
	var customers []models.Customer
	err := r.db.WithContext(ctx).
		Where("(name LIKE ? OR surname LIKE ?) AND active = ?", like, like, true).
		Order("name ASC").
		Find(&customers).Error
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	return customers, nil
}

func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		if isDuplicate(err) {
			return duplicate("a customer with email %s already exists", customer.Email)
		}
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

// Save writes the editable profile fields. Points are left alone; they only
// move through AddPoints.
func (r *CustomerRepository) Save(ctx context.Context, customer *models.Customer) error {
	err := r.db.WithContext(ctx).Model(customer).
		Select("name", "surname", "email", "phone", "address", "active", "updated_at").
		Updates(customer).Error
	if err != nil {
		if isDuplicate(err) {
			return duplicate("a customer with email %s already exists", customer.Email)
		}
		return fmt.Errorf("save customer %d: %w", customer.ID, err)
	}
	return nil
}

// AddPoints increments the balance in a single statement so concurrent
// awards cannot overwrite each other.
func (r *CustomerRepository) AddPoints(ctx context.Context, id uint, points int) error {
	res := r.db.WithContext(ctx).Model(&models.Customer{}).
		Where("id = ?", id).
		Update("points", gorm.Expr("points + ?", points))
	if res.Error != nil {
		return fmt.Errorf("add points to customer %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("customer %d not found", id)
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Customer{}, id)
	if res.Error != nil {
		if isForeignKey(res.Error) {
			return apperrors.New(apperrors.KindHasActiveReservations, "customer %d still has reservation history", id)
		}
		return fmt.Errorf("delete customer %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("customer %d not found", id)
	}
	return nil
}
