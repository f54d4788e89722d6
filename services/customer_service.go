package services

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/restaurant-reservations/apperrors"
	"github.com/yeremiapane/restaurant-reservations/events"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/repository"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

type CustomerService struct {
	base
}

func NewCustomerService(store *repository.Store, rules Rules, pub events.Publisher) *CustomerService {
	return &CustomerService{base: newBase(store, rules, pub)}
}

type CreateCustomerInput struct {
	Name    string
	Surname string
	Email   string
	Phone   string
	Address *string
	Active  *bool
}

// UpdateCustomerInput edits the profile. Loyalty points are not editable.
type UpdateCustomerInput struct {
	Name    *string
	Surname *string
	Email   *string
	Phone   *string
	Address *string
	Active  *bool
}

var validate = validator.New()

func validateCustomer(c *models.Customer) error {
	if c.Name == "" || c.Surname == "" {
		return apperrors.Invalid("name and surname are required")
	}
	if c.Phone == "" {
		return apperrors.Invalid("phone is required")
	}
	if err := validate.Var(c.Email, "required,email"); err != nil {
		return apperrors.Invalid("invalid email %q", c.Email)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *CustomerService) Create(ctx context.Context, in CreateCustomerInput) (*models.Customer, error) {
	customer := &models.Customer{
		Name:    strings.TrimSpace(in.Name),
		Surname: strings.TrimSpace(in.Surname),
		Email:   normalizeEmail(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Address: in.Address,
		Active:  true,
	}
	if in.Active != nil {
		customer.Active = *in.Active
	}
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}
	taken, err := s.store.Customers.EmailTaken(ctx, customer.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.New(apperrors.KindDuplicateKey, "a customer with email %s already exists", customer.Email)
	}
	if err := s.store.Customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	utils.InfoLogger.WithFields(logrus.Fields{"customer_id": customer.ID}).Info("Customer created")
	s.publish(ctx, events.CustomerCreated, customer)
	return customer, nil
}

func (s *CustomerService) List(ctx context.Context, activeOnly bool) ([]models.Customer, error) {
	return s.store.Customers.List(ctx, activeOnly)
}

func (s *CustomerService) Search(ctx context.Context, name string) ([]models.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Invalid("search term is required")
	}
	return s.store.Customers.Search(ctx, name)
}

func (s *CustomerService) Get(ctx context.Context, id uint) (*models.Customer, error) {
	return s.store.Customers.Get(ctx, id)
}

func (s *CustomerService) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return s.store.Customers.GetByEmail(ctx, normalizeEmail(email))
}

func (s *CustomerService) Update(ctx context.Context, id uint, in UpdateCustomerInput) (*models.Customer, error) {
	customer, err := s.store.Customers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		customer.Name = strings.TrimSpace(*in.Name)
	}
	if in.Surname != nil {
		customer.Surname = strings.TrimSpace(*in.Surname)
	}
	if in.Phone != nil {
		customer.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		customer.Address = in.Address
	}
	if in.Active != nil {
		customer.Active = *in.Active
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email != customer.Email {
			taken, err := s.store.Customers.EmailTaken(ctx, email, id)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperrors.New(apperrors.KindDuplicateKey, "a customer with email %s already exists", email)
			}
		}
		customer.Email = email
	}
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}
	if err := s.store.Customers.Save(ctx, customer); err != nil {
		return nil, err
	}
	updated, err := s.store.Customers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	utils.InfoLogger.WithField("customer_id", id).Info("Customer updated")
	s.publish(ctx, events.CustomerUpdated, updated)
	return updated, nil
}

// Delete refuses while the customer holds non-cancelled reservations from
// now on.
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	if _, err := s.store.Customers.Get(ctx, id); err != nil {
		return err
	}
	upcoming, err := s.store.Reservations.CountUpcomingForCustomer(ctx, id, s.now())
	if err != nil {
		return err
	}
	if upcoming > 0 {
		return apperrors.New(apperrors.KindHasActiveReservations,
			"customer %d has %d upcoming reservations", id, upcoming)
	}
	if err := s.store.Customers.Delete(ctx, id); err != nil {
		return err
	}
	utils.InfoLogger.WithField("customer_id", id).Info("Customer deleted")
	s.publish(ctx, events.CustomerDeleted, map[string]uint{"id": id})
	return nil
}

// History returns the customer's reservations, newest first.
func (s *CustomerService) History(ctx context.Context, id uint) ([]models.Reservation, error) {
	if _, err := s.store.Customers.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.store.Reservations.List(ctx, repository.ReservationFilter{CustomerID: id})
}
