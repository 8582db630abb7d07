package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"montage_service/internal/domain/entities"
	"montage_service/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrInvalidCustomerID   = errors.New("invalid customer id")
	ErrInvalidCustomerName = errors.New("invalid customer name")
	ErrDuplicateTaxID      = errors.New("customer with this tax id already exists")
)

type NewCustomer struct {
	Name  string
	TaxID string
	Email string
	Phone string
}

type ICustomerUseCase interface {
	CreateCustomer(ctx context.Context, in NewCustomer) (entities.Customer, error)
	GetCustomer(ctx context.Context, id string) (entities.Customer, error)
}

type CustomerUseCase struct {
	repo interfaces.ICustomerRepository
}

var _ ICustomerUseCase = (*CustomerUseCase)(nil)

func NewCustomerUseCase(repo interfaces.ICustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

func (u *CustomerUseCase) CreateCustomer(ctx context.Context, in NewCustomer) (entities.Customer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return entities.Customer{}, ErrInvalidCustomerName
	}
	c := entities.Customer{
		ID:        uuid.NewString(),
		Name:      name,
		TaxID:     NormalizeTaxID(in.TaxID),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     strings.TrimSpace(in.Phone),
		CreatedAt: time.Now().UTC(),
	}
	created, err := u.repo.Create(ctx, c)
	if errors.Is(err, interfaces.ErrAlreadyExists) {
		return entities.Customer{}, ErrDuplicateTaxID
	}
	if err != nil {
		return entities.Customer{}, err
	}
	return created, nil
}

func (u *CustomerUseCase) GetCustomer(ctx context.Context, id string) (entities.Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Customer{}, ErrInvalidCustomerID
	}
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Customer{}, err
	}
	if c.ID == "" {
		return entities.Customer{}, ErrCustomerNotFound
	}
	return c, nil
}

// NormalizeTaxID strips separators so "123-456-32-18" and "1234563218" collide.
func NormalizeTaxID(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r == ' ' || r == '-' || r == '.' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}
