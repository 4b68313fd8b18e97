package product

import (
	"context"
	"errors"
	"strings"
	"time"

	"campusrent/internal/domain/shared/money"
)

var (
	ErrNotFound      = errors.New("product: not found")
	ErrNameRequired  = errors.New("product: name is required")
	ErrOwnerRequired = errors.New("product: owner is required")
	ErrInvalidPrice  = errors.New("product: daily price must be positive")
	ErrUnavailable   = errors.New("product: item is not available for rent")
)

type ID string

// Product is the catalog entry a booking refers to: a textbook, calculator
// or other piece of equipment a student lends out.
type Product struct {
	ID          ID
	OwnerID     string
	Name        string
	Description string
	Category    string
	DailyPrice  money.Money
	Deposit     money.Money
	IsAvailable bool
	CreatedAt   time.Time
}

// Reference is the read port the booking core uses to resolve a product's
// owner and price. The catalog itself lives behind this boundary.
type Reference interface {
	ByID(ctx context.Context, id ID) (*Product, error)
}

type Repository interface {
	Reference
	Save(ctx context.Context, item *Product) error
	ListByOwner(ctx context.Context, ownerID string) ([]*Product, error)
	ListAvailable(ctx context.Context) ([]*Product, error)
}

type CreateParams struct {
	ID          ID
	OwnerID     string
	Name        string
	Description string
	Category    string
	DailyPrice  money.Money
	Deposit     money.Money
	CreatedAt   time.Time
}

func New(params CreateParams) (*Product, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, errors.New("product: id is required")
	}
	if strings.TrimSpace(params.OwnerID) == "" {
		return nil, ErrOwnerRequired
	}
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if params.DailyPrice.Amount <= 0 {
		return nil, ErrInvalidPrice
	}
	now := params.CreatedAt
	if now.IsZero() {
		now = time.Now()
	}
	return &Product{
		ID:          params.ID,
		OwnerID:     params.OwnerID,
		Name:        name,
		Description: strings.TrimSpace(params.Description),
		Category:    strings.TrimSpace(params.Category),
		DailyPrice:  params.DailyPrice,
		Deposit:     params.Deposit,
		IsAvailable: true,
		CreatedAt:   now.UTC(),
	}, nil
}

func (p *Product) Withdraw() {
	p.IsAvailable = false
}

func (p *Product) Relist() {
	p.IsAvailable = true
}
