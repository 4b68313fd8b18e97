package catalog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"campusrent/internal/app/commands"
	"campusrent/internal/app/dto"
	"campusrent/internal/app/uow"
	domainproduct "campusrent/internal/domain/product"
	domainmoney "campusrent/internal/domain/shared/money"
)

const createProductKey = "catalog.create"

// CreateProductCommand lists a new item for rent.
type CreateProductCommand struct {
	ProductID   string
	OwnerID     string
	Name        string
	Description string
	Category    string
	DailyPrice  int64
	Deposit     int64
	Currency    string
}

func (c CreateProductCommand) Key() string { return createProductKey }

func (c CreateProductCommand) Validate() error {
	if strings.TrimSpace(c.OwnerID) == "" {
		return domainproduct.ErrOwnerRequired
	}
	if strings.TrimSpace(c.Name) == "" {
		return domainproduct.ErrNameRequired
	}
	if c.DailyPrice <= 0 {
		return domainproduct.ErrInvalidPrice
	}
	return nil
}

type CreateProductHandler struct {
	UoWFactory uow.UoWFactory
	Logger     *slog.Logger
}

func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (dto.Product, error) {
	if err := cmd.Validate(); err != nil {
		return dto.Product{}, err
	}

	currency := strings.TrimSpace(cmd.Currency)
	if currency == "" {
		currency = "RUB"
	}
	dailyPrice, err := domainmoney.New(cmd.DailyPrice, currency)
	if err != nil {
		return dto.Product{}, err
	}
	deposit, err := domainmoney.New(cmd.Deposit, currency)
	if err != nil {
		return dto.Product{}, err
	}

	unit, ok := uow.FromContext(ctx)
	managed := false
	committed := false
	if !ok {
		if h.UoWFactory == nil {
			return dto.Product{}, uow.ErrUnitOfWorkMissing
		}
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{})
		if err != nil {
			return dto.Product{}, err
		}
		ctx = uow.Attach(ctx, unit)
		managed = true
	}
	if managed {
		defer func() {
			if !committed {
				_ = unit.Rollback(ctx)
			}
		}()
	}

	item, err := domainproduct.New(domainproduct.CreateParams{
		ID:          domainproduct.ID(cmd.ProductID),
		OwnerID:     cmd.OwnerID,
		Name:        cmd.Name,
		Description: cmd.Description,
		Category:    cmd.Category,
		DailyPrice:  dailyPrice,
		Deposit:     deposit,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		return dto.Product{}, err
	}
	if err := unit.Products().Save(ctx, item); err != nil {
		return dto.Product{}, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return dto.Product{}, err
		}
		committed = true
	}

	if h.Logger != nil {
		h.Logger.Info("product listed", "product_id", item.ID, "owner_id", item.OwnerID)
	}
	return dto.MapProduct(item), nil
}

var _ commands.Handler[CreateProductCommand, dto.Product] = (*CreateProductHandler)(nil)
