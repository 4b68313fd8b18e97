package catalog

import (
	"context"
	"strings"

	"campusrent/internal/app/dto"
	"campusrent/internal/app/handlers/support"
	"campusrent/internal/app/queries"
	"campusrent/internal/app/uow"
	domainproduct "campusrent/internal/domain/product"
)

const (
	listCatalogKey       = "catalog.list"
	listOwnerProductsKey = "catalog.owner.list"
)

// ListCatalogQuery returns every item currently open for rental requests.
type ListCatalogQuery struct{}

func (q ListCatalogQuery) Key() string { return listCatalogKey }

type ListCatalogHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListCatalogHandler) Handle(ctx context.Context, q ListCatalogQuery) (dto.ProductCollection, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.ProductCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	items, err := unit.Products().ListAvailable(execCtx)
	if err != nil {
		return dto.ProductCollection{}, err
	}
	return dto.MapProducts(items), nil
}

// ListOwnerProductsQuery backs the owner's "my items" page.
type ListOwnerProductsQuery struct {
	OwnerID string
}

func (q ListOwnerProductsQuery) Key() string { return listOwnerProductsKey }

type ListOwnerProductsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListOwnerProductsHandler) Handle(ctx context.Context, q ListOwnerProductsQuery) (dto.ProductCollection, error) {
	ownerID := strings.TrimSpace(q.OwnerID)
	if ownerID == "" {
		return dto.ProductCollection{}, domainproduct.ErrOwnerRequired
	}
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.ProductCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	items, err := unit.Products().ListByOwner(execCtx, ownerID)
	if err != nil {
		return dto.ProductCollection{}, err
	}
	return dto.MapProducts(items), nil
}

var _ queries.Handler[ListCatalogQuery, dto.ProductCollection] = (*ListCatalogHandler)(nil)
var _ queries.Handler[ListOwnerProductsQuery, dto.ProductCollection] = (*ListOwnerProductsHandler)(nil)
