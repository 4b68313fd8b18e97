package dto

import (
	"time"

	domainproduct "campusrent/internal/domain/product"
)

type Product struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	DailyPrice  MoneyDTO  `json:"daily_price"`
	Deposit     MoneyDTO  `json:"deposit"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProductCollection struct {
	Items []Product `json:"items"`
}

func MapProduct(item *domainproduct.Product) Product {
	if item == nil {
		return Product{}
	}
	return Product{
		ID:          string(item.ID),
		OwnerID:     item.OwnerID,
		Name:        item.Name,
		Description: item.Description,
		Category:    item.Category,
		DailyPrice:  MoneyDTO{Amount: item.DailyPrice.Amount, Currency: item.DailyPrice.Currency},
		Deposit:     MoneyDTO{Amount: item.Deposit.Amount, Currency: item.Deposit.Currency},
		IsAvailable: item.IsAvailable,
		CreatedAt:   item.CreatedAt,
	}
}

func MapProducts(items []*domainproduct.Product) ProductCollection {
	out := make([]Product, 0, len(items))
	for _, item := range items {
		out = append(out, MapProduct(item))
	}
	return ProductCollection{Items: out}
}
