package dto

import (
	"time"

	domainbooking "campusrent/internal/domain/booking"
	domainproduct "campusrent/internal/domain/product"
	"campusrent/internal/domain/shared/money"
)

type MoneyDTO struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type BookingProductSnapshot struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Daily    MoneyDTO `json:"daily_price"`
}

// RenterBookingSummary is what a renter sees in "my bookings".
type RenterBookingSummary struct {
	ID              string                 `json:"id"`
	Product         BookingProductSnapshot `json:"product"`
	StartDate       time.Time              `json:"start_date"`
	EndDate         time.Time              `json:"end_date"`
	Status          string                 `json:"status"`
	TotalCost       MoneyDTO               `json:"total_cost"`
	CreatedAt       time.Time              `json:"created_at"`
	ReviewSubmitted bool                   `json:"review_submitted"`
	CanReview       bool                   `json:"can_review"`
}

type RenterBookingCollection struct {
	Items []RenterBookingSummary `json:"items"`
}

// OwnerRequestSummary is what an owner sees in the pending-requests view.
type OwnerRequestSummary struct {
	ID        string                 `json:"id"`
	Product   BookingProductSnapshot `json:"product"`
	RenterID  string                 `json:"renter_id"`
	StartDate time.Time              `json:"start_date"`
	EndDate   time.Time              `json:"end_date"`
	Status    string                 `json:"status"`
	TotalCost MoneyDTO               `json:"total_cost"`
	CreatedAt time.Time              `json:"created_at"`
}

type OwnerRequestCollection struct {
	Items []OwnerRequestSummary `json:"items"`
}

func MapMoney(value money.Money) MoneyDTO {
	return MoneyDTO{
		Amount:   value.Amount,
		Currency: value.Currency,
	}
}

func mapProductSnapshot(b *domainbooking.Booking, item *domainproduct.Product) BookingProductSnapshot {
	snapshot := BookingProductSnapshot{ID: string(b.ProductID)}
	if item != nil {
		snapshot.Name = item.Name
		snapshot.Category = item.Category
		snapshot.Daily = MapMoney(item.DailyPrice)
	}
	return snapshot
}

func MapRenterBookingSummary(b *domainbooking.Booking, item *domainproduct.Product, reviewSubmitted, canReview bool) RenterBookingSummary {
	return RenterBookingSummary{
		ID:              string(b.ID),
		Product:         mapProductSnapshot(b, item),
		StartDate:       b.Period.Start,
		EndDate:         b.Period.End,
		Status:          string(b.Status),
		TotalCost:       MapMoney(b.TotalCost),
		CreatedAt:       b.CreatedAt,
		ReviewSubmitted: reviewSubmitted,
		CanReview:       canReview,
	}
}

func MapOwnerRequestSummary(b *domainbooking.Booking, item *domainproduct.Product) OwnerRequestSummary {
	return OwnerRequestSummary{
		ID:        string(b.ID),
		Product:   mapProductSnapshot(b, item),
		RenterID:  b.RenterID,
		StartDate: b.Period.Start,
		EndDate:   b.Period.End,
		Status:    string(b.Status),
		TotalCost: MapMoney(b.TotalCost),
		CreatedAt: b.CreatedAt,
	}
}
