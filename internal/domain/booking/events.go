package booking

import (
	"time"

	"campusrent/internal/domain/product"
	"campusrent/internal/domain/shared/daterange"
	"campusrent/internal/domain/shared/money"
)

type BookingRequested struct {
	BookingID BookingID
	ProductID product.ID
	RenterID  string
	OwnerID   string
	Period    daterange.DateRange
	TotalCost money.Money
	At        time.Time
}

func (e BookingRequested) EventName() string     { return "booking.requested" }
func (e BookingRequested) AggregateID() string   { return string(e.BookingID) }
func (e BookingRequested) OccurredAt() time.Time { return e.At }

type BookingConfirmed struct {
	BookingID BookingID
	ProductID product.ID
	RenterID  string
	Period    daterange.DateRange
	At        time.Time
}

func (e BookingConfirmed) EventName() string     { return "booking.confirmed" }
func (e BookingConfirmed) AggregateID() string   { return string(e.BookingID) }
func (e BookingConfirmed) OccurredAt() time.Time { return e.At }

type BookingCancelled struct {
	BookingID BookingID
	ProductID product.ID
	RenterID  string
	At        time.Time
}

func (e BookingCancelled) EventName() string     { return "booking.cancelled" }
func (e BookingCancelled) AggregateID() string   { return string(e.BookingID) }
func (e BookingCancelled) OccurredAt() time.Time { return e.At }

type BookingActivated struct {
	BookingID BookingID
	ProductID product.ID
	At        time.Time
}

func (e BookingActivated) EventName() string     { return "booking.activated" }
func (e BookingActivated) AggregateID() string   { return string(e.BookingID) }
func (e BookingActivated) OccurredAt() time.Time { return e.At }

type BookingCompleted struct {
	BookingID BookingID
	ProductID product.ID
	RenterID  string
	OwnerID   string
	At        time.Time
}

func (e BookingCompleted) EventName() string     { return "booking.completed" }
func (e BookingCompleted) AggregateID() string   { return string(e.BookingID) }
func (e BookingCompleted) OccurredAt() time.Time { return e.At }
