package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "campusrent/internal/domain/booking"
	domainproduct "campusrent/internal/domain/product"
	domainrange "campusrent/internal/domain/shared/daterange"
	domainmoney "campusrent/internal/domain/shared/money"
)

type BookingRepository struct {
	col   *mongo.Collection
	slots *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{
		col:   db.Collection("agg_booking"),
		slots: db.Collection("agg_booking_slots"),
	}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

// Reserve checks the candidate period against blocking bookings on the same
// product and inserts the pending booking. Transactions alone are not enough
// here: they are snapshot-isolated and only abort on same-document write
// conflicts, so the count takes no predicate lock. lockProduct gives every
// reservation and every blocking-status save on the product a common write
// target, forcing one of two racing transactions to abort with a write
// conflict (surfaced as ErrConcurrentUpdate, retryable by the caller).
func (r *BookingRepository) Reserve(ctx context.Context, b *domainbooking.Booking) error {
	if err := r.lockProduct(ctx, b.ProductID); err != nil {
		return err
	}
	count, err := r.col.CountDocuments(ctx, reserveConflictFilter(b))
	if err != nil {
		return err
	}
	if count > 0 {
		return domainbooking.ErrDatesUnavailable
	}
	doc := newBookingDocument(b)
	doc.Version = b.Version + 1
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) || isWriteConflict(err) {
			return domainbooking.ErrConcurrentUpdate
		}
		return err
	}
	b.Version = doc.Version
	return nil
}

// reserveConflictFilter matches every blocking booking sharing at least one
// calendar day with the candidate (boundaries inclusive).
func reserveConflictFilter(b *domainbooking.Booking) bson.M {
	blocking := make([]string, 0, 2)
	for _, s := range domainbooking.BlockingStatuses() {
		blocking = append(blocking, string(s))
	}
	return bson.M{
		"product_id":   string(b.ProductID),
		"status":       bson.M{"$in": blocking},
		"period.start": bson.M{"$lte": b.Period.End.UnixMilli()},
		"period.end":   bson.M{"$gte": b.Period.Start.UnixMilli()},
	}
}

// lockProduct bumps the product's slot document inside the current session
// transaction. Every writer that can change the product's occupied calendar
// goes through here, so overlapping transactions collide on this document
// and cannot both commit against stale snapshot reads.
func (r *BookingRepository) lockProduct(ctx context.Context, id domainproduct.ID) error {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := r.slots.FindOneAndUpdate(ctx,
		bson.M{"_id": string(id)},
		bson.M{"$inc": bson.M{"token": 1}},
		opts,
	).Err()
	if err != nil {
		if isWriteConflict(err) {
			return domainbooking.ErrConcurrentUpdate
		}
		return err
	}
	return nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	// A save that makes the booking occupy the calendar (confirm, activate)
	// must serialize against concurrent reservations on the same product.
	if statusBlocks(b.Status) {
		if err := r.lockProduct(ctx, b.ProductID); err != nil {
			return err
		}
	}
	doc := newBookingDocument(b)
	filter := bson.M{"_id": doc.ID, "version": b.Version}
	doc.Version = b.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) || isWriteConflict(err) {
			return domainbooking.ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return domainbooking.ErrConcurrentUpdate
	}
	b.Version = doc.Version
	return nil
}

func statusBlocks(status domainbooking.Status) bool {
	for _, s := range domainbooking.BlockingStatuses() {
		if status == s {
			return true
		}
	}
	return false
}

// isWriteConflict recognizes Mongo's WriteConflict (code 112), raised when
// two transactions touch the same document.
func isWriteConflict(err error) bool {
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		return serverErr.HasErrorCode(112)
	}
	return false
}

func (r *BookingRepository) ListByProduct(ctx context.Context, id domainproduct.ID, statuses ...domainbooking.Status) ([]*domainbooking.Booking, error) {
	filter := bson.M{"product_id": string(id)}
	if len(statuses) > 0 {
		set := make([]string, 0, len(statuses))
		for _, s := range statuses {
			set = append(set, string(s))
		}
		filter["status"] = bson.M{"$in": set}
	}
	return r.list(ctx, filter)
}

func (r *BookingRepository) ListByRenter(ctx context.Context, renterID string) ([]*domainbooking.Booking, error) {
	return r.list(ctx, bson.M{"renter_id": renterID})
}

func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domainbooking.Booking, error) {
	return r.list(ctx, bson.M{"owner_id": ownerID})
}

func (r *BookingRepository) ListByStatus(ctx context.Context, status domainbooking.Status) ([]*domainbooking.Booking, error) {
	return r.list(ctx, bson.M{"status": string(status)})
}

func (r *BookingRepository) list(ctx context.Context, filter bson.M) ([]*domainbooking.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	out := make([]*domainbooking.Booking, 0)
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

type bookingDocument struct {
	ID         string         `bson:"_id"`
	RenterID   string         `bson:"renter_id"`
	OwnerID    string         `bson:"owner_id"`
	ProductID  string         `bson:"product_id"`
	Period     periodDocument `bson:"period"`
	TotalCost  moneyDocument  `bson:"total_cost"`
	Status     string         `bson:"status"`
	CreatedAt  int64          `bson:"created_at"`
	UpdatedAt  int64          `bson:"updated_at"`
	RemindedAt int64          `bson:"reminded_at,omitempty"`
	Version    int64          `bson:"version"`
}

type periodDocument struct {
	Start int64 `bson:"start"`
	End   int64 `bson:"end"`
}

type moneyDocument struct {
	Amount   int64  `bson:"amount"`
	Currency string `bson:"currency"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	doc := bookingDocument{
		ID:        string(b.ID),
		RenterID:  b.RenterID,
		OwnerID:   b.OwnerID,
		ProductID: string(b.ProductID),
		Period:    periodDocument{Start: b.Period.Start.UnixMilli(), End: b.Period.End.UnixMilli()},
		TotalCost: moneyDocument{Amount: b.TotalCost.Amount, Currency: b.TotalCost.Currency},
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt.UnixMilli(),
		UpdatedAt: b.UpdatedAt.UnixMilli(),
		Version:   b.Version,
	}
	if !b.RemindedAt.IsZero() {
		doc.RemindedAt = b.RemindedAt.UnixMilli()
	}
	return doc
}

func (d bookingDocument) toAggregate() *domainbooking.Booking {
	b := &domainbooking.Booking{
		ID:        domainbooking.BookingID(d.ID),
		RenterID:  d.RenterID,
		OwnerID:   d.OwnerID,
		ProductID: domainproduct.ID(d.ProductID),
		Period:    domainrange.DateRange{Start: timestampToTime(d.Period.Start), End: timestampToTime(d.Period.End)},
		TotalCost: domainmoney.Money{Amount: d.TotalCost.Amount, Currency: d.TotalCost.Currency},
		Status:    domainbooking.Status(d.Status),
		CreatedAt: timestampToTime(d.CreatedAt),
		UpdatedAt: timestampToTime(d.UpdatedAt),
		Version:   d.Version,
	}
	if d.RemindedAt > 0 {
		b.RemindedAt = timestampToTime(d.RemindedAt)
	}
	return b
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

var _ domainbooking.Repository = (*BookingRepository)(nil)
