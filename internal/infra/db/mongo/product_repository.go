package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainproduct "campusrent/internal/domain/product"
	domainmoney "campusrent/internal/domain/shared/money"
)

type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection("agg_product")}
}

func (r *ProductRepository) ByID(ctx context.Context, id domainproduct.ID) (*domainproduct.Product, error) {
	var doc productDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainproduct.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ProductRepository) Save(ctx context.Context, item *domainproduct.Product) error {
	doc := newProductDocument(item)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

func (r *ProductRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domainproduct.Product, error) {
	return r.list(ctx, bson.M{"owner_id": ownerID})
}

func (r *ProductRepository) ListAvailable(ctx context.Context) ([]*domainproduct.Product, error) {
	return r.list(ctx, bson.M{"is_available": true})
}

func (r *ProductRepository) list(ctx context.Context, filter bson.M) ([]*domainproduct.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	out := make([]*domainproduct.Product, 0)
	for cursor.Next(ctx) {
		var doc productDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

type productDocument struct {
	ID          string        `bson:"_id"`
	OwnerID     string        `bson:"owner_id"`
	Name        string        `bson:"name"`
	Description string        `bson:"description"`
	Category    string        `bson:"category"`
	DailyPrice  moneyDocument `bson:"daily_price"`
	Deposit     moneyDocument `bson:"deposit"`
	IsAvailable bool          `bson:"is_available"`
	CreatedAt   int64         `bson:"created_at"`
}

func newProductDocument(p *domainproduct.Product) productDocument {
	return productDocument{
		ID:          string(p.ID),
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		DailyPrice:  moneyDocument{Amount: p.DailyPrice.Amount, Currency: p.DailyPrice.Currency},
		Deposit:     moneyDocument{Amount: p.Deposit.Amount, Currency: p.Deposit.Currency},
		IsAvailable: p.IsAvailable,
		CreatedAt:   p.CreatedAt.UnixMilli(),
	}
}

func (d productDocument) toAggregate() *domainproduct.Product {
	return &domainproduct.Product{
		ID:          domainproduct.ID(d.ID),
		OwnerID:     d.OwnerID,
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		DailyPrice:  domainmoney.Money{Amount: d.DailyPrice.Amount, Currency: d.DailyPrice.Currency},
		Deposit:     domainmoney.Money{Amount: d.Deposit.Amount, Currency: d.Deposit.Currency},
		IsAvailable: d.IsAvailable,
		CreatedAt:   timestampToTime(d.CreatedAt),
	}
}

var _ domainproduct.Repository = (*ProductRepository)(nil)
