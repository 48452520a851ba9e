package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongoDB dials the catalog database and verifies the connection
// with a ping before anything is served from it.
func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(50)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		collection: db.Collection("products"),
	}
}

func (m *MongoRepository) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}

	// Equality filter only, no sort option: the category+sort combination
	// would need a compound index that is not guaranteed to exist.
	cursor, err := m.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (m *MongoRepository) FindBySlug(ctx context.Context, slug string) (*Product, error) {
	return m.findOne(ctx, bson.M{"slug": slug})
}

func (m *MongoRepository) FindByID(ctx context.Context, id string) (*Product, error) {
	return m.findOne(ctx, bson.M{"_id": id})
}

func (m *MongoRepository) findOne(ctx context.Context, filter bson.M) (*Product, error) {
	var p Product
	err := m.collection.FindOne(ctx, filter).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &p, nil
}

func (m *MongoRepository) Create(ctx context.Context, p *Product) (string, error) {
	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	if _, err := m.collection.InsertOne(ctx, p); err != nil {
		return "", fmt.Errorf("failed to create product: %w", err)
	}
	return p.ID, nil
}

func (m *MongoRepository) Update(ctx context.Context, p *Product) error {
	filter := bson.M{"_id": p.ID}
	update := bson.M{"$set": bson.M{
		"name":     p.Name,
		"price":    p.Price,
		"image":    p.Image,
		"slug":     p.Slug,
		"category": p.Category,
		"stock":    p.Stock,
		"weight":   p.Weight,
	}}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (m *MongoRepository) Delete(ctx context.Context, id string) error {
	result, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (m *MongoRepository) Count(ctx context.Context) (int64, error) {
	count, err := m.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// CreateIndexes backs the storefront's single-field queries. Category and
// slug each get their own index; sort stays client-side so no compound
// index is needed.
func (m *MongoRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "category", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
