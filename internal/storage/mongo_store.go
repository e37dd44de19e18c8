package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	errorvalues "github.com/limbo/gratudiary/internal/error_values"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const mongoCollection = "kv"

type mongoDoc struct {
	Key       string     `bson:"_id"`
	Value     []byte     `bson:"value"`
	UpdatedAt time.Time  `bson:"updated_at"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

// MongoStore keeps one document per key in the kv collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second)
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	coll := client.Database(dbName).Collection(mongoCollection)
	// TTL monitor removes documents once expires_at has passed
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create ttl index: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   coll,
	}, nil
}

func (s *MongoStore) Get(ctx context.Context, key string) ([]byte, error) {
	var doc mongoDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errorvalues.ErrKeyNotFound
		}
		return nil, fmt.Errorf("mongo find error: %w", err)
	}
	// The TTL monitor runs about once a minute
	if doc.ExpiresAt != nil && !time.Now().Before(*doc.ExpiresAt) {
		return nil, errorvalues.ErrKeyNotFound
	}
	return doc.Value, nil
}

func (s *MongoStore) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	return s.replace(ctx, mongoDoc{Key: key, Value: value, UpdatedAt: time.Now().UTC()})
}

func (s *MongoStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if value == nil {
		value = []byte{}
	}
	now := time.Now().UTC()
	expiresAt := now.Add(ttl)
	return s.replace(ctx, mongoDoc{Key: key, Value: value, UpdatedAt: now, ExpiresAt: &expiresAt})
}

func (s *MongoStore) replace(ctx context.Context, doc mongoDoc) error {
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.Key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo replace error: %w", err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, key string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo delete error: %w", err)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

