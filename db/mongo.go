package db

import (
	"context"
	"errors"
	"time"

	"CareTriage/util"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

// MongoStore is the Store backed by a MongoDB database.
type MongoStore struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
}

/*
* Build the client with the given uri
* The driver connects lazily so an unreachable server is reported by Ping, not here
 */
func Connect(ctx context.Context, uri, database string, timeout time.Duration) (*MongoStore, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Error().Err(err).Msg("Error while connecting to mongo")
		return nil, err
	}
	return NewMongoStore(client.Database(database), timeout), nil
}

// NewMongoStore wraps an already connected database handle.
func NewMongoStore(database *mongo.Database, timeout time.Duration) *MongoStore {
	return &MongoStore{client: database.Client(), db: database, timeout: timeout}
}

func (s *MongoStore) Name() string { return s.db.Name() }

// Database exposes the underlying handle for index migrations.
func (s *MongoStore) Database() *mongo.Database { return s.db }

func (s *MongoStore) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *MongoStore) Insert(ctx context.Context, collection string, doc interface{}) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.collection(collection).InsertOne(ctx, doc)
	if err != nil {
		log.Error().Err(err).Str("collection", collection).Msg("Error from InsertOne")
		return "", classify(err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	return oid.Hex(), nil
}

func (s *MongoStore) FindByID(ctx context.Context, collection, id string, out interface{}) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err = s.collection(collection).FindOne(ctx, bson.M{"_id": oid}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return util.ErrNotFound
	}
	if err != nil {
		log.Error().Err(err).Str("collection", collection).Msg("Error from FindOne")
		return classify(err)
	}
	return nil
}

func (s *MongoStore) FindMatching(ctx context.Context, collection string, q Query, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find()
	if len(q.Sort) > 0 {
		opts.SetSort(q.Sort)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	filter := q.Filter
	if filter == nil {
		filter = bson.M{}
	}
	cur, err := s.collection(collection).Find(ctx, filter, opts)
	if err != nil {
		log.Error().Err(err).Str("collection", collection).Msg("Error from Find")
		return classify(err)
	}
	if err := cur.All(ctx, out); err != nil {
		log.Error().Err(err).Str("collection", collection).Msg("Error while decoding cursor")
		return classify(err)
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.client.Ping(ctx, nil); err != nil {
		return classify(err)
	}
	return nil
}

func (s *MongoStore) ListCollections(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, classify(err)
	}
	return names, nil
}

// classify marks connectivity failures as StoreUnavailable.
func classify(err error) error {
	var sse topology.ServerSelectionError
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) ||
		errors.Is(err, mongo.ErrClientDisconnected) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.As(err, &sse) {
		return util.WrapError(util.StoreUnavailable, util.STORE_UNAVAILABLE, err)
	}
	return err
}
