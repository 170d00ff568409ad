package db

import (
	"context"

	"CareTriage/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the document store the record service writes through. Documents
// live in named collections and are keyed by a store-generated identifier.
type Store interface {
	Name() string
	// Insert stores doc and returns the generated identifier.
	Insert(ctx context.Context, collection string, doc interface{}) (string, error)
	// FindByID decodes the document with the given identifier into out.
	// It fails with util.ErrInvalidIdentifier for a malformed id and
	// util.ErrNotFound when nothing matches.
	FindByID(ctx context.Context, collection, id string, out interface{}) error
	// FindMatching decodes every document matching q into out, a pointer to a slice.
	FindMatching(ctx context.Context, collection string, q Query, out interface{}) error
	Ping(ctx context.Context) error
	ListCollections(ctx context.Context) ([]string, error)
}

// Query is a filter in mongo query syntax plus optional sort and limit.
// Supported operators: equality, $or, $and, $regex/$options, $eq, $ne.
type Query struct {
	Filter bson.M
	Sort   bson.D
	Limit  int64
}

// ParseID validates id against the ObjectID scheme.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, util.WrapError(util.InvalidIdentifier, util.INVALID_ID, err)
	}
	return oid, nil
}

// ValidID reports whether id is a well formed identifier.
func ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}
