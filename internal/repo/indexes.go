package repo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TravelCodeDateIndex is the name of the unique (pgi, date) index.
const TravelCodeDateIndex = "pgi_date_unique"

// EnsureIndexes creates the indexes the travel repo relies on. It is safe to
// call on every start: creating an identical existing index is a no-op.
//
// The unique (pgi, date) index closes the window between the paradox check
// and the insert, which two concurrent creates could otherwise both pass.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	model := mongo.IndexModel{
		Keys: bson.D{
			{Key: "pgi", Value: 1},
			{Key: "date", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName(TravelCodeDateIndex),
	}
	if _, err := coll.Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("repo.EnsureIndexes: %w", err)
	}
	return nil
}
