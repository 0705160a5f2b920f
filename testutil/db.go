// Package testutil provides shared helpers for integration tests.
// Helpers in this package skip automatically when required environment
// variables are not set, so unit tests can run without a running database.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewDatabase connects to the MongoDB deployment specified by the
// TEST_MONGO_URI environment variable and returns a fresh database with a
// unique name.
//
// The test is skipped automatically if TEST_MONGO_URI is not set, so
// integration tests are opt-in and never break CI environments that lack a DB.
// The database is dropped and the client disconnected when the test finishes,
// giving per-test isolation without any manual cleanup.
func NewDatabase(t *testing.T) *mongo.Database {
	t.Helper()

	uri := requireURI(t)
	ctx := context.Background()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("testutil.NewDatabase: connect: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		t.Fatalf("testutil.NewDatabase: ping: %v", err)
	}

	db := client.Database(fmt.Sprintf("timetravel_test_%d", time.Now().UnixNano()))

	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

// requireURI returns the TEST_MONGO_URI environment variable value,
// skipping the test if it is not set.
func requireURI(t *testing.T) string {
	t.Helper()
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set; skipping integration test")
	}
	return uri
}
