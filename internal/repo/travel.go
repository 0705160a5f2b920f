// Package repo contains all store access logic for the Time Travel API.
// Each resource has its own file with an interface and a MongoDB implementation.
// No business logic lives here, only queries and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pkordes/timetravel/internal/domain"
)

// collection is the subset of *mongo.Collection the travel repo uses.
// Integration tests pass a collection in a throwaway database.
type collection interface {
	FindOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) *mongo.SingleResult
	Find(ctx context.Context, filter any, opts ...*options.FindOptions) (*mongo.Cursor, error)
	CountDocuments(ctx context.Context, filter any, opts ...*options.CountOptions) (int64, error)
	InsertOne(ctx context.Context, document any, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	DeleteOne(ctx context.Context, filter any, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

// TravelRepo defines the persistence operations for Travels.
// The service layer depends on this interface, not the concrete MongoDB
// implementation, which allows the service to be unit-tested with a mock.
type TravelRepo interface {
	// FindByID retrieves a single travel by its identifier.
	// Returns domain.ErrNotFound if no travel with that ID exists.
	FindByID(ctx context.Context, id string) (domain.Travel, error)

	// FindByCodeAndDate retrieves the travel of a traveler on a date.
	// Returns domain.ErrNotFound if there is none.
	FindByCodeAndDate(ctx context.Context, code string, date time.Time) (domain.Travel, error)

	// FindPage returns one page of travels in insertion order and the total
	// number of stored travels.
	FindPage(ctx context.Context, p domain.PageRequest) ([]domain.Travel, int64, error)

	// Save inserts a new travel and returns it with the generated ID.
	// Returns domain.ErrDuplicate if the (pgi, date) unique index rejects it.
	Save(ctx context.Context, travel domain.Travel) (domain.Travel, error)

	// DeleteByID removes a travel. Deleting a missing travel is not an error.
	DeleteByID(ctx context.Context, id string) error
}

// travelDocument is the BSON layout of a stored travel.
type travelDocument struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Pgi   string             `bson:"pgi"`
	Place string             `bson:"place"`
	Date  time.Time          `bson:"date"`
}

// mongoTravelRepo is the MongoDB implementation of TravelRepo.
type mongoTravelRepo struct {
	coll collection
}

// NewTravelRepo constructs a TravelRepo backed by the provided collection.
// In production pass the *mongo.Collection configured by MONGO_COLLECTION.
func NewTravelRepo(coll collection) TravelRepo {
	return &mongoTravelRepo{coll: coll}
}

// FindByID looks a travel up by primary key.
func (r *mongoTravelRepo) FindByID(ctx context.Context, id string) (domain.Travel, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// No stored document can carry an id of that shape.
		return domain.Travel{}, fmt.Errorf("repo.TravelRepo.FindByID: %w", domain.ErrNotFound)
	}

	result, err := r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return domain.Travel{}, fmt.Errorf("repo.TravelRepo.FindByID: %w", err)
	}
	return result, nil
}

// FindByCodeAndDate looks a travel up by exact (pgi, date) match.
func (r *mongoTravelRepo) FindByCodeAndDate(ctx context.Context, code string, date time.Time) (domain.Travel, error) {
	filter := bson.D{
		{Key: "pgi", Value: code},
		{Key: "date", Value: domain.CalendarDate(date)},
	}

	result, err := r.findOne(ctx, filter)
	if err != nil {
		return domain.Travel{}, fmt.Errorf("repo.TravelRepo.FindByCodeAndDate: %w", err)
	}
	return result, nil
}

// FindPage returns one page ordered by _id ascending. ObjectIDs start with
// their creation second, so this is insertion order.
func (r *mongoTravelRepo) FindPage(ctx context.Context, p domain.PageRequest) ([]domain.Travel, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TravelRepo.FindPage: count: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(p.Offset()).
		SetLimit(int64(p.Size))

	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TravelRepo.FindPage: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []travelDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("repo.TravelRepo.FindPage: decode: %w", err)
	}

	travels := make([]domain.Travel, len(docs))
	for i, d := range docs {
		travels[i] = fromDocument(d)
	}
	return travels, total, nil
}

// Save inserts the travel; the driver generates the ObjectID.
func (r *mongoTravelRepo) Save(ctx context.Context, travel domain.Travel) (domain.Travel, error) {
	doc := toDocument(travel)
	doc.ID = primitive.NilObjectID

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.Travel{}, fmt.Errorf("repo.TravelRepo.Save: %w", domain.ErrDuplicate)
		}
		return domain.Travel{}, fmt.Errorf("repo.TravelRepo.Save: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return domain.Travel{}, fmt.Errorf("repo.TravelRepo.Save: unexpected inserted id type %T", res.InsertedID)
	}
	doc.ID = oid
	return fromDocument(doc), nil
}

// DeleteByID removes a travel by primary key. Missing ids are ignored.
func (r *mongoTravelRepo) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	if _, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}}); err != nil {
		return fmt.Errorf("repo.TravelRepo.DeleteByID: %w", err)
	}
	return nil
}

func (r *mongoTravelRepo) findOne(ctx context.Context, filter bson.D) (domain.Travel, error) {
	var doc travelDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Travel{}, domain.ErrNotFound
		}
		return domain.Travel{}, err
	}
	return fromDocument(doc), nil
}

// toDocument maps a domain.Travel onto its BSON layout.
// An empty or malformed ID maps to the nil ObjectID.
func toDocument(t domain.Travel) travelDocument {
	oid, _ := primitive.ObjectIDFromHex(t.ID)
	return travelDocument{
		ID:    oid,
		Pgi:   t.Code,
		Place: t.Place,
		Date:  domain.CalendarDate(t.Date),
	}
}

// fromDocument maps a stored document into a domain.Travel.
// BSON dates are instants; the calendar date is read in UTC.
func fromDocument(d travelDocument) domain.Travel {
	return domain.Travel{
		ID:    d.ID.Hex(),
		Code:  d.Pgi,
		Place: d.Place,
		Date:  domain.CalendarDate(d.Date.UTC()),
	}
}
