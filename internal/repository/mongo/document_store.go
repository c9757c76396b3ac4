// Package mongo binds domain.DocumentStore to MongoDB. Document ids are the hex
// form of the _id ObjectID; ids that are not ObjectIDs are matched as strings so
// documents created out of band with custom ids keep working.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"meetupticket/internal/domain"
)

const participantsUniqueIndex = "participants_email_event_uidx"

// DocumentStore implements domain.DocumentStore on a mongo database.
type DocumentStore struct {
	db *mongo.Database
}

func NewDocumentStore(db *mongo.Database) *DocumentStore {
	return &DocumentStore{db: db}
}

// Connect dials uri and returns the named database. An empty database falls back
// to the one in the connection string.
func Connect(ctx context.Context, uri, database string) (*mongo.Database, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, fmt.Errorf("parse mongodb uri: %w", err)
	}
	if database == "" {
		database = cs.Database
	}
	if database == "" {
		return nil, errors.New("mongodb database name is required")
	}

	client, err := mongo.Connect(ctx,
		options.Client().ApplyURI(uri),
		options.Client().SetConnectTimeout(10*time.Second),
		options.Client().SetServerSelectionTimeout(10*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client.Database(database), nil
}

// EnsureIndexes creates the unique (email, eventId) index on participants.
func (s *DocumentStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(domain.CollectionParticipants).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}, {Key: "eventId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(participantsUniqueIndex),
	})
	if err != nil {
		return fmt.Errorf("create participants index: %w", err)
	}
	return nil
}

func (s *DocumentStore) Find(ctx context.Context, collection string, filters []domain.Filter) ([]domain.Document, error) {
	filter := bson.D{}
	for _, f := range filters {
		if f.Op != domain.OpEqual {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFilter, f.Op)
		}
		filter = append(filter, bson.E{Key: f.Field, Value: f.Value})
	}

	cur, err := s.db.Collection(collection).Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, err
	}

	docs := make([]domain.Document, 0, len(raw))
	for _, m := range raw {
		doc, err := toDocument(m)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (domain.Document, error) {
	var m bson.M
	err := s.db.Collection(collection).FindOne(ctx, idFilter(id)).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Document{}, domain.ErrNotFound
		}
		return domain.Document{}, err
	}
	return toDocument(m)
}

func (s *DocumentStore) Insert(ctx context.Context, collection string, fields map[string]any) (string, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, fields)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrDuplicate
		}
		return "", err
	}
	return idString(res.InsertedID)
}

func (s *DocumentStore) UpdateByID(ctx context.Context, collection, id string, fields map[string]any) error {
	res, err := s.db.Collection(collection).UpdateOne(ctx, idFilter(id), bson.M{"$set": fields})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *DocumentStore) Increment(ctx context.Context, collection, id, field string, delta int) error {
	res, err := s.db.Collection(collection).UpdateOne(ctx, idFilter(id), bson.M{"$inc": bson.M{field: delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func idFilter(id string) bson.D {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.D{{Key: "_id", Value: oid}}
	}
	return bson.D{{Key: "_id", Value: id}}
}

func idString(v any) (string, error) {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex(), nil
	case string:
		return id, nil
	}
	return "", fmt.Errorf("%w: unsupported _id type %T", domain.ErrMalformedDocument, v)
}

func toDocument(m bson.M) (domain.Document, error) {
	id, err := idString(m["_id"])
	if err != nil {
		return domain.Document{}, err
	}
	fields := make(map[string]any, len(m))
	for k, v := range m {
		if k == "_id" {
			continue
		}
		fields[k] = normalize(v)
	}
	return domain.Document{ID: id, Fields: fields}, nil
}

// normalize converts BSON specific types into the plain Go values the typed
// repositories decode.
func normalize(v any) any {
	switch val := v.(type) {
	case primitive.M:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = normalize(e)
		}
		return out
	case primitive.D:
		out := make(map[string]any, len(val))
		for _, e := range val {
			out[e.Key] = normalize(e.Value)
		}
		return out
	case primitive.A:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = normalize(e)
		}
		return out
	case primitive.DateTime:
		return val.Time().UTC()
	case primitive.ObjectID:
		return val.Hex()
	}
	return v
}
