package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/noah-isme/college-erp-api/internal/models"
)

// MongoDocumentRepository persists collection documents in MongoDB.
type MongoDocumentRepository struct {
	db       *mongo.Database
	observer QueryObserver
}

// NewMongoDocumentRepository constructs a MongoDocumentRepository.
func NewMongoDocumentRepository(db *mongo.Database, observer QueryObserver) *MongoDocumentRepository {
	return &MongoDocumentRepository{db: db, observer: observer}
}

// EnsureIndexes creates the unique indexes and the creation-time index of every collection.
func (r *MongoDocumentRepository) EnsureIndexes(ctx context.Context) error {
	for _, name := range models.CollectionNames {
		indexes := []mongo.IndexModel{{
			Keys:    bson.D{{Key: models.FieldCreatedAt, Value: -1}, {Key: models.FieldID, Value: -1}},
			Options: options.Index().SetName(name + "_created_at_idx"),
		}}
		for _, unique := range uniqueIndexes[name] {
			keys := bson.D{}
			for _, field := range unique.Fields {
				keys = append(keys, bson.E{Key: field, Value: 1})
			}
			indexes = append(indexes, mongo.IndexModel{
				Keys:    keys,
				Options: options.Index().SetName(unique.Name).SetUnique(true),
			})
		}
		if _, err := r.db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("create indexes for %s: %w", name, err)
		}
	}
	return nil
}

// Ping verifies the primary is reachable.
func (r *MongoDocumentRepository) Ping(ctx context.Context) error {
	defer observe(r.observer, "mongo.ping", time.Now())
	if err := r.db.Client().Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping mongo: %w", err)
	}
	return nil
}

// Find returns one page of documents ordered by creation time, newest first.
func (r *MongoDocumentRepository) Find(ctx context.Context, collection string, opts models.FindOptions) ([]models.Document, error) {
	defer observe(r.observer, "mongo.find", time.Now())
	findOpts := options.Find().
		SetSort(bson.D{{Key: models.FieldCreatedAt, Value: -1}, {Key: models.FieldID, Value: -1}}).
		SetSkip(int64(opts.Skip))
	if opts.Limit > 0 {
		findOpts.SetLimit(int64(opts.Limit))
	}
	filter, err := toMongoFilter(opts.Filter)
	if err != nil {
		return nil, err
	}
	cursor, err := r.db.Collection(collection).Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	return decodeAll(ctx, collection, cursor)
}

// Count returns the number of documents matching filter.
func (r *MongoDocumentRepository) Count(ctx context.Context, collection string, filter models.Filter) (int64, error) {
	defer observe(r.observer, "mongo.count", time.Now())
	query, err := toMongoFilter(filter)
	if err != nil {
		return 0, err
	}
	total, err := r.db.Collection(collection).CountDocuments(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return total, nil
}

// FindByID fetches a single document by identifier.
func (r *MongoDocumentRepository) FindByID(ctx context.Context, collection, id string) (models.Document, error) {
	return r.FindOne(ctx, collection, models.Filter{models.FieldID: id})
}

// FindOne fetches the newest document matching filter.
func (r *MongoDocumentRepository) FindOne(ctx context.Context, collection string, filter models.Filter) (models.Document, error) {
	defer observe(r.observer, "mongo.find_one", time.Now())
	query, err := toMongoFilter(filter)
	if err != nil {
		return nil, err
	}
	var raw bson.M
	err = r.db.Collection(collection).
		FindOne(ctx, query, options.FindOne().SetSort(bson.D{{Key: models.FieldCreatedAt, Value: -1}})).
		Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("find one %s: %w", collection, err)
	}
	return fromBSON(raw), nil
}

// FindByIDs fetches every document whose identifier is listed. Unknown ids are skipped.
func (r *MongoDocumentRepository) FindByIDs(ctx context.Context, collection string, ids []string) ([]models.Document, error) {
	if len(ids) == 0 {
		return []models.Document{}, nil
	}
	defer observe(r.observer, "mongo.find_by_ids", time.Now())
	values := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		values = append(values, toObjectID(id))
	}
	cursor, err := r.db.Collection(collection).Find(ctx, bson.M{models.FieldID: bson.M{"$in": values}})
	if err != nil {
		return nil, fmt.Errorf("find %s by ids: %w", collection, err)
	}
	return decodeAll(ctx, collection, cursor)
}

// Insert stores a new document and returns it with identifier and timestamps.
func (r *MongoDocumentRepository) Insert(ctx context.Context, collection string, doc models.Document) (models.Document, error) {
	defer observe(r.observer, "mongo.insert", time.Now())
	stored := doc.Clone()
	delete(stored, models.FieldID)
	now := time.Now().UTC()
	stored[models.FieldCreatedAt] = now
	stored[models.FieldUpdatedAt] = now

	result, err := r.db.Collection(collection).InsertOne(ctx, toBSON(stored))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.ErrDuplicateKey
		}
		return nil, fmt.Errorf("insert %s: %w", collection, err)
	}
	stored[models.FieldID] = fromBSONValue(result.InsertedID)
	return stored, nil
}

// Update sets fields on the document matching filter and returns the updated document.
// The filter acts as a guard: when nothing matches, ErrDocumentNotFound is returned.
func (r *MongoDocumentRepository) Update(ctx context.Context, collection string, filter models.Filter, fields models.Document) (models.Document, error) {
	defer observe(r.observer, "mongo.update", time.Now())
	query, err := toMongoFilter(filter)
	if err != nil {
		return nil, err
	}
	set := fields.Clone()
	delete(set, models.FieldID)
	delete(set, models.FieldCreatedAt)
	set[models.FieldUpdatedAt] = time.Now().UTC()

	var raw bson.M
	err = r.db.Collection(collection).
		FindOneAndUpdate(ctx, query, bson.M{"$set": toBSON(set)}, options.FindOneAndUpdate().SetReturnDocument(options.After)).
		Decode(&raw)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, models.ErrDocumentNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, models.ErrDuplicateKey
		}
		return nil, fmt.Errorf("update %s: %w", collection, err)
	}
	return fromBSON(raw), nil
}

// Upsert replaces the fields of the document matching filter, inserting it when absent.
func (r *MongoDocumentRepository) Upsert(ctx context.Context, collection string, filter models.Filter, doc models.Document) (models.Document, error) {
	defer observe(r.observer, "mongo.upsert", time.Now())
	query, err := toMongoFilter(filter)
	if err != nil {
		return nil, err
	}
	set := doc.Clone()
	delete(set, models.FieldID)
	delete(set, models.FieldCreatedAt)
	now := time.Now().UTC()
	set[models.FieldUpdatedAt] = now

	update := bson.M{
		"$set":         toBSON(set),
		"$setOnInsert": bson.M{models.FieldCreatedAt: now},
	}
	var raw bson.M
	err = r.db.Collection(collection).
		FindOneAndUpdate(ctx, query, update, options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)).
		Decode(&raw)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.ErrDuplicateKey
		}
		return nil, fmt.Errorf("upsert %s: %w", collection, err)
	}
	return fromBSON(raw), nil
}

// DeleteAll empties a collection.
func (r *MongoDocumentRepository) DeleteAll(ctx context.Context, collection string) error {
	defer observe(r.observer, "mongo.delete_all", time.Now())
	if _, err := r.db.Collection(collection).DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear %s: %w", collection, err)
	}
	return nil
}

func decodeAll(ctx context.Context, collection string, cursor *mongo.Cursor) ([]models.Document, error) {
	var raws []bson.M
	if err := cursor.All(ctx, &raws); err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}
	docs := make([]models.Document, 0, len(raws))
	for _, raw := range raws {
		docs = append(docs, fromBSON(raw))
	}
	return docs, nil
}

func toMongoFilter(filter models.Filter) (bson.M, error) {
	query := bson.M{}
	for key, value := range filter {
		if key == models.FieldID {
			switch id := value.(type) {
			case string:
				query[key] = toObjectID(id)
			case models.Ref:
				query[key] = toObjectID(string(id))
			default:
				return nil, fmt.Errorf("filter on %s expects a string id", models.FieldID)
			}
			continue
		}
		switch v := value.(type) {
		case models.Range:
			bounds := bson.M{}
			if v.Min != nil {
				bounds["$gte"] = *v.Min
			}
			if v.Max != nil {
				bounds["$lte"] = *v.Max
			}
			if len(bounds) > 0 {
				query[key] = bounds
			}
		case models.Contains:
			query[key] = primitive.Regex{Pattern: regexp.QuoteMeta(string(v)), Options: "i"}
		default:
			query[key] = toBSONValue(value)
		}
	}
	return query, nil
}

// toObjectID keeps ids that are not ObjectID hex strings as plain strings so lookups miss instead of failing.
func toObjectID(id string) interface{} {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return id
	}
	return oid
}

func toBSON(doc models.Document) bson.M {
	out := make(bson.M, len(doc))
	for key, value := range doc {
		out[key] = toBSONValue(value)
	}
	return out
}

func toBSONValue(value interface{}) interface{} {
	switch v := value.(type) {
	case models.Ref:
		return toObjectID(string(v))
	case models.Document:
		return toBSON(v)
	case map[string]interface{}:
		return toBSON(v)
	case []interface{}:
		out := make(bson.A, 0, len(v))
		for _, item := range v {
			out = append(out, toBSONValue(item))
		}
		return out
	case []models.Document:
		out := make(bson.A, 0, len(v))
		for _, item := range v {
			out = append(out, toBSON(item))
		}
		return out
	}
	return value
}

func fromBSON(raw bson.M) models.Document {
	doc := make(models.Document, len(raw))
	for key, value := range raw {
		doc[key] = fromBSONValue(value)
	}
	return doc
}

func fromBSONValue(value interface{}) interface{} {
	switch v := value.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case primitive.DateTime:
		return v.Time().UTC()
	case primitive.M:
		out := make(map[string]interface{}, len(v))
		for key, item := range v {
			out[key] = fromBSONValue(item)
		}
		return out
	case primitive.D:
		out := make(map[string]interface{}, len(v))
		for _, elem := range v {
			out[elem.Key] = fromBSONValue(elem.Value)
		}
		return out
	case primitive.A:
		out := make([]interface{}, 0, len(v))
		for _, item := range v {
			out = append(out, fromBSONValue(item))
		}
		return out
	}
	return value
}
