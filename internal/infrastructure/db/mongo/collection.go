package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/greenfield-farms/farm-manager/internal/core/domain"
	"github.com/greenfield-farms/farm-manager/internal/core/ports"
)

var registry = Registry()

// Collection is a generic ports.RowStore over one MongoDB collection. Rows use
// string UUID ids. Fields named in joinFields are populated by $lookup on
// read and stripped on write.
type Collection[T any] struct {
	name       string
	col        *mongo.Collection
	joinFields []string
	now        func() time.Time
}

func NewCollection[T any](db *mongo.Database, name string, joinFields ...string) *Collection[T] {
	return &Collection[T]{
		name:       name,
		col:        db.Collection(name),
		joinFields: joinFields,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Select runs q as an aggregation so joins and filters share one round trip.
func (c *Collection[T]) Select(ctx context.Context, q ports.Query) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := c.col.Aggregate(ctx, buildPipeline(q))
	if err != nil {
		return nil, domain.NewStoreError("select", c.name, err)
	}
	defer cur.Close(ctx)

	rows := make([]T, 0)
	if err := cur.All(ctx, &rows); err != nil {
		return nil, domain.NewStoreError("select", c.name, err)
	}
	return rows, nil
}

func buildPipeline(q ports.Query) mongo.Pipeline {
	pipeline := mongo.Pipeline{}
	if len(q.Eq) > 0 {
		match := bson.M{}
		for k, v := range q.Eq {
			match[k] = v
		}
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	for _, j := range q.Joins {
		pipeline = append(pipeline,
			bson.D{{Key: "$lookup", Value: bson.M{
				"from":         j.From,
				"localField":   j.LocalField,
				"foreignField": "_id",
				"as":           j.As,
			}}},
			bson.D{{Key: "$unwind", Value: bson.M{
				"path":                       "$" + j.As,
				"preserveNullAndEmptyArrays": true,
			}}},
		)
	}
	if q.SortBy != "" {
		dir := 1
		if q.Desc {
			dir = -1
		}
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: q.SortBy, Value: dir}, {Key: "_id", Value: 1}}}})
	}
	if q.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: q.Limit}})
	}
	return pipeline
}

// Insert stores row under a fresh id and returns it as stored.
func (c *Collection[T]) Insert(ctx context.Context, row T) (T, error) {
	var zero T
	doc, err := c.toDoc(row)
	if err != nil {
		return zero, domain.NewStoreError("insert", c.name, err)
	}

	now := c.now()
	id := uuid.NewString()
	doc["_id"] = id
	doc["created_at"] = now
	doc["updated_at"] = now

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := c.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return zero, domain.ErrDuplicate
		}
		return zero, domain.NewStoreError("insert", c.name, err)
	}

	// fetch back so the caller sees exactly what was stored
	var out T
	if err := c.col.FindOne(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		return zero, domain.NewStoreError("insert", c.name, err)
	}
	return out, nil
}

// Update applies patch to the row with id. A field map is merged with $set;
// a row value replaces every field except _id and created_at, so cleared
// optional fields are removed.
func (c *Collection[T]) Update(ctx context.Context, id string, patch any) (T, error) {
	var zero T
	doc, err := c.toDoc(patch)
	if err != nil {
		return zero, domain.NewStoreError("update", c.name, err)
	}
	delete(doc, "_id")
	delete(doc, "created_at")
	doc["updated_at"] = c.now()

	var update any
	switch patch.(type) {
	case map[string]any, bson.M:
		update = bson.M{"$set": doc}
	default:
		update = mongo.Pipeline{{{Key: "$replaceWith", Value: bson.M{
			"$mergeObjects": bson.A{
				bson.M{"_id": "$_id", "created_at": "$created_at"},
				bson.M{"$literal": doc},
			},
		}}}}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out T
	err = c.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&out)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return zero, domain.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return zero, domain.ErrDuplicate
	case err != nil:
		return zero, domain.NewStoreError("update", c.name, err)
	}
	return out, nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := c.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return domain.NewStoreError("delete", c.name, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// toDoc encodes v with the decimal-aware registry and drops joined fields.
func (c *Collection[T]) toDoc(v any) (bson.M, error) {
	raw, err := bson.MarshalWithRegistry(registry, v)
	if err != nil {
		return nil, err
	}
	doc := bson.M{}
	if err := bson.UnmarshalWithRegistry(registry, raw, &doc); err != nil {
		return nil, err
	}
	for _, f := range c.joinFields {
		delete(doc, f)
	}
	return doc, nil
}

// EnsureIndexes creates the unique indexes rows rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	specs := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		domain.CollectionContent: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		domain.CollectionAnimals: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "species", Value: 1}}},
		},
		domain.CollectionHealthRecords: {
			{Keys: bson.D{{Key: "animal_id", Value: 1}}},
			{Keys: bson.D{{Key: "next_due_date", Value: 1}}},
		},
		domain.CollectionTransactions: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "type", Value: 1}}},
		},
	}
	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return domain.NewStoreError("create indexes", name, err)
		}
	}
	return nil
}
