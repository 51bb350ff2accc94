package todos

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

	apperrors "github.com/xyz-asif/todoapp/pkg/errors"
)

const counterKey = "todos"

// MongoRepository stores todos in a collection with integer ids drawn from a
// counters document, so ids are never reused.
type MongoRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

func NewMongoRepository(ctx context.Context, db *mongo.Database) (*MongoRepository, error) {
	collection := db.Collection("todos")

	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "completed", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "priority", Value: 1}}},
		{Keys: bson.D{{Key: "dueDate", Value: 1}, {Key: "completed", Value: 1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create todo indexes: %w", err)
	}

	return &MongoRepository{
		collection: collection,
		counters:   db.Collection("counters"),
	}, nil
}

func (r *MongoRepository) FindAll(ctx context.Context) ([]Todo, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoRepository) FindByID(ctx context.Context, id int64) (*Todo, error) {
	var todo Todo
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&todo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: todo %d", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return &todo, nil
}

func (r *MongoRepository) Save(ctx context.Context, todo *Todo) error {
	now := time.Now().UTC()

	if todo.ID == 0 {
		id, err := r.nextID(ctx)
		if err != nil {
			return err
		}
		todo.ID = id
		todo.CreatedAt = now
		todo.UpdatedAt = now

		if _, err := r.collection.InsertOne(ctx, todo); err != nil {
			todo.ID = 0
			return err
		}
		return nil
	}

	todo.UpdatedAt = now
	set := bson.M{
		"title":     todo.Title,
		"completed": todo.Completed,
		"priority":  todo.Priority,
		"updatedAt": todo.UpdatedAt,
	}
	unset := bson.M{}
	optional := map[string]interface{}{
		"description": todo.Description,
		"category":    todo.Category,
		"dueDate":     todo.DueDate,
	}
	for field, value := range optional {
		if isNilPointer(value) {
			unset[field] = ""
		} else {
			set[field] = value
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": todo.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: todo %d", apperrors.ErrNotFound, todo.ID)
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, todo *Todo) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": todo.ID})
	return err
}

func (r *MongoRepository) FindByCompleted(ctx context.Context, completed bool) ([]Todo, error) {
	return r.find(ctx, bson.M{"completed": completed})
}

func (r *MongoRepository) FindByTitleContainingIgnoreCase(ctx context.Context, term string) ([]Todo, error) {
	return r.find(ctx, bson.M{
		"title": primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"},
	})
}

func (r *MongoRepository) FindByCategory(ctx context.Context, category string) ([]Todo, error) {
	return r.find(ctx, bson.M{"category": category})
}

func (r *MongoRepository) FindByPriority(ctx context.Context, priority Priority) ([]Todo, error) {
	return r.find(ctx, bson.M{"priority": priority})
}

func (r *MongoRepository) FindByDueDateBeforeAndCompletedFalse(ctx context.Context, date Date) ([]Todo, error) {
	// dueDate is stored as a YYYY-MM-DD string; $lt on strings only matches string values.
	return r.find(ctx, bson.M{
		"dueDate":   bson.M{"$lt": date.String()},
		"completed": false,
	})
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M) ([]Todo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var todos []Todo
	if err := cursor.All(ctx, &todos); err != nil {
		return nil, err
	}

	if todos == nil {
		todos = []Todo{}
	}

	return todos, nil
}

func (r *MongoRepository) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": counterKey},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate todo id: %w", err)
	}
	return counter.Seq, nil
}

func isNilPointer(v interface{}) bool {
	switch p := v.(type) {
	case *string:
		return p == nil
	case *Date:
		return p == nil
	default:
		return v == nil
	}
}
