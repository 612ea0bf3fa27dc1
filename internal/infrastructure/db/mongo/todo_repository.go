package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sandesh007711/todoList/internal/core/domain"
	"github.com/Sandesh007711/todoList/internal/core/ports"
)

const collectionTodos = "todos"

// TodoRepository implements ports.TodoRepository on a Mongo collection.
// Every filter includes user_id, so a todo under another owner decodes to
// the same ErrNoDocuments as a missing one.
type TodoRepository struct {
	col *mongo.Collection
}

func NewTodoRepository(db *mongo.Database) *TodoRepository {
	return &TodoRepository{col: db.Collection(collectionTodos)}
}

type todoDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	Text        string             `bson:"text"`
	Completed   bool               `bson:"completed"`
	CompletedAt *time.Time         `bson:"completed_at,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (d *todoDoc) toDomain() *domain.Todo {
	todo := &domain.Todo{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		Text:      d.Text,
		Completed: d.Completed,
		CreatedAt: d.CreatedAt.UTC(),
	}
	if d.CompletedAt != nil {
		at := d.CompletedAt.UTC()
		todo.CompletedAt = &at
	}
	return todo
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := todoDoc{
		UserID:    todo.UserID,
		Text:      todo.Text,
		Completed: todo.Completed,
		CreatedAt: todo.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Todo, error) {
	filter := bson.M{"user_id": ownerID}
	sort := bson.D{{Key: "created_at", Value: -1}}
	return r.find(ctx, filter, sort)
}

func (r *TodoRepository) FindByID(ctx context.Context, ownerID, id string) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTodoNotFound
	}

	var doc todoDoc
	err = r.col.FindOne(ctx, bson.M{"_id": oid, "user_id": ownerID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// Update applies patch as a single FindOneAndUpdate. The update is an
// aggregation pipeline so the completion stamp is decided atomically against
// the stored completed flag: a pending todo flipping to completed gets now,
// an already completed todo keeps its original stamp, and completed=false
// always clears it.
func (r *TodoRepository) Update(ctx context.Context, ownerID, id string, patch ports.TodoPatch, now time.Time) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTodoNotFound
	}

	set := updateSet(patch, now)
	if len(set) == 0 {
		return r.FindByID(ctx, ownerID, id)
	}

	update := mongo.Pipeline{{{Key: "$set", Value: set}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc todoDoc
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid, "user_id": ownerID}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// updateSet builds the $set stage for the pipeline update. In a pipeline
// every value is an aggregation expression, so the user-supplied text must
// go through $literal: without it a text like "$completed" would be parsed
// as a field path instead of stored verbatim. The $completed/$completed_at
// references inside the $cond are the intentional field reads.
func updateSet(patch ports.TodoPatch, now time.Time) bson.M {
	set := bson.M{}
	if patch.Text != nil {
		set["text"] = bson.M{"$literal": *patch.Text}
	}
	if patch.Completed != nil {
		set["completed"] = *patch.Completed
		if *patch.Completed {
			set["completed_at"] = bson.M{"$cond": bson.A{
				"$completed",
				"$completed_at",
				primitive.NewDateTimeFromTime(now),
			}}
		} else {
			set["completed_at"] = nil
		}
	}
	return set
}

func (r *TodoRepository) Delete(ctx context.Context, ownerID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTodoNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "user_id": ownerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func (r *TodoRepository) ListCompleted(ctx context.Context, ownerID string) ([]*domain.Todo, error) {
	filter := bson.M{"user_id": ownerID, "completed": true}
	sort := bson.D{{Key: "completed_at", Value: -1}}
	return r.find(ctx, filter, sort)
}

type historyItemDoc struct {
	ID          string    `bson:"id"`
	Text        string    `bson:"text"`
	CompletedAt time.Time `bson:"completed_at"`
}

type historyBucketDoc struct {
	Date  string           `bson:"date"`
	Todos []historyItemDoc `bson:"todos"`
	Count int64            `bson:"count"`
}

// HistoryByDate groups completed todos by UTC calendar day with a single
// aggregation pipeline. The $sort before $group makes $push emit todos
// newest first inside each bucket.
func (r *TodoRepository) HistoryByDate(ctx context.Context, ownerID string, hr ports.HistoryRange) ([]ports.HistoryBucket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"user_id":      ownerID,
			"completed":    true,
			"completed_at": bson.M{"$gte": hr.Start, "$lte": hr.End},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "completed_at", Value: -1}}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format":   "%Y-%m-%d",
				"date":     "$completed_at",
				"timezone": "UTC",
			}},
			"todos": bson.M{"$push": bson.M{
				"id":           bson.M{"$toString": "$_id"},
				"text":         "$text",
				"completed_at": "$completed_at",
			}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: -1}}}},
		{{Key: "$project", Value: bson.M{
			"_id":   0,
			"date":  "$_id",
			"todos": 1,
			"count": 1,
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []historyBucketDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	buckets := make([]ports.HistoryBucket, 0, len(docs))
	for _, d := range docs {
		items := make([]ports.HistoryItem, 0, len(d.Todos))
		for _, item := range d.Todos {
			items = append(items, ports.HistoryItem{
				ID:          item.ID,
				Text:        item.Text,
				CompletedAt: item.CompletedAt.UTC(),
			})
		}
		buckets = append(buckets, ports.HistoryBucket{Date: d.Date, Todos: items, Count: d.Count})
	}
	return buckets, nil
}

// Stats counts the owner's todos in one $group pass.
func (r *TodoRepository) Stats(ctx context.Context, ownerID string) (ports.TodoStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": ownerID}}},
		{{Key: "$group", Value: bson.M{
			"_id":       nil,
			"total":     bson.M{"$sum": 1},
			"completed": bson.M{"$sum": bson.M{"$cond": bson.A{"$completed", 1, 0}}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return ports.TodoStats{}, err
	}
	defer cur.Close(ctx)

	var results []struct {
		Total     int64 `bson:"total"`
		Completed int64 `bson:"completed"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return ports.TodoStats{}, err
	}
	if len(results) == 0 {
		return ports.TodoStats{}, nil
	}

	return ports.TodoStats{
		TotalTodos:     results[0].Total,
		CompletedTodos: results[0].Completed,
		PendingTodos:   results[0].Total - results[0].Completed,
	}, nil
}

func (r *TodoRepository) find(ctx context.Context, filter bson.M, sort bson.D) ([]*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	todos := []*domain.Todo{}
	for cur.Next(ctx) {
		var doc todoDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		todos = append(todos, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return todos, nil
}

// EnsureIndexes creates the indexes backing the list, history, and stats
// queries.
func (r *TodoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "completed", Value: 1}, {Key: "completed_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
