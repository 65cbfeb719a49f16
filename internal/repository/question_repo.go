package repository

import (
	"context"
	"time"

	"deslimste/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// QuestionRepo persists the admin-curated question superset
type QuestionRepo interface {
	Insert(ctx context.Context, q *model.Question) error
	GetByID(ctx context.Context, id string) (*model.Question, error)
	ListByType(ctx context.Context, rt model.RoundType) ([]model.Question, error)
	ListAll(ctx context.Context) ([]model.Question, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type questionRepo struct {
	collection *mongo.Collection
}

// NewQuestionRepo creates a Mongo-backed question repository
func NewQuestionRepo(client *mongo.Client) QuestionRepo {
	db := client.Database("deslimste")
	return &questionRepo{
		collection: db.Collection("questions"),
	}
}

func (r *questionRepo) Insert(ctx context.Context, q *model.Question) error {
	if q.Timestamp.IsZero() {
		q.Timestamp = time.Now()
	}
	doc := bson.M{
		"type":        q.Type,
		"hints":       q.Hints,
		"options":     q.Options,
		"answer":      q.Answer,
		"answer1":     q.Answer1,
		"answer2":     q.Answer2,
		"answer3":     q.Answer3,
		"wordOptions": q.WordOptions,
		"question":    q.Question,
		"subject":     q.Subject,
		"facts":       q.Facts,
		"factOptions": q.FactOptions,
		"category":    q.Category,
		"answers":     q.Answers,
		"itemOptions": q.ItemOptions,
		"timestamp":   q.Timestamp,
	}
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		q.ID = oid.Hex()
	}
	return nil
}

func (r *questionRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var q question
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&q)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return q.toModel(), nil
}

func (r *questionRepo) ListByType(ctx context.Context, rt model.RoundType) ([]model.Question, error) {
	return r.list(ctx, bson.M{"type": rt})
}

func (r *questionRepo) ListAll(ctx context.Context) ([]model.Question, error) {
	return r.list(ctx, bson.M{})
}

func (r *questionRepo) list(ctx context.Context, filter bson.M) ([]model.Question, error) {
	opts := options.Find().SetSort(bson.M{"timestamp": 1})
	cur, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []model.Question
	for cur.Next(ctx) {
		var q question
		if err := cur.Decode(&q); err != nil {
			return nil, err
		}
		out = append(out, *q.toModel())
	}
	return out, cur.Err()
}

func (r *questionRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r *questionRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// question is the Mongo document shape; ObjectIDs map to hex strings on
// the model.
type question struct {
	ID primitive.ObjectID `bson:"_id,omitempty"`

	Type        model.RoundType `bson:"type"`
	Hints       []string        `bson:"hints,omitempty"`
	Options     []string        `bson:"options,omitempty"`
	Answer      string          `bson:"answer,omitempty"`
	Answer1     string          `bson:"answer1,omitempty"`
	Answer2     string          `bson:"answer2,omitempty"`
	Answer3     string          `bson:"answer3,omitempty"`
	WordOptions []string        `bson:"wordOptions,omitempty"`
	Question    string          `bson:"question,omitempty"`
	Subject     string          `bson:"subject,omitempty"`
	Facts       []string        `bson:"facts,omitempty"`
	FactOptions []string        `bson:"factOptions,omitempty"`
	Category    string          `bson:"category,omitempty"`
	Answers     []string        `bson:"answers,omitempty"`
	ItemOptions []string        `bson:"itemOptions,omitempty"`
	Timestamp   time.Time       `bson:"timestamp"`
}

func (q *question) toModel() *model.Question {
	return &model.Question{
		ID:          q.ID.Hex(),
		Type:        q.Type,
		Hints:       q.Hints,
		Options:     q.Options,
		Answer:      q.Answer,
		Answer1:     q.Answer1,
		Answer2:     q.Answer2,
		Answer3:     q.Answer3,
		WordOptions: q.WordOptions,
		Question:    q.Question,
		Subject:     q.Subject,
		Facts:       q.Facts,
		FactOptions: q.FactOptions,
		Category:    q.Category,
		Answers:     q.Answers,
		ItemOptions: q.ItemOptions,
		Timestamp:   q.Timestamp,
	}
}
