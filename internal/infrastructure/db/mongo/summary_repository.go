package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/newsgpt/newsgpt-api/internal/core/domain"
)

const collectionSummaries = "summaries"

type SummaryRepository struct {
	col *mongo.Collection
}

func NewSummaryRepository(db *mongo.Database) *SummaryRepository {
	return &SummaryRepository{col: db.Collection(collectionSummaries)}
}

type mongoSummary struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	OriginalText string             `bson:"originalText"`
	SummaryText  string             `bson:"summaryText"`
	User         primitive.ObjectID `bson:"user"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func (m mongoSummary) toDomain() domain.Summary {
	return domain.Summary{
		ID:           m.ID.Hex(),
		OriginalText: m.OriginalText,
		SummaryText:  m.SummaryText,
		OwnerID:      m.User.Hex(),
		CreatedAt:    m.CreatedAt,
	}
}

func (r *SummaryRepository) Create(ctx context.Context, s *domain.Summary) (*domain.Summary, error) {
	owner, err := objectID(s.OwnerID)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoSummary{
		OriginalText: s.OriginalText,
		SummaryText:  s.SummaryText,
		User:         owner,
		CreatedAt:    mongoTime(s.CreatedAt),
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert summary: %w", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	out := doc.toDomain()
	return &out, nil
}

func (r *SummaryRepository) FindByID(ctx context.Context, id string) (*domain.Summary, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoSummary
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSummaryNotFound
		}
		return nil, fmt.Errorf("find summary: %w", err)
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *SummaryRepository) List(ctx context.Context, ownerID string, q domain.PageQuery) ([]domain.Summary, int64, error) {
	filter := bson.M{}
	if ownerID != "" {
		owner, err := objectID(ownerID)
		if err != nil {
			return nil, 0, err
		}
		filter["user"] = owner
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs, total, err := findPage[mongoSummary](ctx, r.col, filter, q)
	if err != nil {
		return nil, 0, fmt.Errorf("list summaries: %w", err)
	}
	out := make([]domain.Summary, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, total, nil
}

func (r *SummaryRepository) Delete(ctx context.Context, id, ownerID string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	filter := bson.M{"_id": oid}
	if ownerID != "" {
		owner, err := objectID(ownerID)
		if err != nil {
			return err
		}
		filter["user"] = owner
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete summary: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSummaryNotFound
	}
	return nil
}

func (r *SummaryRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *SummaryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
