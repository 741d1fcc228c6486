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

	"github.com/newsgpt/newsgpt-api/internal/core/domain"
	"github.com/newsgpt/newsgpt-api/internal/core/ports"
)

const collectionArticles = "articles"

type ArticleRepository struct {
	col *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{col: db.Collection(collectionArticles)}
}

type mongoArticle struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Title      string             `bson:"title"`
	Body       string             `bson:"body"`
	Source     string             `bson:"source,omitempty"`
	Visibility string             `bson:"visibility"`
	Owner      primitive.ObjectID `bson:"owner"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

func (m mongoArticle) toDomain() domain.Article {
	return domain.Article{
		ID:         m.ID.Hex(),
		Title:      m.Title,
		Body:       m.Body,
		Source:     m.Source,
		Visibility: domain.Visibility(m.Visibility),
		OwnerID:    m.Owner.Hex(),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (r *ArticleRepository) Create(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	owner, err := objectID(a.OwnerID)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoArticle{
		Title:      a.Title,
		Body:       a.Body,
		Source:     a.Source,
		Visibility: string(a.Visibility),
		Owner:      owner,
		CreatedAt:  mongoTime(a.CreatedAt),
		UpdatedAt:  mongoTime(a.UpdatedAt),
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	out := doc.toDomain()
	return &out, nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id string) (*domain.Article, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoArticle
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("find article: %w", err)
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *ArticleRepository) List(ctx context.Context, f ports.ArticleFilter, q domain.PageQuery) ([]domain.Article, int64, error) {
	filter := bson.M{}
	if f.OwnerID != "" {
		owner, err := objectID(f.OwnerID)
		if err != nil {
			return nil, 0, err
		}
		filter["owner"] = owner
	}
	if f.PublicOnly {
		filter["visibility"] = string(domain.VisibilityPublic)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs, total, err := findPage[mongoArticle](ctx, r.col, filter, q)
	if err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}
	out := make([]domain.Article, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, total, nil
}

// Update applies the patch in a single findOneAndUpdate filtered by id and
// owner, so a concurrent ownership change can never be overwritten.
func (r *ArticleRepository) Update(ctx context.Context, id, ownerID string, p domain.ArticlePatch, updatedAt time.Time) (*domain.Article, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	owner, err := objectID(ownerID)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updatedAt": mongoTime(updatedAt)}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Body != nil {
		set["body"] = *p.Body
	}
	if p.Source != nil {
		set["source"] = *p.Source
	}
	if p.Visibility != nil {
		set["visibility"] = string(*p.Visibility)
	}

	var doc mongoArticle
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "owner": owner},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("update article: %w", err)
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id, ownerID string) error {
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
		filter["owner"] = owner
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

func (r *ArticleRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates the indexes serving owner listings and admin views.
func (r *ArticleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "visibility", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
