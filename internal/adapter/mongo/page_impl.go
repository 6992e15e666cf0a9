package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
	"github.com/fullstack0516/express-digital-asset-backend/internal/repository"
)

// PageRepoImpl stores pages in the pages collection.
type PageRepoImpl struct {
	coll *mongo.Collection
}

func NewPageRepo(db *mongo.Database) *PageRepoImpl {
	return &PageRepoImpl{coll: db.Collection(pagesCollection)}
}

func (r *PageRepoImpl) Get(ctx context.Context, uid string) (*entity.Page, error) {
	var doc storedPageDoc
	err := r.coll.FindOne(ctx, bson.M{"uid": uid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	page, err := doc.toEntity()
	if err != nil {
		return nil, fmt.Errorf("decode page %s: %w", uid, err)
	}
	return page, nil
}

func (r *PageRepoImpl) Create(ctx context.Context, p *entity.Page) error {
	_, err := r.coll.InsertOne(ctx, storedPageDoc{
		Page:             toPageDoc(p),
		TotalVisits:      p.TotalVisits,
		TotalImpressions: p.TotalImpressions,
	})
	return err
}

// Save sets every field except the counters.
func (r *PageRepoImpl) Save(ctx context.Context, p *entity.Page) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"uid": p.UID}, bson.M{"$set": toPageDoc(p)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PageRepoImpl) IncrementCounter(ctx context.Context, uid string, counter entity.PageCounter, delta int64) error {
	filter, update, err := counterUpdate(uid, counter, delta)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
