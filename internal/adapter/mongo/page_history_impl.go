package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
	"github.com/fullstack0516/express-digital-asset-backend/internal/repository"
)

type PageHistoryRepoImpl struct {
	coll *mongo.Collection
}

func NewPageHistoryRepo(db *mongo.Database) *PageHistoryRepoImpl {
	return &PageHistoryRepoImpl{coll: db.Collection(historyCollection)}
}

func (r *PageHistoryRepoImpl) FindByUserAndPage(ctx context.Context, userUID, pageUID string) (*entity.PageHistory, error) {
	var doc historyDoc
	opts := options.FindOne().SetSort(bson.D{{Key: "createdIso", Value: 1}})
	err := r.coll.FindOne(ctx, bson.M{"userUid": userUID, "pageUid": pageUID}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &entity.PageHistory{
		UID:                doc.UID,
		UserUID:            doc.UserUID,
		PageUID:            doc.PageUID,
		NumberOfVisits:     doc.NumberOfVisits,
		CreatedIso:         doc.CreatedIso.UTC(),
		LastUpdateIso:      doc.LastUpdateIso.UTC(),
		LastPagePublishIso: utcPtr(doc.LastPagePublishIso),
	}, nil
}

func (r *PageHistoryRepoImpl) Create(ctx context.Context, h *entity.PageHistory) error {
	_, err := r.coll.InsertOne(ctx, historyDoc(*h))
	return err
}

func (r *PageHistoryRepoImpl) RecordRevisit(ctx context.Context, uid string, at time.Time, publishIso *time.Time) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"uid": uid}, revisitUpdate(at, publishIso))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
