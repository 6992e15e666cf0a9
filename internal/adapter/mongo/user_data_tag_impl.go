package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
	"github.com/fullstack0516/express-digital-asset-backend/internal/repository"
)

type UserDataTagRepoImpl struct {
	coll *mongo.Collection
}

func NewUserDataTagRepo(db *mongo.Database) *UserDataTagRepoImpl {
	return &UserDataTagRepoImpl{coll: db.Collection(userTagsCollection)}
}

func (r *UserDataTagRepoImpl) InsertMany(ctx context.Context, tags []entity.UserDataTag) error {
	if len(tags) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(tags))
	for _, t := range tags {
		docs = append(docs, userTagDoc(t))
	}
	_, err := r.coll.InsertMany(ctx, docs)
	return err
}

func (r *UserDataTagRepoImpl) FindRecent(ctx context.Context, q repository.UserDataTagQuery) ([]entity.UserDataTag, error) {
	filter, opts := recentTagsQuery(q)
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []userTagDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	tags := make([]entity.UserDataTag, 0, len(docs))
	for _, d := range docs {
		t := entity.UserDataTag(d)
		t.TagCreatedIso = t.TagCreatedIso.UTC()
		t.TagRecordedForUserIso = t.TagRecordedForUserIso.UTC()
		tags = append(tags, t)
	}
	return tags, nil
}

func (r *UserDataTagRepoImpl) DeleteByCategory(ctx context.Context, userUID, category string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, categoryFilter(userUID, category))
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *UserDataTagRepoImpl) CountForUser(ctx context.Context, userUID string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"userUid": userUID})
}
