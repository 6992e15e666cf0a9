package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
)

type BlacklistRepoImpl struct {
	coll *mongo.Collection
}

func NewBlacklistRepo(db *mongo.Database) *BlacklistRepoImpl {
	return &BlacklistRepoImpl{coll: db.Collection(blacklistCollection)}
}

func (r *BlacklistRepoImpl) Exists(ctx context.Context, userUID, category string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"userUid": userUID, "category": category}, options.Count().SetLimit(1))
	return n > 0, err
}

// Insert upserts so a concurrent duplicate does not fail on the unique index.
func (r *BlacklistRepoImpl) Insert(ctx context.Context, entry entity.BlacklistedDataCategory) error {
	filter := bson.M{"userUid": entry.UserUID, "category": entry.Category}
	_, err := r.coll.UpdateOne(ctx, filter, bson.M{"$setOnInsert": blacklistDoc(entry)}, options.Update().SetUpsert(true))
	return err
}

func (r *BlacklistRepoImpl) Delete(ctx context.Context, userUID, category string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"userUid": userUID, "category": category})
	return err
}

func (r *BlacklistRepoImpl) List(ctx context.Context, userUID string) ([]entity.BlacklistedDataCategory, error) {
	cur, err := r.coll.Find(ctx, bson.M{"userUid": userUID}, options.Find().SetSort(bson.D{{Key: "category", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []blacklistDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	entries := make([]entity.BlacklistedDataCategory, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, entity.BlacklistedDataCategory(d))
	}
	return entries, nil
}
