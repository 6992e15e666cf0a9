package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the lookup indexes used by the repositories.
// pageHistory keeps a non-unique (userUid, pageUid) index.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		pagesCollection: {
			{Keys: bson.D{{Key: "uid", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		historyCollection: {
			{Keys: bson.D{{Key: "uid", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "userUid", Value: 1}, {Key: "pageUid", Value: 1}}},
		},
		userTagsCollection: {
			{Keys: bson.D{{Key: "userUid", Value: 1}, {Key: "tagRecordedForUserIso", Value: -1}}},
			{Keys: bson.D{{Key: "userUid", Value: 1}, {Key: "contentCategories", Value: 1}}},
		},
		blacklistCollection: {
			{Keys: bson.D{{Key: "userUid", Value: 1}, {Key: "category", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}
