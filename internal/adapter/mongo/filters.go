package mongo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
	"github.com/fullstack0516/express-digital-asset-backend/internal/repository"
)

// counterUpdate matches live pages only.
func counterUpdate(uid string, counter entity.PageCounter, delta int64) (bson.M, bson.M, error) {
	switch counter {
	case entity.CounterVisits, entity.CounterImpressions:
	default:
		return nil, nil, fmt.Errorf("unknown page counter %q", counter)
	}
	filter := bson.M{"uid": uid, "isDeleted": false}
	return filter, bson.M{"$inc": bson.M{string(counter): delta}}, nil
}

func revisitUpdate(at time.Time, publishIso *time.Time) bson.M {
	set := bson.M{"lastUpdateIso": at}
	if publishIso != nil {
		set["lastPagePublishIso"] = *publishIso
	}
	return bson.M{
		"$inc": bson.M{"numberOfVisits": 1},
		"$set": set,
	}
}

func recentTagsQuery(q repository.UserDataTagQuery) (bson.M, *options.FindOptions) {
	filter := bson.M{
		"userUid":               q.UserUID,
		"tagRecordedForUserIso": bson.M{"$lte": q.RecordedAtOrBefore},
	}
	if q.Category != "" {
		filter["contentCategories"] = bson.M{"$in": []string{q.Category}}
	}
	opts := options.Find().SetSort(bson.D{{Key: "tagRecordedForUserIso", Value: -1}})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	return filter, opts
}

func categoryFilter(userUID, category string) bson.M {
	return bson.M{
		"userUid":           userUID,
		"contentCategories": bson.M{"$in": []string{category}},
	}
}
