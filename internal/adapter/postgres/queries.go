package postgres

import (
	"fmt"
	"time"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
	"github.com/fullstack0516/express-digital-asset-backend/internal/repository"
)

var counterColumns = map[entity.PageCounter]string{
	entity.CounterVisits:      "total_visits",
	entity.CounterImpressions: "total_impressions",
}

// Soft-deleted pages match no row, so the counter stays put and the caller
// sees ErrNotFound.
func incrementCounterQuery(counter entity.PageCounter) (string, error) {
	column, ok := counterColumns[counter]
	if !ok {
		return "", fmt.Errorf("unknown page counter %q", counter)
	}
	return fmt.Sprintf(`UPDATE pages SET %[1]s = %[1]s + $2 WHERE uid = $1 AND is_deleted = FALSE;`, column), nil
}

const recordRevisitQuery = `
	UPDATE page_history SET
		number_of_visits = number_of_visits + 1,
		last_update_iso = $2,
		last_page_publish_iso = CASE WHEN $3::boolean THEN $4::timestamptz ELSE last_page_publish_iso END
	WHERE uid = $1;
`

// The boolean flag keeps a nil publishIso from clearing the stored value.
func recordRevisitArgs(uid string, at time.Time, publishIso *time.Time) []any {
	return []any{uid, at, publishIso != nil, publishIso}
}

const findRecentTagsQuery = `
	SELECT uid, user_uid, tag_string, tag_score, content_categories, count, tag_created_iso, tag_recorded_for_user_iso
	FROM user_data_tags
	WHERE user_uid = $1
	  AND tag_recorded_for_user_iso <= $2
	  AND ($3::text = '' OR $3::text = ANY(content_categories))
	ORDER BY tag_recorded_for_user_iso DESC
	LIMIT NULLIF($4::integer, 0);
`

// A zero limit becomes LIMIT NULL, which Postgres treats as no limit.
func findRecentTagsArgs(q repository.UserDataTagQuery) []any {
	limit := q.Limit
	if limit < 0 {
		limit = 0
	}
	return []any{q.UserUID, q.RecordedAtOrBefore, q.Category, limit}
}

const deleteTagsByCategoryQuery = `DELETE FROM user_data_tags WHERE user_uid = $1 AND $2 = ANY(content_categories);`
