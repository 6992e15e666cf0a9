package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
	"github.com/fullstack0516/express-digital-asset-backend/internal/repository"
)

func TestIncrementCounterQuery(t *testing.T) {
	tests := []struct {
		counter entity.PageCounter
		column  string
	}{
		{entity.CounterVisits, "total_visits"},
		{entity.CounterImpressions, "total_impressions"},
	}
	for _, tt := range tests {
		t.Run(string(tt.counter), func(t *testing.T) {
			query, err := incrementCounterQuery(tt.counter)
			require.NoError(t, err)
			assert.Contains(t, query, "SET "+tt.column+" = "+tt.column+" + $2")
			assert.Contains(t, query, "WHERE uid = $1 AND is_deleted = FALSE")
		})
	}

	_, err := incrementCounterQuery("likes")
	assert.Error(t, err)
}

func TestRecordRevisitArgs(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	publish := at.Add(-time.Hour)

	assert.Contains(t, recordRevisitQuery, "number_of_visits = number_of_visits + 1")
	assert.Contains(t, recordRevisitQuery, "CASE WHEN $3::boolean THEN $4::timestamptz ELSE last_page_publish_iso END")

	tests := []struct {
		name       string
		publishIso *time.Time
		wantFlag   bool
	}{
		{"keeps stored publish time", nil, false},
		{"moves publish time", &publish, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := recordRevisitArgs("h1", at, tt.publishIso)
			require.Len(t, args, 4)
			assert.Equal(t, "h1", args[0])
			assert.Equal(t, at, args[1])
			assert.Equal(t, tt.wantFlag, args[2])
			assert.Equal(t, tt.publishIso, args[3])
		})
	}
}

func TestFindRecentTagsArgs(t *testing.T) {
	before := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for _, clause := range []string{
		"tag_recorded_for_user_iso <= $2",
		"($3::text = '' OR $3::text = ANY(content_categories))",
		"ORDER BY tag_recorded_for_user_iso DESC",
		"LIMIT NULLIF($4::integer, 0)",
	} {
		assert.Contains(t, findRecentTagsQuery, clause)
	}

	tests := []struct {
		name  string
		query repository.UserDataTagQuery
		want  []any
	}{
		{
			name:  "no category no limit",
			query: repository.UserDataTagQuery{UserUID: "u", RecordedAtOrBefore: before},
			want:  []any{"u", before, "", 0},
		},
		{
			name:  "category and limit",
			query: repository.UserDataTagQuery{UserUID: "u", RecordedAtOrBefore: before, Category: "Travel", Limit: 25},
			want:  []any{"u", before, "Travel", 25},
		},
		{
			name:  "negative limit means unlimited",
			query: repository.UserDataTagQuery{UserUID: "u", RecordedAtOrBefore: before, Limit: -3},
			want:  []any{"u", before, "", 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, findRecentTagsArgs(tt.query))
		})
	}
}

func TestDeleteTagsByCategoryQuery(t *testing.T) {
	assert.Contains(t, deleteTagsByCategoryQuery, "user_uid = $1 AND $2 = ANY(content_categories)")
}
