package mongostore

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/visitlog/core/visit"
)

func TestFilterDoc(t *testing.T) {
	t.Parallel()

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	tests := []struct {
		name   string
		filter visit.Filter
		want   bson.D
	}{
		{"empty", visit.Filter{Limit: 5}, bson.D{}},
		{"user", visit.Filter{UserID: "42"}, bson.D{{Key: "user_id", Value: "42"}}},
		{
			"all fields",
			visit.Filter{UserID: "42", SessionKey: "s1", RemoteAddr: "10.0.0.1", From: from, To: to},
			bson.D{
				{Key: "user_id", Value: "42"},
				{Key: "session_key", Value: "s1"},
				{Key: "remote_addr", Value: "10.0.0.1"},
				{Key: "timestamp", Value: bson.D{{Key: "$gte", Value: from}, {Key: "$lt", Value: to}}},
			},
		},
		{
			"open range",
			visit.Filter{From: from},
			bson.D{{Key: "timestamp", Value: bson.D{{Key: "$gte", Value: from}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, filterDoc(tt.filter))
		})
	}
}

func TestDocumentMapping(t *testing.T) {
	t.Parallel()

	rec := &visit.Record{
		ID:         uuid.New(),
		UserID:     "42",
		Timestamp:  time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		SessionKey: "s1",
		RemoteAddr: "10.0.0.1",
		UserAgent:  "UA-A",
		Hash:       "v1:00112233445566778899aabbccddeeff",
		CreatedAt:  time.Date(2024, 3, 1, 10, 0, 1, 0, time.UTC),
		Context:    map[string]any{"city": "Lisbon"},
	}

	doc := toDocument(rec)
	assert.Equal(t, rec.ID.String(), doc.ID)
	assert.Equal(t, "UA-A", doc.UserAgent)

	back, err := doc.record()
	require.NoError(t, err)
	assert.Equal(t, *rec, back)

	t.Run("field names follow the table schema", func(t *testing.T) {
		t.Parallel()
		raw, err := bson.Marshal(toDocument(&visit.Record{ID: uuid.New(), UserID: "42"}))
		require.NoError(t, err)

		var m bson.M
		require.NoError(t, bson.Unmarshal(raw, &m))
		for _, key := range []string{"_id", "user_id", "timestamp", "session_key", "remote_addr", "ua_string", "hash", "created_at", "device", "os", "browser"} {
			assert.Contains(t, m, key)
		}
		assert.NotContains(t, m, "context", "empty context is omitted")
	})

	t.Run("invalid id", func(t *testing.T) {
		t.Parallel()
		_, err := document{ID: "nope"}.record()
		assert.Error(t, err)
	})
}

func TestIndexes(t *testing.T) {
	t.Parallel()

	idx := Indexes()
	require.Len(t, idx, 2)
	assert.Equal(t, bson.D{{Key: "hash", Value: 1}}, idx[0].Keys)
}
