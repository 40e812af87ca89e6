package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/shortname/pkg/shortname"
)

func TestScopeFilter(t *testing.T) {
	assert.Equal(t, bson.D{}, scopeFilter(nil))
	assert.Equal(t,
		bson.D{{Key: "org", Value: "x"}, {Key: "team", Value: "a"}},
		scopeFilter(shortname.Scope{"team": "a", "org": "x"}))
}

func TestOtherFilter(t *testing.T) {
	assert.Equal(t,
		bson.D{{Key: "team", Value: "a"}, {Key: "short_name", Value: "Mike"}},
		otherFilter(shortname.Scope{"team": "a"}, "short_name", "Mike", ""))
	assert.Equal(t,
		bson.D{
			{Key: "short_name", Value: "Mike"},
			{Key: "_id", Value: bson.D{{Key: "$ne", Value: "id-1"}}},
		},
		otherFilter(nil, "short_name", "Mike", "id-1"))
	assert.Equal(t,
		bson.D{{Key: "short_name", Value: bson.D{{Key: "$in", Value: bson.A{"", nil}}}}},
		otherFilter(nil, "short_name", "", ""))
}

func TestRecordDoc(t *testing.T) {
	rec := shortname.NewRecord("id-1", map[string]string{
		"short_name": "Mike O.",
		"name":       "Mike Owens",
		"_id":        "ignored",
	})

	assert.Equal(t, bson.D{
		{Key: "_id", Value: "id-1"},
		{Key: "name", Value: "Mike Owens"},
		{Key: "short_name", Value: "Mike O."},
	}, recordDoc(rec))
}

func TestDocToRecord(t *testing.T) {
	t.Run("string id", func(t *testing.T) {
		rec := docToRecord(bson.M{
			"_id":        "id-1",
			"name":       "Mike Owens",
			"short_name": "Mike",
			"created":    int64(42),
		})
		assert.Equal(t, "id-1", rec.ID())
		assert.Equal(t, "Mike Owens", rec.Get("name"))
		assert.Equal(t, "Mike", rec.Get("short_name"))
		assert.NotContains(t, rec.Fields(), "created")
		assert.False(t, rec.IsNew())
	})

	t.Run("object id", func(t *testing.T) {
		oid := bson.NewObjectID()
		rec := docToRecord(bson.M{"_id": oid, "name": "Ann"})
		require.Equal(t, oid.Hex(), rec.ID())
	})
}

func TestNewEntityStore_Defaults(t *testing.T) {
	s := NewEntityStore(nil)
	assert.Equal(t, "_id", s.sortBy)

	s = NewEntityStore(nil, WithSortBy("created_at"))
	assert.Equal(t, "created_at", s.sortBy)
}
