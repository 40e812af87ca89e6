package mongo

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/shortname/pkg/shortname"
)

const idField = "_id"

// EntityStore implements shortname.Store over a collection with one document
// per record. The record ID is the document _id and every other string field
// is a record field.
type EntityStore struct {
	coll   *mongo.Collection
	sortBy string
}

var _ shortname.Store = (*EntityStore)(nil)

// StoreOption configures an EntityStore.
type StoreOption func(*EntityStore)

// WithSortBy orders All by the given field. Default is _id.
func WithSortBy(field string) StoreOption {
	return func(s *EntityStore) {
		if field != "" {
			s.sortBy = field
		}
	}
}

// NewEntityStore creates a store over coll.
func NewEntityStore(coll *mongo.Collection, opts ...StoreOption) *EntityStore {
	s := &EntityStore{coll: coll, sortBy: idField}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *EntityStore) All(ctx context.Context, scope shortname.Scope) ([]shortname.Entity, error) {
	cur, err := s.coll.Find(ctx, scopeFilter(scope),
		options.Find().SetSort(bson.D{{Key: s.sortBy, Value: 1}}))
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}

	out := make([]shortname.Entity, 0, len(docs))
	for _, d := range docs {
		out = append(out, docToRecord(d))
	}
	return out, nil
}

func (s *EntityStore) FindOther(ctx context.Context, scope shortname.Scope, field, value, excludeID string) (shortname.Entity, error) {
	var doc bson.M
	err := s.coll.FindOne(ctx, otherFilter(scope, field, value, excludeID)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	return docToRecord(doc), nil
}

func (s *EntityStore) Update(ctx context.Context, e shortname.Entity, field, value string) error {
	if e == nil {
		return shortname.ErrNilEntity
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: idField, Value: e.ID()}},
		bson.D{{Key: "$set", Value: bson.D{{Key: field, Value: value}}}},
	)
	if err != nil {
		return errors.Join(ErrQueryFailed, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", shortname.ErrNotFound, e.ID())
	}

	e.Set(field, value)
	e.Commit(field)
	return nil
}

func (s *EntityStore) Save(ctx context.Context, e shortname.Entity) error {
	if e == nil {
		return shortname.ErrNilEntity
	}

	_, err := s.coll.ReplaceOne(ctx,
		bson.D{{Key: idField, Value: e.ID()}},
		recordDoc(e),
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errors.Join(ErrQueryFailed, err)
	}
	e.Commit()
	return nil
}

// scopeFilter renders a scope as an equality filter with sorted keys.
func scopeFilter(scope shortname.Scope) bson.D {
	filter := bson.D{}
	for _, k := range slices.Sorted(maps.Keys(scope)) {
		filter = append(filter, bson.E{Key: k, Value: scope[k]})
	}
	return filter
}

// otherFilter matches a blank value against missing and null fields too.
func otherFilter(scope shortname.Scope, field, value, excludeID string) bson.D {
	var match any = value
	if value == "" {
		match = bson.D{{Key: "$in", Value: bson.A{"", nil}}}
	}
	filter := append(scopeFilter(scope), bson.E{Key: field, Value: match})
	if excludeID != "" {
		filter = append(filter, bson.E{Key: idField, Value: bson.D{{Key: "$ne", Value: excludeID}}})
	}
	return filter
}

func recordDoc(e shortname.Entity) bson.D {
	fields := e.Fields()
	doc := bson.D{{Key: idField, Value: e.ID()}}
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		if k == idField {
			continue
		}
		doc = append(doc, bson.E{Key: k, Value: fields[k]})
	}
	return doc
}

// docToRecord keeps string fields only; other values are not record fields.
func docToRecord(doc bson.M) *shortname.Record {
	id := ""
	switch v := doc[idField].(type) {
	case string:
		id = v
	case bson.ObjectID:
		id = v.Hex()
	}

	fields := make(map[string]string, len(doc))
	for k, v := range doc {
		if k == idField {
			continue
		}
		if s, ok := v.(string); ok {
			fields[k] = s
		}
	}
	return shortname.LoadRecord(id, fields)
}

// Ping checks that the deployment holding the collection answers.
func (s *EntityStore) Ping(ctx context.Context) error {
	if err := s.coll.Database().Client().Ping(ctx, nil); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	return nil
}
