package pg

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shortname/pkg/shortname"
)

type mockDB struct {
	mock.Mock
}

func (m *mockDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	called := m.Called(ctx, sql, args)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).(pgx.Rows), called.Error(1)
}

func (m *mockDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return m.Called(ctx, sql, args).Get(0).(pgx.Row)
}

func (m *mockDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	called := m.Called(ctx, sql, args)
	return called.Get(0).(pgconn.CommandTag), called.Error(1)
}

type fakeRow struct {
	values []string
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		*d.(*string) = r.values[i]
	}
	return nil
}

func newTestStore(t *testing.T, db DB) *EntityStore {
	t.Helper()
	s, err := NewEntityStore(db, "people", []string{"name", "short_name", "scope"}, WithOrderBy("created_at"))
	require.NoError(t, err)
	return s
}

func TestNewEntityStore_Validation(t *testing.T) {
	db := &mockDB{}

	_, err := NewEntityStore(nil, "people", []string{"name"})
	assert.ErrorIs(t, err, ErrInvalidStoreConfig)

	_, err = NewEntityStore(db, "", []string{"name"})
	assert.ErrorIs(t, err, ErrInvalidStoreConfig)

	_, err = NewEntityStore(db, "people", nil)
	assert.ErrorIs(t, err, ErrInvalidStoreConfig)

	_, err = NewEntityStore(db, "people", []string{"id", "name"})
	assert.ErrorIs(t, err, ErrInvalidStoreConfig)
}

func TestWhereClause(t *testing.T) {
	where, args := whereClause(nil, 1)
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = whereClause(shortname.Scope{"team": "a", "org": "x"}, 2)
	assert.Equal(t, ` WHERE COALESCE("org"::text, '') = $2 AND COALESCE("team"::text, '') = $3`, where)
	assert.Equal(t, []any{"x", "a"}, args)
}

func TestEntityStore_SQL(t *testing.T) {
	s := newTestStore(t, &mockDB{})

	assert.Equal(t,
		`SELECT "id"::text, COALESCE("name"::text, ''), COALESCE("short_name"::text, ''), COALESCE("scope"::text, '') FROM "people"`,
		s.selectList())

	assert.Equal(t,
		`INSERT INTO "people" ("id", "name", "short_name", "scope") VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, '')) `+
			`ON CONFLICT ("id") DO UPDATE SET "name" = EXCLUDED."name", "short_name" = EXCLUDED."short_name", "scope" = EXCLUDED."scope"`,
		s.upsertSQL())
}

func TestIdentQuotesNames(t *testing.T) {
	assert.Equal(t, `"short_name"`, ident("short_name"))
	assert.Equal(t, `"a""b"`, ident(`a"b`))
}

func TestEntityStore_FindOther(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the matching record", func(t *testing.T) {
		db := &mockDB{}
		s := newTestStore(t, db)
		db.On("QueryRow", ctx, s.selectList()+` WHERE COALESCE("scope"::text, '') = $2 AND COALESCE("short_name"::text, '') = $1 LIMIT 1`, []any{"Mike O.", "team-a"}).
			Return(fakeRow{values: []string{"id-1", "Mike Owens", "Mike O.", "team-a"}})

		e, err := s.FindOther(ctx, shortname.Scope{"scope": "team-a"}, "short_name", "Mike O.", "")
		require.NoError(t, err)
		require.NotNil(t, e)
		assert.Equal(t, "id-1", e.ID())
		assert.Equal(t, "Mike Owens", e.Get("name"))
		assert.False(t, e.IsNew())
		db.AssertExpectations(t)
	})

	t.Run("excludes the given record", func(t *testing.T) {
		db := &mockDB{}
		s := newTestStore(t, db)
		db.On("QueryRow", ctx, s.selectList()+` WHERE COALESCE("scope"::text, '') = $3 AND COALESCE("short_name"::text, '') = $1 AND "id"::text <> $2 LIMIT 1`, []any{"Mike", "id-1", "team-a"}).
			Return(fakeRow{values: []string{"id-2", "Mike Other", "Mike", "team-a"}})

		e, err := s.FindOther(ctx, shortname.Scope{"scope": "team-a"}, "short_name", "Mike", "id-1")
		require.NoError(t, err)
		require.NotNil(t, e)
		assert.Equal(t, "id-2", e.ID())
		db.AssertExpectations(t)
	})

	t.Run("blank value matches NULL columns", func(t *testing.T) {
		db := &mockDB{}
		s := newTestStore(t, db)
		db.On("QueryRow", ctx, s.selectList()+` WHERE COALESCE("short_name"::text, '') = $1 LIMIT 1`, []any{""}).
			Return(fakeRow{values: []string{"id-3", "", "", ""}})

		e, err := s.FindOther(ctx, nil, "short_name", "", "")
		require.NoError(t, err)
		require.NotNil(t, e)
		assert.Equal(t, "id-3", e.ID())
		db.AssertExpectations(t)
	})

	t.Run("no rows is not an error", func(t *testing.T) {
		db := &mockDB{}
		s := newTestStore(t, db)
		db.On("QueryRow", ctx, mock.Anything, mock.Anything).Return(fakeRow{err: pgx.ErrNoRows})

		e, err := s.FindOther(ctx, nil, "short_name", "Mike", "")
		require.NoError(t, err)
		assert.Nil(t, e)
	})

	t.Run("query error is wrapped", func(t *testing.T) {
		db := &mockDB{}
		s := newTestStore(t, db)
		db.On("QueryRow", ctx, mock.Anything, mock.Anything).Return(fakeRow{err: errors.New("conn reset")})

		_, err := s.FindOther(ctx, nil, "short_name", "Mike", "")
		assert.ErrorIs(t, err, ErrQueryFailed)
	})
}

func TestEntityStore_Update(t *testing.T) {
	ctx := context.Background()
	query := `UPDATE "people" SET "short_name" = NULLIF($1, '') WHERE "id" = $2`

	t.Run("applies the value to the entity", func(t *testing.T) {
		db := &mockDB{}
		s := newTestStore(t, db)
		db.On("Exec", ctx, query, []any{"Mike O.", "id-1"}).Return(pgconn.NewCommandTag("UPDATE 1"), nil)

		rec := shortname.LoadRecord("id-1", map[string]string{"name": "Mike Owens", "short_name": "Mike"})
		require.NoError(t, s.Update(ctx, rec, "short_name", "Mike O."))
		assert.Equal(t, "Mike O.", rec.Get("short_name"))
		assert.False(t, rec.Changed("short_name"))
		db.AssertExpectations(t)
	})

	t.Run("missing row", func(t *testing.T) {
		db := &mockDB{}
		s := newTestStore(t, db)
		db.On("Exec", ctx, query, []any{"Mike O.", "gone"}).Return(pgconn.NewCommandTag("UPDATE 0"), nil)

		rec := shortname.LoadRecord("gone", nil)
		err := s.Update(ctx, rec, "short_name", "Mike O.")
		assert.ErrorIs(t, err, shortname.ErrNotFound)
		assert.Empty(t, rec.Get("short_name"))
	})
}

func TestEntityStore_Save(t *testing.T) {
	ctx := context.Background()
	db := &mockDB{}
	s := newTestStore(t, db)

	rec := shortname.NewRecord("id-9", map[string]string{"name": "Bobby McDonald", "short_name": "Bobby"})
	db.On("Exec", ctx, s.upsertSQL(), []any{"id-9", "Bobby McDonald", "Bobby", ""}).
		Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

	require.NoError(t, s.Save(ctx, rec))
	assert.False(t, rec.IsNew())
	db.AssertExpectations(t)
}

func TestIsDuplicateKeyError(t *testing.T) {
	assert.True(t, IsDuplicateKeyError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsDuplicateKeyError(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsDuplicateKeyError(nil))
	assert.True(t, IsNotFoundError(errors.Join(errors.New("x"), pgx.ErrNoRows)))
}

func TestEntityStore_Ping(t *testing.T) {
	ctx := context.Background()
	query := `SELECT FROM "people" LIMIT 0`

	db := &mockDB{}
	s := newTestStore(t, db)
	db.On("Exec", ctx, query, []any(nil)).Return(pgconn.NewCommandTag("SELECT 0"), nil).Once()
	require.NoError(t, s.Ping(ctx))

	db.On("Exec", ctx, query, []any(nil)).Return(pgconn.CommandTag{}, errors.New(`relation "people" does not exist`)).Once()
	assert.ErrorIs(t, s.Ping(ctx), ErrHealthcheckFailed)
	db.AssertExpectations(t)
}
