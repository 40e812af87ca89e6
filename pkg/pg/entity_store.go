package pg

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/shortname/pkg/shortname"
)

// DB is the subset of *pgxpool.Pool, *pgx.Conn and pgx.Tx used by EntityStore.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// EntityStore implements shortname.Store over a single table whose
// columns are all text. Empty strings are stored as NULL.
type EntityStore struct {
	db       DB
	table    string
	idColumn string
	orderBy  string
	columns  []string
}

var _ shortname.Store = (*EntityStore)(nil)

// StoreOption configures an EntityStore.
type StoreOption func(*EntityStore)

// WithIDColumn sets the primary key column. Default is "id".
func WithIDColumn(col string) StoreOption {
	return func(s *EntityStore) {
		if col != "" {
			s.idColumn = col
		}
	}
}

// WithOrderBy sets the column All sorts by. Default is the ID column.
func WithOrderBy(col string) StoreOption {
	return func(s *EntityStore) {
		if col != "" {
			s.orderBy = col
		}
	}
}

// NewEntityStore creates a store over table, reading and writing columns.
// Columns typically include every binding's source and target field plus
// the fields scopes filter on.
func NewEntityStore(db DB, table string, columns []string, opts ...StoreOption) (*EntityStore, error) {
	if db == nil || table == "" || len(columns) == 0 {
		return nil, ErrInvalidStoreConfig
	}

	s := &EntityStore{
		db:       db,
		table:    table,
		idColumn: "id",
		columns:  slices.Clone(columns),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.orderBy == "" {
		s.orderBy = s.idColumn
	}
	if slices.Contains(s.columns, s.idColumn) {
		return nil, fmt.Errorf("%w: id column %q listed as data column", ErrInvalidStoreConfig, s.idColumn)
	}
	return s, nil
}

// All reads every row within scope with a single statement, which gives the
// batch a consistent snapshot.
func (s *EntityStore) All(ctx context.Context, scope shortname.Scope) ([]shortname.Entity, error) {
	where, args := whereClause(scope, 1)
	query := s.selectList() + where + " ORDER BY " + ident(s.orderBy)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	defer rows.Close()

	var out []shortname.Entity
	for rows.Next() {
		rec, err := s.scan(rows)
		if err != nil {
			return nil, errors.Join(ErrQueryFailed, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	return out, nil
}

// FindOther compares through COALESCE so that a blank value matches the NULL
// it was stored as.
func (s *EntityStore) FindOther(ctx context.Context, scope shortname.Scope, field, value, excludeID string) (shortname.Entity, error) {
	args := []any{value}
	conds := []string{textValue(field) + " = $1"}
	if excludeID != "" {
		args = append(args, excludeID)
		conds = append(conds, ident(s.idColumn)+"::text <> $2")
	}

	where, scopeArgs := whereClause(scope, len(args)+1)
	if where == "" {
		where = " WHERE " + strings.Join(conds, " AND ")
	} else {
		where += " AND " + strings.Join(conds, " AND ")
	}
	query := s.selectList() + where + " LIMIT 1"

	rec, err := s.scan(s.db.QueryRow(ctx, query, append(args, scopeArgs...)...))
	if IsNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	return rec, nil
}

func (s *EntityStore) Update(ctx context.Context, e shortname.Entity, field, value string) error {
	if e == nil {
		return shortname.ErrNilEntity
	}

	query := fmt.Sprintf("UPDATE %s SET %s = NULLIF($1, '') WHERE %s = $2",
		ident(s.table), ident(field), ident(s.idColumn))
	tag, err := s.db.Exec(ctx, query, value, e.ID())
	if err != nil {
		return errors.Join(ErrQueryFailed, err)
	}
	if tag.RowsAffected() == 0 {
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

	query := s.upsertSQL()
	fields := e.Fields()
	args := make([]any, 0, len(s.columns)+1)
	args = append(args, e.ID())
	for _, c := range s.columns {
		args = append(args, fields[c])
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return errors.Join(ErrQueryFailed, err)
	}
	e.Commit()
	return nil
}

func (s *EntityStore) selectList() string {
	cols := make([]string, 0, len(s.columns)+1)
	cols = append(cols, ident(s.idColumn)+"::text")
	for _, c := range s.columns {
		cols = append(cols, textValue(c))
	}
	return "SELECT " + strings.Join(cols, ", ") + " FROM " + ident(s.table)
}

func (s *EntityStore) upsertSQL() string {
	cols := []string{ident(s.idColumn)}
	vals := []string{"$1"}
	sets := make([]string, 0, len(s.columns))
	for i, c := range s.columns {
		cols = append(cols, ident(c))
		vals = append(vals, fmt.Sprintf("NULLIF($%d, '')", i+2))
		sets = append(sets, ident(c)+" = EXCLUDED."+ident(c))
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		ident(s.table), strings.Join(cols, ", "), strings.Join(vals, ", "),
		ident(s.idColumn), strings.Join(sets, ", "))
}

func (s *EntityStore) scan(row pgx.Row) (*shortname.Record, error) {
	var id string
	values := make([]string, len(s.columns))
	dest := make([]any, 0, len(s.columns)+1)
	dest = append(dest, &id)
	for i := range values {
		dest = append(dest, &values[i])
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	fields := make(map[string]string, len(s.columns))
	for i, c := range s.columns {
		fields[c] = values[i]
	}
	return shortname.LoadRecord(id, fields), nil
}

// whereClause renders scope filters as a WHERE clause with placeholders
// numbered from start. Keys are sorted so the SQL is stable.
func whereClause(scope shortname.Scope, start int) (string, []any) {
	if len(scope) == 0 {
		return "", nil
	}
	keys := slices.Sorted(maps.Keys(scope))
	conds := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		conds[i] = fmt.Sprintf("%s = $%d", textValue(k), start+i)
		args[i] = scope[k]
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// textValue reads a column the way Save wrote it: NULL becomes "".
func textValue(col string) string {
	return "COALESCE(" + ident(col) + "::text, '')"
}

// Ping checks that the database answers and the records table exists.
func (s *EntityStore) Ping(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, "SELECT FROM "+ident(s.table)+" LIMIT 0"); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	return nil
}
