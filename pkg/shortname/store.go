package shortname

import (
	"context"
	"maps"
	"slices"
	"strings"
)

// Entity is a record carrying a source name field and a short-name target
// field. An empty string stands for a null field value.
type Entity interface {
	ID() string
	Get(field string) string
	Set(field, value string)

	// Fields returns a copy of all field values.
	Fields() map[string]string

	// IsNew reports whether the record has never been persisted.
	IsNew() bool
	// Changed reports whether the field differs from its last persisted value.
	Changed(field string) bool
	// Commit marks the given fields (all fields when none given) as persisted.
	Commit(fields ...string)
}

// Store persists entities. Implementations must return a consistent snapshot
// from All: a batch reads every entity before writing any.
type Store interface {
	// All returns every entity within scope in a stable order.
	All(ctx context.Context, scope Scope) ([]Entity, error)

	// FindOther returns an entity within scope whose field equals value and
	// whose ID is not excludeID, or nil when there is none. An empty
	// excludeID excludes nothing.
	FindOther(ctx context.Context, scope Scope, field, value, excludeID string) (Entity, error)

	// Update persists a single field and applies it to e.
	Update(ctx context.Context, e Entity, field, value string) error

	// Save inserts or fully updates e and commits its change tracking.
	Save(ctx context.Context, e Entity) error
}

// Scope selects the records a batch operates over by field equality.
// An empty scope selects every record.
type Scope map[string]string

// Matches reports whether e satisfies every filter in the scope.
func (s Scope) Matches(e Entity) bool {
	for field, value := range s {
		if e.Get(field) != value {
			return false
		}
	}
	return true
}

// Key returns a deterministic string form of the scope.
func (s Scope) Key() string {
	if len(s) == 0 {
		return "*"
	}
	keys := slices.Sorted(maps.Keys(s))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + s[k]
	}
	return strings.Join(parts, ",")
}
