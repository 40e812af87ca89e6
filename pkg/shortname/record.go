package shortname

import (
	"maps"
	"sync"

	"github.com/google/uuid"
)

// Record is a map-backed Entity with change tracking.
type Record struct {
	mu        sync.RWMutex
	id        string
	fields    map[string]string
	persisted map[string]string
	isNew     bool
}

// NewRecord creates an unpersisted record. A random UUID is used when id
// is empty.
func NewRecord(id string, fields map[string]string) *Record {
	if id == "" {
		id = uuid.NewString()
	}
	return &Record{
		id:        id,
		fields:    cloneFields(fields),
		persisted: make(map[string]string),
		isNew:     true,
	}
}

// LoadRecord creates a record as read from storage, with no pending changes.
func LoadRecord(id string, fields map[string]string) *Record {
	return &Record{
		id:        id,
		fields:    cloneFields(fields),
		persisted: cloneFields(fields),
	}
}

func (r *Record) ID() string { return r.id }

func (r *Record) Get(field string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fields[field]
}

func (r *Record) Set(field, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fields[field] = value
}

func (r *Record) Fields() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneFields(r.fields)
}

func (r *Record) IsNew() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isNew
}

func (r *Record) Changed(field string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fields[field] != r.persisted[field]
}

// Commit marks fields as persisted. With no arguments every field is
// committed and the record stops being new.
func (r *Record) Commit(fields ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(fields) == 0 {
		r.persisted = cloneFields(r.fields)
		r.isNew = false
		return
	}
	for _, f := range fields {
		r.persisted[f] = r.fields[f]
	}
}

func cloneFields(src map[string]string) map[string]string {
	if src == nil {
		return make(map[string]string)
	}
	return maps.Clone(src)
}
