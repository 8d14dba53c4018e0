// Package lifecycle defines the events an entity store emits after each
// successful write, and the observers that consume them.
package lifecycle

import (
	"context"
	"database/sql/driver"
	"reflect"
	"sort"
	"time"
)

// Kind identifies the transition an entity went through.
type Kind string

const (
	Created  Kind = "created"
	Updated  Kind = "updated"
	Deleted  Kind = "deleted"
	Restored Kind = "restored"
)

// Attributes maps column names to the values held by an entity.
type Attributes map[string]any

// Only returns the subset of a restricted to keys.
func (a Attributes) Only(keys []string) Attributes {
	out := make(Attributes, len(keys))
	for _, k := range keys {
		if v, ok := a[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Event describes one completed transition of one entity instance.
type Event struct {
	Kind Kind
	// EntityName is the simple type name of the entity, e.g. "Order".
	EntityName string
	// Key is the primary key value of the instance.
	Key any
	// Entity is the instance that transitioned.
	Entity any
	// Current holds the attribute values after the transition (at the time
	// of deletion for Deleted).
	Current Attributes
	// Prior holds the last-persisted values before an update. Nil otherwise.
	Prior Attributes
	// Timestamps lists the columns the store maintains automatically.
	Timestamps []string
}

// Dirty returns the sorted keys whose current value differs from the prior
// one, automatic timestamp columns included.
func (e Event) Dirty() []string {
	if e.Prior == nil {
		return nil
	}

	var dirty []string
	for k, cur := range e.Current {
		prev, ok := e.Prior[k]
		if !ok || !Equal(prev, cur) {
			dirty = append(dirty, k)
		}
	}
	sort.Strings(dirty)
	return dirty
}

// IsTimestamp reports whether key is one of the automatic timestamp columns.
func (e Event) IsTimestamp(key string) bool {
	for _, k := range e.Timestamps {
		if k == key {
			return true
		}
	}
	return false
}

// Equal compares two attribute values. Pointers compare by pointee, times
// by instant, driver valuers by the value they hand to the database.
func Equal(a, b any) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() == reflect.Pointer && rb.Kind() == reflect.Pointer {
		if ra.IsNil() || rb.IsNil() {
			return ra.IsNil() && rb.IsNil()
		}
		return Equal(ra.Elem().Interface(), rb.Elem().Interface())
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	if va, ok := a.(driver.Valuer); ok {
		vb, ok := b.(driver.Valuer)
		if !ok {
			return false
		}
		da, errA := va.Value()
		db, errB := vb.Value()
		if errA != nil || errB != nil {
			return false
		}
		return Equal(da, db)
	}
	return reflect.DeepEqual(a, b)
}

// Observer reacts to lifecycle events. Observers run after the primary
// write has succeeded and cannot fail it.
type Observer interface {
	Observe(ctx context.Context, event Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, event Event)

// Observe calls f(ctx, event).
func (f ObserverFunc) Observe(ctx context.Context, event Event) {
	f(ctx, event)
}

// Source is anything that emits lifecycle events for one entity type.
type Source interface {
	// Observe registers o for events of the given kind.
	Observe(kind Kind, o Observer) error
	// SupportsRestore reports whether the entity type can be restored
	// after deletion.
	SupportsRestore() bool
}
