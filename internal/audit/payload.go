package audit

import (
	"errors"
	"fmt"

	"audittrail/internal/lifecycle"
	"audittrail/internal/models"
)

// DefaultIgnore is the ignore-set applied to entity types that do not
// declare their own: credentials and the automatic timestamps.
var DefaultIgnore = []string{"password", "remember_token", "updated_at", "created_at"}

// IgnoreLister is implemented by entity types that replace DefaultIgnore.
// The returned keys are used as-is; DefaultIgnore is not merged in.
type IgnoreLister interface {
	AuditIgnore() []string
}

// Payload computes the before/after changes recorded for event. The boolean
// is false when an update touched nothing worth recording.
func Payload(event lifecycle.Event) (models.Changes, bool, error) {
	if event.Current == nil {
		return models.Changes{}, false, errors.New("event carries no current attributes")
	}
	ignore := ignoreSet(event.Entity)

	switch event.Kind {
	case lifecycle.Created, lifecycle.Restored:
		return models.Changes{After: filter(event.Current, ignore)}, true, nil

	case lifecycle.Updated:
		if event.Prior == nil {
			return models.Changes{}, false, errors.New("update event carries no prior attributes")
		}
		dirty := event.Dirty()
		if !significant(event, dirty, ignore) {
			return models.Changes{}, false, nil
		}
		return models.Changes{
			Before: filter(event.Prior.Only(dirty), ignore),
			After:  filter(event.Current.Only(dirty), ignore),
		}, true, nil

	case lifecycle.Deleted:
		return models.Changes{Before: filter(event.Current, ignore)}, true, nil
	}
	return models.Changes{}, false, fmt.Errorf("unsupported lifecycle kind %q", event.Kind)
}

// significant reports whether an update touched a key that is neither
// ignored nor an automatic timestamp. Timestamps alone never make an entry,
// but they are recorded alongside a real change unless ignored.
func significant(event lifecycle.Event, dirty []string, ignore map[string]bool) bool {
	for _, k := range dirty {
		if !ignore[k] && !event.IsTimestamp(k) {
			return true
		}
	}
	return false
}

func ignoreSet(entity any) map[string]bool {
	keys := DefaultIgnore
	if l, ok := entity.(IgnoreLister); ok {
		keys = l.AuditIgnore()
	}
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

// filter copies attrs without the ignored keys.
func filter(attrs lifecycle.Attributes, ignore map[string]bool) map[string]any {
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		if !ignore[k] {
			out[k] = v
		}
	}
	return out
}
