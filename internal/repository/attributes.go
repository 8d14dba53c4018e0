package repository

import (
	"context"
	"reflect"

	"audittrail/internal/lifecycle"
)

// attributes snapshots the column values of entity, keyed by column name.
// Primary key columns are left out; they travel as the event key.
func (s *Store[T]) attributes(ctx context.Context, entity *T) lifecycle.Attributes {
	rv := reflect.ValueOf(entity).Elem()
	attrs := make(lifecycle.Attributes, len(s.schema.DBNames))
	for _, name := range s.schema.DBNames {
		field := s.schema.FieldsByDBName[name]
		if field.PrimaryKey || !field.Readable {
			continue
		}
		value, _ := field.ValueOf(ctx, rv)
		attrs[name] = value
	}
	return attrs
}

func (s *Store[T]) key(ctx context.Context, entity *T) any {
	value, _ := s.schema.PrioritizedPrimaryField.ValueOf(ctx, reflect.ValueOf(entity).Elem())
	return value
}
