// Package repository provides a generic GORM-backed entity store that emits
// lifecycle events to registered observers after every successful write.
package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	apperrors "audittrail/internal/errors"
	"audittrail/internal/lifecycle"
)

var deletedAtType = reflect.TypeOf(gorm.DeletedAt{})

// Store persists entities of type T and notifies observers of their
// transitions. Register observers before the store is shared between
// goroutines; the observer lists are not guarded.
type Store[T any] struct {
	db         *gorm.DB
	schema     *schema.Schema
	deletedAt  *schema.Field
	timestamps []string
	observers  map[lifecycle.Kind][]lifecycle.Observer
}

var _ lifecycle.Source = (*Store[struct{ ID uint }])(nil)

// NewStore parses T's GORM schema and returns a store for it. T must have a
// primary key.
func NewStore[T any](db *gorm.DB) (*Store[T], error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(new(T)); err != nil {
		return nil, fmt.Errorf("failed to parse schema for %T: %w", *new(T), err)
	}
	sch := stmt.Schema
	if sch.PrioritizedPrimaryField == nil {
		return nil, fmt.Errorf("%s has no primary key", sch.Name)
	}

	s := &Store[T]{
		db:        db,
		schema:    sch,
		observers: make(map[lifecycle.Kind][]lifecycle.Observer),
	}
	for _, name := range sch.DBNames {
		field := sch.FieldsByDBName[name]
		if field.AutoCreateTime > 0 || field.AutoUpdateTime > 0 {
			s.timestamps = append(s.timestamps, name)
		}
		if field.FieldType == deletedAtType {
			s.deletedAt = field
		}
	}
	return s, nil
}

// Name returns the simple type name of T.
func (s *Store[T]) Name() string {
	return s.schema.Name
}

// SupportsRestore reports whether T is soft-deletable.
func (s *Store[T]) SupportsRestore() bool {
	return s.deletedAt != nil
}

// Observe registers o for events of the given kind. Restored observers can
// only be registered on soft-deletable entity types.
func (s *Store[T]) Observe(kind lifecycle.Kind, o lifecycle.Observer) error {
	switch kind {
	case lifecycle.Created, lifecycle.Updated, lifecycle.Deleted:
	case lifecycle.Restored:
		if !s.SupportsRestore() {
			return apperrors.WithMessage(apperrors.ErrRestoreUnsupported, s.schema.Name+" does not support restore")
		}
	default:
		return fmt.Errorf("unknown lifecycle kind %q", kind)
	}
	s.observers[kind] = append(s.observers[kind], o)
	return nil
}

// Find loads the live entity with the given primary key.
func (s *Store[T]) Find(ctx context.Context, key any) (*T, error) {
	var entity T
	if err := s.db.WithContext(ctx).Where(s.keyEq(key)).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, err)
		}
		return nil, err
	}
	return &entity, nil
}

// Create inserts entity and emits Created.
func (s *Store[T]) Create(ctx context.Context, entity *T) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error; err != nil {
		return err
	}
	s.emit(ctx, lifecycle.Created, entity, nil, nil)
	return nil
}

// Update writes every column of entity and emits Updated carrying the row
// as it was persisted just before the write.
func (s *Store[T]) Update(ctx context.Context, entity *T) error {
	key := s.key(ctx, entity)

	var prior lifecycle.Attributes
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var persisted T
		if err := tx.Where(s.keyEq(key)).First(&persisted).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Wrap(apperrors.ErrNotFound, err)
			}
			return err
		}
		prior = s.attributes(ctx, &persisted)
		return tx.Omit(clause.Associations).Save(entity).Error
	})
	if err != nil {
		return err
	}

	s.emit(ctx, lifecycle.Updated, entity, nil, prior)
	return nil
}

// Delete removes entity (softly when T supports it) and emits Deleted with
// the attributes as of the deletion. A soft delete writes deleted_at back into
// entity, so the snapshot carries it.
func (s *Store[T]) Delete(ctx context.Context, entity *T) error {
	res := s.db.WithContext(ctx).Delete(entity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	s.emit(ctx, lifecycle.Deleted, entity, nil, nil)
	return nil
}

// Restore brings a soft-deleted entity back, reloads it into entity and
// emits Restored. Only the primary key of entity needs to be set.
func (s *Store[T]) Restore(ctx context.Context, entity *T) error {
	if !s.SupportsRestore() {
		return apperrors.WithMessage(apperrors.ErrRestoreUnsupported, s.schema.Name+" does not support restore")
	}
	key := s.key(ctx, entity)
	db := s.db.WithContext(ctx)

	res := db.Unscoped().Model(new(T)).
		Where(s.keyEq(key)).
		Where(clause.Neq{Column: clause.Column{Table: clause.CurrentTable, Name: s.deletedAt.DBName}, Value: nil}).
		Update(s.deletedAt.DBName, nil)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	if err := db.Where(s.keyEq(key)).First(entity).Error; err != nil {
		return err
	}

	s.emit(ctx, lifecycle.Restored, entity, nil, nil)
	return nil
}

// emit notifies the observers of kind. Observers get the request's values
// but not its cancellation: the primary write has already happened.
func (s *Store[T]) emit(ctx context.Context, kind lifecycle.Kind, entity *T, current, prior lifecycle.Attributes) {
	observers := s.observers[kind]
	if len(observers) == 0 {
		return
	}
	if current == nil {
		current = s.attributes(ctx, entity)
	}

	event := lifecycle.Event{
		Kind:       kind,
		EntityName: s.schema.Name,
		Key:        s.key(ctx, entity),
		Entity:     entity,
		Current:    current,
		Prior:      prior,
		Timestamps: s.timestamps,
	}

	ctx = context.WithoutCancel(ctx)
	for _, o := range observers {
		o.Observe(ctx, event)
	}
}

func (s *Store[T]) keyEq(key any) clause.Eq {
	return clause.Eq{
		Column: clause.Column{Table: clause.CurrentTable, Name: s.schema.PrioritizedPrimaryField.DBName},
		Value:  key,
	}
}
