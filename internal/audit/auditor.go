// Package audit records entity lifecycle transitions in the audit trail.
//
// An Auditor is attached to any lifecycle.Source. For every created, updated,
// deleted or restored event it computes a before/after payload, drops the
// ignored attributes and appends one models.AuditTrail entry. Auditing is a
// side effect: failures are logged as warnings and never reach the caller of
// the primary write.
package audit

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"audittrail/internal/lifecycle"
	"audittrail/internal/logger"
	"audittrail/internal/metrics"
	"audittrail/internal/models"
)

// Appender is the audit trail sink.
type Appender interface {
	Append(ctx context.Context, entry *models.AuditTrail) error
}

// Auditor is a lifecycle.Observer that writes audit trail entries.
type Auditor struct {
	trails  Appender
	log     *zap.SugaredLogger
	metrics *metrics.Audit
}

var _ lifecycle.Observer = (*Auditor)(nil)

// Option configures an Auditor.
type Option func(*Auditor)

// WithLogger sets the logger that receives failure warnings.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(a *Auditor) { a.log = l }
}

// WithMetrics enables the audit counters.
func WithMetrics(m *metrics.Audit) Option {
	return func(a *Auditor) { a.metrics = m }
}

// New creates an Auditor appending to trails.
func New(trails Appender, opts ...Option) *Auditor {
	a := &Auditor{trails: trails}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = logger.Get()
	}
	return a
}

// Attach registers the auditor on src for created, updated and deleted
// events, and for restored events when src supports restore.
func (a *Auditor) Attach(src lifecycle.Source) error {
	kinds := []lifecycle.Kind{lifecycle.Created, lifecycle.Updated, lifecycle.Deleted}
	if src.SupportsRestore() {
		kinds = append(kinds, lifecycle.Restored)
	}
	for _, kind := range kinds {
		if err := src.Observe(kind, a); err != nil {
			return fmt.Errorf("attach auditor for %s: %w", kind, err)
		}
	}
	return nil
}

// Observe records event. It always returns normally: errors and panics from
// payload computation or the append are converted into a warning.
func (a *Auditor) Observe(ctx context.Context, event lifecycle.Event) {
	defer func() {
		if r := recover(); r != nil {
			a.fail(event, fmt.Errorf("panic: %v", r))
		}
	}()

	written, err := a.record(ctx, event)
	if err != nil {
		a.fail(event, err)
		return
	}
	if written {
		a.metrics.Written(string(event.Kind))
	}
}

func (a *Auditor) record(ctx context.Context, event lifecycle.Event) (bool, error) {
	if event.Key == nil {
		return false, errors.New("event carries no entity key")
	}

	changes, ok, err := Payload(event)
	if err != nil {
		return false, err
	}
	if !ok {
		a.log.Debugw("audit skipped, no auditable change",
			"model", event.EntityName,
			"id", event.Key,
		)
		return false, nil
	}

	origin := OriginFrom(ctx)
	entry := &models.AuditTrail{
		EntityName: event.EntityName,
		EntityID:   fmt.Sprint(event.Key),
		Action:     models.Action(event.Kind),
		UserID:     optional(origin.ActorID),
		Changes:    changes,
		IPAddress:  optional(origin.IPAddress),
	}
	if err := a.trails.Append(ctx, entry); err != nil {
		return false, err
	}
	return true, nil
}

func (a *Auditor) fail(event lifecycle.Event, err error) {
	a.log.Warnw("audit logging failed",
		"model", event.EntityName,
		"id", event.Key,
		"action", string(event.Kind),
		"message", err.Error(),
	)
	a.metrics.Failed(string(event.Kind))
}
