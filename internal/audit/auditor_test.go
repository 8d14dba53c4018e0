package audit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"audittrail/internal/audit"
	"audittrail/internal/lifecycle"
	"audittrail/internal/metrics"
	"audittrail/internal/models"
)

type fakeAppender struct {
	entries []*models.AuditTrail
	err     error
	panics  bool
}

func (f *fakeAppender) Append(_ context.Context, entry *models.AuditTrail) error {
	if f.panics {
		panic("sink exploded")
	}
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

type fakeSource struct {
	restorable bool
	kinds      []lifecycle.Kind
}

func (s *fakeSource) Observe(kind lifecycle.Kind, _ lifecycle.Observer) error {
	s.kinds = append(s.kinds, kind)
	return nil
}

func (s *fakeSource) SupportsRestore() bool { return s.restorable }

// order mimics an entity without its own ignore-set.
type order struct{}

type harness struct {
	trails  *fakeAppender
	logs    *observer.ObservedLogs
	metrics *metrics.Audit
	auditor *audit.Auditor
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	m := metrics.NewAudit(prometheus.NewRegistry())
	trails := &fakeAppender{}
	return &harness{
		trails:  trails,
		logs:    logs,
		metrics: m,
		auditor: audit.New(trails, audit.WithLogger(zap.New(core).Sugar()), audit.WithMetrics(m)),
	}
}

func createdOrder() lifecycle.Event {
	return lifecycle.Event{
		Kind:       lifecycle.Created,
		EntityName: "Order",
		Key:        42,
		Entity:     &order{},
		Current: lifecycle.Attributes{
			"total":      100,
			"password":   "x",
			"created_at": time.Now(),
		},
		Timestamps: []string{"created_at", "updated_at"},
	}
}

func TestAttach(t *testing.T) {
	h := newHarness(t)

	soft := &fakeSource{restorable: true}
	require.NoError(t, h.auditor.Attach(soft))
	assert.Equal(t, []lifecycle.Kind{lifecycle.Created, lifecycle.Updated, lifecycle.Deleted, lifecycle.Restored}, soft.kinds)

	hard := &fakeSource{}
	require.NoError(t, h.auditor.Attach(hard))
	assert.Equal(t, []lifecycle.Kind{lifecycle.Created, lifecycle.Updated, lifecycle.Deleted}, hard.kinds)
}

func TestObserve_WritesEntry(t *testing.T) {
	h := newHarness(t)
	ctx := audit.WithOrigin(context.Background(), audit.Origin{ActorID: "7", IPAddress: "10.0.0.1"})

	h.auditor.Observe(ctx, createdOrder())

	require.Len(t, h.trails.entries, 1)
	entry := h.trails.entries[0]
	assert.Equal(t, "Order", entry.EntityName)
	assert.Equal(t, "42", entry.EntityID)
	assert.Equal(t, models.ActionCreated, entry.Action)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "7", *entry.UserID)
	require.NotNil(t, entry.IPAddress)
	assert.Equal(t, "10.0.0.1", *entry.IPAddress)
	assert.Nil(t, entry.Changes.Before)
	assert.Equal(t, map[string]any{"total": 100}, entry.Changes.After)

	assert.Equal(t, 1.0, promtest.ToFloat64(h.metrics.EntriesTotal.WithLabelValues("created")))
	assert.Zero(t, h.logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestObserve_WithoutOrigin(t *testing.T) {
	h := newHarness(t)

	h.auditor.Observe(context.Background(), createdOrder())

	require.Len(t, h.trails.entries, 1)
	assert.Nil(t, h.trails.entries[0].UserID)
	assert.Nil(t, h.trails.entries[0].IPAddress)
}

func TestObserve_UpdateWithoutChangesIsSkipped(t *testing.T) {
	h := newHarness(t)

	h.auditor.Observe(context.Background(), lifecycle.Event{
		Kind:       lifecycle.Updated,
		EntityName: "Order",
		Key:        42,
		Entity:     &order{},
		Prior:      lifecycle.Attributes{"total": 100, "password": "old"},
		Current:    lifecycle.Attributes{"total": 100, "password": "new"},
	})

	assert.Empty(t, h.trails.entries)
	assert.Zero(t, promtest.ToFloat64(h.metrics.EntriesTotal.WithLabelValues("updated")))
	assert.Zero(t, promtest.ToFloat64(h.metrics.FailuresTotal.WithLabelValues("updated")))
}

func TestObserve_AppendFailureIsLogged(t *testing.T) {
	h := newHarness(t)
	h.trails.err = errors.New("connection refused")

	assert.NotPanics(t, func() {
		h.auditor.Observe(context.Background(), createdOrder())
	})

	warnings := h.logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	fields := warnings[0].ContextMap()
	assert.Equal(t, "audit logging failed", warnings[0].Message)
	assert.Equal(t, "Order", fields["model"])
	assert.Equal(t, int64(42), fields["id"])
	assert.Equal(t, "created", fields["action"])
	assert.Equal(t, "connection refused", fields["message"])

	assert.Equal(t, 1.0, promtest.ToFloat64(h.metrics.FailuresTotal.WithLabelValues("created")))
	assert.Zero(t, promtest.ToFloat64(h.metrics.EntriesTotal.WithLabelValues("created")))
}

func TestObserve_PanicIsContained(t *testing.T) {
	h := newHarness(t)
	h.trails.panics = true

	assert.NotPanics(t, func() {
		h.auditor.Observe(context.Background(), createdOrder())
	})

	warnings := h.logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].ContextMap()["message"], "sink exploded")
}

func TestObserve_MissingKeyIsLogged(t *testing.T) {
	h := newHarness(t)
	event := createdOrder()
	event.Key = nil

	h.auditor.Observe(context.Background(), event)

	assert.Empty(t, h.trails.entries)
	assert.Equal(t, 1, h.logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestNew_WithoutMetrics(t *testing.T) {
	trails := &fakeAppender{err: errors.New("down")}
	a := audit.New(trails, audit.WithLogger(zap.NewNop().Sugar()))

	assert.NotPanics(t, func() {
		a.Observe(context.Background(), createdOrder())
	})
}

func TestOrigin(t *testing.T) {
	assert.Equal(t, audit.Origin{}, audit.OriginFrom(context.Background()))

	ctx := audit.WithOrigin(context.Background(), audit.Origin{ActorID: "u1"})
	assert.Equal(t, audit.Origin{ActorID: "u1"}, audit.OriginFrom(ctx))
}
