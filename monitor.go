package faultz

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Observability constants for the Monitor connector.
const (
	// Metrics.
	MonitorInvocationsTotal = metricz.Key("monitor.invocations.total")
	MonitorSuccessesTotal   = metricz.Key("monitor.successes.total")
	MonitorDeclaredTotal    = metricz.Key("monitor.declared.total")
	MonitorUndeclaredTotal  = metricz.Key("monitor.undeclared.total")
	MonitorCarriersTotal    = metricz.Key("monitor.carriers.total")
	MonitorPanicsTotal      = metricz.Key("monitor.panics.total")
	MonitorDurationMs       = metricz.Key("monitor.duration.ms")

	// Spans.
	MonitorInvokeSpan = tracez.Key("monitor.invoke")

	// Tags.
	MonitorTagChannel = tracez.Tag("monitor.channel")
	MonitorTagError   = tracez.Tag("monitor.error")
	MonitorTagCarrier = tracez.Tag("monitor.carrier")

	// Hook event keys.
	MonitorEventSuccess    = hookz.Key("monitor.success")
	MonitorEventDeclared   = hookz.Key("monitor.declared")
	MonitorEventUndeclared = hookz.Key("monitor.undeclared")
)

// MonitorEvent describes one monitored invocation.
type MonitorEvent struct {
	Name      string        // Monitor name
	Channel   Channel       // Outcome channel
	Error     error         // Returned error, nil on success or panic
	Panic     any           // Panic value, nil unless the operation panicked
	Carrier   bool          // Whether the error is a *Carrier
	Duration  time.Duration // How long the invocation took
	Timestamp time.Time     // When the invocation finished
}

// Monitor observes an operation without changing any of its outcomes.
// Results, declared failures, undeclared failures and panics all reach the
// caller exactly as the wrapped operation produced them.
//
// # Observability
//
// Metrics:
//   - monitor.invocations.total: Counter of invocations
//   - monitor.successes.total: Counter of successful invocations
//   - monitor.declared.total: Counter of declared failures
//   - monitor.undeclared.total: Counter of undeclared failures, panics included
//   - monitor.carriers.total: Counter of undeclared failures that are carriers
//   - monitor.panics.total: Counter of panics
//   - monitor.duration.ms: Gauge of the last invocation's duration
//
// Traces:
//   - monitor.invoke: Span per invocation, tagged with the outcome channel
//
// Events (via hooks):
//   - monitor.success, monitor.declared, monitor.undeclared
//
// Example:
//
//	monitor := faultz.NewMonitor("charge-card", charge)
//	defer monitor.Close()
//
//	monitor.OnUndeclared(func(ctx context.Context, event faultz.MonitorEvent) error {
//	    alert.Critical("charge-card defect: %v", event.Error)
//	    return nil
//	})
//
//	pipeline := faultz.OnErrorReturn(monitor.Operation(), Receipt{Pending: true})
type Monitor[A, R any, E error] struct {
	op      Operation[A, R, E]
	name    string
	clock   clockz.Clock
	mu      sync.RWMutex
	metrics *metricz.Registry
	tracer  *tracez.Tracer
	hooks   *hookz.Hooks[MonitorEvent]
}

// NewMonitor creates a Monitor for op.
func NewMonitor[A, R any, E error](name string, op Operation[A, R, E]) *Monitor[A, R, E] {
	require("NewMonitor", "operation", op != nil)

	metrics := metricz.New()
	metrics.Counter(MonitorInvocationsTotal)
	metrics.Counter(MonitorSuccessesTotal)
	metrics.Counter(MonitorDeclaredTotal)
	metrics.Counter(MonitorUndeclaredTotal)
	metrics.Counter(MonitorCarriersTotal)
	metrics.Counter(MonitorPanicsTotal)
	metrics.Gauge(MonitorDurationMs)

	return &Monitor[A, R, E]{
		name:    name,
		op:      op,
		metrics: metrics,
		tracer:  tracez.New(),
		hooks:   hookz.New[MonitorEvent](),
	}
}

// Invoke runs the wrapped operation and records its outcome.
func (m *Monitor[A, R, E]) Invoke(ctx context.Context, args A) (result R, err error) {
	m.mu.RLock()
	op := m.op
	m.mu.RUnlock()

	clock := m.getClock()
	start := clock.Now()
	m.metrics.Counter(MonitorInvocationsTotal).Inc()

	ctx, span := m.tracer.StartSpan(ctx, MonitorInvokeSpan)
	defer span.Finish()

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		elapsed := clock.Since(start)
		m.metrics.Gauge(MonitorDurationMs).Set(float64(elapsed.Milliseconds()))
		m.metrics.Counter(MonitorPanicsTotal).Inc()
		m.metrics.Counter(MonitorUndeclaredTotal).Inc()
		span.SetTag(MonitorTagChannel, UndeclaredChannel.String())
		span.SetTag(MonitorTagError, fmt.Sprint(r))

		capitan.Error(ctx, SignalMonitorUndeclared,
			FieldName.Field(m.name),
			FieldChannel.Field(UndeclaredChannel.String()),
			FieldError.Field(fmt.Sprint(r)),
			FieldDuration.Field(elapsed.Seconds()),
		)
		_ = m.hooks.Emit(ctx, MonitorEventUndeclared, MonitorEvent{ //nolint:errcheck
			Name:      m.name,
			Channel:   UndeclaredChannel,
			Panic:     r,
			Duration:  elapsed,
			Timestamp: clock.Now(),
		})
		panic(r)
	}()

	result, err = op(ctx, args)

	elapsed := clock.Since(start)
	m.metrics.Gauge(MonitorDurationMs).Set(float64(elapsed.Milliseconds()))

	_, channel := Classify[E](err)
	span.SetTag(MonitorTagChannel, channel.String())

	event := MonitorEvent{
		Name:      m.name,
		Channel:   channel,
		Error:     err,
		Carrier:   IsCarrier(err),
		Duration:  elapsed,
		Timestamp: clock.Now(),
	}

	switch channel {
	case Success:
		m.metrics.Counter(MonitorSuccessesTotal).Inc()
		_ = m.hooks.Emit(ctx, MonitorEventSuccess, event) //nolint:errcheck
	case DeclaredChannel:
		m.metrics.Counter(MonitorDeclaredTotal).Inc()
		span.SetTag(MonitorTagError, err.Error())
		capitan.Warn(ctx, SignalMonitorDeclared,
			FieldName.Field(m.name),
			FieldChannel.Field(channel.String()),
			FieldError.Field(err.Error()),
			FieldDuration.Field(elapsed.Seconds()),
		)
		_ = m.hooks.Emit(ctx, MonitorEventDeclared, event) //nolint:errcheck
	default:
		m.metrics.Counter(MonitorUndeclaredTotal).Inc()
		span.SetTag(MonitorTagError, err.Error())
		if event.Carrier {
			m.metrics.Counter(MonitorCarriersTotal).Inc()
			span.SetTag(MonitorTagCarrier, "true")
		}
		capitan.Error(ctx, SignalMonitorUndeclared,
			FieldName.Field(m.name),
			FieldChannel.Field(channel.String()),
			FieldError.Field(err.Error()),
			FieldDuration.Field(elapsed.Seconds()),
		)
		_ = m.hooks.Emit(ctx, MonitorEventUndeclared, event) //nolint:errcheck
	}

	return result, err
}

// Operation returns the monitor as an Operation so it can be composed further.
func (m *Monitor[A, R, E]) Operation() Operation[A, R, E] {
	return m.Invoke
}

// Name returns the name of this monitor.
func (m *Monitor[A, R, E]) Name() string {
	return m.name
}

// SetOperation replaces the monitored operation.
func (m *Monitor[A, R, E]) SetOperation(op Operation[A, R, E]) *Monitor[A, R, E] {
	require("SetOperation", "operation", op != nil)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.op = op
	return m
}

// GetOperation returns the monitored operation.
func (m *Monitor[A, R, E]) GetOperation() Operation[A, R, E] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.op
}

// WithClock sets a custom clock for testing.
func (m *Monitor[A, R, E]) WithClock(clock clockz.Clock) *Monitor[A, R, E] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock = clock
	return m
}

// getClock returns the clock to use.
func (m *Monitor[A, R, E]) getClock() clockz.Clock {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.clock == nil {
		return clockz.RealClock
	}
	return m.clock
}

// Metrics returns the metrics registry for this monitor.
func (m *Monitor[A, R, E]) Metrics() *metricz.Registry {
	return m.metrics
}

// Tracer returns the tracer for this monitor.
func (m *Monitor[A, R, E]) Tracer() *tracez.Tracer {
	return m.tracer
}

// Close gracefully shuts down observability components.
func (m *Monitor[A, R, E]) Close() error {
	if m.tracer != nil {
		m.tracer.Close()
	}
	m.hooks.Close()
	return nil
}

// OnSuccess registers a handler for successful invocations.
// Handlers are called asynchronously.
func (m *Monitor[A, R, E]) OnSuccess(handler func(context.Context, MonitorEvent) error) error {
	_, err := m.hooks.Hook(MonitorEventSuccess, handler)
	return err
}

// OnDeclared registers a handler for declared failures.
// Handlers are called asynchronously.
func (m *Monitor[A, R, E]) OnDeclared(handler func(context.Context, MonitorEvent) error) error {
	_, err := m.hooks.Hook(MonitorEventDeclared, handler)
	return err
}

// OnUndeclared registers a handler for undeclared failures and panics.
// Handlers are called asynchronously.
func (m *Monitor[A, R, E]) OnUndeclared(handler func(context.Context, MonitorEvent) error) error {
	_, err := m.hooks.Hook(MonitorEventUndeclared, handler)
	return err
}
