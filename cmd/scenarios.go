package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zoobzio/faultz"
)

// Domain failures shared by the scenarios.

type ProductNotFoundError struct {
	SKU string
}

func (e *ProductNotFoundError) Error() string { return "product not found: " + e.SKU }

type OutOfStockError struct {
	SKU       string
	Available int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("out of stock: %s (%d available)", e.SKU, e.Available)
}

type CacheMissError struct {
	Key string
}

func (e *CacheMissError) Error() string { return "cache miss: " + e.Key }

type AuditError struct {
	Event string
}

func (e *AuditError) Error() string { return "audit sink rejected " + e.Event }

var errCorruptRecord = errors.New("corrupt inventory record")

var catalog = map[string]int{
	"sku-1": 12,
	"sku-2": 0,
}

func lookupStock() faultz.Operation[string, int, *ProductNotFoundError] {
	return faultz.Apply[*ProductNotFoundError](func(_ context.Context, sku string) (int, error) {
		if sku == "sku-bad" {
			return 0, errCorruptRecord
		}
		n, ok := catalog[sku]
		if !ok {
			return 0, &ProductNotFoundError{SKU: sku}
		}
		return n, nil
	})
}

// runBatch stands for an API that only accepts operations declaring nothing,
// such as a worker pool or a plugin host.
func runBatch[A, R any](ctx context.Context, op faultz.Operation[A, R, faultz.Never], items []A) ([]R, error) {
	results := make([]R, 0, len(items))
	for _, item := range items {
		r, err := op(ctx, item)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, nil
}

// BoundaryScenario carries a declared failure across runBatch and recovers it.
type BoundaryScenario struct{}

func (*BoundaryScenario) Name() string { return "boundary" }

func (*BoundaryScenario) Description() string {
	return "A declared failure crosses an unconstrained API and is recovered"
}

func (*BoundaryScenario) Run(ctx context.Context, log *slog.Logger) error {
	loose := faultz.Unchecked(lookupStock())

	batch := faultz.Apply[faultz.Never](func(ctx context.Context, skus []string) ([]int, error) {
		return runBatch(ctx, loose, skus)
	})

	result, err := faultz.InvokeAndUnwrap[*ProductNotFoundError](ctx, batch, []string{"sku-1", "sku-9"})
	logOutcome[*ProductNotFoundError](log, "batch lookup", result, err)

	nf, ok := faultz.Declared[*ProductNotFoundError](err)
	if !ok || nf.SKU != "sku-9" {
		return fmt.Errorf("expected recovered not found for sku-9, got %v", err)
	}
	return nil
}

// MismatchScenario recovers for the wrong type first.
type MismatchScenario struct{}

func (*MismatchScenario) Name() string { return "mismatch" }

func (*MismatchScenario) Description() string {
	return "Recovery for the wrong type leaves the carrier intact"
}

func (*MismatchScenario) Run(ctx context.Context, log *slog.Logger) error {
	reserve := faultz.Apply[*OutOfStockError](func(_ context.Context, sku string) (int, error) {
		return 0, &OutOfStockError{SKU: sku, Available: catalog[sku]}
	})
	loose := faultz.Unchecked(reserve)

	wrong := faultz.Checked[*ProductNotFoundError](loose)
	_, err := wrong(ctx, "sku-2")
	logOutcome[*ProductNotFoundError](log, "recover as not found", 0, err)
	if !faultz.IsCarrier(err) {
		return fmt.Errorf("expected the carrier to pass, got %T", err)
	}

	right := faultz.Checked[*OutOfStockError](wrong)
	_, err = right(ctx, "sku-2")
	logOutcome[*OutOfStockError](log, "recover as out of stock", 0, err)
	if _, ok := faultz.Declared[*OutOfStockError](err); !ok {
		return fmt.Errorf("expected recovered out of stock, got %v", err)
	}
	return nil
}

// DefectScenario shows that undeclared failures pass every layer.
type DefectScenario struct{}

func (*DefectScenario) Name() string { return "defect" }

func (*DefectScenario) Description() string {
	return "An undeclared failure is never intercepted"
}

func (*DefectScenario) Run(ctx context.Context, log *slog.Logger) error {
	handled := faultz.HandleUndeclared(lookupStock(), func(_ context.Context, _ *ProductNotFoundError) (int, error) {
		return 0, nil
	})
	layered := faultz.OnErrorReturn(faultz.Checked[*ProductNotFoundError](handled), -1)

	result, err := layered(ctx, "sku-bad")
	logOutcome[faultz.Never](log, "lookup corrupt record", result, err)
	if !errors.Is(err, errCorruptRecord) {
		return fmt.Errorf("expected the defect to reach the caller, got %v", err)
	}
	return nil
}

// FallbackScenario chains cache, database and a default value.
type FallbackScenario struct{}

func (*FallbackScenario) Name() string { return "fallback" }

func (*FallbackScenario) Description() string {
	return "Cache, database and default value chained on declared failures"
}

func (*FallbackScenario) Run(ctx context.Context, log *slog.Logger) error {
	fromCache := faultz.Apply[*CacheMissError](func(_ context.Context, sku string) (int, error) {
		return 0, &CacheMissError{Key: sku}
	})

	fromDatabase := faultz.OnErrorApply(fromCache, lookupStock())
	withDefault := faultz.OnErrorGet(fromDatabase, faultz.Supply[faultz.Never](func(_ context.Context) (int, error) {
		return 0, nil
	}))
	final := faultz.OnErrorReturn(withDefault, -1)

	for _, sku := range []string{"sku-1", "sku-9"} {
		result, err := final(ctx, sku)
		logOutcome[faultz.Never](log, "stock for "+sku, result, err)
		if err != nil {
			return err
		}
	}
	return nil
}

// DiscardScenario records a best-effort audit event.
type DiscardScenario struct{}

func (*DiscardScenario) Name() string { return "discard" }

func (*DiscardScenario) Description() string {
	return "A best-effort audit effect whose declared failures are dropped"
}

func (*DiscardScenario) Run(ctx context.Context, log *slog.Logger) error {
	audit := faultz.Effect[*AuditError](func(_ context.Context, event string) error {
		log.Debug("writing audit event", "event", event)
		return &AuditError{Event: event}
	})

	result, err := faultz.OnErrorDiscard(audit)(ctx, "stock.reserved")
	logOutcome[faultz.Never](log, "audit", result, err)
	return err
}

// MonitorScenario observes a lookup and prints its counters.
type MonitorScenario struct{}

func (*MonitorScenario) Name() string { return "monitor" }

func (*MonitorScenario) Description() string {
	return "Outcome metrics, spans and hooks around an operation"
}

func (*MonitorScenario) Run(ctx context.Context, log *slog.Logger) error {
	monitor := faultz.NewMonitor("lookup-stock", lookupStock())
	defer monitor.Close()

	done := make(chan struct{}, 1)
	if err := monitor.OnUndeclared(func(_ context.Context, event faultz.MonitorEvent) error {
		log.Warn("undeclared hook", "monitor", event.Name, "error", event.Error, "duration", event.Duration)
		done <- struct{}{}
		return nil
	}); err != nil {
		return err
	}

	lookup := faultz.OnErrorReturn(monitor.Operation(), 0)
	for _, sku := range []string{"sku-1", "sku-2", "sku-9", "sku-bad"} {
		result, err := lookup(ctx, sku)
		logOutcome[faultz.Never](log, "monitored lookup "+sku, result, err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		return errors.New("undeclared hook was not called")
	}

	metrics := monitor.Metrics()
	log.Info("monitor totals",
		"invocations", metrics.Counter(faultz.MonitorInvocationsTotal).Value(),
		"successes", metrics.Counter(faultz.MonitorSuccessesTotal).Value(),
		"declared", metrics.Counter(faultz.MonitorDeclaredTotal).Value(),
		"undeclared", metrics.Counter(faultz.MonitorUndeclaredTotal).Value(),
	)
	return nil
}
