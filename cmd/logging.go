package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
	"github.com/vietddude/stylelog"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/faultz"
)

func setupLogging(verbose, noColor bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	stylelog.InitDefault(&tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	})
}

// forwardSignals logs faultz signals at debug level until the returned
// function is called. The returned function drains pending events first.
func forwardSignals(ctx context.Context, log *slog.Logger) func() {
	var stops []func()

	minted := capitan.Hook(faultz.SignalCarrierMinted, func(_ context.Context, e *capitan.Event) {
		causeType, _ := faultz.FieldCauseType.From(e)
		message, _ := faultz.FieldError.From(e)
		log.Debug("carrier minted", "cause_type", causeType, "error", message)
	})
	stops = append(stops, func() {
		_ = minted.Drain(ctx) //nolint:errcheck
		minted.Close()
	})

	recovered := capitan.Hook(faultz.SignalCarrierRecovered, func(_ context.Context, e *capitan.Event) {
		target, _ := faultz.FieldTarget.From(e)
		causeType, _ := faultz.FieldCauseType.From(e)
		log.Debug("carrier recovered", "target", target, "cause_type", causeType)
	})
	stops = append(stops, func() {
		_ = recovered.Drain(ctx) //nolint:errcheck
		recovered.Close()
	})

	passed := capitan.Hook(faultz.SignalCarrierPassed, func(_ context.Context, e *capitan.Event) {
		target, _ := faultz.FieldTarget.From(e)
		causeType, _ := faultz.FieldCauseType.From(e)
		log.Debug("carrier passed", "target", target, "cause_type", causeType)
	})
	stops = append(stops, func() {
		_ = passed.Drain(ctx) //nolint:errcheck
		passed.Close()
	})

	monitored := capitan.Hook(faultz.SignalMonitorUndeclared, func(_ context.Context, e *capitan.Event) {
		name, _ := faultz.FieldName.From(e)
		message, _ := faultz.FieldError.From(e)
		duration, _ := faultz.FieldDuration.From(e)
		log.Debug("monitor saw undeclared failure", "monitor", name, "error", message, "seconds", duration)
	})
	stops = append(stops, func() {
		_ = monitored.Drain(ctx) //nolint:errcheck
		monitored.Close()
	})

	return func() {
		for _, stop := range stops {
			stop()
		}
	}
}

// logOutcome logs one invocation outcome classified for the declared type E.
func logOutcome[E error, R any](log *slog.Logger, step string, result R, err error) {
	declared, channel := faultz.Classify[E](err)
	switch channel {
	case faultz.Success:
		log.Info(step, "channel", channel, "result", result)
	case faultz.DeclaredChannel:
		log.Warn(step, "channel", channel, "error", declared)
	default:
		log.Error(step, "channel", channel, "error", err, "carrier", faultz.IsCarrier(err))
	}
}
