package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

var (
	demoAll      bool
	demoScenario string

	demoCmd = &cobra.Command{
		Use:   "demo [scenario]",
		Short: "Run scenarios",
		Long: `Run faultz scenarios and log each outcome.

When run with a scenario name (or --scenario), runs that scenario.
When run with --all, or without a name, runs every scenario in order.

Available scenarios:
  boundary  A declared failure crosses an unconstrained API and is recovered
  mismatch  Recovery for the wrong type leaves the carrier intact
  defect    An undeclared failure is never intercepted
  fallback  Cache, database and default value chained on declared failures
  discard   A best-effort audit effect whose declared failures are dropped
  monitor   Outcome metrics, spans and hooks around an operation`,
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}

			var completions []string
			for _, s := range getAllScenarios() {
				if strings.HasPrefix(s.Name(), toComplete) {
					completions = append(completions, s.Name())
				}
			}
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := demoScenario
			if len(args) > 0 {
				name = args[0]
			}
			return runDemo(cmd.Context(), name, demoAll)
		},
	}
)

func init() {
	demoCmd.Flags().BoolVar(&demoAll, "all", false, "Run all scenarios sequentially")
	demoCmd.Flags().StringVar(&demoScenario, "scenario", "", "Scenario to run")
}

// runDemo runs one scenario by name, or all of them.
func runDemo(ctx context.Context, name string, all bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	log := slog.Default()
	stop := forwardSignals(ctx, log)
	defer stop()

	if all || name == "" {
		for _, s := range getAllScenarios() {
			if err := runScenario(ctx, log, s); err != nil {
				return err
			}
		}
		return nil
	}

	s, ok := getScenarioByName(name)
	if !ok {
		return fmt.Errorf("unknown scenario: %s\n\nRun 'faultz list' to see available scenarios", name)
	}
	return runScenario(ctx, log, s)
}

func runScenario(ctx context.Context, log *slog.Logger, s Scenario) error {
	scoped := log.With("scenario", s.Name())
	scoped.Info("starting", "description", s.Description())
	if err := s.Run(ctx, scoped); err != nil {
		return fmt.Errorf("scenario %s: %w", s.Name(), err)
	}
	scoped.Info("done")
	return nil
}
