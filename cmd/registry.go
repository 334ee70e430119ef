package main

import (
	"context"
	"log/slog"
)

// Scenario defines the interface that all scenarios must implement
type Scenario interface {
	Name() string
	Description() string
	Run(ctx context.Context, log *slog.Logger) error
}

// getAllScenarios returns all registered scenarios in a consistent order
func getAllScenarios() []Scenario {
	return []Scenario{
		&BoundaryScenario{},
		&MismatchScenario{},
		&DefectScenario{},
		&FallbackScenario{},
		&DiscardScenario{},
		&MonitorScenario{},
	}
}

// getScenarioByName returns a specific scenario by name
func getScenarioByName(name string) (Scenario, bool) {
	for _, s := range getAllScenarios() {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}
