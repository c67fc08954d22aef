package service

import "launchpilot/domain"

// BuildProjection runs every scenario and aggregates the results. It is a
// pure function of its input and safe for concurrent use; callers are
// expected to have validated the input already.
func BuildProjection(input domain.ProjectionInputs) ([]domain.ScenarioResult, domain.Insights) {
	derived := DeriveScenarios(input)

	runs := make([]ScenarioRun, 0, len(derived))
	scenarios := make([]domain.ScenarioResult, 0, len(derived))
	for _, s := range derived {
		run := RunScenario(s.Name, s.Inputs)
		runs = append(runs, run)
		scenarios = append(scenarios, run.Result)
	}

	return scenarios, GenerateInsights(input, runs)
}
