package service

import "launchpilot/domain"

// DeriveScenarios scales conversion, growth and churn for each scenario in
// ScenarioAdjustments. Scaled rates are not clamped back into 0-100.
func DeriveScenarios(input domain.ProjectionInputs) []domain.ScenarioInputs {
	scenarios := make([]domain.ScenarioInputs, 0, len(ScenarioAdjustments))
	for _, adj := range ScenarioAdjustments {
		adjusted := input
		adjusted.ConversionRate = input.ConversionRate * adj.ConversionRateMultiplier
		adjusted.MonthlyGrowthRate = input.MonthlyGrowthRate * adj.GrowthRateMultiplier
		adjusted.ChurnRate = input.ChurnRate * adj.ChurnRateMultiplier

		scenarios = append(scenarios, domain.ScenarioInputs{
			Name:   adj.Name,
			Inputs: adjusted,
		})
	}
	return scenarios
}
