package service

import "launchpilot/domain"

// referenceInputs is the worked SaaS example used across the engine tests.
func referenceInputs() domain.ProjectionInputs {
	return domain.ProjectionInputs{
		ProductType:             domain.ProductSaaS,
		PricePoint:              97,
		SubscriptionType:        domain.SubscriptionMonthly,
		TargetCustomers:         1000,
		ConversionRate:          2.5,
		ChurnRate:               5,
		AcquisitionCost:         150,
		LifetimeValueMultiplier: 3,
		UpsellRate:              20,
		UpsellAmount:            200,
		FixedCosts:              5000,
		VariableCostPercentage:  20,
		MarketingBudget:         10000,
		Timeframe:               12,
		MonthlyGrowthRate:       15,
		SeasonalityFactor:       1,
	}
}
