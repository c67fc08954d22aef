package service

import "launchpilot/domain"

const (
	// Seasonal cycle length in months; sin((m-1)·π/6) repeats every 12.
	SeasonalCycleMonths = 12

	// Annual plans bill twelve months upfront.
	AnnualBillingMonths = 12

	// Insight thresholds
	HealthyLTVCACRatio   = 3.0
	HighChurnRate        = 10.0
	LowGrowthRate        = 5.0
	HealthyMarginPercent = 20.0
	LowRiskROI           = 100.0
	MediumRiskROI        = 50.0
	SmallCustomerBase    = 100
	MediumCustomerBase   = 1000
)

const (
	cacheKeyPrefix           = "projection:"
	narrativeMaxTokens       = 300
	defaultNarrativeModel    = "gpt-4o-mini"
	defaultNarrativeEndpoint = "https://api.openai.com/v1/chat/completions"
)

// ScenarioAdjustments are applied in this order; callers rely on it.
var ScenarioAdjustments = []domain.ScenarioAdjustment{
	{
		Name:                     domain.ScenarioConservative,
		ConversionRateMultiplier: 0.7,
		GrowthRateMultiplier:     0.6,
		ChurnRateMultiplier:      1.3,
	},
	{
		Name:                     domain.ScenarioRealistic,
		ConversionRateMultiplier: 1.0,
		GrowthRateMultiplier:     1.0,
		ChurnRateMultiplier:      1.0,
	},
	{
		Name:                     domain.ScenarioOptimistic,
		ConversionRateMultiplier: 1.4,
		GrowthRateMultiplier:     1.5,
		ChurnRateMultiplier:      0.7,
	},
}
