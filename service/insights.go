package service

import (
	"math"

	"launchpilot/domain"
)

const (
	recommendLTVCAC    = "Improve your LTV:CAC ratio by lowering acquisition cost or raising customer lifetime value (target 3:1 or better)."
	recommendBreakEven = "Break-even is not reached within the projection window; extend the timeline or reduce fixed and marketing costs."
	recommendChurn     = "Churn is above 10% per month; invest in onboarding and retention before scaling acquisition."
	recommendGrowth    = "Monthly growth is below 5%; test additional acquisition channels or referral incentives."
	recommendMargin    = "Profit margin is below 20%; revisit pricing or reduce variable costs."

	noteAnnualRenewals = "Annual plans bill the whole base upfront in month 1 and only new customers afterwards; renewals within the projection window are not modeled."
)

// GenerateInsights derives threshold-based insights from the Realistic
// scenario and the caller's original inputs. Thresholds are checked against
// unrounded values; only the reported fields are rounded.
func GenerateInsights(input domain.ProjectionInputs, runs []ScenarioRun) domain.Insights {
	realistic := findScenario(runs, domain.ScenarioRealistic)

	marginHealth := 0.0
	if realistic.totalRevenue != 0 {
		marginHealth = realistic.netProfit / realistic.totalRevenue * 100
	}

	insights := domain.Insights{
		MarginHealth:              roundTo2Decimals(marginHealth),
		BreakEvenAnalysis:         breakEvenAnalysis(realistic.Result, input.Timeframe),
		RiskLevel:                 riskLevel(realistic.returnOnInvestment),
		PaybackPeriod:             paybackPeriod(input),
		CustomerConcentrationRisk: concentrationRisk(input.TargetCustomers),
		Recommendations:           []string{},
	}

	// LTV:CAC is undefined without an acquisition cost.
	hasCAC := input.AcquisitionCost > 0
	var ltvCAC float64
	if hasCAC {
		ltvCAC = input.PricePoint * input.LifetimeValueMultiplier / input.AcquisitionCost
		insights.LTVCACRatio = roundTo2Decimals(ltvCAC)
	}

	if hasCAC && ltvCAC < HealthyLTVCACRatio {
		insights.Recommendations = append(insights.Recommendations, recommendLTVCAC)
	}
	if realistic.Result.BreakEvenMonth > input.Timeframe {
		insights.Recommendations = append(insights.Recommendations, recommendBreakEven)
	}
	if input.ChurnRate > HighChurnRate {
		insights.Recommendations = append(insights.Recommendations, recommendChurn)
	}
	if input.MonthlyGrowthRate < LowGrowthRate {
		insights.Recommendations = append(insights.Recommendations, recommendGrowth)
	}
	if marginHealth < HealthyMarginPercent {
		insights.Recommendations = append(insights.Recommendations, recommendMargin)
	}

	if input.SubscriptionType == domain.SubscriptionAnnual {
		insights.ModelingNotes = append(insights.ModelingNotes, noteAnnualRenewals)
	}

	return insights
}

func findScenario(runs []ScenarioRun, name domain.ScenarioName) ScenarioRun {
	for _, r := range runs {
		if r.Result.Name == name {
			return r
		}
	}
	return ScenarioRun{}
}

func breakEvenAnalysis(result domain.ScenarioResult, timeframe int) string {
	if result.BreakEvenMonth <= timeframe {
		return "Achievable"
	}
	return "Challenging"
}

func riskLevel(roi float64) string {
	switch {
	case roi > LowRiskROI:
		return "Low"
	case roi > MediumRiskROI:
		return "Medium"
	default:
		return "High"
	}
}

// paybackPeriod is the months needed to recover CAC, assuming a year of
// revenue per customer for recurring plans.
func paybackPeriod(input domain.ProjectionInputs) int {
	billingMonths := float64(AnnualBillingMonths)
	if input.SubscriptionType == domain.SubscriptionOneTime {
		billingMonths = 1
	}
	return int(math.Ceil(input.AcquisitionCost / (input.PricePoint * billingMonths)))
}

func concentrationRisk(targetCustomers float64) string {
	switch {
	case targetCustomers < SmallCustomerBase:
		return "High"
	case targetCustomers < MediumCustomerBase:
		return "Medium"
	default:
		return "Low"
	}
}
