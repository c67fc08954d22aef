package service

import (
	"math"

	"launchpilot/domain"
)

// monthState is the unrounded view of one simulated month. Running totals
// carried into the next month always come from here, never from the
// rounded MonthRecord.
type monthState struct {
	month              int
	growthFactor       float64
	seasonalMultiplier float64
	leads              float64
	newCustomers       float64
	churnedCustomers   float64
	totalCustomers     float64
	baseRevenue        float64
	upsellRevenue      float64
	monthlyRevenue     float64
	cumulativeRevenue  float64
	costs              float64
	profit             float64
	cumulativeProfit   float64
	cashFlow           float64
}

// ScenarioRun is a scenario result together with the unrounded totals that
// insight thresholds are checked against.
type ScenarioRun struct {
	Result domain.ScenarioResult

	totalRevenue       float64
	netProfit          float64
	returnOnInvestment float64
}

// SimulateScenario runs the month-by-month model for one adjusted
// parameter set and derives the scenario summary metrics.
func SimulateScenario(name domain.ScenarioName, input domain.ProjectionInputs) domain.ScenarioResult {
	return RunScenario(name, input).Result
}

// RunScenario is SimulateScenario keeping the unrounded totals alongside
// the presented result.
func RunScenario(name domain.ScenarioName, input domain.ProjectionInputs) ScenarioRun {
	states := simulateMonths(input)

	months := make([]domain.MonthRecord, len(states))
	breakEvenMonth := input.Timeframe + 1
	for i, st := range states {
		months[i] = toMonthRecord(st)
		if breakEvenMonth > input.Timeframe && st.cumulativeProfit > 0 {
			breakEvenMonth = st.month
		}
	}

	var totalRevenue, netProfit float64
	if n := len(states); n > 0 {
		totalRevenue = states[n-1].cumulativeRevenue
		netProfit = states[n-1].cumulativeProfit
	}
	roi := returnOnInvestment(input, netProfit)

	return ScenarioRun{
		Result: domain.ScenarioResult{
			Name:                  name,
			Months:                months,
			TotalRevenue:          roundToUnit(totalRevenue),
			NetProfit:             roundToUnit(netProfit),
			BreakEvenMonth:        breakEvenMonth,
			CustomerLifetimeValue: roundTo2Decimals(input.PricePoint * input.LifetimeValueMultiplier),
			ReturnOnInvestment:    roundTo2Decimals(roi),
		},
		totalRevenue:       totalRevenue,
		netProfit:          netProfit,
		returnOnInvestment: roi,
	}
}

func simulateMonths(input domain.ProjectionInputs) []monthState {
	states := make([]monthState, 0, input.Timeframe)

	var totalCustomers, cumulativeRevenue, cumulativeProfit float64
	for m := 1; m <= input.Timeframe; m++ {
		st := monthState{month: m}

		// Growth compounds lead generation, not the customer base.
		st.growthFactor = math.Pow(1+input.MonthlyGrowthRate/100, float64(m-1))
		st.seasonalMultiplier = 1 + math.Sin(2*math.Pi*float64(m-1)/SeasonalCycleMonths)*(input.SeasonalityFactor-1)

		// Without a paid acquisition cost there is no lead funnel to model.
		if input.AcquisitionCost > 0 {
			st.leads = (input.MarketingBudget / input.AcquisitionCost) * st.growthFactor * st.seasonalMultiplier
		}
		st.newCustomers = st.leads * (input.ConversionRate / 100)

		if input.SubscriptionType != domain.SubscriptionOneTime {
			st.churnedCustomers = totalCustomers * (input.ChurnRate / 100)
		}
		totalCustomers = math.Max(0, totalCustomers-st.churnedCustomers+st.newCustomers)
		st.totalCustomers = totalCustomers

		st.baseRevenue = baseRevenue(input, m, totalCustomers, st.newCustomers)
		st.upsellRevenue = st.newCustomers * (input.UpsellRate / 100) * input.UpsellAmount
		st.monthlyRevenue = st.baseRevenue + st.upsellRevenue
		cumulativeRevenue += st.monthlyRevenue
		st.cumulativeRevenue = cumulativeRevenue

		variableCosts := st.monthlyRevenue * (input.VariableCostPercentage / 100)
		st.costs = input.FixedCosts + variableCosts + input.MarketingBudget

		st.profit = st.monthlyRevenue - st.costs
		cumulativeProfit += st.profit
		st.cumulativeProfit = cumulativeProfit
		st.cashFlow = st.monthlyRevenue - st.costs

		states = append(states, st)
	}
	return states
}

// baseRevenue bills the whole base for monthly and one-time plans. Annual
// plans bill the entire base a year upfront in month 1 and afterwards only
// the month's new customers; renewals inside the horizon are not modeled.
func baseRevenue(input domain.ProjectionInputs, month int, totalCustomers, newCustomers float64) float64 {
	if input.SubscriptionType != domain.SubscriptionAnnual {
		return totalCustomers * input.PricePoint
	}
	if month == 1 {
		return totalCustomers * input.PricePoint * AnnualBillingMonths
	}
	return newCustomers * input.PricePoint * AnnualBillingMonths
}

func returnOnInvestment(input domain.ProjectionInputs, netProfit float64) float64 {
	totalInvestment := (input.FixedCosts + input.MarketingBudget) * float64(input.Timeframe)
	if totalInvestment <= 0 {
		return 0
	}
	return ((netProfit - totalInvestment) / totalInvestment) * 100
}

func toMonthRecord(st monthState) domain.MonthRecord {
	return domain.MonthRecord{
		Month:             st.month,
		NewCustomers:      roundToUnit(st.newCustomers),
		ChurnedCustomers:  roundToUnit(st.churnedCustomers),
		TotalCustomers:    roundToUnit(st.totalCustomers),
		MonthlyRevenue:    roundToUnit(st.monthlyRevenue),
		CumulativeRevenue: roundToUnit(st.cumulativeRevenue),
		Costs:             roundToUnit(st.costs),
		Profit:            roundToUnit(st.profit),
		CumulativeProfit:  roundToUnit(st.cumulativeProfit),
		CashFlow:          roundToUnit(st.cashFlow),
	}
}
