package domain

import "time"

type ProductType string

const (
	ProductSaaS       ProductType = "saas"
	ProductCourse     ProductType = "course"
	ProductConsulting ProductType = "consulting"
	ProductPhysical   ProductType = "physical"
	ProductDigital    ProductType = "digital"
)

type SubscriptionType string

const (
	SubscriptionMonthly SubscriptionType = "monthly"
	SubscriptionAnnual  SubscriptionType = "annual"
	SubscriptionOneTime SubscriptionType = "one-time"
)

// ProjectionInputs is the canonical business-model parameter set supplied by
// the caller. Percentages are expressed as 0-100, not 0-1.
type ProjectionInputs struct {
	ProductType             ProductType      `json:"productType" yaml:"productType" validate:"required,oneof=saas course consulting physical digital"`
	PricePoint              float64          `json:"pricePoint" yaml:"pricePoint" validate:"gte=1"`
	SubscriptionType        SubscriptionType `json:"subscriptionType" yaml:"subscriptionType" validate:"required,oneof=monthly annual one-time"`
	TargetCustomers         float64          `json:"targetCustomers" yaml:"targetCustomers" validate:"gte=1"`
	ConversionRate          float64          `json:"conversionRate" yaml:"conversionRate" validate:"gte=0.1,lte=100"`
	ChurnRate               float64          `json:"churnRate" yaml:"churnRate" validate:"gte=0,lte=100"`
	AcquisitionCost         float64          `json:"acquisitionCost" yaml:"acquisitionCost" validate:"gte=0"`
	LifetimeValueMultiplier float64          `json:"lifetimeValueMultiplier" yaml:"lifetimeValueMultiplier" validate:"gte=1"`
	UpsellRate              float64          `json:"upsellRate" yaml:"upsellRate" validate:"gte=0,lte=100"`
	UpsellAmount            float64          `json:"upsellAmount" yaml:"upsellAmount" validate:"gte=0"`
	FixedCosts              float64          `json:"fixedCosts" yaml:"fixedCosts" validate:"gte=0"`
	VariableCostPercentage  float64          `json:"variableCostPercentage" yaml:"variableCostPercentage" validate:"gte=0,lte=100"`
	MarketingBudget         float64          `json:"marketingBudget" yaml:"marketingBudget" validate:"gte=0"`
	Timeframe               int              `json:"timeframe" yaml:"timeframe" validate:"gte=1,lte=36"`
	MonthlyGrowthRate       float64          `json:"monthlyGrowthRate" yaml:"monthlyGrowthRate" validate:"gte=0,lte=100"`
	SeasonalityFactor       float64          `json:"seasonalityFactor" yaml:"seasonalityFactor" validate:"gte=0.5,lte=2"`
}

type ScenarioName string

const (
	ScenarioConservative ScenarioName = "Conservative"
	ScenarioRealistic    ScenarioName = "Realistic"
	ScenarioOptimistic   ScenarioName = "Optimistic"
)

// ScenarioAdjustment holds the multipliers applied to the canonical inputs
// to derive a scenario.
type ScenarioAdjustment struct {
	Name                     ScenarioName
	ConversionRateMultiplier float64
	GrowthRateMultiplier     float64
	ChurnRateMultiplier      float64
}

// ScenarioInputs pairs a scenario name with its adjusted parameter set.
type ScenarioInputs struct {
	Name   ScenarioName
	Inputs ProjectionInputs
}

type MonthRecord struct {
	Month             int     `json:"month"`
	NewCustomers      float64 `json:"newCustomers"`
	ChurnedCustomers  float64 `json:"churnedCustomers"`
	TotalCustomers    float64 `json:"totalCustomers"`
	MonthlyRevenue    float64 `json:"monthlyRevenue"`
	CumulativeRevenue float64 `json:"cumulativeRevenue"`
	Costs             float64 `json:"costs"`
	Profit            float64 `json:"profit"`
	CumulativeProfit  float64 `json:"cumulativeProfit"`
	CashFlow          float64 `json:"cashFlow"`
}

type ScenarioResult struct {
	Name                  ScenarioName  `json:"name"`
	Months                []MonthRecord `json:"months"`
	TotalRevenue          float64       `json:"totalRevenue"`
	NetProfit             float64       `json:"netProfit"`
	BreakEvenMonth        int           `json:"breakEvenMonth"`
	CustomerLifetimeValue float64       `json:"customerLifetimeValue"`
	ReturnOnInvestment    float64       `json:"returnOnInvestment"`
}

type Insights struct {
	MarginHealth              float64  `json:"marginHealth"`
	BreakEvenAnalysis         string   `json:"breakEvenAnalysis"`
	RiskLevel                 string   `json:"riskLevel"`
	LTVCACRatio               float64  `json:"ltvcacRatio"`
	PaybackPeriod             int      `json:"paybackPeriod"`
	CustomerConcentrationRisk string   `json:"customerConcentrationRisk"`
	Recommendations           []string `json:"recommendations"`
	ModelingNotes             []string `json:"modelingNotes,omitempty"`
}

// Projection is the assembled engine output for one request.
type Projection struct {
	ID          string           `json:"id"`
	Inputs      ProjectionInputs `json:"inputs"`
	Scenarios   []ScenarioResult `json:"scenarios"`
	Insights    Insights         `json:"insights"`
	Summary     string           `json:"summary,omitempty"`
	GeneratedAt time.Time        `json:"generatedAt"`
}
