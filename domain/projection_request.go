package domain

// ProjectionRequest is the wire form of ProjectionInputs. Numeric fields are
// pointers so an omitted value is rejected instead of read as zero.
type ProjectionRequest struct {
	ProductType             ProductType      `json:"productType" yaml:"productType" validate:"required,oneof=saas course consulting physical digital"`
	PricePoint              *float64         `json:"pricePoint" yaml:"pricePoint" validate:"required,gte=1"`
	SubscriptionType        SubscriptionType `json:"subscriptionType" yaml:"subscriptionType" validate:"required,oneof=monthly annual one-time"`
	TargetCustomers         *float64         `json:"targetCustomers" yaml:"targetCustomers" validate:"required,gte=1"`
	ConversionRate          *float64         `json:"conversionRate" yaml:"conversionRate" validate:"required,gte=0.1,lte=100"`
	ChurnRate               *float64         `json:"churnRate" yaml:"churnRate" validate:"required,gte=0,lte=100"`
	AcquisitionCost         *float64         `json:"acquisitionCost" yaml:"acquisitionCost" validate:"required,gte=0"`
	LifetimeValueMultiplier *float64         `json:"lifetimeValueMultiplier" yaml:"lifetimeValueMultiplier" validate:"required,gte=1"`
	UpsellRate              *float64         `json:"upsellRate" yaml:"upsellRate" validate:"required,gte=0,lte=100"`
	UpsellAmount            *float64         `json:"upsellAmount" yaml:"upsellAmount" validate:"required,gte=0"`
	FixedCosts              *float64         `json:"fixedCosts" yaml:"fixedCosts" validate:"required,gte=0"`
	VariableCostPercentage  *float64         `json:"variableCostPercentage" yaml:"variableCostPercentage" validate:"required,gte=0,lte=100"`
	MarketingBudget         *float64         `json:"marketingBudget" yaml:"marketingBudget" validate:"required,gte=0"`
	Timeframe               *int             `json:"timeframe" yaml:"timeframe" validate:"required,gte=1,lte=36"`
	MonthlyGrowthRate       *float64         `json:"monthlyGrowthRate" yaml:"monthlyGrowthRate" validate:"required,gte=0,lte=100"`
	SeasonalityFactor       *float64         `json:"seasonalityFactor" yaml:"seasonalityFactor" validate:"required,gte=0.5,lte=2"`
}

// Inputs maps a validated request onto ProjectionInputs. Absent fields
// become zero.
func (r ProjectionRequest) Inputs() ProjectionInputs {
	return ProjectionInputs{
		ProductType:             r.ProductType,
		PricePoint:              value(r.PricePoint),
		SubscriptionType:        r.SubscriptionType,
		TargetCustomers:         value(r.TargetCustomers),
		ConversionRate:          value(r.ConversionRate),
		ChurnRate:               value(r.ChurnRate),
		AcquisitionCost:         value(r.AcquisitionCost),
		LifetimeValueMultiplier: value(r.LifetimeValueMultiplier),
		UpsellRate:              value(r.UpsellRate),
		UpsellAmount:            value(r.UpsellAmount),
		FixedCosts:              value(r.FixedCosts),
		VariableCostPercentage:  value(r.VariableCostPercentage),
		MarketingBudget:         value(r.MarketingBudget),
		Timeframe:               value(r.Timeframe),
		MonthlyGrowthRate:       value(r.MonthlyGrowthRate),
		SeasonalityFactor:       value(r.SeasonalityFactor),
	}
}

func value[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
