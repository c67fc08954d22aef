package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"launchpilot/domain"
)

const narratorSystemPrompt = "You are a pragmatic startup finance advisor. You explain revenue projections clearly, cite the numbers you are given, and never invent figures."

// Narrator turns a computed projection into a short plain-English summary.
type Narrator interface {
	Summarize(ctx context.Context, input domain.ProjectionInputs, scenarios []domain.ScenarioResult, insights domain.Insights) string
}

type AIConfig struct {
	APIKey  string
	Model   string
	APIURL  string
	Timeout time.Duration
}

// AIService narrates projections through a chat completions endpoint.
// Without an API key, or when the call fails, it returns a templated summary.
type AIService struct {
	client *completionClient
	logger *zap.Logger
}

func NewAIService(cfg AIConfig, logger *zap.Logger) *AIService {
	if cfg.Model == "" {
		cfg.Model = defaultNarrativeModel
	}
	if cfg.APIURL == "" {
		cfg.APIURL = defaultNarrativeEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	s := &AIService{logger: logger}
	if cfg.APIKey != "" {
		s.client = newCompletionClient(cfg)
	}
	return s
}

// narrative collects the figures both the prompt and the fallback quote.
type narrative struct {
	input     domain.ProjectionInputs
	realistic domain.ScenarioResult
	insights  domain.Insights
}

func newNarrative(input domain.ProjectionInputs, scenarios []domain.ScenarioResult, insights domain.Insights) narrative {
	n := narrative{input: input, insights: insights}
	for _, s := range scenarios {
		if s.Name == domain.ScenarioRealistic {
			n.realistic = s
			break
		}
	}
	return n
}

// Summarize describes the Realistic scenario and the main insights.
func (s *AIService) Summarize(
	ctx context.Context,
	input domain.ProjectionInputs,
	scenarios []domain.ScenarioResult,
	insights domain.Insights,
) string {
	n := newNarrative(input, scenarios, insights)
	if s.client == nil {
		return n.fallback()
	}

	summary, err := s.client.complete(ctx, narratorSystemPrompt, n.prompt())
	if err != nil {
		s.logger.Warn("narrative generation failed, using fallback", zap.Error(err))
		return n.fallback()
	}
	return summary
}

func (n narrative) breakEven() string {
	if n.realistic.BreakEvenMonth <= n.input.Timeframe {
		return fmt.Sprintf("month %d", n.realistic.BreakEvenMonth)
	}
	return fmt.Sprintf("not within %d months", n.input.Timeframe)
}

func (n narrative) prompt() string {
	in := n.input
	var b strings.Builder

	b.WriteString("Summarize this product launch financial projection for a founder.\n\n")
	b.WriteString("BUSINESS MODEL:\n")
	fmt.Fprintf(&b, "- Product type: %s, billed %s at $%.2f\n", in.ProductType, in.SubscriptionType, in.PricePoint)
	fmt.Fprintf(&b, "- Marketing budget: $%.2f/month, fixed costs: $%.2f/month, CAC: $%.2f\n",
		in.MarketingBudget, in.FixedCosts, in.AcquisitionCost)
	fmt.Fprintf(&b, "- Conversion rate: %.2f%%, churn: %.2f%%/month, growth: %.2f%%/month\n",
		in.ConversionRate, in.ChurnRate, in.MonthlyGrowthRate)
	fmt.Fprintf(&b, "- Horizon: %d months\n\n", in.Timeframe)

	b.WriteString("REALISTIC SCENARIO:\n")
	fmt.Fprintf(&b, "- Total revenue: $%.0f\n", n.realistic.TotalRevenue)
	fmt.Fprintf(&b, "- Net profit: $%.0f\n", n.realistic.NetProfit)
	fmt.Fprintf(&b, "- Break-even: %s\n", n.breakEven())
	fmt.Fprintf(&b, "- ROI: %.2f%%\n\n", n.realistic.ReturnOnInvestment)

	b.WriteString("INSIGHTS:\n")
	fmt.Fprintf(&b, "- Margin: %.2f%%, risk level: %s, LTV:CAC %.2f, CAC payback %d months\n",
		n.insights.MarginHealth, n.insights.RiskLevel, n.insights.LTVCACRatio, n.insights.PaybackPeriod)
	if len(n.insights.Recommendations) > 0 {
		b.WriteString("RECOMMENDATIONS:\n")
		for _, r := range n.insights.Recommendations {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}

	b.WriteString("\nWrite 3-4 sentences in plain English. Be specific with the numbers and realistic about risk.")
	return b.String()
}

func (n narrative) fallback() string {
	var b strings.Builder
	fmt.Fprintf(&b,
		"In the realistic scenario this %s product generates $%.0f in revenue and $%.0f in net profit over %d months, with break-even %s. ",
		n.input.ProductType, n.realistic.TotalRevenue, n.realistic.NetProfit, n.input.Timeframe, n.breakEven())

	fmt.Fprintf(&b, "Overall risk is %s with a %.2f%% margin", strings.ToLower(n.insights.RiskLevel), n.insights.MarginHealth)
	if n.insights.LTVCACRatio > 0 {
		fmt.Fprintf(&b, " and an LTV:CAC ratio of %.2f", n.insights.LTVCACRatio)
	}
	b.WriteString(".")

	if len(n.insights.Recommendations) > 0 {
		b.WriteString(" Top priority: " + n.insights.Recommendations[0])
	}
	return b.String()
}
