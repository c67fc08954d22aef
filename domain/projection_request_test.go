package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectionRequest_Inputs(t *testing.T) {
	var req ProjectionRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"productType": "saas",
		"pricePoint": 97,
		"subscriptionType": "monthly",
		"churnRate": 0,
		"timeframe": 12
	}`), &req))

	require.NotNil(t, req.ChurnRate)
	assert.Nil(t, req.MarketingBudget)

	in := req.Inputs()
	assert.Equal(t, ProductSaaS, in.ProductType)
	assert.Equal(t, 97.0, in.PricePoint)
	assert.Equal(t, 12, in.Timeframe)
	assert.Zero(t, in.ChurnRate)
	assert.Zero(t, in.MarketingBudget)
}
