package calculation

import "github.com/shopspring/decimal"

// RecommendationThreshold is the balance at retirement below which savings are considered short.
var RecommendationThreshold = decimal.NewFromInt(1_000_000)

const (
	RecIncreaseContributions = "Increase your annual contributions to retirement accounts."
	RecIndexFunds            = "Consider investing in low-cost index funds to maximize returns."
	RecOnTrack               = "Your retirement savings projections look good. Continue with your current strategy."
	RecDiversify             = "You might want to diversify your investments to manage risk."
)

// ProvideRecommendations returns the two pieces of advice matching the
// projected balance at retirement.
func ProvideRecommendations(finalBalance decimal.Decimal) []string {
	if finalBalance.LessThan(RecommendationThreshold) {
		return []string{RecIncreaseContributions, RecIndexFunds}
	}
	return []string{RecOnTrack, RecDiversify}
}
