// Package catalog holds the fixed list of business models users are matched against.
package catalog

import "github.com/bizmodel-ai/backend/internal/models"

var paths = []models.BusinessPath{
	{
		ID:              "content-creation-ugc",
		Name:            "Content Creation & UGC",
		Description:     "Create engaging content and user-generated content for brands",
		TimeToProfit:    "2-4 weeks",
		StartupCost:     "$0-500",
		PotentialIncome: "$2K-15K/month",
		Difficulty:      "Beginner",
		Icon:            "📱",
	},
	{
		ID:              "affiliate-marketing",
		Name:            "Affiliate Marketing",
		Description:     "Promote other people's products and earn commission on sales",
		TimeToProfit:    "3-6 months",
		StartupCost:     "$0-500",
		PotentialIncome: "$100-10K+/month",
		Difficulty:      "Easy",
		Icon:            "🔗",
	},
	{
		ID:              "freelancing",
		Name:            "Freelancing",
		Description:     "Offer your skills and services to clients on a project basis",
		TimeToProfit:    "1-2 weeks",
		StartupCost:     "$0-200",
		PotentialIncome: "$500-8K/month",
		Difficulty:      "Easy",
		Icon:            "💼",
	},
	{
		ID:              "e-commerce-dropshipping",
		Name:            "E-commerce / Dropshipping",
		Description:     "Sell products online without holding inventory",
		TimeToProfit:    "2-6 months",
		StartupCost:     "$500-2K",
		PotentialIncome: "$1K-50K/month",
		Difficulty:      "Medium",
		Icon:            "🛒",
	},
	{
		ID:              "virtual-assistant",
		Name:            "Virtual Assistant",
		Description:     "Provide administrative support to businesses remotely",
		TimeToProfit:    "1-3 weeks",
		StartupCost:     "$0-100",
		PotentialIncome: "$300-5K/month",
		Difficulty:      "Easy",
		Icon:            "💻",
	},
	{
		ID:              "online-coaching-consulting",
		Name:            "Online Coaching & Consulting",
		Description:     "Share your expertise through 1-on-1 coaching or consulting",
		TimeToProfit:    "4-8 weeks",
		StartupCost:     "$0-500",
		PotentialIncome: "$1K-20K/month",
		Difficulty:      "Medium",
		Icon:            "🎯",
	},
	{
		ID:              "print-on-demand",
		Name:            "Print on Demand",
		Description:     "Design and sell custom products without inventory",
		TimeToProfit:    "6-12 weeks",
		StartupCost:     "$0-300",
		PotentialIncome: "$200-8K/month",
		Difficulty:      "Easy",
		Icon:            "🎨",
	},
	{
		ID:              "youtube-automation",
		Name:            "YouTube Automation",
		Description:     "Create and monetize YouTube channels with outsourced content",
		TimeToProfit:    "3-9 months",
		StartupCost:     "$500-3K",
		PotentialIncome: "$500-15K/month",
		Difficulty:      "Medium",
		Icon:            "📹",
	},
	{
		ID:              "local-service-arbitrage",
		Name:            "Local Service Arbitrage",
		Description:     "Connect local customers with service providers",
		TimeToProfit:    "2-8 weeks",
		StartupCost:     "$200-1K",
		PotentialIncome: "$1K-12K/month",
		Difficulty:      "Medium",
		Icon:            "🏠",
	},
	{
		ID:              "app-saas-development",
		Name:            "App / SaaS Development",
		Description:     "Build software products that solve a specific problem and charge recurring fees",
		TimeToProfit:    "6-12 months",
		StartupCost:     "$0-1K",
		PotentialIncome: "$5K-50K+/month",
		Difficulty:      "Hard",
		Icon:            "🧩",
	},
	{
		ID:              "high-ticket-sales",
		Name:            "High-Ticket Sales",
		Description:     "Close premium offers for other businesses on commission",
		TimeToProfit:    "2-6 weeks",
		StartupCost:     "$0-1K",
		PotentialIncome: "$5K-25K/month",
		Difficulty:      "Medium",
		Icon:            "📞",
	},
}

var byID = func() map[string]int {
	m := make(map[string]int, len(paths))
	for i, p := range paths {
		m[p.ID] = i
	}
	return m
}()

// All returns a copy of the catalog in catalog order. Callers may annotate
// the copies freely.
func All() []models.BusinessPath {
	out := make([]models.BusinessPath, len(paths))
	copy(out, paths)
	return out
}

// Lookup returns a copy of the catalog entry with the given id.
func Lookup(id string) (models.BusinessPath, bool) {
	i, ok := byID[id]
	if !ok {
		return models.BusinessPath{}, false
	}
	return paths[i], true
}

// FitLabel buckets a fit score the way the dashboard presents it.
func FitLabel(score int) string {
	switch {
	case score >= 70:
		return "Best Fit"
	case score >= 50:
		return "Strong Fit"
	case score >= 30:
		return "Possible Fit"
	default:
		return "Poor Fit"
	}
}
