package catalog

import "github.com/bizmodel-ai/backend/internal/models"

const defaultProjection = "affiliate-marketing"

var projections = map[string]models.IncomeProjection{
	"affiliate-marketing": {
		MonthlyProjections: []models.MonthlyProjection{
			{Month: "Month 1", Income: 0, CumulativeIncome: 0, Milestones: []string{"Setup website", "Choose niche"}},
			{Month: "Month 2", Income: 50, CumulativeIncome: 50, Milestones: []string{"First content published"}},
			{Month: "Month 3", Income: 200, CumulativeIncome: 250, Milestones: []string{"First affiliate sale"}},
			{Month: "Month 4", Income: 500, CumulativeIncome: 750, Milestones: []string{"Traffic growth"}},
			{Month: "Month 5", Income: 800, CumulativeIncome: 1550, Milestones: []string{"SEO improvement"}},
			{Month: "Month 6", Income: 1200, CumulativeIncome: 2750, Milestones: []string{"Email list building"}},
			{Month: "Month 7", Income: 1600, CumulativeIncome: 4350},
			{Month: "Month 8", Income: 2000, CumulativeIncome: 6350},
			{Month: "Month 9", Income: 2500, CumulativeIncome: 8850},
			{Month: "Month 10", Income: 3000, CumulativeIncome: 11850},
			{Month: "Month 11", Income: 3500, CumulativeIncome: 15350},
			{Month: "Month 12", Income: 4000, CumulativeIncome: 19350},
		},
		AverageTimeToProfit:    "3-4 months",
		ProjectedYearOneIncome: 19350,
		KeyFactors:             []string{"Content quality", "SEO optimization", "Audience building", "Product selection"},
		Assumptions:            []string{"20 hours/week commitment", "Consistent content creation", "Learning SEO basics"},
	},
	"freelancing": {
		MonthlyProjections: []models.MonthlyProjection{
			{Month: "Month 1", Income: 500, CumulativeIncome: 500, Milestones: []string{"Profile setup", "First client"}},
			{Month: "Month 2", Income: 1200, CumulativeIncome: 1700, Milestones: []string{"Portfolio building"}},
			{Month: "Month 3", Income: 2000, CumulativeIncome: 3700, Milestones: []string{"Client testimonials"}},
			{Month: "Month 4", Income: 2800, CumulativeIncome: 6500, Milestones: []string{"Rate increase"}},
			{Month: "Month 5", Income: 3500, CumulativeIncome: 10000, Milestones: []string{"Repeat clients"}},
			{Month: "Month 6", Income: 4200, CumulativeIncome: 14200, Milestones: []string{"Referral network"}},
			{Month: "Month 7", Income: 4800, CumulativeIncome: 19000},
			{Month: "Month 8", Income: 5200, CumulativeIncome: 24200},
			{Month: "Month 9", Income: 5600, CumulativeIncome: 29800},
			{Month: "Month 10", Income: 6000, CumulativeIncome: 35800},
			{Month: "Month 11", Income: 6200, CumulativeIncome: 42000},
			{Month: "Month 12", Income: 6500, CumulativeIncome: 48500},
		},
		AverageTimeToProfit:    "1-2 months",
		ProjectedYearOneIncome: 48500,
		KeyFactors:             []string{"Skill level", "Portfolio quality", "Client communication", "Pricing strategy"},
		Assumptions:            []string{"Existing marketable skills", "25 hours/week availability", "Professional presentation"},
	},
}

// Projections returns the twelve-month income outlook for a business model.
// Models without their own data share the affiliate-marketing outlook.
func Projections(businessID string) models.IncomeProjection {
	if p, ok := projections[businessID]; ok {
		return p
	}
	return projections[defaultProjection]
}
