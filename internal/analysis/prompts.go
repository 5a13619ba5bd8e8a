package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bizmodel-ai/backend/internal/catalog"
	"github.com/bizmodel-ai/backend/internal/models"
)

const notSpecified = "not specified"

func FitSystemPrompt() string {
	return `You are an expert business consultant who matches aspiring entrepreneurs with online business models.
You score how well each business model fits a person based on their questionnaire answers: income goals,
timeline, budget, available time, technical skills, communication style, creativity, risk tolerance,
motivation and preferred way of working.

Scoring rules:
- fitScore is an integer from 0 to 100. 70+ is a strong recommendation, below 30 is a poor fit.
- Be honest. Penalize models that need skills, money or time the person does not have.
- People who do not want client calls are a poor fit for sales and coaching models.
- confidence is an integer from 0 to 100 describing how sure you are of the score.

You must respond with valid JSON only. No markdown, no explanation outside the JSON.`
}

// BuildFitPrompt lists the user profile and every catalog entry the model may rank.
func BuildFitPrompt(a *models.QuizAnswers) string {
	var paths strings.Builder
	for _, p := range catalog.All() {
		fmt.Fprintf(&paths, "- %s: %s (%s). Time to profit %s, startup cost %s, potential income %s, difficulty %s.\n",
			p.ID, p.Name, p.Description, p.TimeToProfit, p.StartupCost, p.PotentialIncome, p.Difficulty)
	}

	return fmt.Sprintf(`Analyze how well each business model fits this person.

USER PROFILE:
%s
BUSINESS MODELS (use these exact ids):
%s
Respond with this exact JSON structure, ordered best fit first, covering every business model:
{
  "topMatches": [
    {
      "businessId": "freelancing",
      "fitScore": 82,
      "reasoning": "2-3 sentences that reference specific answers",
      "strengths": ["...", "..."],
      "challenges": ["...", "..."],
      "confidence": 80
    }
  ]
}`, UserProfile(a), paths.String())
}

func PersonalitySystemPrompt() string {
	return "You are an expert business psychologist. Assess entrepreneurial personality traits from questionnaire answers and respond with valid JSON only."
}

// BuildPersonalityPrompt asks for a 0-100 score on each trait the results
// page shows.
func BuildPersonalityPrompt(a *models.QuizAnswers) string {
	names := make([]string, len(traits))
	for i, t := range traits {
		names[i] = t.name
	}

	return fmt.Sprintf(`Assess this person's entrepreneurial personality.

USER PROFILE:
%s
Score each of these traits from 0 to 100 (use these exact names): %s.

Respond with this exact JSON structure:
{
  "traits": [
    {"trait": "Self-Motivation", "score": 80, "description": "one sentence grounded in their answers"}
  ],
  "summary": "2-3 sentences on how their personality shapes which businesses suit them",
  "strengths": ["...", "..."],
  "growthAreas": ["...", "..."]
}`, UserProfile(a), strings.Join(names, ", "))
}

func SkillsSystemPrompt() string {
	return "You are an expert career coach and skills assessor. Analyze user profiles and provide accurate skill assessments for business models."
}

func BuildSkillsPrompt(a *models.QuizAnswers, requiredSkills []string, businessModel string) string {
	var skills strings.Builder
	for _, s := range requiredSkills {
		fmt.Fprintf(&skills, "- %s\n", s)
	}

	return fmt.Sprintf(`Based on this user's quiz responses, analyze their current skill level for each required skill for %s:

USER PROFILE:
%s
REQUIRED SKILLS:
%s
For each skill, determine:
1. Status: "have" (user already has this skill), "working-on" (user has some experience but needs development), or "need" (user doesn't have this skill)
2. Confidence: 1-10 score of how confident you are in this assessment
3. Reasoning: Brief explanation of why you categorized it this way

Return a JSON object with this structure:
{
  "skillAssessments": [
    {
      "skill": "skill name",
      "status": "have" | "working-on" | "need",
      "confidence": 1-10,
      "reasoning": "brief explanation"
    }
  ]
}

Base your assessment on:
- Their experience level and existing skills
- Their learning preferences and willingness to learn
- Their time commitment and motivation
- Their tech comfort level
- Their communication and work preferences
- Their past tools and experience indicators`, businessModel, UserProfile(a), skills.String())
}

func InsightsSystemPrompt() string {
	return "You are an expert business consultant and psychologist specializing in entrepreneurial assessment. Provide detailed, personalized analysis based on quiz responses."
}

func BuildInsightsPrompt(a *models.QuizAnswers, top *models.BusinessPath) string {
	return fmt.Sprintf(`Based on this user's complete quiz responses, generate three detailed paragraphs that provide personalized insights about their entrepreneurial fit. Use their actual responses to create specific, relevant analysis.

User Quiz Data:
%s
Top Business Match:
- Name: %s
- Fit Score: %d%%
- Description: %s

Generate exactly 3 paragraphs that analyze:

Paragraph 1 - Personality & Work Style Match: How their specific personality traits, work preferences, and learning style align with their top business match. Reference specific quiz responses like their self-motivation level, work structure preference and learning preference.

Paragraph 2 - Financial & Risk Profile: Analyze their income goals, timeline expectations, budget, and risk tolerance. Show how realistic and achievable their goals are given their chosen business path.

Paragraph 3 - Success Prediction & Strategy: Based on their technical skills, communication preferences, decision-making style, and consistency track record, predict their success potential and provide strategic guidance.

Make each paragraph 4-6 sentences long. Use their actual quiz responses throughout, not generic statements. Write in a professional, consultative tone.`,
		UserProfile(a), top.Name, top.FitScore, top.Description)
}

func FitDescriptionSystemPrompt() string {
	return "You are an expert business consultant specializing in entrepreneurial personality matching. Generate personalized, specific explanations for why certain business models fit individual users based on their quiz responses."
}

func BuildFitDescriptionPrompt(a *models.QuizAnswers, match models.BusinessPath, rank int) string {
	return fmt.Sprintf(`Based on this user's quiz responses, generate a detailed "Why This Fits You" description for their %s business match.

User Quiz Data:
%s
Business Match:
- Name: %s
- Fit Score: %d%%
- Description: %s
- Time to Profit: %s
- Startup Cost: %s
- Potential Income: %s

Generate a personalized 4-6 sentence description in two paragraphs explaining why this business model specifically fits this user. Be specific about:
1. How their personality traits, goals, and preferences align with this business model
2. What specific aspects of their quiz responses make them well-suited for this path
3. How their skills, time availability, and risk tolerance match the requirements
4. What unique advantages they bring to this business model

Make it personal and specific to their responses, not generic advice. Write in a supportive, consultative tone.`,
		rankWord(rank), UserProfile(a), match.Name, match.FitScore, match.Description,
		match.TimeToProfit, match.StartupCost, match.PotentialIncome)
}

func rankWord(rank int) string {
	switch rank {
	case 1:
		return "top"
	case 2:
		return "second"
	case 3:
		return "third"
	default:
		return "#" + strconv.Itoa(rank)
	}
}

// UserProfile renders the answers as a bullet list for prompts. Unanswered
// fields read "not specified".
func UserProfile(a *models.QuizAnswers) string {
	if a == nil {
		a = &models.QuizAnswers{}
	}
	tools := notSpecified
	if len(a.FamiliarTools) > 0 {
		tools = strings.Join(a.FamiliarTools, ", ")
	}

	lines := []struct{ label, value string }{
		{"Main Motivation", text(a.MainMotivation)},
		{"Weekly Time Commitment", money(firstFloat(a.WeeklyTimeCommitment, a.TimeCommitment), "", " hours")},
		{"Income Goal", money(firstFloat(a.SuccessIncomeGoal, a.IncomeGoal), "$", "/month")},
		{"First Income Timeline", text(firstString(a.FirstIncomeTimeline, a.TimeToFirstIncome))},
		{"Upfront Investment", money(firstFloat(a.UpfrontInvestment, a.StartupBudget), "$", "")},
		{"Tech Skills Rating", rating(firstInt(a.TechSkillsRating, a.TechnologyComfort))},
		{"Risk Comfort Level", rating(firstInt(a.RiskComfortLevel, a.RiskTolerance))},
		{"Self-Motivation Level", rating(firstInt(a.SelfMotivationLevel, a.SelfMotivation))},
		{"Direct Communication Enjoyment", rating(a.DirectCommunicationEnjoyment)},
		{"Client Calls Comfort", text(a.ClientCallsComfort)},
		{"Creative Work Enjoyment", rating(a.CreativeWorkEnjoyment)},
		{"Brand Face Comfort", rating(a.BrandFaceComfort)},
		{"Work Structure Preference", text(a.WorkStructurePreference)},
		{"Work Collaboration Preference", text(a.WorkCollaborationPreference)},
		{"Learning Preference", text(a.LearningPreference)},
		{"Tool Learning Willingness", text(a.ToolLearningWillingness)},
		{"Familiar Tools", tools},
		{"Long-term Consistency", rating(a.LongTermConsistency)},
		{"Trial & Error Comfort", rating(a.TrialErrorComfort)},
		{"Organization Level", rating(a.OrganizationLevel)},
		{"Uncertainty Handling", rating(a.UncertaintyHandling)},
		{"Discouragement Resilience", rating(a.DiscouragementResilience)},
		{"Decision Making Style", text(a.DecisionMakingStyle)},
		{"Passion Identity Alignment", rating(a.PassionIdentityAlignment)},
		{"Competitiveness Level", rating(a.CompetitivenessLevel)},
		{"Passive Income Importance", rating(a.PassiveIncomeImportance)},
		{"Business Growth Size", text(a.BusinessGrowthSize)},
		{"Business Exit Plan", text(a.BusinessExitPlan)},
	}

	var b strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&b, "- %s: %s\n", l.label, l.value)
	}
	return b.String()
}

func text(s string) string {
	if s == "" {
		return notSpecified
	}
	return s
}

func rating(v *int) string {
	if v == nil {
		return notSpecified
	}
	return fmt.Sprintf("%d/5", *v)
}

func money(v *float64, prefix, suffix string) string {
	if v == nil {
		return notSpecified
	}
	return prefix + strconv.FormatFloat(*v, 'f', -1, 64) + suffix
}

func firstFloat(vals ...*float64) *float64 {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstInt(vals ...*int) *int {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstString(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
