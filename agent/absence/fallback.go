package absence

import contractx "github.com/curiousclaude/backend/agent/contract"

// Canned replies for the conversational surfaces. The wizard never shows a
// raw error to the user.
const (
	AckFallback      = "I apologize, but I encountered an error while processing your request. Please try again or provide more details about your situation."
	ConverseFallback = "I apologize, but I encountered an error while processing your response. Please try again."
	DecisionFallback = "I apologize, but I encountered an error while helping with your decision. Please try again."

	// RestartNotice is the wizard's reply when the user says it misunderstood.
	RestartNotice = "I haven't programmed this tree. Please restart."
	// ConfirmNudge asks the user for an explicit yes or no.
	ConfirmNudge = "I'm not sure if you're confirming or not. Please respond with 'Yes' if I understood correctly, or 'No' if I need to clarify something."
)

// The fallback constructors below return fresh values so callers can append
// or mutate without sharing state across requests.

func fallbackCompanyPolicy() contractx.PolicyOption {
	return contractx.PolicyOption{
		Title:       "Company Leave Policy",
		ActionType:  "request",
		Description: "Internal company policy for leave requests",
		KeyBenefits: []string{
			"Company-specific leave benefits",
			"Enhanced job protection",
			"HR support throughout process",
		},
		EligibilityRequirements: []string{
			"Must be a current Google employee",
			"Manager approval required",
			"HR consultation recommended",
		},
		RequestEndpoint: "hr@google.com",
		Jurisdiction:    "company",
		Confidence:      "medium",
		Citations:       []string{"Employee Handbook Section 4.0"},
		Rationale:       "Fallback company policy due to system error",
	}
}

func fallbackFederalStatePolicies() []contractx.PolicyOption {
	return []contractx.PolicyOption{
		{
			Title:       "Federal Family and Medical Leave Act (FMLA)",
			ActionType:  "form",
			Description: "Federal law providing eligible employees with unpaid, job-protected leave for serious health conditions.",
			KeyBenefits: []string{
				"Up to 12 weeks of unpaid leave per year",
				"Job protection",
				"Health benefits maintained",
			},
			EligibilityRequirements: []string{
				"Worked for employer for 12+ months",
				"Worked 1,250+ hours in past 12 months",
				"Employer has 50+ employees",
			},
			Jurisdiction: "federal",
			Confidence:   "high",
			Citations:    []string{"29 U.S.C. § 2601"},
			Rationale:    "Fallback federal option",
		},
		{
			Title:       "California Family Rights Act (CFRA)",
			ActionType:  "form",
			Description: "California state law providing job-protected leave for serious health conditions.",
			KeyBenefits: []string{
				"Up to 12 weeks of unpaid leave",
				"Broader coverage than FMLA",
			},
			EligibilityRequirements: []string{
				"Worked for employer for 12+ months",
				"Worked 1,250+ hours in past 12 months",
				"Employer has 5+ employees",
			},
			Jurisdiction: "state",
			Confidence:   "high",
			Citations:    []string{"California Government Code § 12945.2"},
			Rationale:    "Fallback state option",
		},
	}
}

func fallbackAggregatePolicies() []contractx.PolicyOption {
	return []contractx.PolicyOption{
		{
			Title:       "Federal Family and Medical Leave Act (FMLA)",
			ActionType:  "form",
			Description: "Federal family and medical leave - eligibility depends on specific situation",
			KeyBenefits: []string{
				"Up to 12 weeks unpaid leave",
				"Job protection if eligible",
				"Health benefits maintained",
			},
			EligibilityRequirements: []string{
				"Worked for employer for 12+ months",
				"Worked 1,250+ hours in past 12 months",
				"Employer has 50+ employees",
			},
			Jurisdiction: "federal",
			Confidence:   "medium",
			Citations:    []string{"29 U.S.C. § 2601"},
			Rationale:    "Fallback option due to system error",
		},
	}
}

func fallbackQuestions() contractx.QuestionList {
	return contractx.QuestionList{
		Questions: []contractx.Question{
			{
				Text: "Have you worked here for at least 12 months?",
				Type: "yes_no",
				Note: "Required for FMLA eligibility.",
			},
			{
				Text:    "Is your absence for your own serious health condition or a family member's?",
				Type:    "multiple_choice",
				Options: []string{"My own health", "Family member's health", "Both"},
				Note:    "Helps determine which policies apply.",
			},
			{
				Text:    "Do you need continuous time off or intermittent leave?",
				Type:    "multiple_choice",
				Options: []string{"Continuous (all at once)", "Intermittent (as needed)", "Not sure"},
				Note:    "Different policies have different flexibility.",
			},
		},
	}
}

func fallbackRecommendation() contractx.RecommendationPayload {
	return contractx.RecommendationPayload{
		Recommendation: contractx.Recommendation{
			Title:      "FMLA Medical Leave",
			Confidence: "medium",
			KeyBenefits: []string{
				"Up to 12 weeks unpaid leave",
				"Job protection guaranteed",
				"Health benefits maintained",
			},
			Why: []string{
				"Based on your answers, FMLA appears to be the most suitable option",
				"This provides federal protection for medical leave situations",
				"Fallback recommendation due to system error",
			},
			RequiredActions: []contractx.RequiredAction{
				{
					Type: "form",
					Name: "FMLA Application Form",
					ID:   "FMLA-001",
				},
			},
			SequenceNotes: "This is a fallback recommendation. Please contact HR for personalized assistance.",
			Citations:     []string{"29 U.S.C. § 2601"},
		},
	}
}
