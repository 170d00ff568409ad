package triage

// Rule maps a symptom pattern to a candidate condition. At least one of
// MatchAny and MatchAll is set.
type Rule struct {
	Condition string
	MatchAny  []string
	MatchAll  []string
	Advice    string
}

// rules is evaluated in order; equal scores keep this order.
var rules = []Rule{
	{
		Condition: "Common Cold",
		MatchAny:  []string{"runny nose", "sneezing", "sore throat", "cough"},
		Advice:    "Rest, fluids, OTC cold meds. See a clinician if symptoms persist >10 days or high fever.",
	},
	{
		Condition: "Influenza (Flu)",
		MatchAny:  []string{"fever", "body aches", "chills", "fatigue", "dry cough"},
		Advice:    "Consider antiviral within 48h, rest and hydrate. Seek care if breathing difficulty.",
	},
	{
		Condition: "COVID-19",
		MatchAny:  []string{"fever", "loss of taste", "loss of smell", "dry cough", "shortness of breath"},
		Advice:    "Consider rapid test, isolate if positive. Seek urgent care if severe breathlessness or chest pain.",
	},
	{
		Condition: "Migraine",
		MatchAll:  []string{"headache", "nausea"},
		Advice:    "Rest in dark room, consider NSAIDs or triptans if previously prescribed.",
	},
	{
		Condition: "Gastroenteritis",
		MatchAny:  []string{"vomiting", "diarrhea", "stomach pain", "nausea"},
		Advice:    "Oral rehydration, light diet. Seek care if bloody stool or dehydration.",
	},
	{
		Condition: "Allergic Rhinitis",
		MatchAny:  []string{"sneezing", "itchy eyes", "runny nose"},
		Advice:    "Try antihistamines, nasal saline. Avoid triggers where possible.",
	},
	{
		Condition: "Strep Throat",
		MatchAll:  []string{"sore throat", "fever"},
		Advice:    "Consider clinical testing. Avoid antibiotics without confirmation.",
	},
	{
		Condition: "Anxiety/Panic",
		MatchAll:  []string{"chest tightness", "shortness of breath"},
		Advice:    "Practice slow breathing, seek professional evaluation if recurrent.",
	},
}

// Rules returns a copy of the rule table.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
)

var (
	highRiskSymptoms     = []string{"chest pain", "severe shortness of breath"}
	moderateRiskSymptoms = []string{"shortness of breath", "high fever", "bloody stool"}
)

const Guidance = "For emergencies (e.g., severe chest pain, severe breathing difficulty), call local emergency services immediately."

const (
	maxAnyContribution = 2
	allMatchScore      = 2
	maxConditions      = 5
)
