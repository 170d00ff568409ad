package triage

import (
	"slices"
	"sort"
	"strings"

	"CareTriage/models"
)

type ConditionMatch struct {
	Condition string `json:"condition"`
	Score     int    `json:"score"`
	Advice    string `json:"advice"`
}

type Result struct {
	Input            models.SymptomCheckRequest `json:"input"`
	Risk             string                     `json:"risk"`
	LikelyConditions []ConditionMatch           `json:"likely_conditions"`
	Guidance         string                     `json:"guidance"`
}

// Normalize lowercases and trims every symptom, keeping order.
func Normalize(symptoms []string) []string {
	out := make([]string, len(symptoms))
	for i, s := range symptoms {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

// Score returns the rule's score for an already normalized symptom list.
func (r Rule) Score(symptoms []string) int {
	score := 0
	if len(r.MatchAny) > 0 {
		overlap := 0
		for _, s := range symptoms {
			if slices.Contains(r.MatchAny, s) {
				overlap++
			}
		}
		score += min(maxAnyContribution, overlap)
	}
	if len(r.MatchAll) > 0 {
		all := true
		for _, s := range r.MatchAll {
			if !slices.Contains(symptoms, s) {
				all = false
				break
			}
		}
		if all {
			score += allMatchScore
		}
	}
	return score
}

// Risk classifies normalized symptoms; the first tier that matches wins.
func Risk(symptoms []string) string {
	switch {
	case containsAny(symptoms, highRiskSymptoms):
		return RiskHigh
	case containsAny(symptoms, moderateRiskSymptoms):
		return RiskModerate
	}
	return RiskLow
}

// Evaluate scores req against the rule table. It has no side effects and is
// safe for concurrent use.
func Evaluate(req models.SymptomCheckRequest) Result {
	symptoms := Normalize(req.Symptoms)

	matches := make([]ConditionMatch, 0, len(rules))
	for _, r := range rules {
		if score := r.Score(symptoms); score > 0 {
			matches = append(matches, ConditionMatch{Condition: r.Condition, Score: score, Advice: r.Advice})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > maxConditions {
		matches = matches[:maxConditions]
	}

	return Result{
		Input:            req,
		Risk:             Risk(symptoms),
		LikelyConditions: matches,
		Guidance:         Guidance,
	}
}

func containsAny(list, wanted []string) bool {
	return slices.ContainsFunc(wanted, func(w string) bool {
		return slices.Contains(list, w)
	})
}
