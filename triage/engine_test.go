package triage

import (
	"sync"
	"testing"

	"CareTriage/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(symptoms ...string) models.SymptomCheckRequest {
	days := 1
	return models.SymptomCheckRequest{Age: 30, Symptoms: symptoms, DurationDays: &days}
}

func scores(res Result) map[string]int {
	out := map[string]int{}
	for _, m := range res.LikelyConditions {
		out[m.Condition] = m.Score
	}
	return out
}

func TestRulesAreWellFormed(t *testing.T) {
	table := Rules()
	require.Len(t, table, 8)
	for _, r := range table {
		assert.NotEmpty(t, r.Condition)
		assert.NotEmpty(t, r.Advice)
		assert.True(t, len(r.MatchAny) > 0 || len(r.MatchAll) > 0, r.Condition)
	}
	assert.Equal(t, "Common Cold", table[0].Condition)
	assert.Equal(t, "Anxiety/Panic", table[7].Condition)
}

func TestRulesReturnsCopy(t *testing.T) {
	table := Rules()
	table[0].Condition = "changed"
	assert.Equal(t, "Common Cold", Rules()[0].Condition)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, []string{"fever", "chills"}, Normalize([]string{"Fever", " chills "}))
	assert.Empty(t, Normalize(nil))
}

func TestEvaluate_CaseAndWhitespaceInsensitive(t *testing.T) {
	a := Evaluate(request("Fever", " chills "))
	b := Evaluate(request("fever", "chills"))

	assert.Equal(t, a.Risk, b.Risk)
	assert.Equal(t, a.LikelyConditions, b.LikelyConditions)
	// the input is echoed unnormalized
	assert.Equal(t, []string{"Fever", " chills "}, a.Input.Symptoms)
}

func TestEvaluate_Deterministic(t *testing.T) {
	req := request("sneezing", "runny nose", "fever", "nausea", "headache")
	assert.Equal(t, Evaluate(req), Evaluate(req))
}

func TestEvaluate_Empty(t *testing.T) {
	res := Evaluate(request())
	assert.NotNil(t, res.LikelyConditions)
	assert.Empty(t, res.LikelyConditions)
	assert.Equal(t, RiskLow, res.Risk)
	assert.Equal(t, Guidance, res.Guidance)
}

func TestEvaluate_UnknownSymptoms(t *testing.T) {
	res := Evaluate(request("itchy elbow"))
	assert.Empty(t, res.LikelyConditions)
	assert.Equal(t, RiskLow, res.Risk)
}

func TestEvaluate_SoreThroatAndFever(t *testing.T) {
	res := Evaluate(request("sore throat", "fever"))
	got := scores(res)

	assert.Equal(t, 2, got["Strep Throat"])
	assert.Equal(t, 1, got["Common Cold"])
	assert.Equal(t, 1, got["Influenza (Flu)"])
	assert.Equal(t, 1, got["COVID-19"])
	require.NotEmpty(t, res.LikelyConditions)
	assert.Equal(t, "Strep Throat", res.LikelyConditions[0].Condition)
}

func TestScore_MatchAnyIsCapped(t *testing.T) {
	flu := Rules()[1]
	assert.Equal(t, 0, flu.Score(nil))
	assert.Equal(t, 1, flu.Score([]string{"fever"}))
	assert.Equal(t, 2, flu.Score([]string{"fever", "chills"}))
	assert.Equal(t, 2, flu.Score([]string{"fever", "chills", "fatigue", "body aches", "dry cough"}))
}

func TestScore_DuplicatesCountTowardOverlap(t *testing.T) {
	flu := Rules()[1]
	assert.Equal(t, 2, flu.Score([]string{"fever", "fever"}))
}

func TestScore_MatchAllNeedsEverySymptom(t *testing.T) {
	migraine := Rules()[3]
	assert.Equal(t, 0, migraine.Score([]string{"headache"}))
	assert.Equal(t, 2, migraine.Score([]string{"nausea", "headache", "fever"}))
}

func TestScore_BothKindsAccumulate(t *testing.T) {
	r := Rule{
		Condition: "combined",
		MatchAny:  []string{"a", "b", "c"},
		MatchAll:  []string{"a", "d"},
	}
	assert.Equal(t, 4, r.Score([]string{"a", "b", "d"}))
	assert.Equal(t, 2, r.Score([]string{"a", "b"}))
	assert.Equal(t, 3, r.Score([]string{"d", "a"}))
}

func TestEvaluate_RankingIsStableAndTruncated(t *testing.T) {
	res := Evaluate(request(
		"runny nose", "sneezing", "fever", "chills", "loss of smell", "dry cough",
		"headache", "nausea", "vomiting", "diarrhea", "itchy eyes",
	))

	require.Len(t, res.LikelyConditions, 5)
	for i := 1; i < len(res.LikelyConditions); i++ {
		assert.GreaterOrEqual(t, res.LikelyConditions[i-1].Score, res.LikelyConditions[i].Score)
	}
	for _, m := range res.LikelyConditions {
		assert.Positive(t, m.Score)
	}
	// every rule above scores 2, so table order decides
	names := make([]string, 0, 5)
	for _, m := range res.LikelyConditions {
		names = append(names, m.Condition)
	}
	assert.Equal(t, []string{"Common Cold", "Influenza (Flu)", "COVID-19", "Migraine", "Gastroenteritis"}, names)
}

func TestEvaluate_TieKeepsTableOrder(t *testing.T) {
	res := Evaluate(request("sneezing"))
	require.Len(t, res.LikelyConditions, 2)
	assert.Equal(t, "Common Cold", res.LikelyConditions[0].Condition)
	assert.Equal(t, "Allergic Rhinitis", res.LikelyConditions[1].Condition)
}

func TestRisk(t *testing.T) {
	cases := []struct {
		symptoms []string
		want     string
	}{
		{[]string{"chest pain"}, RiskHigh},
		{[]string{"severe shortness of breath"}, RiskHigh},
		{[]string{"shortness of breath", "chest pain"}, RiskHigh},
		{[]string{"high fever", "severe shortness of breath"}, RiskHigh},
		{[]string{"shortness of breath"}, RiskModerate},
		{[]string{"high fever"}, RiskModerate},
		{[]string{"bloody stool", "nausea"}, RiskModerate},
		{[]string{"fever"}, RiskLow},
		{nil, RiskLow},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Risk(tc.symptoms), "%v", tc.symptoms)
	}
}

func TestEvaluate_ChestPainIsHigh(t *testing.T) {
	req := request("Chest Pain")
	req.Age = 120
	assert.Equal(t, RiskHigh, Evaluate(req).Risk)
}

func TestEvaluate_Concurrent(t *testing.T) {
	req := request("headache", "nausea", "shortness of breath", "chest tightness")
	want := Evaluate(req)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, Evaluate(req))
		}()
	}
	wg.Wait()
}
