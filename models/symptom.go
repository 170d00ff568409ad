package models

// SymptomCheckRequest is the transient input of a triage evaluation.
type SymptomCheckRequest struct {
	Age          int      `json:"age"`
	Sex          *string  `json:"sex"`
	Symptoms     []string `json:"symptoms"`
	DurationDays *int     `json:"duration_days"`
}
