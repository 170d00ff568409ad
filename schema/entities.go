package schema

import (
	"CareTriage/models"
	"CareTriage/util"
)

var Patient = Entity{
	Name: "Patient",
	Fields: []Field{
		{Name: "name", Type: String, Required: true, NonEmpty: true, Description: "Full name"},
		{Name: "email", Type: Email, Description: "Email address"},
		{Name: "phone", Type: String, Description: "Phone number"},
		{Name: "dob", Type: Date, Description: "Date of birth"},
		{Name: "gender", Type: String, Description: "Gender"},
		{Name: "conditions", Type: StringList, Description: "Known medical conditions"},
		{Name: "allergies", Type: StringList, Description: "Allergies"},
		{Name: "medications", Type: StringList, Description: "Current medications"},
	},
}

var Appointment = Entity{
	Name: "Appointment",
	Fields: []Field{
		{Name: "patient_id", Type: String, Required: true, NonEmpty: true, Description: "Reference to patient _id (string)"},
		{Name: "scheduled_at", Type: DateTime, Required: true, Description: "Scheduled date and time (ISO8601)"},
		{Name: "reason", Type: String, Required: true, NonEmpty: true, Description: "Reason for visit"},
		{Name: "status", Type: String, Default: util.StatusScheduled, Description: "scheduled | completed | cancelled"},
	},
}

var Note = Entity{
	Name: "Note",
	Fields: []Field{
		{Name: "patient_id", Type: String, Required: true, NonEmpty: true, Description: "Reference to patient _id (string)"},
		{Name: "content", Type: String, Required: true, NonEmpty: true, Description: "Clinical note content"},
		{Name: "author", Type: String, Description: "Author or clinician name"},
		{Name: "tags", Type: StringList, Description: "Tags for categorization"},
	},
}

var SymptomCheckRequest = Entity{
	Name: "SymptomCheckRequest",
	Fields: []Field{
		{Name: "age", Type: Integer, Required: true, Minimum: bound(0), Maximum: bound(120), Description: "Age in years"},
		{Name: "sex", Type: String, Description: "Sex"},
		{Name: "symptoms", Type: StringList, Required: true, Description: "List of symptoms"},
		{Name: "duration_days", Type: Integer, Default: 1, Minimum: bound(0), Description: "Days since onset"},
	},
}

func DecodePatient(data map[string]interface{}) (models.Patient, error) {
	v, err := Patient.Decode(data)
	if err != nil {
		return models.Patient{}, err
	}
	return models.Patient{
		Name:        v.Str("name"),
		Email:       v.OptionalString("email"),
		Phone:       v.OptionalString("phone"),
		DOB:         v.OptionalString("dob"),
		Gender:      v.OptionalString("gender"),
		Conditions:  v.Strings("conditions"),
		Allergies:   v.Strings("allergies"),
		Medications: v.Strings("medications"),
	}, nil
}

func DecodeAppointment(data map[string]interface{}) (models.Appointment, error) {
	v, err := Appointment.Decode(data)
	if err != nil {
		return models.Appointment{}, err
	}
	return models.Appointment{
		PatientID:   v.Str("patient_id"),
		ScheduledAt: v.Time("scheduled_at"),
		Reason:      v.Str("reason"),
		Status:      v.Str("status"),
	}, nil
}

func DecodeNote(data map[string]interface{}) (models.Note, error) {
	v, err := Note.Decode(data)
	if err != nil {
		return models.Note{}, err
	}
	return models.Note{
		PatientID: v.Str("patient_id"),
		Content:   v.Str("content"),
		Author:    v.OptionalString("author"),
		Tags:      v.Strings("tags"),
	}, nil
}

func DecodeSymptomCheckRequest(data map[string]interface{}) (models.SymptomCheckRequest, error) {
	v, err := SymptomCheckRequest.Decode(data)
	if err != nil {
		return models.SymptomCheckRequest{}, err
	}
	return models.SymptomCheckRequest{
		Age:          v.Int("age"),
		Sex:          v.OptionalString("sex"),
		Symptoms:     v.Strings("symptoms"),
		DurationDays: v.OptionalInt("duration_days"),
	}, nil
}
