package util

const (
	PatientCollection     = "patient"
	AppointmentCollection = "appointment"
	NoteCollection        = "note"

	PatientKey = "patient:"

	PatientListLimit = 100

	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

const (
	INVALID_ID               = "Invalid id"
	INVALID_PATIENT_ID       = "Invalid patient_id"
	PATIENT_NOT_FOUND        = "Patient not found"
	DOCUMENT_NOT_FOUND       = "Document not found"
	STORE_UNAVAILABLE        = "Document store unavailable"
	FIELD_REQUIRED           = "field required"
	INVALID_EMAIL            = "value is not a valid email address"
	INVALID_DATE             = "value is not a valid date (YYYY-MM-DD)"
	INVALID_DATETIME         = "value is not a valid datetime"
	INVALID_INTEGER          = "value is not a valid integer"
	INTEGER_TOO_LARGE        = "value is too large to be an integer"
	INVALID_STRING           = "value is not a valid string"
	INVALID_STRING_LIST      = "value is not a valid list of strings"
	VALUE_OUT_OF_RANGE       = "value is out of range"
	UNABLE_TO_DECODE_REQUEST = "Unable to decode request body"
)
