package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Patient struct {
	Name        string   `json:"name" bson:"name"`
	Email       *string  `json:"email" bson:"email"`
	Phone       *string  `json:"phone" bson:"phone"`
	DOB         *string  `json:"dob" bson:"dob"`
	Gender      *string  `json:"gender" bson:"gender"`
	Conditions  []string `json:"conditions" bson:"conditions"`
	Allergies   []string `json:"allergies" bson:"allergies"`
	Medications []string `json:"medications" bson:"medications"`
}

// StoredPatient is a Patient as persisted, carrying its store identifier.
type StoredPatient struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Patient `bson:",inline"`
}
