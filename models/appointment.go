package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Appointment struct {
	// PatientID is a soft reference to a patient's _id, checked once at creation.
	PatientID   string    `json:"patient_id" bson:"patient_id"`
	ScheduledAt time.Time `json:"scheduled_at" bson:"scheduled_at"`
	Reason      string    `json:"reason" bson:"reason"`
	Status      string    `json:"status" bson:"status"`
}

type StoredAppointment struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Appointment `bson:",inline"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
