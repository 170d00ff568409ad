package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Note struct {
	PatientID string   `json:"patient_id" bson:"patient_id"`
	Content   string   `json:"content" bson:"content"`
	Author    *string  `json:"author" bson:"author"`
	Tags      []string `json:"tags" bson:"tags"`
}

type StoredNote struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Note      `bson:",inline"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
