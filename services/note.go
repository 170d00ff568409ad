package services

import (
	"context"

	"CareTriage/db"
	"CareTriage/models"
	"CareTriage/schema"
	"CareTriage/util"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
)

/*
* Same discipline as appointments
* Validate, check the patient reference, stamp, insert, fetch back
 */
func (s *Service) CreateNote(ctx context.Context, data map[string]interface{}) (*models.StoredNote, error) {
	note, err := schema.DecodeNote(data)
	if err != nil {
		log.Debug().Err(err).Msg("Error from DecodeNote")
		return nil, err
	}
	if err := s.requirePatient(ctx, note.PatientID); err != nil {
		log.Debug().Err(err).Str("patient_id", note.PatientID).Msg("Error from requirePatient")
		return nil, err
	}
	now := s.now()
	doc := models.StoredNote{Note: note, CreatedAt: now, UpdatedAt: now}
	id, err := s.store.Insert(ctx, util.NoteCollection, doc)
	if err != nil {
		log.Error().Err(err).Msg("Error while inserting note")
		return nil, err
	}
	stored := &models.StoredNote{}
	if err := s.store.FindByID(ctx, util.NoteCollection, id, stored); err != nil {
		log.Error().Err(err).Str("id", id).Msg("Error while fetching created note")
		return nil, err
	}
	return stored, nil
}

// ListNotes returns a patient's notes, newest first.
func (s *Service) ListNotes(ctx context.Context, patientID string) ([]models.StoredNote, error) {
	if patientID == "" {
		verr := &util.ValidationError{}
		verr.Add("patient_id", util.MissingField, util.FIELD_REQUIRED)
		return nil, verr
	}
	notes := []models.StoredNote{}
	q := db.Query{
		Filter: bson.M{"patient_id": patientID},
		Sort:   bson.D{{Key: "created_at", Value: -1}},
	}
	if err := s.store.FindMatching(ctx, util.NoteCollection, q, &notes); err != nil {
		log.Error().Err(err).Msg("Error while listing notes")
		return nil, err
	}
	return notes, nil
}
