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
* Validate the input document
* Check that patient_id points at an existing patient
* Stamp createdAt and updatedAt
* Insert and fetch back the stored appointment
 */
func (s *Service) CreateAppointment(ctx context.Context, data map[string]interface{}) (*models.StoredAppointment, error) {
	appointment, err := schema.DecodeAppointment(data)
	if err != nil {
		log.Debug().Err(err).Msg("Error from DecodeAppointment")
		return nil, err
	}
	if err := s.requirePatient(ctx, appointment.PatientID); err != nil {
		log.Debug().Err(err).Str("patient_id", appointment.PatientID).Msg("Error from requirePatient")
		return nil, err
	}
	now := s.now()
	doc := models.StoredAppointment{Appointment: appointment, CreatedAt: now, UpdatedAt: now}
	id, err := s.store.Insert(ctx, util.AppointmentCollection, doc)
	if err != nil {
		log.Error().Err(err).Msg("Error while inserting appointment")
		return nil, err
	}
	stored := &models.StoredAppointment{}
	if err := s.store.FindByID(ctx, util.AppointmentCollection, id, stored); err != nil {
		log.Error().Err(err).Str("id", id).Msg("Error while fetching created appointment")
		return nil, err
	}
	return stored, nil
}

// ListAppointments filters on the non-empty arguments and orders by scheduled time.
func (s *Service) ListAppointments(ctx context.Context, patientID, status string) ([]models.StoredAppointment, error) {
	filter := bson.M{}
	if patientID != "" {
		filter["patient_id"] = patientID
	}
	if status != "" {
		filter["status"] = status
	}
	appointments := []models.StoredAppointment{}
	q := db.Query{Filter: filter, Sort: bson.D{{Key: "scheduled_at", Value: 1}}}
	if err := s.store.FindMatching(ctx, util.AppointmentCollection, q, &appointments); err != nil {
		log.Error().Err(err).Msg("Error while listing appointments")
		return nil, err
	}
	return appointments, nil
}
