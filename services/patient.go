package services

import (
	"context"
	"errors"
	"regexp"

	"CareTriage/db"
	"CareTriage/models"
	"CareTriage/schema"
	"CareTriage/util"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
)

/*
* Validate the input document
* Insert into the patient collection
* Fetch it back by the generated id so the response is what was stored
* Cache the stored patient
 */
func (s *Service) CreatePatient(ctx context.Context, data map[string]interface{}) (*models.StoredPatient, error) {
	patient, err := schema.DecodePatient(data)
	if err != nil {
		log.Debug().Err(err).Msg("Error from DecodePatient")
		return nil, err
	}
	id, err := s.store.Insert(ctx, util.PatientCollection, patient)
	if err != nil {
		log.Error().Err(err).Msg("Error while inserting patient")
		return nil, err
	}
	stored := &models.StoredPatient{}
	if err := s.store.FindByID(ctx, util.PatientCollection, id, stored); err != nil {
		log.Error().Err(err).Str("id", id).Msg("Error while fetching created patient")
		return nil, err
	}
	s.cachePatient(ctx, stored)
	return stored, nil
}

/*
* Without a query every patient matches
* With a query, match name or email case-insensitively
* The query is matched literally, not as a pattern
 */
func (s *Service) ListPatients(ctx context.Context, query string) ([]models.StoredPatient, error) {
	filter := bson.M{}
	if query != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}
		filter = bson.M{"$or": []bson.M{
			{"name": pattern},
			{"email": pattern},
		}}
	}
	patients := []models.StoredPatient{}
	q := db.Query{Filter: filter, Limit: util.PatientListLimit}
	if err := s.store.FindMatching(ctx, util.PatientCollection, q, &patients); err != nil {
		log.Error().Err(err).Msg("Error while listing patients")
		return nil, err
	}
	return patients, nil
}

/*
* Reject malformed ids before touching the store
* Serve from cache when possible; patients are never updated
 */
func (s *Service) GetPatient(ctx context.Context, id string) (*models.StoredPatient, error) {
	if _, err := db.ParseID(id); err != nil {
		return nil, err
	}
	stored := &models.StoredPatient{}
	found, err := s.cache.Get(ctx, util.PatientKey+id, stored)
	if err != nil {
		log.Warn().Err(err).Str("id", id).Msg("Error while reading patient cache")
	}
	if found {
		return stored, nil
	}
	err = s.store.FindByID(ctx, util.PatientCollection, id, stored)
	if errors.Is(err, util.ErrNotFound) {
		return nil, util.NewError(util.NotFound, util.PATIENT_NOT_FOUND)
	}
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Error while fetching patient")
		return nil, err
	}
	s.cachePatient(ctx, stored)
	return stored, nil
}

// requirePatient resolves a soft patient reference once, at write time.
func (s *Service) requirePatient(ctx context.Context, patientID string) error {
	_, err := s.GetPatient(ctx, patientID)
	switch {
	case errors.Is(err, util.ErrInvalidIdentifier):
		return util.WrapError(util.InvalidIdentifier, util.INVALID_PATIENT_ID, err)
	case errors.Is(err, util.ErrNotFound):
		return util.ErrReferenceNotFound
	}
	return err
}

func (s *Service) cachePatient(ctx context.Context, p *models.StoredPatient) {
	if err := s.cache.Set(ctx, util.PatientKey+p.ID.Hex(), p); err != nil {
		log.Warn().Err(err).Str("id", p.ID.Hex()).Msg("Failed caching patient")
	}
}
