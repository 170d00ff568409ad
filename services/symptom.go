package services

import (
	"CareTriage/schema"
	"CareTriage/triage"

	"github.com/rs/zerolog/log"
)

// SymptomCheck validates the request and runs the rule engine. Nothing is stored.
func (s *Service) SymptomCheck(data map[string]interface{}) (*triage.Result, error) {
	req, err := schema.DecodeSymptomCheckRequest(data)
	if err != nil {
		log.Debug().Err(err).Msg("Error from DecodeSymptomCheckRequest")
		return nil, err
	}
	res := triage.Evaluate(req)
	return &res, nil
}
