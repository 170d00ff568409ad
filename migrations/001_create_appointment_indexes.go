package migrations

import (
	"context"

	"CareTriage/util"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateAppointmentIndexes backs the appointment list filters and its
// scheduled_at ordering.
func CreateAppointmentIndexes(ctx context.Context, database *mongo.Database) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "patient_id", Value: 1}, {Key: "scheduled_at", Value: 1}},
			Options: options.Index().SetName("patient_id_scheduled_at"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "scheduled_at", Value: 1}},
			Options: options.Index().SetName("status_scheduled_at"),
		},
	}
	names, err := database.Collection(util.AppointmentCollection).Indexes().CreateMany(ctx, models)
	if err != nil {
		log.Error().Err(err).Msg("Migration failed: appointment indexes")
		return err
	}
	log.Info().Strs("indexes", names).Msg("Migration applied: appointment indexes")
	return nil
}
