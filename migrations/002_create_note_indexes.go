package migrations

import (
	"context"

	"CareTriage/util"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateNoteIndexes backs listing a patient's notes newest first.
func CreateNoteIndexes(ctx context.Context, database *mongo.Database) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "patient_id", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("patient_id_created_at"),
	}
	name, err := database.Collection(util.NoteCollection).Indexes().CreateOne(ctx, model)
	if err != nil {
		log.Error().Err(err).Msg("Migration failed: note indexes")
		return err
	}
	log.Info().Str("index", name).Msg("Migration applied: note indexes")
	return nil
}
