package migrations

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

var all = []func(context.Context, *mongo.Database) error{
	CreateAppointmentIndexes,
	CreateNoteIndexes,
}

// Run applies every migration in order. Creating an existing index is a no-op.
func Run(ctx context.Context, database *mongo.Database) error {
	for _, m := range all {
		if err := m(ctx, database); err != nil {
			return err
		}
	}
	return nil
}
