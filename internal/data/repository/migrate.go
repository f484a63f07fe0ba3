package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tour-booking/pkg/database"
)

// EnsureMongoIndexes creates the unique and lookup indexes. It is idempotent.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	sparseUnique := options.Index().SetUnique(true).SetSparse(true)

	indexes := map[string][]mongo.IndexModel{
		collCategories: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collGuides: {
			{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "identityCard", Value: 1}}, Options: sparseUnique},
			{Keys: bson.D{{Key: "group_type", Value: 1}}},
			{Keys: bson.D{{Key: "languages", Value: 1}}},
		},
		collUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collTours: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		collBookings: {
			{Keys: bson.D{{Key: "tourId", Value: 1}}},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", coll, err)
		}
	}
	return nil
}

var pgSchema = []string{
	docTableDDL(tableTours),
	docTableDDL(tableCategories),
	docTableDDL(tableGuides),
	docTableDDL(tableBookings),
	docTableDDL(tableUsers),
	`CREATE UNIQUE INDEX IF NOT EXISTS categories_name_key ON categories ((doc->>'name'))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS guides_phone_key ON guides ((doc->>'phone'))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS guides_identity_card_key ON guides ((doc->>'identityCard')) WHERE doc ? 'identityCard'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users ((doc->>'email'))`,
	`CREATE INDEX IF NOT EXISTS tours_status_idx ON tours ((doc->>'status'), created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS bookings_tour_idx ON bookings ((doc->>'tourId'))`,
	`CREATE INDEX IF NOT EXISTS guides_languages_idx ON guides USING GIN ((doc->'languages'))`,
}

func docTableDDL(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id         TEXT PRIMARY KEY,
	doc        JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`, table)
}

// MigratePostgres creates the document tables and indexes. It is idempotent.
func MigratePostgres(ctx context.Context, db database.PgxIface) error {
	for _, stmt := range pgSchema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate postgres: %w", err)
		}
	}
	return nil
}
