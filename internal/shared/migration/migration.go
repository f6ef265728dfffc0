package migration

import (
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var embedMigrations embed.FS

// Up applies every pending schema migration.
func Up(db *sql.DB) error {
	log := zap.L().Named("migration")

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	before, err := goose.GetDBVersion(db)
	if err != nil {
		log.Debug("no schema version yet", zap.Error(err))
	}

	if err := goose.Up(db, "sql"); err != nil {
		return err
	}

	after, err := goose.GetDBVersion(db)
	if err != nil {
		return err
	}
	log.Info("schema migrated", zap.Int64("from_version", before), zap.Int64("to_version", after))
	return nil
}
