package db

import (
	"embed"

	"github.com/pressly/goose/v3"
	"github.com/pkg/errors"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies pending schema migrations
func (d *Db) Migrate() error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "db: migrate")
	}
	return errors.Wrap(goose.Up(d.DB, "migrations"), "db: migrate")
}
