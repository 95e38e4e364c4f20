package database

import (
	"testing"

	"fitsocial/pkg/config"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "db",
		DBPort:     "5433",
		DBUser:     "fit",
		DBPassword: "secret",
		DBName:     "fitsocial",
		DBSSLMode:  "disable",
	}

	assert.Equal(t, "host=db user=fit password=secret dbname=fitsocial port=5433 sslmode=disable", DSN(cfg))
}

func TestMigrate_RejectsBadCommands(t *testing.T) {
	err := Migrate(nil, "migrations", "sideways")
	assert.EqualError(t, err, "unknown migration command: sideways")

	err = Migrate(nil, "migrations", "create")
	assert.EqualError(t, err, "name is required for create command")
}
