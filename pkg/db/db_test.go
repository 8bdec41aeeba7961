package db

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"livelocal/pkg/config"
)

func TestRuntimeConnString_PrefersDatabaseURL(t *testing.T) {
	cfg := config.Config{
		DatabaseURL: "postgres://pooler/db?pgbouncer=true",
		DB:          config.DBConfig{Host: "h", Port: "1", Name: "n", User: "u", Password: "p"},
	}
	assert.Equal(t, cfg.DatabaseURL, runtimeConnString(cfg))
	assert.True(t, usesPgBouncer(runtimeConnString(cfg)))
}

func TestRuntimeConnString_FallsBackToDSN(t *testing.T) {
	cfg := config.Config{DB: config.DBConfig{Host: "h", Port: "5432", Name: "n", User: "u", Password: "p"}}
	assert.Equal(t, "postgres://u:p@h:5432/n?sslmode=disable", runtimeConnString(cfg))
}

func TestMigrationConnString_PrefersDirectURL(t *testing.T) {
	cfg := config.Config{DatabaseURL: "postgres://pooler", DirectURL: "postgres://direct"}
	assert.Equal(t, "postgres://direct", migrationConnString(cfg))

	cfg.DirectURL = " "
	assert.Equal(t, "postgres://pooler", migrationConnString(cfg))
}
