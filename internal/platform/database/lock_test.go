package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateLockID(t *testing.T) {
	a := GenerateLockID("catalog", "schema_migrations")
	b := GenerateLockID("catalog", "schema_migrations")
	c := GenerateLockID("catalog", "other")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestMigrationFiles(t *testing.T) {
	names, err := migrationFiles()
	assert.NoError(t, err)
	assert.Equal(t, []string{"001_products.sql"}, names)
}

func TestConnString(t *testing.T) {
	params := ConnectionParams{Host: "db", Port: 5433, User: "u", Password: "p", DBName: "catalog", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=catalog sslmode=disable", params.ConnString())
}
