package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAuditDB_RequiresSource(t *testing.T) {
	_, err := NewAuditDB("postgres", "")
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestMigrations_Embedded(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")
	assert.NoError(t, err)
	assert.NotEmpty(t, entries)
}
