package db_test

import (
	"testing"
	"yatube/internal/db"
	"yatube/internal/db/dbtest"
	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSeedGroupsRunsOnce(t *testing.T) {
	conn := dbtest.Open(t)

	db.SeedGroups(conn, zap.NewNop())
	db.SeedGroups(conn, zap.NewNop())

	var slugs []string
	require.NoError(t, conn.Model(&models.Group{}).Order("slug ASC").Pluck("slug", &slugs).Error)
	assert.Equal(t, []string{"books", "dev", "travel"}, slugs)
}
