package sqlite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunMigrations_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	// setupTestDB already migrated; a second run must be a no-op.
	require.NoError(t, RunMigrations(db.Writer))
}
