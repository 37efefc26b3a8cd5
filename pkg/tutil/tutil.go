package tutil

import (
	"os"
	"strings"
	"testing"

	"github.com/materials-commons/labdb/pkg/labdb"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// IsIntegrationTest is true when LABDB_TEST=integration. Integration tests
// need a running mysql server described by the DB_* environment variables.
func IsIntegrationTest() bool {
	testType := os.Getenv("LABDB_TEST")
	return strings.ToLower(testType) == "integration"
}

// NewTestDB opens a private, migrated, in-memory sqlite database that is
// closed when the test ends. Each call gets its own empty database.
func NewTestDB(t *testing.T) *gorm.DB {
	db, err := labdb.Open(labdb.Options{Memory: true})
	require.NoErrorf(t, err, "labdb.Open failed: %s", err)

	t.Cleanup(func() {
		_ = labdb.Close(db)
	})

	return db
}
