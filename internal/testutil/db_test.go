//go:build integration

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrationFilesResolveFromRepoRoot(t *testing.T) {
	for _, rel := range migrationFiles {
		_, err := os.Stat(filepath.Join(repoRoot(), rel))
		require.NoError(t, err, "migration %s must resolve regardless of the caller's working directory", rel)
	}
}
