// AngelaMos | 2026
// migrations_test.go

package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverURL(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{"postgres scheme", "postgres://u:p@h:5432/db", "pgx5://u:p@h:5432/db"},
		{"postgresql scheme", "postgresql://u:p@h/db", "pgx5://u:p@h/db"},
		{"already pgx5", "pgx5://u:p@h/db", "pgx5://u:p@h/db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, driverURL(tt.dsn))
		})
	}
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(files, "sql")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}

	assert.Equal(t, ups, downs)
}

func TestInitMigrationSeedsLookups(t *testing.T) {
	b, err := fs.ReadFile(files, "sql/000001_init.up.sql")
	require.NoError(t, err)

	sql := string(b)
	assert.Contains(t, sql, "(1, 'open', 'Abierto')")
	assert.Contains(t, sql, "(2, 'closed', 'Cerrado')")
	assert.Contains(t, sql, "opinion_id BIGINT      NOT NULL UNIQUE")
}

func TestDownRejectsNonPositiveSteps(t *testing.T) {
	err := Down("postgres://u:p@localhost/db", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps must be positive")
}
