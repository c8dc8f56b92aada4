package db

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFilesSortedAndFiltered(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_requests.sql": {Data: []byte("SELECT 1")},
		"0001_init.sql":     {Data: []byte("SELECT 1")},
		"README.md":         {Data: []byte("docs")},
		"archive/0000.sql":  {Data: []byte("SELECT 1")},
		"0010_payroll.sql":  {Data: []byte("SELECT 1")},
	}

	files, err := migrationFiles(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.sql", "0002_requests.sql", "0010_payroll.sql"}, files)
}
