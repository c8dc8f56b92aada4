package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaDeclaresStoreConstraints(t *testing.T) {
	files, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	var schema strings.Builder
	for _, name := range files {
		data, err := fs.ReadFile(FS, name)
		require.NoError(t, err)
		schema.Write(data)
	}

	for _, fragment := range []string{
		"time_entries_one_open_per_employee",
		"UNIQUE (employee_id, shift_date)",
		"UNIQUE (employee_id, type, year)",
		"UNIQUE (employee_id, week_start)",
		"CREATE TABLE IF NOT EXISTS audit_events",
	} {
		assert.Contains(t, schema.String(), fragment)
	}
}

func TestHoursColumnsKeepFourPlaces(t *testing.T) {
	data, err := fs.ReadFile(FS, "0002_time_entries.sql")
	require.NoError(t, err)
	assert.Contains(t, string(data), "hours_worked NUMERIC(8,4)")

	data, err = fs.ReadFile(FS, "0007_hours_scale.sql")
	require.NoError(t, err)
	for _, column := range []string{"regular_hours", "overtime_hours", "hours_requested", "allotted", "pending", "used"} {
		assert.Contains(t, string(data), "ALTER COLUMN "+column+" TYPE NUMERIC(10,4)")
	}
}
