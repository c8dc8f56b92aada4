package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerWritesJSONAndConsole(t *testing.T) {
	color.NoColor = true
	var console, file bytes.Buffer
	logger := slog.New(NewHandler(&console, &file, slog.LevelInfo)).With("component", "ledger")

	logger.Info("clock in recorded", "employeeId", "e-1")
	logger.Debug("dropped")

	var record map[string]any
	require.NoError(t, json.Unmarshal(file.Bytes(), &record))
	assert.Equal(t, "clock in recorded", record["msg"])
	assert.Equal(t, "e-1", record["employeeId"])
	assert.Equal(t, "ledger", record["component"])
	assert.Contains(t, record, "timestamp")

	assert.Contains(t, console.String(), "clock in recorded component=ledger employeeId=e-1")
	assert.NotContains(t, console.String(), "dropped")
}
