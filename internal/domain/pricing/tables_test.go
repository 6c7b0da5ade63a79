package pricing

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTablesLookups(t *testing.T) {
	tables := DefaultTables()

	assert.Equal(t, 1.4, tables.CategoryMultiplier("wedding collection"))
	assert.Equal(t, 1.1, tables.CategoryMultiplier("  Ethnic Wear "))
	assert.Equal(t, 1.0, tables.CategoryMultiplier("Space Suits"))
	assert.Equal(t, 1.2, tables.LocationMultiplier("Bombay"))
	assert.Equal(t, 1.1, tables.LocationMultiplier("Bengaluru"))
	assert.Equal(t, 1.0, tables.LocationMultiplier("Atlantis"))
	assert.Equal(t, int64(30), tables.CleaningFee("Accessories"))
	assert.Equal(t, int64(75), tables.CleaningFee("unknown"))
}

func TestLoadTablesOverlaysSections(t *testing.T) {
	raw := `{
		"category_multipliers": {"Ethnic Wear": 1.5, "Broken": -2},
		"default_cleaning_fee": 90
	}`
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	tables := LoadTables(raw, logger)

	assert.Equal(t, 1.5, tables.CategoryMultiplier("ethnic wear"))
	assert.Equal(t, 1.0, tables.CategoryMultiplier("Wedding Collection"), "replaced section drops unlisted keys")
	assert.Equal(t, 1.0, tables.CategoryMultiplier("Broken"))
	assert.Equal(t, 1.2, tables.LocationMultiplier("Mumbai"), "absent section keeps defaults")
	assert.Equal(t, int64(90), tables.CleaningFee("unknown"))
	assert.Contains(t, logs.String(), "ignoring non-positive multiplier")
}

func TestLoadTablesFallsBackOnInvalidJSON(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	tables := LoadTables("{not json", logger)

	assert.Equal(t, DefaultTables(), tables)
	assert.Contains(t, logs.String(), "invalid pricing tables JSON")
	assert.Equal(t, DefaultTables(), LoadTables("   ", nil))
}

func TestEngineCopiesTables(t *testing.T) {
	tables := DefaultTables()
	engine := NewEngine(tables)
	tables.CategoryMultipliers["ethnic wear"] = 9

	assert.Equal(t, 1.1, engine.rateCard().CategoryMultiplier("Ethnic Wear"))
}
