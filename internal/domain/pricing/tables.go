package pricing

import (
	"encoding/json"
	"log/slog"
	"maps"
	"strings"
)

// Tables holds the catalog-keyed rate card. Keys are matched case-insensitively; anything
// missing falls back to a neutral multiplier or DefaultCleaningFee.
type Tables struct {
	CategoryMultipliers map[string]float64 `json:"category_multipliers"`
	LocationMultipliers map[string]float64 `json:"location_multipliers"`
	CleaningFees        map[string]int64   `json:"cleaning_fees"`
	DefaultCleaningFee  int64              `json:"default_cleaning_fee"`
}

func DefaultTables() Tables {
	return Tables{
		CategoryMultipliers: normalizeKeys(map[string]float64{
			"Wedding Collection": 1.4,
			"Designer Wear":      1.3,
			"Party Wear":         1.2,
			"Ethnic Wear":        1.1,
			"Western Wear":       1.0,
			"Footwear":           0.9,
			"Casual Wear":        0.8,
			"Accessories":        0.7,
		}, strings.ToLower),
		LocationMultipliers: normalizeKeys(map[string]float64{
			"Mumbai":    1.2,
			"Delhi":     1.15,
			"Bangalore": 1.1,
			"Pune":      1.05,
			"Hyderabad": 1.0,
			"Chennai":   1.0,
			"Jaipur":    0.95,
			"Kolkata":   0.9,
		}, NormalizeCity),
		CleaningFees: normalizeKeys(map[string]int64{
			"Wedding Collection": 200,
			"Designer Wear":      150,
			"Party Wear":         120,
			"Ethnic Wear":        100,
			"Western Wear":       75,
			"Footwear":           60,
			"Casual Wear":        50,
			"Accessories":        30,
		}, strings.ToLower),
		DefaultCleaningFee: 75,
	}
}

// LoadTables overlays a JSON rate card on the defaults. Sections absent from raw keep their
// default values; malformed JSON yields the defaults unchanged.
func LoadTables(raw string, logger *slog.Logger) Tables {
	defaults := DefaultTables()
	if strings.TrimSpace(raw) == "" {
		return defaults
	}

	var override Tables
	if err := json.Unmarshal([]byte(raw), &override); err != nil {
		if logger != nil {
			logger.Warn("invalid pricing tables JSON, using defaults", "error", err)
		}
		return defaults
	}

	out := defaults
	if override.CategoryMultipliers != nil {
		out.CategoryMultipliers = normalizeKeys(positive(override.CategoryMultipliers, logger, "category"), strings.ToLower)
	}
	if override.LocationMultipliers != nil {
		out.LocationMultipliers = normalizeKeys(positive(override.LocationMultipliers, logger, "location"), NormalizeCity)
	}
	if override.CleaningFees != nil {
		out.CleaningFees = normalizeKeys(override.CleaningFees, strings.ToLower)
	}
	if override.DefaultCleaningFee > 0 {
		out.DefaultCleaningFee = override.DefaultCleaningFee
	}
	return out
}

func (t Tables) CategoryMultiplier(category string) float64 {
	if v, ok := t.CategoryMultipliers[strings.ToLower(strings.TrimSpace(category))]; ok {
		return v
	}
	return 1.0
}

func (t Tables) LocationMultiplier(city string) float64 {
	if v, ok := t.LocationMultipliers[NormalizeCity(city)]; ok {
		return v
	}
	return 1.0
}

func (t Tables) CleaningFee(category string) int64 {
	if v, ok := t.CleaningFees[strings.ToLower(strings.TrimSpace(category))]; ok {
		return v
	}
	return t.DefaultCleaningFee
}

func (t Tables) clone() Tables {
	return Tables{
		CategoryMultipliers: maps.Clone(t.CategoryMultipliers),
		LocationMultipliers: maps.Clone(t.LocationMultipliers),
		CleaningFees:        maps.Clone(t.CleaningFees),
		DefaultCleaningFee:  t.DefaultCleaningFee,
	}
}

func (t Tables) empty() bool {
	return t.CategoryMultipliers == nil && t.LocationMultipliers == nil && t.CleaningFees == nil && t.DefaultCleaningFee == 0
}

// NormalizeCity folds legacy and alternate city spellings onto one key.
func NormalizeCity(raw string) string {
	city := strings.ToLower(strings.TrimSpace(raw))
	switch city {
	case "bombay":
		return "mumbai"
	case "calcutta":
		return "kolkata"
	case "bengaluru":
		return "bangalore"
	case "new delhi":
		return "delhi"
	case "madras":
		return "chennai"
	default:
		return city
	}
}

func normalizeKeys[V any](in map[string]V, norm func(string) string) map[string]V {
	out := make(map[string]V, len(in))
	for k, v := range in {
		key := norm(strings.TrimSpace(k))
		if key == "" {
			continue
		}
		out[key] = v
	}
	return out
}

func positive(in map[string]float64, logger *slog.Logger, table string) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		if v <= 0 {
			if logger != nil {
				logger.Warn("ignoring non-positive multiplier", "table", table, "key", k, "value", v)
			}
			continue
		}
		out[k] = v
	}
	return out
}
