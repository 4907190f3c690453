package hardcover

import (
	"strconv"

	"github.com/tidwall/gjson"
)

// The goal payload embedded in activity events is not shape-stable: key
// casing flips between camelCase and snake_case, and numeric fields arrive
// as numbers or strings depending on the event's age. Each accessor below
// tries an ordered list of key spellings and coerces per key: native type
// first, then a numeric-parsed string, then (for strings) a stringified
// number. The first key that yields a value wins.

func intField(obj gjson.Result, keys ...string) (int, error) {
	for _, k := range keys {
		v := obj.Get(k)
		switch v.Type {
		case gjson.Number:
			return int(v.Int()), nil
		case gjson.String:
			if n, err := strconv.ParseFloat(v.Str, 64); err == nil {
				return int(n), nil
			}
		}
	}
	return 0, &MissingFieldError{Keys: keys}
}

func intFieldDefault(obj gjson.Result, def int, keys ...string) int {
	if n, err := intField(obj, keys...); err == nil {
		return n
	}
	return def
}

func floatField(obj gjson.Result, keys ...string) (float64, error) {
	for _, k := range keys {
		v := obj.Get(k)
		switch v.Type {
		case gjson.Number:
			return v.Float(), nil
		case gjson.String:
			if n, err := strconv.ParseFloat(v.Str, 64); err == nil {
				return n, nil
			}
		}
	}
	return 0, &MissingFieldError{Keys: keys}
}

func stringField(obj gjson.Result, keys ...string) (string, error) {
	for _, k := range keys {
		v := obj.Get(k)
		switch v.Type {
		case gjson.String:
			if v.Str != "" {
				return v.Str, nil
			}
		case gjson.Number:
			return v.String(), nil
		}
	}
	return "", &MissingFieldError{Keys: keys}
}

func optionalString(obj gjson.Result, keys ...string) string {
	for _, k := range keys {
		if v := obj.Get(k); v.Type == gjson.String {
			return v.Str
		}
	}
	return ""
}

func optionalStringMap(obj gjson.Result, keys ...string) map[string]string {
	for _, k := range keys {
		v := obj.Get(k)
		if !v.IsObject() {
			continue
		}
		m := make(map[string]string)
		ok := true
		v.ForEach(func(key, val gjson.Result) bool {
			if val.Type != gjson.String {
				ok = false
				return false
			}
			m[key.String()] = val.Str
			return true
		})
		if ok {
			return m
		}
	}
	return nil
}

func clamp01(f float64) float64 {
	return min(1, max(0, f))
}

// DecodeGoal decodes a goal snapshot from raw JSON, tolerating the key and
// type inconsistencies described above. When percentComplete is absent it
// is derived from progress/goal, clamped to [0,1].
func DecodeGoal(raw []byte) (Goal, error) {
	return decodeGoal(gjson.ParseBytes(raw))
}

func decodeGoal(obj gjson.Result) (Goal, error) {
	id, err := intField(obj, "id")
	if err != nil {
		return Goal{}, err
	}
	target, err := intField(obj, "goal")
	if err != nil {
		return Goal{}, err
	}
	metric, err := stringField(obj, "metric")
	if err != nil {
		return Goal{}, err
	}
	startDate, err := stringField(obj, "startDate", "start_date")
	if err != nil {
		return Goal{}, err
	}
	endDate, err := stringField(obj, "endDate", "end_date")
	if err != nil {
		return Goal{}, err
	}
	progress := intFieldDefault(obj, 0, "progress")

	percent, err := floatField(obj, "percentComplete", "percent_complete")
	if err != nil {
		percent = float64(progress) / float64(max(1, target))
	}

	return Goal{
		ID:              id,
		Goal:            target,
		Metric:          metric,
		StartDate:       startDate,
		EndDate:         endDate,
		Progress:        progress,
		PercentComplete: clamp01(percent),
		Description:     optionalString(obj, "description", "name", "title"),
		Conditions:      optionalStringMap(obj, "conditions"),
		PrivacyID:       intFieldDefault(obj, 1, "privacySettingId", "privacy_setting_id"),
	}, nil
}
