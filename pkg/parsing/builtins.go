package parsing

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formstate/pkg/model"
)

// DateLayout is the canonical form date values are normalised to.
const DateLayout = "2006-01-02"

// ParseString passes strings through. Nil, empty strings, maps and slices are
// "no value"; numbers and booleans are formatted.
func ParseString(raw any) (any, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, false
	case string:
		if v == "" {
			return nil, false
		}
		return v, true
	case fmt.Stringer:
		if isNilPointer(v) {
			return nil, false
		}
		s := v.String()
		return s, s != ""
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return nil, false
	}
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// ParseNumber returns a float64. Numeric strings are accepted; NaN and
// unparseable input are "no value".
func ParseNumber(raw any) (any, bool) {
	n, ok := toFloat(raw)
	if !ok || math.IsNaN(n) {
		return nil, false
	}
	return n, true
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ParseBoolean is tri-state: true, false, or "no value".
func ParseBoolean(raw any) (any, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "yes", "1", "checked":
			return true, true
		case "false", "off", "no", "0":
			return false, true
		}
	case int:
		switch v {
		case 1:
			return true, true
		case 0:
			return false, true
		}
	}
	return nil, false
}

// ParseDate canonicalises structured dates to DateLayout.
func ParseDate(raw any) (any, bool) {
	switch v := raw.(type) {
	case time.Time:
		if v.IsZero() {
			return nil, false
		}
		return v.Format(DateLayout), true
	case *time.Time:
		if v == nil {
			return nil, false
		}
		return ParseDate(*v)
	case model.Date:
		return formatDate(v)
	case *model.Date:
		if v == nil {
			return nil, false
		}
		return formatDate(*v)
	case map[string]any:
		year, okY := toInt(v["year"])
		month, okM := toInt(v["month"])
		day, okD := toInt(v["day"])
		if !okY || !okM || !okD {
			return nil, false
		}
		return formatDate(model.Date{Year: year, Month: time.Month(month), Day: day})
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, false
		}
		for _, layout := range []string{DateLayout, time.RFC3339} {
			if t, err := time.Parse(layout, trimmed); err == nil {
				return t.Format(DateLayout), true
			}
		}
		return nil, false
	default:
		return nil, false
	}
}

func formatDate(d model.Date) (any, bool) {
	if d.IsZero() || d.Month < time.January || d.Month > time.December || d.Day < 1 {
		return nil, false
	}
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	if t.Day() != d.Day {
		// rolled over, e.g. February 30th
		return nil, false
	}
	return t.Format(DateLayout), true
}

func toInt(raw any) (int, bool) {
	f, ok := toFloat(raw)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// ParseList normalises checked option values into a sorted []string. An
// empty selection is "no value".
func ParseList(raw any) (any, bool) {
	var out []string
	switch v := raw.(type) {
	case []string:
		out = append(out, v...)
	case []any:
		for _, item := range v {
			if s, ok := ParseString(item); ok {
				out = append(out, s.(string))
			}
		}
	case string:
		if v != "" {
			out = []string{v}
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	sort.Strings(out)
	return out, true
}

// Stringify renders raw the way pattern and length rules see it.
func Stringify(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case []string:
		return strings.Join(v, ",")
	}
	if s, ok := ParseString(raw); ok {
		return s.(string)
	}
	return fmt.Sprint(raw)
}
