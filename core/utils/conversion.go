package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ToString converts a loosely typed record value to string.
// nil becomes "", floats use the shortest exact representation.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToStringSlice converts a scalar or list value to a list of non-empty strings.
func ToStringSlice(val any) []string {
	switch v := val.(type) {
	case nil:
		return nil
	case []string:
		out := make([]string, 0, len(v))
		for _, s := range v {
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := ToString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		if s := ToString(v); s != "" {
			return []string{s}
		}
		return nil
	}
}

// ToBool converts various types to bool.
// It handles bool, numeric types (1=true), and strings ("1", "true", "yes").
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int:
		return v == 1
	case int64:
		return v == 1
	case float64:
		return v == 1
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s == "1" || s == "true" || s == "yes"
	case []byte:
		return ToBool(string(v))
	default:
		return false
	}
}

// IsBlank reports whether a record value should be treated as absent:
// nil, empty or whitespace-only strings, and empty lists or maps.
func IsBlank(val any) bool {
	switch v := val.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []byte:
		return len(strings.TrimSpace(string(v))) == 0
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}
