// Package values converts loosely typed config values to Go types.
//
// TOML decodes integers as int64 and arrays as []any, JSON decodes every
// number as float64, and values set from code keep their own types. The
// config stores run everything they return through these helpers so
// callers see the same result whatever the origin. Mistyped or nil values
// convert to the zero value.
package values

// String returns v if it is a string.
func String(v any) string {
	s, _ := v.(string)
	return s
}

// Int returns v as an int, truncating floats.
func Int(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// Float returns v as a float64, widening integers.
func Float(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

// Bool returns v if it is a bool.
func Bool(v any) bool {
	b, _ := v.(bool)
	return b
}

// Strings returns a copy of v as a string slice. Non-string items of a
// []any are dropped. Anything else gives nil.
func Strings(v any) []string {
	switch list := v.(type) {
	case []string:
		return append([]string{}, list...)
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
