package encoder

import (
	"fmt"
	"strconv"
	"strings"
)

// Values holds submitted form values keyed by field name. Entries are usually
// strings; booleans and numbers are accepted for flags and quantities.
type Values map[string]any

// String returns the textual form of the value stored under key. Missing,
// nil and false values yield "".
func (v Values) String(key string) string {
	if v == nil {
		return ""
	}
	return stringify(v[key])
}

// Present reports whether key holds a non-blank value.
func (v Values) Present(key string) bool {
	return strings.TrimSpace(v.String(key)) != ""
}

func stringify(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		if typed {
			return "true"
		}
		return ""
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprint(typed)
	}
}
