package record

import (
	"strconv"
	"strings"
)

// Row is one flat record as it crosses the store wire, keyed by column name.
type Row map[string]string

// Get returns the trimmed value of a column.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r[column])
}

// Overlay copies every non-empty column of src onto r.
func (r Row) Overlay(src Row) {
	for k, v := range src {
		if strings.TrimSpace(v) != "" {
			r[k] = v
		}
	}
}

// Clone returns a shallow copy.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// RowFromAny converts a decoded JSON object into a Row; numbers and booleans are rendered as text.
func RowFromAny(obj map[string]interface{}) Row {
	row := make(Row, len(obj))
	for k, v := range obj {
		row[k] = Stringify(v)
	}
	return row
}

func Stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	case int:
		return strconv.Itoa(val)
	default:
		return ""
	}
}

// ParseInt reads a numeric column defensively; anything unparsable yields 0.
func ParseInt(s string) int {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// ParseBool accepts Yes/No and true/false/1/0 in any case.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1":
		return true
	}
	return false
}

func FormatBool(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func FormatInt(n int) string {
	return strconv.Itoa(n)
}
