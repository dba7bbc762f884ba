package replica

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Value accessors. Store drivers return loosely typed values (pgx scans
// uuid columns as [16]byte, text[] as []any, jsonb as decoded Go values),
// so these helpers normalize the common cases. Missing or mistyped values
// yield zero values rather than errors: repositories treat malformed rows
// as defaults.

// String returns the row's value for col as a string.
func (r Row) String(col string) string {
	switch v := r[col].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}
	return ""
}

// Bool returns the row's value for col as a bool.
func (r Row) Bool(col string) bool {
	b, _ := r[col].(bool)
	return b
}

// UUID returns the row's value for col as a uuid.UUID.
func (r Row) UUID(col string) uuid.UUID {
	switch v := r[col].(type) {
	case uuid.UUID:
		return v
	case [16]byte:
		return uuid.UUID(v)
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil
		}
		return id
	}
	return uuid.Nil
}

// Time returns the row's value for col as a time.Time.
func (r Row) Time(col string) time.Time {
	t, _ := r[col].(time.Time)
	return t
}

// Date returns the row's value for col as a YYYY-MM-DD string. Date columns
// scan as time.Time; string values pass through.
func (r Row) Date(col string) string {
	switch v := r[col].(type) {
	case time.Time:
		return v.Format("2006-01-02")
	case string:
		return v
	}
	return ""
}

// Strings returns the row's value for col as a string slice (text[]).
func (r Row) Strings(col string) []string {
	switch v := r[col].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// JSON re-encodes the row's value for col (a decoded jsonb value) and
// unmarshals it into dst. A missing or null value leaves dst untouched.
func (r Row) JSON(col string, dst any) error {
	raw := r.RawJSON(col)
	if raw == nil {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

// RawJSON returns the row's value for col as raw JSON bytes, or nil when
// the column is missing or null.
func (r Row) RawJSON(col string) json.RawMessage {
	switch v := r[col].(type) {
	case nil:
		return nil
	case json.RawMessage:
		return v
	case []byte:
		return json.RawMessage(v)
	case string:
		return json.RawMessage(v)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		return raw
	}
}
