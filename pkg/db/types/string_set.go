package dbtypes

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// StringSet is an ordered, append-only set of strings persisted as a Postgres
// array literal. Insertion order is preserved; membership is exact-match.
type StringSet []string

// Contains reports whether the set already holds value.
func (s StringSet) Contains(value string) bool {
	for _, existing := range s {
		if existing == value {
			return true
		}
	}
	return false
}

// Add appends value when absent and returns the (possibly grown) set.
func (s StringSet) Add(value string) StringSet {
	if value == "" || s.Contains(value) {
		return s
	}
	return append(s, value)
}

func (s *StringSet) Scan(src any) error {
	if src == nil {
		*s = StringSet{}
		return nil
	}

	switch v := src.(type) {
	case string:
		return s.parseFromString(v)
	case []byte:
		return s.parseFromString(string(v))
	default:
		return fmt.Errorf("StringSet: unsupported Scan type %T", src)
	}
}

func (s StringSet) Value() (driver.Value, error) {
	// Postgres array literal: {a,b}
	if len(s) == 0 {
		return "{}", nil
	}
	parts := make([]string, 0, len(s))
	for _, value := range s {
		parts = append(parts, quoteArrayElement(value))
	}
	return "{" + strings.Join(parts, ",") + "}", nil
}

func quoteArrayElement(value string) string {
	if value == "" || strings.ContainsAny(value, `,{}" \`) {
		escaped := strings.ReplaceAll(value, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, `"`, `\"`)
		return `"` + escaped + `"`
	}
	return value
}

func (s *StringSet) parseFromString(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "{}" || raw == "" {
		*s = StringSet{}
		return nil
	}
	if !strings.HasPrefix(raw, "{") || !strings.HasSuffix(raw, "}") {
		return fmt.Errorf("StringSet: malformed array literal %q", raw)
	}
	body := raw[1 : len(raw)-1]
	if strings.TrimSpace(body) == "" {
		*s = StringSet{}
		return nil
	}

	out := make([]string, 0, 4)
	var current strings.Builder
	inQuotes := false
	escaped := false
	for _, r := range body {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			out = append(out, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	out = append(out, current.String())
	*s = StringSet(out)
	return nil
}
