package model

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldError reports a mutation against a field outside the declared schema
// or a value of the wrong type. It is raised with panic: callers only ever
// pass field names from the constants in this package, so hitting it is a
// programming error rather than a runtime condition.
type FieldError struct {
	Section string
	Field   string
	Reason  string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("model: %s.%s: %s", e.Section, e.Field, e.Reason)
}

func unknownField(section, field string) *FieldError {
	return &FieldError{Section: section, Field: field, Reason: "unknown field"}
}

func wrongType(section, field string, want string, value any) *FieldError {
	return &FieldError{
		Section: section,
		Field:   field,
		Reason:  fmt.Sprintf("expected %s, got %T", want, value),
	}
}

func asString(section, field string, value any) string {
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	panic(wrongType(section, field, "string", value))
}

func asBool(section, field string, value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err == nil {
			return parsed
		}
	}
	panic(wrongType(section, field, "bool", value))
}

func asInt(section, field string, value any) int {
	switch v := value.(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err == nil {
			return parsed
		}
	}
	panic(wrongType(section, field, "int", value))
}

func asStrings(section, field string, value any) []string {
	if v, ok := value.([]string); ok {
		return v
	}
	panic(wrongType(section, field, "[]string", value))
}
