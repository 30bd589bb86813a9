package schema

import (
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Issues splits a Validate failure into messages keyed by dotted document
// paths ("skills.0.level") and document-level messages with no path.
type Issues struct {
	Fields map[string][]string
	Form   []string
}

// MapIssues flattens err. Errors that carry no schema location, such as a
// JSON syntax error, end up in Form so no message is lost.
func MapIssues(err error) Issues {
	issues := Issues{Fields: make(map[string][]string)}
	if err == nil {
		issues.Fields = nil
		return issues
	}
	collectIssues(err, &issues)

	for path, messages := range issues.Fields {
		issues.Fields[path] = normalizeMessages(messages)
	}
	if len(issues.Fields) == 0 {
		issues.Fields = nil
	}
	issues.Form = normalizeMessages(issues.Form)
	return issues
}

// Lines renders the issues as "path: message" lines, document-level first and
// then by path.
func (i Issues) Lines() []string {
	lines := append([]string(nil), i.Form...)
	paths := make([]string, 0, len(i.Fields))
	for path := range i.Fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		for _, message := range i.Fields[path] {
			lines = append(lines, path+": "+message)
		}
	}
	return lines
}

// Empty reports whether nothing was collected.
func (i Issues) Empty() bool {
	return len(i.Fields) == 0 && len(i.Form) == 0
}

func collectIssues(err error, issues *Issues) {
	switch e := err.(type) {
	case openapi3.MultiError:
		for _, child := range e {
			collectIssues(child, issues)
		}
		return
	case *openapi3.SchemaError:
		path := joinPath(e.JSONPointer())
		message := e.Reason
		if strings.TrimSpace(message) == "" {
			message = e.Error()
		}
		if path == "" {
			issues.Form = append(issues.Form, message)
			return
		}
		issues.Fields[path] = append(issues.Fields[path], message)
		return
	case interface{ Unwrap() []error }:
		found := false
		for _, child := range e.Unwrap() {
			if child == nil || child == ErrInvalidDocument {
				continue
			}
			found = true
			collectIssues(child, issues)
		}
		if found {
			return
		}
	}
	issues.Form = append(issues.Form, strings.TrimPrefix(err.Error(), ErrInvalidDocument.Error()+": "))
}

func joinPath(segments []string) string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		out = append(out, segment)
	}
	return strings.Join(out, ".")
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
