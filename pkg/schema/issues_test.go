package schema_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cvgen/pkg/schema"
)

func TestMapIssues_FieldPaths(t *testing.T) {
	err := schema.Validate([]byte(`{
		"skills": [{"name": "Go", "level": 3}, {"name": "Rust", "level": 14}],
		"personal": {"fullName": 42}
	}`))
	if err == nil {
		t.Fatalf("expected validation error")
	}

	issues := schema.MapIssues(err)
	if len(issues.Form) != 0 {
		t.Fatalf("expected no document-level issues, got %v", issues.Form)
	}
	for _, path := range []string{"skills.1.level", "personal.fullName"} {
		if len(issues.Fields[path]) == 0 {
			t.Fatalf("expected an issue at %s, got %v", path, issues.Fields)
		}
	}
	if _, ok := issues.Fields["skills.0.level"]; ok {
		t.Fatalf("valid level reported: %v", issues.Fields)
	}

	lines := issues.Lines()
	if len(lines) < 2 || lines[0][:len("personal.fullName: ")] != "personal.fullName: " {
		t.Fatalf("unexpected lines %v", lines)
	}
}

func TestMapIssues_DocumentLevel(t *testing.T) {
	issues := schema.MapIssues(schema.Validate([]byte(`[1]`)))
	if diff := cmp.Diff([]string{"top level must be an object"}, issues.Form); diff != "" {
		t.Fatalf("form issues mismatch (-want +got):\n%s", diff)
	}
	if issues.Fields != nil {
		t.Fatalf("expected no field issues, got %v", issues.Fields)
	}

	plain := schema.MapIssues(errors.New("  boom  "))
	if diff := cmp.Diff([]string{"boom"}, plain.Form); diff != "" {
		t.Fatalf("plain error mismatch (-want +got):\n%s", diff)
	}

	if !schema.MapIssues(nil).Empty() {
		t.Fatalf("nil error should map to no issues")
	}
}
