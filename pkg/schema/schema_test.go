package schema

import (
	"os"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) error {
	t.Helper()
	return os.WriteFile(path, []byte(content), 0o644)
}

func sanctionFields() []Field {
	return []Field{
		{Name: "name", Kind: KindString, Required: true},
		{Name: "sanction", Kind: KindString, Required: true},
		{Name: "date", Kind: KindDate, Required: true},
		{Name: "description", Kind: KindText},
	}
}

func TestNew_Valid(t *testing.T) {
	s, err := New("sanctions", sanctionFields()...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if s.Name != "sanctions" {
		t.Errorf("expected name 'sanctions', got %q", s.Name)
	}
	if len(s.Fields) != 4 {
		t.Fatalf("expected 4 fields, got %d", len(s.Fields))
	}
}

func TestNew_DuplicateFieldName(t *testing.T) {
	_, err := New("dup",
		Field{Name: "name", Kind: KindString, Required: true},
		Field{Name: "name", Kind: KindText},
	)
	if err == nil {
		t.Fatal("expected error for duplicate field name")
	}
	if !strings.Contains(err.Error(), "duplicate field name") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNew_NoRequiredField(t *testing.T) {
	_, err := New("optional-only",
		Field{Name: "note", Kind: KindText},
	)
	if err == nil {
		t.Fatal("expected error when no field is required")
	}
	if !strings.Contains(err.Error(), "at least one field must be required") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNew_NoFields(t *testing.T) {
	_, err := New("empty")
	if err == nil {
		t.Fatal("expected error for schema without fields")
	}
}

func TestNew_UnknownKind(t *testing.T) {
	_, err := New("bad-kind",
		Field{Name: "when", Kind: Kind("timestamp"), Required: true},
	)
	if err == nil {
		t.Fatal("expected error for unknown field kind")
	}
}

func TestFieldNames_PreservesDeclaredOrder(t *testing.T) {
	s, err := New("sanctions", sanctionFields()...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	want := []string{"name", "sanction", "date", "description"}
	got := s.FieldNames()
	if len(got) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("name %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestFieldByName(t *testing.T) {
	s, err := New("sanctions", sanctionFields()...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	f, ok := s.FieldByName("date")
	if !ok {
		t.Fatal("expected to find field 'date'")
	}
	if f.Kind != KindDate {
		t.Errorf("expected kind date, got %q", f.Kind)
	}

	if _, ok := s.FieldByName("missing"); ok {
		t.Error("expected lookup of unknown field to fail")
	}
}

func TestFromJSON(t *testing.T) {
	data := []byte(`{
		"name": "gifts",
		"description": "Gifts declared by officials",
		"fields": [
			{"name": "recipient", "kind": "string", "required": true},
			{"name": "value", "kind": "number"},
			{"name": "received", "kind": "date"}
		]
	}`)

	s, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}

	if s.Name != "gifts" {
		t.Errorf("expected name 'gifts', got %q", s.Name)
	}
	if len(s.Fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(s.Fields))
	}
	if s.Fields[1].Kind != KindNumber {
		t.Errorf("expected second field kind number, got %q", s.Fields[1].Kind)
	}
}

func TestFromJSON_InvalidDefinition(t *testing.T) {
	// Structurally valid JSON, but no required field.
	data := []byte(`{"name": "gifts", "fields": [{"name": "note", "kind": "text"}]}`)
	if _, err := FromJSON(data); err == nil {
		t.Fatal("expected error for definition without required fields")
	}
}

func TestFromYAML(t *testing.T) {
	data := []byte(`
name: sanctions
fields:
  - name: name
    kind: string
    required: true
  - name: date
    kind: date
    required: true
`)

	s, err := FromYAML(data)
	if err != nil {
		t.Fatalf("FromYAML failed: %v", err)
	}

	if len(s.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(s.Fields))
	}
	if !s.Fields[0].Required {
		t.Error("expected first field to be required")
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name    string
		file    string
		content string
		wantErr bool
	}{
		{
			name:    "yaml file",
			file:    "s.yaml",
			content: "name: s\nfields:\n  - name: a\n    kind: string\n    required: true\n",
		},
		{
			name:    "json file",
			file:    "s.json",
			content: `{"name":"s","fields":[{"name":"a","kind":"string","required":true}]}`,
		},
		{
			name:    "unsupported extension",
			file:    "s.toml",
			content: "name = 's'",
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := dir + "/" + tc.file
			if err := writeFile(t, path, tc.content); err != nil {
				t.Fatalf("failed to write test file: %v", err)
			}

			_, err := FromFile(path)
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("FromFile failed: %v", err)
			}
		})
	}
}
