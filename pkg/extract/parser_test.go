package extract

import (
	"errors"
	"testing"
)

func TestParse_CleanArray(t *testing.T) {
	records, err := Parse(`[{"name":"Doe"},{"name":"Roe"}]`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0]["name"] != "Doe" || records[1]["name"] != "Roe" {
		t.Errorf("records out of order or wrong: %v", records)
	}
}

func TestParse_EmbeddedInProse(t *testing.T) {
	raw := "Here you go:\n[{\"name\":\"Doe\"}]\nThanks!"

	records, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0]["name"] != "Doe" {
		t.Errorf("expected name 'Doe', got %v", records[0]["name"])
	}
}

func TestParse_MarkdownCodeFence(t *testing.T) {
	raw := "```json\n[{\"name\":\"Doe\",\"date\":\"2025-03-10\"}]\n```"

	records, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}

func TestParse_IdempotentUnderWhitespace(t *testing.T) {
	variants := []string{
		`[{"n":"a"}]`,
		"\n\n  [{\"n\":\"a\"}]  \n\n",
		"\t[{\"n\":\"a\"}]\t",
	}

	for _, raw := range variants {
		records, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", raw, err)
		}
		if len(records) != 1 || records[0]["n"] != "a" {
			t.Errorf("Parse(%q) returned %v", raw, records)
		}
	}
}

func TestParse_NoJSONFound(t *testing.T) {
	cases := []string{
		"",
		"I could not find any records in the source material.",
		"{\"name\":\"Doe\"}", // object, not array
	}

	for _, raw := range cases {
		_, err := Parse(raw)
		if err == nil {
			t.Fatalf("Parse(%q): expected error", raw)
		}
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("Parse(%q): expected ParseError, got %T", raw, err)
		}
		if parseErr.Kind != NoJSONFound {
			t.Errorf("Parse(%q): expected kind %q, got %q", raw, NoJSONFound, parseErr.Kind)
		}
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	// Truncated output, a common failure when the model hits its token cap.
	_, err := Parse(`[{"name":"Doe","date":]`)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %T", err)
	}
	if parseErr.Kind != MalformedJSON {
		t.Errorf("expected kind %q, got %q", MalformedJSON, parseErr.Kind)
	}
	if parseErr.Detail == "" {
		t.Error("expected the JSON parser's message in Detail")
	}
}

func TestParse_UnexpectedShape(t *testing.T) {
	_, err := Parse(`["just", "strings"]`)
	if err == nil {
		t.Fatal("expected error for array of non-objects")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %T", err)
	}
	if parseErr.Kind != UnexpectedShape {
		t.Errorf("expected kind %q, got %q", UnexpectedShape, parseErr.Kind)
	}
}

func TestParse_PreservesKeysAndOrder(t *testing.T) {
	raw := `[{"a":1,"extra":"kept"},{"b":2},{"c":3}]`

	records, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	if _, ok := records[0]["extra"]; !ok {
		t.Error("keys present in the response must be preserved")
	}
	if _, ok := records[1]["b"]; !ok {
		t.Error("record order must follow order of appearance")
	}
}

func TestParse_EmptyArray(t *testing.T) {
	records, err := Parse("No records found: []")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected 0 records, got %d", len(records))
	}
}
