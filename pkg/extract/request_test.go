package extract

import (
	"strings"
	"testing"

	"github.com/gleanerhq/gleaner/pkg/schema"
)

func sanctionsSchema(t *testing.T) schema.Schema {
	t.Helper()
	s, err := schema.New("sanctions",
		schema.Field{Name: "name", Kind: schema.KindString, Required: true},
		schema.Field{Name: "sanction", Kind: schema.KindString, Required: true},
		schema.Field{Name: "date", Kind: schema.KindDate, Required: true},
		schema.Field{Name: "description", Kind: schema.KindText},
	)
	if err != nil {
		t.Fatalf("failed to build schema: %v", err)
	}
	return s
}

func TestNewRequest_EmptySourceWithoutAttachment(t *testing.T) {
	s := sanctionsSchema(t)

	if _, err := NewRequest(s, ""); err == nil {
		t.Fatal("expected error for empty source without attachment")
	}
	if _, err := NewRequest(s, "   \n\t"); err == nil {
		t.Fatal("expected error for whitespace-only source without attachment")
	}
}

func TestNewRequest_AttachmentAllowsEmptySource(t *testing.T) {
	s := sanctionsSchema(t)

	req, err := NewRequest(s, "", WithAttachment("scan.png"))
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	if req.Attachment() != "scan.png" {
		t.Errorf("expected attachment 'scan.png', got %q", req.Attachment())
	}
	if !strings.Contains(req.Prompt(), "attachment") {
		t.Error("prompt should mention the attachment when no source text is given")
	}
}

func TestNewRequest_InstructionEnumeratesFieldsInOrder(t *testing.T) {
	s := sanctionsSchema(t)

	req, err := NewRequest(s, "some bulletin text")
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}

	instruction := req.Instruction()
	lastIdx := -1
	for _, name := range []string{"name", "sanction", "date", "description"} {
		idx := strings.Index(instruction, "- "+name+" (")
		if idx == -1 {
			t.Fatalf("instruction does not enumerate field %q:\n%s", name, instruction)
		}
		if idx < lastIdx {
			t.Errorf("field %q appears out of declared order", name)
		}
		lastIdx = idx
	}
}

func TestNewRequest_InstructionStatesDateFormat(t *testing.T) {
	s := sanctionsSchema(t)

	req, err := NewRequest(s, "text")
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}

	if !strings.Contains(req.Instruction(), "yyyy-mm-dd") {
		t.Error("instruction should state the yyyy-mm-dd format for date fields")
	}
}

func TestNewRequest_InstructionDemandsJSONOnly(t *testing.T) {
	s := sanctionsSchema(t)

	req, err := NewRequest(s, "text")
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}

	if !strings.Contains(req.Instruction(), "Output only the JSON array, no explanatory text.") {
		t.Error("instruction should demand JSON-array-only output")
	}
}

func TestNewRequest_PreambleIsPrepended(t *testing.T) {
	s := sanctionsSchema(t)

	req, err := NewRequest(s, "text", WithPreamble("This bulletin lists disciplinary outcomes."))
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}

	if !strings.HasPrefix(req.Instruction(), "This bulletin lists disciplinary outcomes.") {
		t.Error("preamble should open the instruction")
	}
}

func TestRequest_PromptIncludesSource(t *testing.T) {
	s := sanctionsSchema(t)

	req, err := NewRequest(s, "Doe was reprimanded on 2025-03-10.")
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}

	prompt := req.Prompt()
	if !strings.Contains(prompt, "Doe was reprimanded on 2025-03-10.") {
		t.Error("prompt should carry the source text")
	}
	if !strings.Contains(prompt, req.Instruction()) {
		t.Error("prompt should open with the instruction")
	}
}
