package source

import "testing"

func TestFromString(t *testing.T) {
	file := FromString("test.pas", "program p;\nbegin end.")

	if file.Filename != "test.pas" {
		t.Errorf("expected filename 'test.pas', got %q", file.Filename)
	}

	if len(file.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(file.Lines))
	}

	if file.Lines[0] != "program p;\n" || file.Lines[1] != "begin end." {
		t.Errorf("unexpected line split %q", file.Lines)
	}
}

func TestFromStringEmpty(t *testing.T) {
	file := FromString("empty.pas", "")

	if len(file.Lines) != 1 || file.Lines[0] != "" {
		t.Errorf("expected a single empty line, got %q", file.Lines)
	}
}
