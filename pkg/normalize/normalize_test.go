package normalize

import "testing"

func TestCode_EquivalentInputsShareOneForm(t *testing.T) {
	base := Code("return true")

	variants := []string{
		"return true;",
		"RETURN TRUE",
		"return   \t true",
		"return true // trailing note",
		"return true # python style note",
		"/* block\ncomment */ return true",
		"\n\n  return \r\n true;  \n",
	}
	for _, v := range variants {
		if got := Code(v); got != base {
			t.Fatalf("Code(%q) = %q, want %q", v, got, base)
		}
	}
}

func TestCode_DifferentProgramsStayDifferent(t *testing.T) {
	if Code("return true") == Code("return false") {
		t.Fatalf("distinct programs normalized to the same form")
	}
}

func TestCode_StripsCommentsBeforeCollapsingWhitespace(t *testing.T) {
	in := "x = 1 // set x\ny = 2 # set y\n/* done\nhere */\nz = 3;"
	want := "x = 1 y = 2 z = 3"
	if got := Code(in); got != want {
		t.Fatalf("Code() = %q, want %q", got, want)
	}
}

func TestCode_EmptyAndCommentOnlyInputs(t *testing.T) {
	if got := Code(""); got != "" {
		t.Fatalf("Code(\"\") = %q, want empty", got)
	}
	if got := Code("// nothing here\n# nor here"); got != "" {
		t.Fatalf("Code(comment-only) = %q, want empty", got)
	}
}

func TestCode_LowercasesEverything(t *testing.T) {
	if got := Code("WHILE X > 0 DO"); got != "while x > 0 do" {
		t.Fatalf("Code() = %q", got)
	}
}
