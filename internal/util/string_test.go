package util

import "testing"

func TestTruncateString(t *testing.T) {
	if got := TruncateString("short", 10); got != "short" {
		t.Fatalf("expected unchanged string, got %q", got)
	}
	if got := TruncateString("a longer string", 8); got != "a longer..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
	// Rune-based, not byte-based.
	if got := TruncateString("日本語のテキスト", 3); got != "日本語..." {
		t.Fatalf("unexpected multibyte truncation: %q", got)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  Hello World  "); got != "hello world" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}

func TestContains(t *testing.T) {
	slice := []string{"alpha", "beta"}
	if !Contains(slice, "beta") {
		t.Fatal("expected hit")
	}
	if Contains(slice, "Beta") {
		t.Fatal("match must be exact")
	}
	if Contains(nil, "alpha") {
		t.Fatal("nil slice contains nothing")
	}
}

func TestIsBlank(t *testing.T) {
	for _, blank := range []string{"", "   ", "\t\n"} {
		if !IsBlank(blank) {
			t.Fatalf("expected %q to be blank", blank)
		}
	}
	if IsBlank(" x ") {
		t.Fatal("expected non-blank")
	}
}
