package textutil

import "testing"

func TestCanonicalComposes(t *testing.T) {
	decomposed := "\u13A0" + "a\u0301"
	if got := Canonical(decomposed); got != "\u13A0\u00E1" {
		t.Fatalf("Canonical(%q) = %q, want %q", decomposed, got, "\u13A0\u00E1")
	}
}

func TestCanonicalLineTrimsTrailingWhitespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"id|v|l|wav/a.wav|||text\n", "id|v|l|wav/a.wav|||text"},
		{"id|v|l|wav/a.wav|||text \r\n", "id|v|l|wav/a.wav|||text"},
		{"  leading kept\t", "  leading kept"},
		{"e\u0301\n", "\u00E9"},
	}
	for _, tt := range tests {
		if got := CanonicalLine(tt.in); got != tt.want {
			t.Errorf("CanonicalLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFoldLower(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"\u13E3\u13B3\u13A9", "\uABB3\uAB83\uAB79"},
		{"HELLO World", "hello world"},
		{"E\u0301", "\u00E9"},
	}
	for _, tt := range tests {
		if got := FoldLower(tt.in); got != tt.want {
			t.Errorf("FoldLower(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTernary(t *testing.T) {
	if Ternary(true, "yes", "no") != "yes" || Ternary(false, "yes", "no") != "no" {
		t.Fatal("Ternary returned the wrong branch")
	}
}
