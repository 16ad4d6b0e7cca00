package strings

import (
	"reflect"
	"testing"
)

func TestNormalizeWhitespace(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "whitespace only", input: " \n\t ", want: ""},
		{name: "single token", input: "topic", want: "topic"},
		{name: "collapses spaces", input: "one   two    three", want: "one two three"},
		{name: "trims edges", input: "  Work  ", want: "Work"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeWhitespace(tc.input); got != tc.want {
				t.Fatalf("NormalizeWhitespace(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeLowerTrimSpace(t *testing.T) {
	if got := NormalizeLowerTrimSpace("  HIGH \n"); got != "high" {
		t.Fatalf("expected high, got %q", got)
	}
	if got := NormalizeLower("MiXeD"); got != "mixed" {
		t.Fatalf("expected mixed, got %q", got)
	}
}

func TestNormalizeNewlines(t *testing.T) {
	if got := NormalizeNewlines("a\r\nb\rc"); got != "a\nb\nc" {
		t.Fatalf("unexpected result %q", got)
	}
	if got := NormalizeNewlines(""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestIndentBlock(t *testing.T) {
	got := IndentBlock("one\ntwo\n\n", 2)
	if got != "  one\n  two" {
		t.Fatalf("unexpected indent result %q", got)
	}
	if got := IndentBlock("one", 0); got != "one" {
		t.Fatalf("expected unchanged, got %q", got)
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("  Ship  the RELEASE\tnow ")
	want := []string{"ship", "the", "release", "now"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokens = %v, want %v", got, want)
	}
	if got := Tokens("   "); len(got) != 0 {
		t.Fatalf("expected no tokens, got %v", got)
	}
}

func TestContainsAllTokens(t *testing.T) {
	cases := []struct {
		name     string
		haystack string
		query    string
		want     bool
	}{
		{name: "all present", haystack: "Ship release notes", query: "release SHIP", want: true},
		{name: "one missing", haystack: "Ship release notes", query: "ship docs", want: false},
		{name: "substring match", haystack: "Groceries", query: "cer", want: true},
		{name: "empty query", haystack: "anything", query: "  ", want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ContainsAllTokens(tc.haystack, Tokens(tc.query)); got != tc.want {
				t.Fatalf("ContainsAllTokens(%q, %q) = %v, want %v", tc.haystack, tc.query, got, tc.want)
			}
		})
	}
}
