package directive

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func extractFrom(t *testing.T, allow bool, lines ...string) ([]Assertion, error) {
	t.Helper()
	src := newFakeSource(lines...)
	return Extract(&sliceScanner{toks: src.tokens()}, src, Options{AllowExpectError: allow})
}

func TestExtractLineAttribution(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []Assertion
	}{
		{
			name:  "leading type",
			lines: []string{"// $ExpectType int", "x := 1"},
			want:  []Assertion{TypeAssertion{Line: 1, Type: "int"}},
		},
		{
			name:  "trailing type",
			lines: []string{"a", "x := 1 // $ExpectType int"},
			want:  []Assertion{TypeAssertion{Line: 1, Type: "int"}},
		},
		{
			name:  "leading error",
			lines: []string{"// $ExpectError undefined", "v.y"},
			want:  []Assertion{ErrorAssertion{Line: 1, Pattern: "undefined"}},
		},
		{
			name:  "trailing error",
			lines: []string{"v.y // $ExpectError v.y undefined"},
			want:  []Assertion{ErrorAssertion{Line: 0, Pattern: "v.y undefined"}},
		},
		{
			name:  "indented leading directive skips whitespace",
			lines: []string{"{", "\t\t// $ExpectType string", "\t\ts := f()", "}"},
			want:  []Assertion{TypeAssertion{Line: 2, Type: "string"}},
		},
		{
			name:  "whitespace on the directive line is not a token",
			lines: []string{"  // $ExpectType int", "x"},
			want:  []Assertion{TypeAssertion{Line: 1, Type: "int"}},
		},
		{
			name: "scan order kept",
			lines: []string{
				"// $ExpectType a",
				"p // $ExpectType b",
				"// $ExpectError c",
				"q",
			},
			want: []Assertion{
				TypeAssertion{Line: 1, Type: "a"},
				TypeAssertion{Line: 1, Type: "b"},
				ErrorAssertion{Line: 3, Pattern: "c"},
			},
		},
		{
			name:  "type text kept verbatim",
			lines: []string{"// $ExpectType map[string]func(int)  ", "m"},
			want:  []Assertion{TypeAssertion{Line: 1, Type: "map[string]func(int)  "}},
		},
		{
			name: "non directive comments ignored",
			lines: []string{
				"// plain comment",
				"//$ExpectType int",
				"// $ExpectType",
				"// $expecttype int",
				"x // see $ExpectType int",
			},
			want: nil,
		},
		{
			name:  "empty input",
			lines: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractFrom(t, true, tt.lines...)
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("assertions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractDisallowedError(t *testing.T) {
	got, err := extractFrom(t, false,
		"// $ExpectType int",
		"x",
		"// $ExpectError boom",
		"y",
	)
	if !errors.Is(err, ErrExpectErrorDisallowed) {
		t.Fatalf("expected ErrExpectErrorDisallowed, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected no assertions on error, got %v", got)
	}
	if !strings.Contains(err.Error(), "line 4") {
		t.Fatalf("expected target line in error, got %q", err.Error())
	}
}

func TestExtractTypeOnlyWithoutAllow(t *testing.T) {
	got, err := extractFrom(t, false, "x // $ExpectType int")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 assertion, got %d", len(got))
	}
}

func TestAssertionString(t *testing.T) {
	if s := (TypeAssertion{Line: 3, Type: "int"}).String(); s != "$ExpectType int" {
		t.Errorf("TypeAssertion.String() = %q", s)
	}
	if s := (ErrorAssertion{Line: 3, Pattern: "bad"}).String(); s != "$ExpectError bad" {
		t.Errorf("ErrorAssertion.String() = %q", s)
	}
}
