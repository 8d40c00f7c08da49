package directive

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"typings/internal/diag"
	"typings/internal/source"
)

func bound(a Assertion, typ string) Bound[*fakeNode, string] {
	return Bound[*fakeNode, string]{Assertion: a, Type: typ, Code: "code"}
}

func TestReconcile(t *testing.T) {
	src := newFakeSource("l0", "l1", "l2", "l3", "l4", "l5")
	fe := &fakeFrontend{src: src}

	tests := []struct {
		name   string
		opts   Options
		bound  []Bound[*fakeNode, string]
		diags  []diag.Diagnostic
		want   []Failure
		passed int
	}{
		{
			name:   "type match",
			bound:  []Bound[*fakeNode, string]{bound(TypeAssertion{Line: 1, Type: "int"}, "int")},
			passed: 1,
		},
		{
			name:  "wrong type",
			bound: []Bound[*fakeNode, string]{bound(TypeAssertion{Line: 1, Type: "string"}, "int")},
			want:  []Failure{WrongTypeFailure{Line: 1, Code: "code", Expected: "string", Actual: "int"}},
		},
		{
			name:  "missing error",
			bound: []Bound[*fakeNode, string]{bound(ErrorAssertion{Line: 2, Pattern: "undefined"}, "")},
			want:  []Failure{MissingErrorFailure{Line: 2, Code: "code", Pattern: "undefined"}},
		},
		{
			name:   "error substring match",
			bound:  []Bound[*fakeNode, string]{bound(ErrorAssertion{Line: 2, Pattern: "y undefined"}, "")},
			diags:  []diag.Diagnostic{diagAt(src.at(2, 1), "v.y undefined (type T has no field or method y)")},
			passed: 1,
		},
		{
			name:  "error match is case sensitive",
			bound: []Bound[*fakeNode, string]{bound(ErrorAssertion{Line: 2, Pattern: "Undefined"}, "")},
			diags: []diag.Diagnostic{diagAt(src.at(2, 0), "v.y undefined")},
			want:  []Failure{WrongErrorFailure{Line: 2, Code: "code", Pattern: "Undefined", Got: "v.y undefined"}},
		},
		{
			name:   "pattern may match a note",
			bound:  []Bound[*fakeNode, string]{bound(ErrorAssertion{Line: 2, Pattern: "have int"}, "")},
			diags:  []diag.Diagnostic{diagAt(src.at(2, 0), "cannot use x", "\thave int", "\twant string")},
			passed: 1,
		},
		{
			name:  "last diagnostic on a line wins",
			bound: []Bound[*fakeNode, string]{bound(ErrorAssertion{Line: 3, Pattern: "first"}, "")},
			diags: []diag.Diagnostic{
				diagAt(src.at(3, 0), "first problem"),
				diagAt(src.at(3, 1), "second problem"),
			},
			want: []Failure{WrongErrorFailure{Line: 3, Code: "code", Pattern: "first", Got: "second problem"}},
		},
		{
			name:  "unexpected error",
			diags: []diag.Diagnostic{diagAt(src.at(4, 0), "declared and not used: z")},
			want:  []Failure{UnexpectedErrorFailure{Line: 4, Got: "declared and not used: z"}},
		},
		{
			name: "diagnostic without location",
			diags: []diag.Diagnostic{
				diag.NewError(diag.LoadListError, source.NoSpan, "no go files"),
				diag.NewError(diag.SemaTypeError, source.Span{File: fakeFile + 1, Start: 0, End: 1}, "elsewhere"),
			},
			want: []Failure{
				UnexpectedErrorFailure{Line: NoLine, Got: "no go files"},
				UnexpectedErrorFailure{Line: NoLine, Got: "elsewhere"},
			},
		},
		{
			name:   "diagnostic on type line is absorbed",
			bound:  []Bound[*fakeNode, string]{bound(TypeAssertion{Line: 1, Type: "int"}, "int")},
			diags:  []diag.Diagnostic{diagAt(src.at(1, 0), "declared and not used: x")},
			passed: 1,
		},
		{
			name:   "strict type lines surface the diagnostic",
			opts:   Options{StrictTypeLines: true},
			bound:  []Bound[*fakeNode, string]{bound(TypeAssertion{Line: 1, Type: "int"}, "int")},
			diags:  []diag.Diagnostic{diagAt(src.at(1, 0), "declared and not used: x")},
			want:   []Failure{UnexpectedErrorFailure{Line: 1, Got: "declared and not used: x"}},
			passed: 1,
		},
		{
			name: "failures sorted by line, stable",
			bound: []Bound[*fakeNode, string]{
				bound(TypeAssertion{Line: 5, Type: "a"}, "b"),
				bound(ErrorAssertion{Line: 1, Pattern: "p"}, ""),
			},
			diags: []diag.Diagnostic{
				diagAt(src.at(3, 0), "u1"),
				diagAt(src.at(3, 1), "u2"),
			},
			want: []Failure{
				MissingErrorFailure{Line: 1, Code: "code", Pattern: "p"},
				UnexpectedErrorFailure{Line: 3, Got: "u1"},
				UnexpectedErrorFailure{Line: 3, Got: "u2"},
				WrongTypeFailure{Line: 5, Code: "code", Expected: "a", Actual: "b"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := Reconcile[*fakeNode, string](tt.bound, tt.diags, fakeFile, fe, fe, tt.opts)
			if diff := cmp.Diff(tt.want, rep.Failures); diff != "" {
				t.Errorf("failures mismatch (-want +got):\n%s", diff)
			}
			if rep.Successes != tt.passed {
				t.Errorf("Successes = %d, want %d", rep.Successes, tt.passed)
			}
			if rep.Total() != rep.Successes+len(rep.Failures) {
				t.Errorf("Total() = %d", rep.Total())
			}
		})
	}
}

func TestReconcileCompleteness(t *testing.T) {
	src := newFakeSource("a", "b", "c", "d")
	fe := &fakeFrontend{src: src}
	bs := []Bound[*fakeNode, string]{
		bound(TypeAssertion{Line: 0, Type: "int"}, "int"),
		bound(TypeAssertion{Line: 1, Type: "int"}, "bool"),
		bound(ErrorAssertion{Line: 2, Pattern: "x"}, ""),
		bound(ErrorAssertion{Line: 3, Pattern: "y"}, ""),
	}
	diags := []diag.Diagnostic{diagAt(src.at(3, 0), "y bad")}
	rep := Reconcile[*fakeNode, string](bs, diags, fakeFile, fe, fe, Options{})
	if rep.Total() != len(bs) {
		t.Fatalf("every bound assertion must be accounted once: Total() = %d, want %d", rep.Total(), len(bs))
	}
	if rep.Passed() {
		t.Fatal("report with failures must not pass")
	}
}

func TestFailureDescribe(t *testing.T) {
	tests := []struct {
		f    Failure
		want string
	}{
		{UnexpectedErrorFailure{Got: "boom"}, "Unexpected error\n  boom"},
		{MissingErrorFailure{Pattern: "p"}, "Expected error p"},
		{WrongErrorFailure{Pattern: "p", Got: "m"}, "Expected error\n  p\nbut got:\n  m"},
		{WrongTypeFailure{Expected: "string", Actual: "int"}, "Expected type\n  string\nbut got:\n  int"},
	}
	for _, tt := range tests {
		if got := tt.f.Describe(); got != tt.want {
			t.Errorf("%s: Describe() = %q, want %q", tt.f.Kind(), got, tt.want)
		}
	}
}

func TestRecordsRoundTrip(t *testing.T) {
	rep := Report{Successes: 2, Failures: []Failure{
		UnexpectedErrorFailure{Line: NoLine, Got: "g"},
		MissingErrorFailure{Line: 1, Code: "c", Pattern: "p"},
		WrongErrorFailure{Line: 2, Code: "c", Pattern: "p", Got: "g"},
		WrongTypeFailure{Line: 3, Code: "c", Expected: "e", Actual: "a"},
	}}
	back, err := ReportFromRecords(rep.Successes, rep.Records())
	if err != nil {
		t.Fatalf("ReportFromRecords: %v", err)
	}
	if diff := cmp.Diff(rep, back); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
	if _, err := FromRecord(Record{Kind: "BOGUS"}); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
