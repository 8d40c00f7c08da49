package diag

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"typings/internal/source"
)

func span(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := range 3 {
		ok := b.Add(NewError(SemaTypeError, span(0, uint32(i), uint32(i+1)), "x"))
		if want := i < 2; ok != want {
			t.Fatalf("Add #%d = %v, want %v", i, ok, want)
		}
	}
	if b.Len() != 2 || !b.HasErrors() {
		t.Fatalf("len=%d errors=%v", b.Len(), b.HasErrors())
	}
	if last := b.Last(); last == nil || last.Primary.Start != 1 {
		t.Fatalf("Last = %+v", last)
	}
}

func TestBagSortIsDeterministic(t *testing.T) {
	b := NewBag(0)
	b.Add(New(SevWarning, SemaSoftTypeError, span(1, 4, 6), "b"))
	b.Add(NewError(SemaTypeError, span(1, 4, 6), "a"))
	b.Add(NewError(LoadListError, span(source.NoFile, 0, 0), "nowhere"))
	b.Add(NewError(SynParseError, span(0, 9, 10), "c"))
	b.Sort()

	var got []string
	for _, d := range b.Items() {
		got = append(got, d.Message)
	}
	want := []string{"nowhere", "c", "a", "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestDedupReporter(t *testing.T) {
	b := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: b})
	sp := span(0, 1, 2)
	r.Report(SemaTypeError, SevError, sp, "same", nil)
	r.Report(SemaTypeError, SevError, sp, "same", []Note{{Span: sp, Msg: "ignored"}})
	r.Report(SemaTypeError, SevError, sp, "other", nil)
	if b.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", b.Len())
	}
}

func TestSeverityTally(t *testing.T) {
	ds := []Diagnostic{
		NewError(SemaTypeError, span(0, 0, 1), "a"),
		New(SevWarning, SemaSoftTypeError, span(0, 0, 1), "b"),
		NewError(SynParseError, span(0, 0, 1), "c"),
	}
	n := Tally(ds)
	if n[SevError] != 2 || n[SevWarning] != 1 || n[SevInfo] != 0 {
		t.Fatalf("Tally = %v", n)
	}
	if SevWarning.String() != "warning" || Severity(9).String() != "unknown" {
		t.Fatal("unexpected severity names")
	}
}

func TestFlattenAndCodes(t *testing.T) {
	d := NewError(SemaTypeError, span(0, 0, 1), "cannot use x").
		WithNote(span(0, 0, 1), "\thave int").
		WithNote(span(0, 0, 1), "\twant string")
	if got, want := d.Flatten(), "cannot use x\n\thave int\n\twant string"; got != want {
		t.Fatalf("Flatten = %q, want %q", got, want)
	}

	ids := map[Code]string{
		SynParseError:   "SYN2001",
		SemaTypeError:   "SEM3001",
		IOLoadFileError: "IO4001",
		LoadListError:   "LDR5001",
		UnknownCode:     "E0000",
	}
	for code, want := range ids {
		if got := code.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", code, got, want)
		}
	}
	if Code(9999).Title() != UnknownCode.Title() {
		t.Error("unknown codes should share the unknown title")
	}
}
