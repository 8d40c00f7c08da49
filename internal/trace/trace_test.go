package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

func TestParseLevelAndShouldEmit(t *testing.T) {
	tests := []struct {
		in    string
		level Level
		emits []Scope
	}{
		{"off", LevelOff, nil},
		{"PHASE", LevelPhase, []Scope{ScopeDriver, ScopeFile}},
		{"detail", LevelDetail, []Scope{ScopeDriver, ScopeFile, ScopeStage}},
		{"debug", LevelDebug, []Scope{ScopeDriver, ScopeFile, ScopeStage, ScopeNode}},
	}
	for _, tt := range tests {
		lvl, err := ParseLevel(tt.in)
		if err != nil || lvl != tt.level {
			t.Fatalf("ParseLevel(%q) = %v, %v", tt.in, lvl, err)
		}
		var got []Scope
		for _, s := range []Scope{ScopeDriver, ScopeFile, ScopeStage, ScopeNode} {
			if lvl.ShouldEmit(s) {
				got = append(got, s)
			}
		}
		if diff := cmp.Diff(tt.emits, got); diff != "" {
			t.Errorf("%s emits (-want +got):\n%s", tt.in, diff)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	run := Begin(tr, ScopeDriver, "check", 0)
	file := Begin(tr, ScopeFile, "file", run.ID()).WithExtra("path", "a.go").WithExtra("cached", "false")
	Begin(tr, ScopeStage, "bind", file.ID()).EndErr(errors.New("unbound"))
	Point(tr, ScopeNode, "failure", file.ID(), "dropped at detail level", nil)
	file.End("")
	run.End("1 file")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), buf.String())
	}
	wantSuffixes := []string{
		"\u2192 check",
		"  \u2192 file",
		"    \u2192 bind",
		"    \u2190 bind (failed) {error=unbound}",
		"  \u2190 file {cached=false, path=a.go}",
		"\u2190 check (1 file)",
	}
	for i, want := range wantSuffixes {
		if !strings.HasSuffix(lines[i], "] "+want) {
			t.Errorf("line %d = %q, want suffix %q", i, lines[i], want)
		}
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Begin(tr, ScopeFile, "file", 0).End("ok")

	dec := json.NewDecoder(&buf)
	var kinds []string
	for dec.More() {
		var ev jsonEvent
		if err := dec.Decode(&ev); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if ev.Scope != "file" || ev.Seq == 0 {
			t.Errorf("unexpected event %+v", ev)
		}
		kinds = append(kinds, ev.Kind)
	}
	if diff := cmp.Diff([]string{"begin", "end"}, kinds); diff != "" {
		t.Fatalf("kinds (-want +got):\n%s", diff)
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopeNode, Name: name})
	}
	var names []string
	for _, ev := range r.Snapshot() {
		names = append(names, ev.Name)
	}
	if diff := cmp.Diff([]string{"c", "d", "e"}, names); diff != "" {
		t.Fatalf("snapshot (-want +got):\n%s", diff)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("dump:\n%s", buf.String())
	}
}

func TestNewModes(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDetail, Mode: ModeBoth, Output: &buf, Format: FormatText})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopeFile, "file", 0).End("")
	ring, ok := FindRing(tr)
	if !ok {
		t.Fatal("ModeBoth must carry a ring")
	}
	if len(ring.Snapshot()) != 2 || buf.Len() == 0 {
		t.Fatalf("ring=%d stream=%d bytes", len(ring.Snapshot()), buf.Len())
	}

	off, err := New(Config{Level: LevelOff})
	if err != nil || off.Enabled() {
		t.Fatalf("LevelOff must give a disabled tracer, got %v, %v", off, err)
	}
	if _, ok := FindRing(off); ok {
		t.Fatal("nop tracer has no ring")
	}
	if _, err := New(Config{Level: LevelPhase}); err == nil {
		t.Fatal("expected error for missing mode")
	}
}

func TestResolveFormat(t *testing.T) {
	if f := (Config{OutputPath: "run.ndjson"}).ResolveFormat(); f != FormatNDJSON {
		t.Errorf("ndjson path resolved to %v", f)
	}
	if f := (Config{OutputPath: "-"}).ResolveFormat(); f != FormatText {
		t.Errorf("stderr resolved to %v", f)
	}
	if f := (Config{OutputPath: "x.ndjson", Format: FormatZap}).ResolveFormat(); f != FormatZap {
		t.Errorf("explicit format overridden: %v", f)
	}
	if _, err := ParseFormat("chrome"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestZapTracer(t *testing.T) {
	var buf bytes.Buffer
	tr := NewZapTracer(&buf, LevelDetail)
	span := Begin(tr, ScopeStage, "reconcile", 7)
	span.WithExtra("failures", "2").End("")
	Point(tr, ScopeNode, "ignored", 0, "", nil)
	if err := tr.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 records, got %d:\n%s", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec["name"] != "reconcile" || rec["kind"] != "end" || rec["extra.failures"] != "2" {
		t.Fatalf("unexpected record %v", rec)
	}
	if rec["parent_id"] != float64(7) {
		t.Fatalf("parent_id = %v", rec["parent_id"])
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context must give Nop")
	}
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)

	ctx, file := BeginCtx(ctx, ScopeFile, "file")
	_, stage := BeginCtx(ctx, ScopeStage, "load")
	if CurrentSpan(ctx).SpanID != file.ID() {
		t.Fatalf("context span = %d, want %d", CurrentSpan(ctx).SpanID, file.ID())
	}
	if stage.parentID != file.ID() {
		t.Fatalf("stage parent = %d, want %d", stage.parentID, file.ID())
	}

	quiet := WithTracer(context.Background(), nil)
	qctx, span := BeginCtx(quiet, ScopeFile, "file")
	if qctx != quiet || span.ID() != 0 {
		t.Fatal("disabled tracing must not create spans")
	}
	if span.End("") < 0 {
		t.Fatal("negative duration")
	}
}

func TestHeartbeatStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := NewRingTracer(16, LevelPhase)
	hb := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(r.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	hb.Stop()
	hb.Stop()
	if len(r.Snapshot()) == 0 {
		t.Fatal("expected at least one heartbeat")
	}
	if StartHeartbeat(r, 0) != nil {
		t.Fatal("zero interval must not start a heartbeat")
	}
}

func TestRingTracerCountsDropped(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	if r.Dropped() != 0 {
		t.Fatal("fresh ring reports drops")
	}
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopeNode, Name: name})
	}
	if got := r.Dropped(); got != 3 {
		t.Fatalf("Dropped = %d, want 3", got)
	}
	if got := len(r.Snapshot()); got != 2 {
		t.Fatalf("snapshot holds %d events", got)
	}
}

type failingWriter struct{ calls int }

func (w *failingWriter) Write([]byte) (int, error) {
	w.calls++
	return 0, errors.New("disk full")
}

func TestStreamTracerKeepsFirstWriteError(t *testing.T) {
	w := &failingWriter{}
	st := NewStreamTracer(w, LevelDebug, FormatText)
	st.Emit(&Event{Kind: KindPoint, Scope: ScopeNode, Name: "a"})
	st.Emit(&Event{Kind: KindPoint, Scope: ScopeNode, Name: "b"})
	if w.calls != 1 {
		t.Fatalf("writer called %d times after failing", w.calls)
	}
	if err := st.Flush(); err == nil || err.Error() != "disk full" {
		t.Fatalf("Flush = %v", err)
	}
	if err := st.Close(); err == nil {
		t.Fatal("Close must report the write error")
	}
}

func TestOpenFilesTracksFileSpans(t *testing.T) {
	r := NewRingTracer(16, LevelDebug)
	before := OpenFiles()
	file := Begin(r, ScopeFile, "a.go", 0)
	stage := Begin(r, ScopeStage, "bind", file.ID())
	if got := OpenFiles(); got != before+1 {
		t.Fatalf("OpenFiles = %d, want %d", got, before+1)
	}
	stage.End("")
	file.End("")
	file.End("")
	if got := OpenFiles(); got != before {
		t.Fatalf("OpenFiles after End = %d, want %d", got, before)
	}
}

func TestHeartbeatReportsOpenFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := NewRingTracer(16, LevelPhase)
	hb := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(r.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	hb.Stop()
	evs := r.Snapshot()
	if len(evs) == 0 {
		t.Fatal("no heartbeat")
	}
	if evs[0].Kind != KindHeartbeat || evs[0].Detail != "#1" {
		t.Fatalf("first event = %+v", evs[0])
	}
	if _, ok := evs[0].Extra["open_files"]; !ok {
		t.Fatalf("heartbeat without open_files: %+v", evs[0].Extra)
	}
}
