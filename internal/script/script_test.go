package script

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"symtab/internal/diag"
	"symtab/internal/symbols"
	"symtab/internal/symfmt"
	"symtab/internal/testkit"
	"symtab/internal/trace"
)

func runScript(t *testing.T, src string) (string, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(50)
	rep := diag.BagReporter{Bag: bag}
	cmds, err := Parse(strings.NewReader(src), "test.sym", rep)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	table, err := symbols.NewTable(symbols.Options{})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	var out bytes.Buffer
	r := &Runner{Table: table, Out: &out, Reporter: rep}
	if err := r.Run(context.Background(), cmds); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := testkit.CheckTableInvariants(table); err != nil {
		t.Fatalf("table invariants after script: %v", err)
	}
	return out.String(), bag
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"insert x integer 5 0", []string{"insert", "x", "integer", "5", "0"}},
		{`insert s string "hello world" 1 const`, []string{"insert", "s", "string", `"hello world"`, "1", "const"}},
		{"insert xs array [1, [2, 3]] 0  # trailing", []string{"insert", "xs", "array", "[1, [2, 3]]", "0"}},
		{`insert d dict {a: "x # y"} 0`, []string{"insert", "d", "dict", `{a: "x # y"}`, "0"}},
		{"   # only a comment", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got, err := splitFields(tt.line)
		if err != nil {
			t.Fatalf("splitFields(%q): %v", tt.line, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitFields(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
	for _, bad := range []string{`insert s string "open 0`, "insert xs array [1, 2 0", "insert xs array ]"} {
		if _, err := splitFields(bad); err == nil {
			t.Errorf("splitFields(%q) should fail", bad)
		}
	}
}

func TestParseReportsBadLines(t *testing.T) {
	bag := diag.NewBag(10)
	src := "frobnicate x\nlookup x\ninsert s string \"open 0\nclear\n"
	cmds, err := Parse(strings.NewReader(src), "bad.sym", diag.BagReporter{Bag: bag})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cmds) != 1 || cmds[0].Op != OpClear || cmds[0].Pos.Line != 4 {
		t.Fatalf("unexpected commands %+v", cmds)
	}
	var codes []diag.Code
	for _, d := range bag.Items() {
		codes = append(codes, d.Code)
	}
	want := []diag.Code{diag.ScrUnknownCommand, diag.ScrArgCount, diag.ScrUnterminated}
	if !reflect.DeepEqual(codes, want) {
		t.Fatalf("codes = %v, want %v", codes, want)
	}
}

func TestShadowingScript(t *testing.T) {
	out, bag := runScript(t, `
insert x integer 1 0
insert x integer 2 1
lookup x 1
lookup x 0
delete-id 1
lookup x 1
`)
	want := strings.Join([]string{
		"insert x integer 1 0 -> id 0",
		"insert x integer 2 1 -> id 1",
		"lookup x 1 -> id 1 x integer = 2 (scope 1)",
		"lookup x 0 -> id 0 x integer = 1 (scope 0)",
		"delete-id 1 -> ok",
		"lookup x 1 -> id 0 x integer = 1 (scope 0)",
	}, "\n") + "\n"
	if out != want {
		t.Fatalf("output:\n%s\nwant:\n%s", out, want)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.TblShadow || bag.Items()[0].Primary.Line != 3 {
		t.Fatalf("expected one shadow note, got %+v", bag.Items())
	}
}

func TestUpdateAndConstScenarios(t *testing.T) {
	out, bag := runScript(t, `
insert count integer 0 0
update 0 5 0
lookup-id 0 0
insert PI float 3.14 0 const
delete PI
exists PI 0
update 99 1 0
insert later string - 2
lookup later 2
`)
	for _, want := range []string{
		"update 0 5 0 -> ok",
		"lookup-id 0 0 -> id 0 count integer = 5 (scope 0)",
		"insert PI float 3.14 0 const -> id 1",
		"exists PI 0 -> false",
		"update 99 1 0 -> not found",
		"lookup later 2 -> id 2 later string = <uninitialized> (scope 2)",
	} {
		if !strings.Contains(out, want+"\n") {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if bag.HasWarnings() {
		t.Fatalf("unexpected diagnostics %+v", bag.Items())
	}
}

func TestErrorsBecomeDiagnostics(t *testing.T) {
	out, bag := runScript(t, `
insert n integer abc 0
insert averyveryveryveryveryveryveryveryveryveryveryveryveryveryverylongname integer 1 0
insert n integer 1 -2
insert n integer 1 zero
insert n integer 1 0 sometimes
insert n integer 1 0
insert n integer 2 0
lookup-id x 0
`)
	var codes []diag.Code
	for _, d := range bag.Items() {
		codes = append(codes, d.Code)
	}
	want := []diag.Code{
		diag.TblInvalidValue,
		diag.TblNameTooLong,
		diag.TblInvalidScope,
		diag.ScrBadNumber,
		diag.ScrBadFlag,
		diag.TblDuplicate,
		diag.ScrBadNumber,
	}
	if !reflect.DeepEqual(codes, want) {
		t.Fatalf("codes = %v, want %v", codes, want)
	}
	if !strings.Contains(out, "insert n integer abc 0 -> error\n") {
		t.Fatalf("failed command not marked:\n%s", out)
	}
	if !strings.Contains(out, "insert n integer 2 0 -> id 1\n") {
		t.Fatalf("ids must only advance on success:\n%s", out)
	}
}

func TestDiscardClearAndList(t *testing.T) {
	out, _ := runScript(t, `
insert g integer 1 0
insert a array [1,2,3] 1
insert b dict {k: true} 2
discard 1
list
clear
exists g 0
insert g integer 2 0
`)
	for _, want := range []string{
		"discard 1 -> removed 2",
		"ID  NAME  TYPE     VALUE  SCOPE  FLAGS",
		"exists g 0 -> false",
		"insert g integer 2 0 -> id 3",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestArrayInsertCanonical(t *testing.T) {
	out, _ := runScript(t, "insert xs array [1,2,3] 0\nlookup xs 0\n")
	if !strings.Contains(out, "lookup xs 0 -> id 0 xs array = [1, 2, 3] (scope 0)") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRunFilesIndependentTables(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i, body := range []string{
		"insert a integer 1 0\ninsert b integer 2 0\n",
		"insert c integer 3 0\nlookup a 0\n",
		"bogus\n",
	} {
		p := filepath.Join(dir, "s"+string(rune('0'+i))+".sym")
		if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
		paths = append(paths, p)
	}
	paths = append(paths, filepath.Join(dir, "missing.sym"))

	ring := trace.NewRingTracer(256, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	results, err := RunFiles(ctx, paths, Options{Jobs: 2})
	if err != nil {
		t.Fatalf("RunFiles: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if got := string(results[1].Output); got != "insert c integer 3 0 -> id 0\nlookup a 0 -> not found\n" {
		t.Fatalf("second script shared state with the first:\n%s", got)
	}
	if results[0].Bag.Len() != 0 || results[1].Bag.Len() != 0 {
		t.Fatalf("clean scripts produced diagnostics")
	}
	if !results[2].Bag.HasErrors() || results[2].Bag.Items()[0].Code != diag.ScrUnknownCommand {
		t.Fatalf("bad script not reported: %+v", results[2].Bag.Items())
	}
	if !results[3].Bag.HasErrors() || results[3].Bag.Items()[0].Code != diag.IOLoadFileError {
		t.Fatalf("missing file not reported: %+v", results[3].Bag.Items())
	}
	if len(ring.Snapshot()) == 0 {
		t.Fatalf("no trace events recorded")
	}
	if ph := results[0].Timings.Phases; len(ph) != 2 || ph[0].Name != "parse" || ph[1].Name != "execute" {
		t.Fatalf("unexpected timings: %+v", results[0].Timings)
	}
}

func TestCheckOnlySkipsExecution(t *testing.T) {
	p := filepath.Join(t.TempDir(), "c.sym")
	if err := os.WriteFile(p, []byte("insert a integer 1 0\nlist\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	res := RunFile(context.Background(), p, Options{CheckOnly: true})
	if res.Commands != 2 || len(res.Output) != 0 || res.Bag.Len() != 0 {
		t.Fatalf("unexpected check result %+v", res)
	}
	if len(res.Timings.Phases) != 1 {
		t.Fatalf("check run should time parsing only: %+v", res.Timings)
	}
}

func runStructured(t *testing.T, src string, format symfmt.Format) []byte {
	t.Helper()
	cmds, err := Parse(strings.NewReader(src), "s.sym", diag.NopReporter{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	table, err := symbols.NewTable(symbols.Options{})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	var out bytes.Buffer
	r := &Runner{Table: table, Out: &out, Reporter: diag.NopReporter{}, List: symfmt.Opts{Format: format}, Label: "s.sym"}
	if err := r.Run(context.Background(), cmds); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.Bytes()
}

func TestStructuredListingsKeepStdoutParseable(t *testing.T) {
	src := "insert a integer 1 0\nlist\ninsert b string hi 1\nlookup a 1\nlist\n"

	out := runStructured(t, src, symfmt.FormatJSON)
	if bytes.Contains(out, []byte(" -> ")) {
		t.Fatalf("command result lines mixed into JSON output:\n%s", out)
	}
	dec := json.NewDecoder(bytes.NewReader(out))
	var sizes []int
	for {
		var rec symfmt.ListingRecord
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("invalid JSON stream: %v\n%s", err, out)
		}
		sizes = append(sizes, len(rec.Entries))
	}
	if len(sizes) != 2 || sizes[0] != 1 || sizes[1] != 2 {
		t.Fatalf("listing sizes = %v, want [1 2]", sizes)
	}

	out = runStructured(t, src, symfmt.FormatMsgpack)
	r := bytes.NewReader(out)
	for i, want := range []int{1, 2} {
		rec, err := symfmt.DecodeMsgpack(r)
		if err != nil {
			t.Fatalf("listing %d: %v", i, err)
		}
		if len(rec.Entries) != want {
			t.Fatalf("listing %d has %d entries, want %d", i, len(rec.Entries), want)
		}
	}
	if r.Len() != 0 {
		t.Fatalf("%d trailing bytes after msgpack listings", r.Len())
	}
}

func TestRunFileReturnsTimings(t *testing.T) {
	p := filepath.Join(t.TempDir(), "t.sym")
	if err := os.WriteFile(p, []byte("insert a integer 1 0\nlookup a 0\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	res := RunFile(context.Background(), p, Options{})
	if res.Commands != 2 {
		t.Fatalf("commands = %d, want 2", res.Commands)
	}
	if res.Timings.Label != p || len(res.Timings.Phases) != 2 {
		t.Fatalf("timings not returned: %+v", res.Timings)
	}
	if res.Timings.Phases[1].Note != "1 entries" {
		t.Fatalf("execute note = %q", res.Timings.Phases[1].Note)
	}
}
