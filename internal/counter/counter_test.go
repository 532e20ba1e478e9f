package counter

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/tally/internal/fileio"
	"github.com/verte-zerg/tally/internal/model"
)

func TestComputeCountsTerminators(t *testing.T) {
	got := Compute([]string{"a b c\n", "d\n"})
	want := model.Counts{Lines: 2, Words: 4, Bytes: 8}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestComputeEmptyTrailingFragment(t *testing.T) {
	got := Compute([]string{"x\n", ""})
	if got.Lines != 2 || got.Words != 1 || got.Bytes != 2 {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if empty := Compute(nil); empty != (model.Counts{}) {
		t.Fatalf("expected zero counts, got %+v", empty)
	}
}

func TestComputeUnits(t *testing.T) {
	lines := []string{"héllo wörld\n"}
	chars := Compute(lines)
	if chars.Bytes != 12 {
		t.Fatalf("expected 12 chars, got %d", chars.Bytes)
	}
	c, err := New(Options{Unit: UnitBytes})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := c.Compute(lines); got.Bytes != 14 {
		t.Fatalf("expected 14 bytes, got %d", got.Bytes)
	}
}

func TestParseUnit(t *testing.T) {
	if u, err := ParseUnit("bytes"); err != nil || u != UnitBytes {
		t.Fatalf("expected bytes unit, got %v %v", u, err)
	}
	if u, err := ParseUnit(""); err != nil || u != UnitChars {
		t.Fatalf("expected chars unit, got %v %v", u, err)
	}
	if _, err := ParseUnit("words"); !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("expected ErrUnknownUnit, got %v", err)
	}
}

func TestRunStdin(t *testing.T) {
	c := newTestCounter(t, Options{})
	var out bytes.Buffer
	res, err := c.Run(&out, strings.NewReader("a b c\nd\n"), nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out.String() != "\t2\t4\t8\n" {
		t.Fatalf("unexpected stdin output: %q", out.String())
	}
	if res.Mode != ModeStdin || res.Total != (model.Counts{Lines: 2, Words: 4, Bytes: 8}) {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestRunSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "one.txt", "hello world\nbye\n")

	c := newTestCounter(t, Options{})
	var out bytes.Buffer
	res, err := c.Run(&out, nil, []string{path})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := "2 3 16 " + path + "\n"
	if out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
	if res.Mode != ModeSingle || len(res.Sources) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestRunMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "one two three\nfour\n")
	b := writeFile(t, dir, "b.txt", "x\n")

	c := newTestCounter(t, Options{})
	var out bytes.Buffer
	res, err := c.Run(&out, nil, []string{a, b})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	want := []string{
		" 2  4 19 " + a,
		" 1  1  2 " + b,
		" 3  5 21 total",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), out.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
	if res.Mode != ModeMulti || res.Total != (model.Counts{Lines: 3, Words: 5, Bytes: 21}) {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestRunMissingFileWritesNothing(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "ok\n")
	missing := filepath.Join(dir, "missing.txt")

	c := newTestCounter(t, Options{})
	var out bytes.Buffer
	_, err := c.Run(&out, nil, []string{a, missing})
	var accessErr *fileio.AccessError
	if !errors.As(err, &accessErr) {
		t.Fatalf("expected AccessError, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected ErrNotExist in chain, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no partial output, got %q", out.String())
	}
}

func TestRunExpandsGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "b\n")
	writeFile(t, dir, "a.txt", "a a\n")
	writeFile(t, dir, "skip.md", "nope\n")

	c := newTestCounter(t, Options{Glob: true})
	var out bytes.Buffer
	res, err := c.Run(&out, nil, []string{filepath.Join(dir, "*.txt")})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Mode != ModeMulti || len(res.Sources) != 2 {
		t.Fatalf("expected two expanded sources, got %+v", res)
	}
	if res.Sources[0].Label != filepath.Join(dir, "a.txt") {
		t.Fatalf("expected sorted expansion, got %q first", res.Sources[0].Label)
	}
}

func TestExpandPathsKeepsUnmatchedPattern(t *testing.T) {
	pattern := filepath.Join(t.TempDir(), "*.none")
	got, err := ExpandPaths([]string{"plain.txt", pattern})
	if err != nil {
		t.Fatalf("ExpandPaths failed: %v", err)
	}
	if len(got) != 2 || got[0] != "plain.txt" || got[1] != pattern {
		t.Fatalf("unexpected expansion: %q", got)
	}
}

func TestRunCountsExistingFileWithGlobMeta(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "weird[name.txt", "x y\n")

	c := newTestCounter(t, Options{Glob: true})
	var out bytes.Buffer
	if _, err := c.Run(&out, nil, []string{path}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if want := "1 2 4 " + path + "\n"; out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestRunMalformedPatternFailsAsUnreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing[name.txt")

	c := newTestCounter(t, Options{Glob: true})
	var out bytes.Buffer
	_, err := c.Run(&out, nil, []string{path})
	var accessErr *fileio.AccessError
	if !errors.As(err, &accessErr) {
		t.Fatalf("expected AccessError, got %v", err)
	}
	if accessErr.Path != path {
		t.Fatalf("expected literal path %q, got %q", path, accessErr.Path)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func newTestCounter(t *testing.T, opts Options) *Counter {
	t.Helper()
	c, err := New(opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
