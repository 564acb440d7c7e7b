package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDoc = `{"type":"FeatureCollection","features":[
{"type":"Feature","id":"districts","geometry":{"type":"Polygon","coordinates":[[[0,0],[10,0],[10,10],[0,10],[0,0]]]}},
{"type":"Feature","id":"buildings","geometry":{"type":"Point","coordinates":[3,4]}},
{"type":"Feature","id":"values","properties":{"roadWidth":8}}
]}`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeDoc(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if out != "svgmap dev\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestBBox(t *testing.T) {
	p := writeDoc(t, t.TempDir(), "city.json", sampleDoc)
	out, err := execute(t, "bbox", p)
	if err != nil {
		t.Fatalf("bbox failed: %v", err)
	}
	for _, want := range []string{"bbox: -1 -1 11 11", "District", "Building", "skipped   1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConvert(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeDoc(t, in, "a.json", sampleDoc)
	writeDoc(t, in, "b.json", sampleDoc)

	stdout, err := execute(t, "convert", "--out", out, "--png", "--png-width", "32", "-w", "2", in)
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if !strings.Contains(stdout, "converted 2 of 2 documents") {
		t.Errorf("unexpected summary:\n%s", stdout)
	}
	for _, name := range []string{"a.svg", "b.svg", "a.png", "b.png"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
}

func TestConvertReportsFailures(t *testing.T) {
	in := t.TempDir()
	writeDoc(t, in, "good.json", sampleDoc)
	writeDoc(t, in, "bad.json", `{"type":"FeatureCollection","features":[{"id":"roads","geometry":{"type":"Point","coordinates":[1]}}]}`)

	stdout, err := execute(t, "convert", in)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 documents failed") {
		t.Fatalf("expected failure count error, got %v", err)
	}
	if !strings.Contains(stdout, "converted 1 of 2 documents") || !strings.Contains(stdout, "bad.json") {
		t.Errorf("unexpected summary:\n%s", stdout)
	}
	if _, err := os.Stat(filepath.Join(in, "good.svg")); err != nil {
		t.Errorf("good document not converted: %v", err)
	}
}

func TestConvertEmptyDir(t *testing.T) {
	if _, err := execute(t, "convert", t.TempDir()); err == nil {
		t.Error("Expected error for a directory without documents")
	}
}

func TestInvalidConfig(t *testing.T) {
	if _, err := execute(t, "--log-level", "loud", "version"); err == nil {
		t.Error("Expected error for an unknown log level")
	}
}
