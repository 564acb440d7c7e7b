package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func TestDefaults(t *testing.T) {
	o, err := Load(New())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if o.PNG || o.PNGWidth != 1024 || o.LogLevel != "info" || o.LogFormat != "text" || o.Workers <= 0 {
		t.Errorf("unexpected defaults: %# v", pretty.Formatter(o))
	}
}

func TestFlagsOverrideEnvAndFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "svgmap.toml")
	cfg := "out = \"from-file\"\npng-width = 300\nlog-format = \"json\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SVGMAP_PNG_WIDTH", "640")
	t.Setenv("SVGMAP_WORKERS", "3")

	v := New()
	set := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := Bind(v, set); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if err := set.Parse([]string{"--config", cfgPath, "--png", "-w", "2"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if err := ReadConfigFile(v); err != nil {
		t.Fatalf("ReadConfigFile failed: %v", err)
	}
	o, err := Load(v)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := Options{
		OutDir:    "from-file",
		Workers:   2,
		PNG:       true,
		PNGWidth:  640,
		LogLevel:  "info",
		LogFormat: "json",
	}
	if diff := pretty.Diff(want, o); len(diff) > 0 {
		t.Errorf("options mismatch: %v", diff)
	}
}

func TestReadConfigFileMissing(t *testing.T) {
	v := New()
	v.Set("config", filepath.Join(t.TempDir(), "nope.yaml"))
	if err := ReadConfigFile(v); err == nil {
		t.Error("Expected error for a missing config file")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := map[string]interface{}{
		"workers":    -1,
		"png-width":  0,
		"log-level":  "loud",
		"log-format": "xml",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			v := New()
			v.Set(key, val)
			if _, err := Load(v); err == nil {
				t.Errorf("Expected error for %s=%v", key, val)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := Options{LogLevel: "warn", LogFormat: "json"}.NewLogger(&buf)
	if log.GetLevel() != logrus.WarnLevel {
		t.Errorf("Expected warn level, got %v", log.GetLevel())
	}
	log.Info("hidden")
	log.WithFields(logrus.Fields{"file": "a.json"}).Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"file":"a.json"`) {
		t.Errorf("unexpected log output: %s", out)
	}
}
