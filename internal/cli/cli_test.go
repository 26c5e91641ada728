package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/MrSnakeDoc/langdocs/internal/domain"
	"github.com/MrSnakeDoc/langdocs/internal/version"
)

const cleanPartition = `categories:
  - id: basics
    label: Basics
    entries:
      - id: strings
        title: Strings
        difficulty: beginner
        tags: [text]
        summary: Text.
        sections:
          - heading: h
            content: c
`

const warningPartition = `categories:
  - id: basics
    label: Basics
    entries:
      - id: loops
        title: Loops
        difficulty: beginner
        tags: [control-flow]
        summary: Loops.
        sections:
          - heading: h
            content: c
        challenge:
          prompt: Count to ten.
          solutionCode: for i in 1..10
`

const brokenPartition = `categories:
  - id: basics
    label: Basics
    entries:
      - id: loops
        title: Loops
        difficulty: beginner
        tags: [control-flow]
        summary: Loops.
        sections:
          - heading: h
            content: c
            diagram:
              type: ascii
`

func language(id, partition string) fstest.MapFS {
	return fstest.MapFS{
		id + "/language.yaml": {Data: []byte("id: " + id + "\nlabel: " + id + "\npartitions: [a.yaml]\n")},
		id + "/a.yaml":        {Data: []byte(partition)},
	}
}

func tree(langs ...fstest.MapFS) fstest.MapFS {
	out := fstest.MapFS{}
	for _, l := range langs {
		for k, v := range l {
			out[k] = v
		}
	}
	return out
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != version.String() {
		t.Errorf("Expected %q, got %q", version.String(), got)
	}
}

func TestRunValidate(t *testing.T) {
	tests := []struct {
		name     string
		fsys     fstest.MapFS
		opts     validateOptions
		expected bool
	}{
		{name: "clean", fsys: language("java", cleanPartition), opts: validateOptions{format: "text"}, expected: true},
		{name: "clean strict", fsys: language("java", cleanPartition), opts: validateOptions{format: "text", strict: true}, expected: true},
		{name: "warnings", fsys: language("go", warningPartition), opts: validateOptions{format: "text"}, expected: true},
		{name: "warnings strict", fsys: language("go", warningPartition), opts: validateOptions{format: "text", strict: true}, expected: false},
		{name: "errors", fsys: tree(language("java", cleanPartition), language("kotlin", brokenPartition)), opts: validateOptions{format: "text"}, expected: false},
		{name: "errors per partition", fsys: language("kotlin", brokenPartition), opts: validateOptions{format: "text", perPartition: true}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ok, err := runValidate(context.Background(), tt.fsys, tt.opts, &buf)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if ok != tt.expected {
				t.Errorf("Expected ok=%v, got %v\n%s", tt.expected, ok, buf.String())
			}
		})
	}
}

func TestRunValidateText(t *testing.T) {
	var buf bytes.Buffer
	fsys := tree(language("java", cleanPartition), language("kotlin", brokenPartition))

	if _, err := runValidate(context.Background(), fsys, validateOptions{format: "text", perPartition: true}, &buf); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	out := buf.String()
	for _, want := range []string{"java: 0 error(s)", "kotlin: ", "per partition:", "kotlin partition 1", "[unknown-diagram-type]", "❌"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRunValidateJSON(t *testing.T) {
	var buf bytes.Buffer
	fsys := language("kotlin", brokenPartition)

	ok, err := runValidate(context.Background(), fsys, validateOptions{format: "json"}, &buf)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if ok {
		t.Error("Expected failure")
	}

	var out map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	if out["ok"] != false {
		t.Errorf("Expected ok=false, got %v", out["ok"])
	}
	if n, _ := out["errors"].(float64); n < 1 {
		t.Errorf("Expected at least 1 error, got %v", out["errors"])
	}
}

func TestRunValidateUnknownFormat(t *testing.T) {
	_, err := runValidate(context.Background(), language("java", cleanPartition), validateOptions{format: "xml"}, &bytes.Buffer{})
	if err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestRunExport(t *testing.T) {
	fsys := tree(language("java", cleanPartition), language("kotlin", brokenPartition))

	t.Run("single language", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out")
		if err := runExport(context.Background(), fsys, exportOptions{out: dir, lang: "java"}, &bytes.Buffer{}); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		data, err := os.ReadFile(filepath.Join(dir, "java.json"))
		if err != nil {
			t.Fatalf("Expected java.json, got %v", err)
		}
		var l domain.LanguageConfig
		if err := json.Unmarshal(data, &l); err != nil {
			t.Fatalf("Expected valid JSON, got %v", err)
		}
		if l.ID != "java" || l.EntryCount() != 1 {
			t.Errorf("Expected java with 1 entry, got %s with %d", l.ID, l.EntryCount())
		}
		if _, err := os.Stat(filepath.Join(dir, "kotlin.json")); !os.IsNotExist(err) {
			t.Error("Expected kotlin.json not to be written")
		}
	})

	t.Run("invalid language refused", func(t *testing.T) {
		dir := t.TempDir()
		if err := runExport(context.Background(), fsys, exportOptions{out: dir}, &bytes.Buffer{}); err == nil {
			t.Fatal("Expected error for invalid language")
		}
		if _, err := os.Stat(filepath.Join(dir, "java.json")); !os.IsNotExist(err) {
			t.Error("Expected nothing to be written")
		}
	})

	t.Run("force", func(t *testing.T) {
		dir := t.TempDir()
		if err := runExport(context.Background(), fsys, exportOptions{out: dir, force: true}, &bytes.Buffer{}); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		for _, name := range []string{"java.json", "kotlin.json"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
				t.Errorf("Expected %s, got %v", name, err)
			}
		}
	})

	t.Run("invalid single language refused", func(t *testing.T) {
		dir := t.TempDir()
		if err := runExport(context.Background(), fsys, exportOptions{out: dir, lang: "kotlin"}, &bytes.Buffer{}); err == nil {
			t.Fatal("Expected error for invalid language")
		}
		if _, err := os.Stat(filepath.Join(dir, "kotlin.json")); !os.IsNotExist(err) {
			t.Error("Expected nothing to be written")
		}
	})

	t.Run("unknown language", func(t *testing.T) {
		if err := runExport(context.Background(), fsys, exportOptions{out: t.TempDir(), lang: "rust"}, &bytes.Buffer{}); err == nil {
			t.Error("Expected error for unknown language")
		}
	})
}
