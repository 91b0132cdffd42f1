package topics

import (
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"patching.md":   {Data: []byte("# Patching\n\nHow diff documents are applied.")},
		"catalogs.txt":  {Data: []byte("Catalog files pair an index with a blob.")},
		"notes/faq.md":  {Data: []byte("# FAQ")},
		"ignored.xhtml": {Data: []byte("<p>not a topic</p>")},
	}
}

func TestScanTopics(t *testing.T) {
	tm := New(testFS())
	if err := tm.scanTopics(); err != nil {
		t.Fatalf("scanTopics failed: %v", err)
	}

	for _, name := range []string{"patching", "catalogs", "faq"} {
		if _, ok := tm.GetTopic(name); !ok {
			t.Errorf("expected topic %q to be discovered", name)
		}
	}
	if _, ok := tm.GetTopic("ignored"); ok {
		t.Error("expected unsupported extension to be skipped")
	}
	if got := len(tm.ListTopics()); got != 3 {
		t.Errorf("expected 3 topics, got %d", got)
	}
}

func TestScanTopicsNilFS(t *testing.T) {
	tm := New(nil)
	if err := tm.scanTopics(); err != nil {
		t.Fatalf("nil filesystem should scan to nothing, got %v", err)
	}
	if got := len(tm.ListTopics()); got != 0 {
		t.Errorf("expected no topics, got %d", got)
	}
}

func TestCustomExtensions(t *testing.T) {
	tm := NewWithOptions(testFS(), Options{Extensions: []string{".xhtml"}})
	if err := tm.scanTopics(); err != nil {
		t.Fatalf("scanTopics failed: %v", err)
	}
	if _, ok := tm.GetTopic("ignored"); !ok {
		t.Error("expected custom extension to be honored")
	}
	if _, ok := tm.GetTopic("patching"); ok {
		t.Error("expected default extensions to be replaced")
	}
}

func TestInitializeAddsHelpCommand(t *testing.T) {
	rootCmd := &cobra.Command{Use: "modfold"}
	if err := Initialize(rootCmd, testFS()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	var helpCmd *cobra.Command
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "help" {
			helpCmd = cmd
			break
		}
	}
	if helpCmd == nil {
		t.Fatal("expected a help command to be installed")
	}
}

func TestPlainRendererPassesThrough(t *testing.T) {
	r := &PlainRenderer{}
	content := "# Heading\n\nBody text."
	if got := r.Render(content, ".md"); got != content {
		t.Errorf("plain renderer must not alter content, got %q", got)
	}
}

func TestGlamourRendererSkipsNonMarkdown(t *testing.T) {
	r := NewGlamourRenderer()
	content := "plain text topic"
	if got := r.Render(content, ".txt"); got != content {
		t.Errorf("non-markdown content must pass through, got %q", got)
	}
}
