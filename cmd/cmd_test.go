package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/abhisek/pyqtrack/internal/store"
)

// resetFlags restores every flag to its default so runs do not leak
// into each other through the package-level commands.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

type cli struct {
	t  *testing.T
	db string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("PYQTRACK_DB", "")
	return &cli{t: t, db: filepath.Join(t.TempDir(), "pyqtrack.db")}
}

func (c *cli) run(stdin string, args ...string) (string, error) {
	c.t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args, "--db", c.db, "--log-level", "error"))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (c *cli) mustRun(stdin string, args ...string) string {
	c.t.Helper()
	out, err := c.run(stdin, args...)
	if err != nil {
		c.t.Fatalf("%v: %v\n%s", args, err, out)
	}
	return out
}

func TestImportSampleAndStats(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("", "import", "--sample")
	if !strings.Contains(out, "Loaded sample data") {
		t.Errorf("import output = %q", out)
	}

	out = c.mustRun("", "stats")
	for _, want := range []string{"S25", "W24", "TOTAL", "Links:   0"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats missing %q:\n%s", want, out)
		}
	}
}

func TestStats_Empty(t *testing.T) {
	c := newCLI(t)
	if out := c.mustRun("", "stats"); !strings.Contains(out, "No questions loaded") {
		t.Errorf("stats = %q", out)
	}
}

func TestImport_EmptyInput(t *testing.T) {
	c := newCLI(t)
	if _, err := c.run("  \n", "import", "-"); err == nil {
		t.Error("expected an error for blank input")
	}
}

func TestExportResetLoad(t *testing.T) {
	c := newCLI(t)
	c.mustRun("", "import", "--sample")

	dump := filepath.Join(t.TempDir(), "tracker.json")
	c.mustRun("", "export", "json", "-o", dump)
	data, err := os.ReadFile(dump)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"subQuestions"`) {
		t.Errorf("export = %s", data)
	}

	if out := c.mustRun("n\n", "reset"); !strings.Contains(out, "Aborted") {
		t.Errorf("reset without confirmation = %q", out)
	}
	c.mustRun("", "reset", "--yes")
	if out := c.mustRun("", "stats"); !strings.Contains(out, "No questions loaded") {
		t.Errorf("stats after reset = %q", out)
	}

	if out := c.mustRun("", "load", dump); !strings.Contains(out, "Loaded") {
		t.Errorf("load = %q", out)
	}
	if out := c.mustRun("", "stats"); !strings.Contains(out, "S25") {
		t.Errorf("stats after load = %q", out)
	}
}

func TestExport_SVG(t *testing.T) {
	c := newCLI(t)
	c.mustRun("", "import", "--sample")
	if out := c.mustRun("", "export", "svg"); !strings.Contains(out, "<svg") {
		t.Errorf("svg export missing <svg: %.200s", out)
	}
}

func TestExport_PNGNeedsOutput(t *testing.T) {
	c := newCLI(t)
	if _, err := c.run("", "export", "png"); err == nil {
		t.Error("png to stdout should be refused")
	}
	if _, err := c.run("", "export", "pdf"); err == nil {
		t.Error("unknown format should be refused")
	}
}

func TestShowPlain(t *testing.T) {
	c := newCLI(t)
	c.mustRun("", "import", "--sample")
	out := c.mustRun("", "show", "--plain")
	if !strings.Contains(out, "# PYQ tracker") || !strings.Contains(out, "- [ ]") {
		t.Errorf("show = %q", out)
	}
}

func TestSettings(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("", "settings", "--two-column", "--font-size", "18")
	if !strings.Contains(out, "two-column:  true") || !strings.Contains(out, "font-size:   18px") {
		t.Errorf("settings = %q", out)
	}
	if out := c.mustRun("", "settings"); !strings.Contains(out, "two-column:  true") {
		t.Errorf("settings not persisted: %q", out)
	}
	if _, err := c.run("", "settings", "--font-size", "40"); err == nil {
		t.Error("out-of-range font size should be rejected")
	}
}

func TestLLMList_Empty(t *testing.T) {
	c := newCLI(t)
	if out := c.mustRun("", "llm", "list"); !strings.Contains(out, "No LLM events found") {
		t.Errorf("llm list = %q", out)
	}
}

func TestVersion(t *testing.T) {
	c := newCLI(t)
	if out := c.mustRun("", "version"); !strings.HasPrefix(out, "pyqtrack ") {
		t.Errorf("version = %q", out)
	}
}

func TestVersion_VerboseShowsDatabase(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("", "version", "--verbose")
	if !strings.Contains(out, "database: "+c.db) {
		t.Errorf("verbose version = %q", out)
	}
}

func TestLLMCommands(t *testing.T) {
	c := newCLI(t)
	st, err := store.Open(c.db)
	if err != nil {
		t.Fatal(err)
	}
	repo := st.EventRepo()
	ctx := context.Background()
	for _, ev := range []store.LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "extract", InputTokens: 1000, OutputTokens: 200, Success: true, RequestBody: "paper text"},
		{Provider: "mock", Model: "mock", Purpose: "preview", ErrorMessage: "boom"},
	} {
		if err := repo.AppendLLMRequest(ctx, ev); err != nil {
			t.Fatal(err)
		}
	}
	st.Close()

	out := c.mustRun("", "llm", "list")
	for _, want := range []string{"gpt-4o-mini", "extract", "preview", "✓", "✗"} {
		if !strings.Contains(out, want) {
			t.Errorf("list missing %q:\n%s", want, out)
		}
	}

	if out := c.mustRun("", "llm", "list", "--purpose", "preview"); strings.Contains(out, "gpt-4o-mini") {
		t.Errorf("purpose filter ignored:\n%s", out)
	}

	out = c.mustRun("", "llm", "stats")
	for _, want := range []string{"TOTAL (partial)", "Pricing unavailable for: mock"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats missing %q:\n%s", want, out)
		}
	}

	if _, err := c.run("", "llm", "view", "x"); err == nil {
		t.Error("non-numeric id accepted")
	}
	if _, err := c.run("", "llm", "view", "999"); err == nil {
		t.Error("missing event did not error")
	}
}
