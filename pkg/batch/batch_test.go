package batch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/doctract/doctract/pkg/utils"
)

type stubChain struct {
	texts map[string]string
	errs  map[string]error
	calls []string
}

func (s *stubChain) Extract(ctx context.Context, inputFile string) (string, error) {
	s.calls = append(s.calls, inputFile)
	if err, ok := s.errs[filepath.Base(inputFile)]; ok {
		return "", err
	}
	if text, ok := s.texts[filepath.Base(inputFile)]; ok {
		return text, nil
	}
	return "default text", nil
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFiletypeFilter(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.pdf"))
	touch(t, filepath.Join(root, "b.docx"))
	touch(t, filepath.Join(root, "c.txt"))

	chain := &stubChain{}
	driver := NewDriver(chain, zerolog.Nop(), true)

	report, err := driver.ExtractAll(context.Background(), []string{root}, []string{"pdf", "docx"})
	if err != nil {
		t.Fatalf("ExtractAll error: %v", err)
	}

	if len(chain.calls) != 2 {
		t.Fatalf("processed %d files, want 2: %v", len(chain.calls), chain.calls)
	}
	if len(report.Results) != 2 {
		t.Errorf("got %d results, want 2", len(report.Results))
	}
	if _, ok := report.Results["c.txt"]; ok {
		t.Error("c.txt should have been skipped entirely")
	}
	if len(report.Errors) != 0 {
		t.Errorf("skipped file recorded as error: %v", report.Errors)
	}
}

func TestBasenameCollisionLastWins(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "dirA", "report.pdf"))
	touch(t, filepath.Join(root, "dirB", "report.pdf"))

	// Distinguish the two documents by full path
	chain := &pathAwareChain{texts: map[string]string{
		filepath.Join(root, "dirA", "report.pdf"): "from dirA",
		filepath.Join(root, "dirB", "report.pdf"): "from dirB",
	}}
	driver := NewDriver(chain, zerolog.Nop(), true)

	report, err := driver.ExtractAll(context.Background(), []string{root}, []string{"pdf"})
	if err != nil {
		t.Fatalf("ExtractAll error: %v", err)
	}

	if len(report.Results) != 1 {
		t.Fatalf("got %d results, want 1 (basename collision)", len(report.Results))
	}
	// dirB sorts after dirA, so the later document wins
	if got := report.Results["report.pdf"]; got != "from dirB" {
		t.Errorf("collision winner = %q, want %q", got, "from dirB")
	}
}

type pathAwareChain struct {
	texts map[string]string
}

func (s *pathAwareChain) Extract(ctx context.Context, inputFile string) (string, error) {
	return s.texts[inputFile], nil
}

func TestUnsupportedDocumentSkippedSilently(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf", "bad.docx"} {
		touch(t, filepath.Join(root, name))
	}

	chain := &stubChain{errs: map[string]error{
		"bad.docx": utils.NewUnsupportedError("file is not a zip file", nil),
	}}
	driver := NewDriver(chain, zerolog.Nop(), true)

	report, err := driver.ExtractAll(context.Background(), []string{root}, []string{"pdf", "docx"})
	if err != nil {
		t.Fatalf("ExtractAll error: %v", err)
	}

	if len(report.Results) != 4 {
		t.Errorf("got %d results, want 4", len(report.Results))
	}
	if len(report.Errors) != 0 {
		t.Errorf("unsupported document recorded as error: %v", report.Errors)
	}
}

func TestToleratedFailureRecorded(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "good.pdf"))
	touch(t, filepath.Join(root, "broken.pdf"))

	chain := &stubChain{errs: map[string]error{
		"broken.pdf": utils.NewToolError("converter exited 1", nil),
	}}
	driver := NewDriver(chain, zerolog.Nop(), true)

	report, err := driver.ExtractAll(context.Background(), []string{root}, []string{"pdf"})
	if err != nil {
		t.Fatalf("ExtractAll error: %v", err)
	}

	if len(report.Results) != 1 {
		t.Errorf("got %d results, want 1", len(report.Results))
	}
	if len(report.Errors) != 1 || filepath.Base(report.Errors[0]) != "broken.pdf" {
		t.Errorf("error list = %v, want broken.pdf", report.Errors)
	}
}

func TestIntolerantFailureAbortsRun(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "broken.pdf"))
	touch(t, filepath.Join(root, "never.pdf"))

	chain := &stubChain{errs: map[string]error{
		"broken.pdf": utils.NewToolError("converter exited 1", nil),
	}}
	driver := NewDriver(chain, zerolog.Nop(), false)

	report, err := driver.ExtractAll(context.Background(), []string{root}, []string{"pdf"})
	if err == nil {
		t.Fatal("expected fatal abort with tolerance disabled")
	}
	if report != nil {
		t.Error("aborted run should return no report")
	}
	if !utils.IsKind(err, utils.ErrorKindTool) {
		t.Errorf("error kind = %s, want %s", utils.KindOf(err), utils.ErrorKindTool)
	}
}

func TestExplicitFileListOrderPreserved(t *testing.T) {
	root := t.TempDir()
	first := filepath.Join(root, "z.pdf")
	second := filepath.Join(root, "a.pdf")
	touch(t, first)
	touch(t, second)

	chain := &stubChain{}
	driver := NewDriver(chain, zerolog.Nop(), true)

	_, err := driver.ExtractAll(context.Background(), []string{first, second}, []string{"pdf"})
	if err != nil {
		t.Fatalf("ExtractAll error: %v", err)
	}

	if len(chain.calls) != 2 || chain.calls[0] != first || chain.calls[1] != second {
		t.Errorf("call order = %v, want [%s %s]", chain.calls, first, second)
	}
}

func TestEmptyFilterAcceptsEverything(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.pdf"))
	touch(t, filepath.Join(root, "b.odd"))

	chain := &stubChain{}
	driver := NewDriver(chain, zerolog.Nop(), true)

	report, err := driver.ExtractAll(context.Background(), []string{root}, nil)
	if err != nil {
		t.Fatalf("ExtractAll error: %v", err)
	}
	if len(report.Results) != 2 {
		t.Errorf("got %d results, want 2", len(report.Results))
	}
}

func TestPerFileProgressLoggedAtDebugOnly(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.pdf"))
	touch(t, filepath.Join(root, "b.pdf"))

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)

	chain := &stubChain{}
	driver := NewDriver(chain, logger, true)

	if _, err := driver.ExtractAll(context.Background(), []string{root}, []string{"pdf"}); err != nil {
		t.Fatalf("ExtractAll error: %v", err)
	}

	if strings.Contains(buf.String(), "processing file") {
		t.Errorf("per-file progress logged at info level: %s", buf.String())
	}
}
